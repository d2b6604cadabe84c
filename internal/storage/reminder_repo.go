package storage

import (
	"sort"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/validate"
)

// ReminderRepo provides reminder persistence. New reminders are appended.
type ReminderRepo struct {
	*collection[*model.Reminder]
}

// Add validates and stores a new reminder, resolving its color from the
// linked goal or its priority.
func (r *ReminderRepo) Add(rem *model.Reminder) error {
	if err := r.prepareReminder(rem); err != nil {
		return err
	}
	return r.collection.Add(rem)
}

// Update validates and replaces an existing reminder.
func (r *ReminderRepo) Update(rem *model.Reminder) error {
	if err := r.prepareReminder(rem); err != nil {
		return err
	}
	return r.collection.Update(rem)
}

func (r *ReminderRepo) prepareReminder(rem *model.Reminder) error {
	rem.Title = validate.CleanTitle(rem.Title)
	if rem.Priority == "" {
		rem.Priority = model.PriorityMedium
	}
	if rem.RepeatType == "" {
		rem.RepeatType = model.RepeatNone
	}
	if err := validate.Reminder(rem); err != nil {
		return err
	}
	goal, _ := r.st.LinkedGoal(rem.LinkedGoalID)
	rem.Color = rem.ResolveColor(goal)
	return nil
}

// ToggleEnabled flips a reminder's enabled flag.
func (r *ReminderRepo) ToggleEnabled(id string) error {
	return r.modify(id, func(rem *model.Reminder) error {
		rem.IsEnabled = !rem.IsEnabled
		return nil
	})
}

// ListUpcoming returns enabled reminders firing at or after now, soonest first.
func (r *ReminderRepo) ListUpcoming(now int64) []*model.Reminder {
	var upcoming []*model.Reminder
	for _, rem := range r.list() {
		if rem.IsUpcoming(now) {
			upcoming = append(upcoming, rem)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].ReminderTime < upcoming[j].ReminderTime
	})
	return upcoming
}
