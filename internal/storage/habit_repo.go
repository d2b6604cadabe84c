package storage

import (
	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/logging"
	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/validate"
)

// HabitRepo provides habit definition persistence. New habits are appended.
type HabitRepo struct {
	*collection[*model.Habit]
}

// Add validates and stores a new habit.
func (r *HabitRepo) Add(h *model.Habit) error {
	h.Name = validate.CleanTitle(h.Name)
	if err := validate.Habit(h); err != nil {
		return err
	}
	return r.collection.Add(h)
}

// Update validates and replaces an existing habit.
func (r *HabitRepo) Update(h *model.Habit) error {
	h.Name = validate.CleanTitle(h.Name)
	if err := validate.Habit(h); err != nil {
		return err
	}
	return r.collection.Update(h)
}

// SetArchived archives or restores a habit. Entries are kept.
func (r *HabitRepo) SetArchived(id string, archived bool) error {
	return r.modify(id, func(h *model.Habit) error {
		h.IsArchived = archived
		return nil
	})
}

// Active returns habits that are not archived.
func (r *HabitRepo) Active() []*model.Habit {
	var active []*model.Habit
	for _, h := range r.list() {
		if !h.IsArchived {
			active = append(active, h)
		}
	}
	return active
}

// Delete removes a habit and all of its entries in one batch.
// An unknown id is a no-op.
func (r *HabitRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.st.HabitEntries
	habits := r.list()
	all := entries.list()

	keptHabits := habits[:0]
	for _, h := range habits {
		if h.ID != id {
			keptHabits = append(keptHabits, h)
		}
	}
	keptEntries := all[:0]
	for _, e := range all {
		if e.HabitID != id {
			keptEntries = append(keptEntries, e)
		}
	}
	removed := len(all) - len(keptEntries)
	if len(keptHabits) == len(habits) && removed == 0 {
		return nil
	}

	err := r.st.kv.Update(func(w Writer) error {
		if err := r.writeTo(w, keptHabits); err != nil {
			return err
		}
		return entries.writeTo(w, keptEntries)
	})
	if err != nil {
		return errors.NewSystemErrorWithOp("delete habit", "failed to delete habit", err)
	}

	logging.DebugLog("habit deleted", logging.KeyID, id, logging.KeyCount, removed)
	return nil
}

// HabitEntryRepo provides per-day habit completion records.
// There is at most one entry per (habit, local day).
type HabitEntryRepo struct {
	*collection[*model.HabitEntry]
}

// Add upserts an entry: any existing entry for the same habit and local day
// is replaced. The date is normalized to local midnight.
func (r *HabitEntryRepo) Add(e *model.HabitEntry) error {
	if e.HabitID == "" {
		return errors.NewUserErrorWithField("habit", "", "habit id is required", "Pass the habit id the entry belongs to")
	}
	e.Date = model.DayStart(e.Date)
	r.prepare(e)

	return r.mutate(func(all []*model.HabitEntry) ([]*model.HabitEntry, bool, error) {
		kept := all[:0]
		for _, existing := range all {
			if !existing.SameSlot(e) {
				kept = append(kept, existing)
			}
		}
		return r.insert(kept, e), true, nil
	})
}

// ListForHabit returns the entries of one habit.
func (r *HabitEntryRepo) ListForHabit(habitID string) []*model.HabitEntry {
	var out []*model.HabitEntry
	for _, e := range r.list() {
		if e.HabitID == habitID {
			out = append(out, e)
		}
	}
	return out
}

// EntryOn returns the habit's entry for the local day of dayMillis.
func (r *HabitEntryRepo) EntryOn(habitID string, dayMillis int64) (*model.HabitEntry, bool) {
	for _, e := range r.list() {
		if e.HabitID == habitID && model.SameDay(e.Date, dayMillis) {
			return e, true
		}
	}
	return nil, false
}
