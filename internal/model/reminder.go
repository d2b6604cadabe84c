package model

// Reminder is a timed nudge, optionally linked to a goal.
type Reminder struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ReminderTime int64      `json:"reminderTime"`
	Priority     Priority   `json:"priority"`
	RepeatType   RepeatType `json:"repeatType"`
	LinkedGoalID string     `json:"linkedGoalId,omitempty"`
	IsEnabled    bool       `json:"isEnabled"`
	Color        string     `json:"color"`
	CreatedAt    int64      `json:"createdAt"`
	UpdatedAt    int64      `json:"updatedAt"`
}

func (r *Reminder) GetID() string { return r.ID }
func (r *Reminder) SetID(id string) { r.ID = id }
func (r *Reminder) Stamp(created, now int64) { stamp(&r.CreatedAt, &r.UpdatedAt, created, now) }
func (r *Reminder) CreatedMillis() int64 { return r.CreatedAt }

// ResolveColor returns the linked goal's color when goal is non-nil,
// otherwise the priority color.
func (r *Reminder) ResolveColor(goal *Goal) string {
	if goal != nil && goal.Color != "" {
		return goal.Color
	}
	return r.Priority.Color()
}

// IsUpcoming reports whether the reminder is enabled and fires at or after now.
func (r *Reminder) IsUpcoming(now int64) bool {
	return r.IsEnabled && r.ReminderTime >= now
}
