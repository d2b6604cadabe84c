package model

// Priority ranks tasks and reminders.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Color returns the hex color associated with the priority.
func (p Priority) Color() string {
	switch p {
	case PriorityLow:
		return "#10B981"
	case PriorityHigh:
		return "#F59E0B"
	case PriorityUrgent:
		return "#EF4444"
	default:
		return "#3B82F6"
	}
}

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// RepeatType describes how a task or reminder recurs.
type RepeatType string

const (
	RepeatNone    RepeatType = "NONE"
	RepeatDaily   RepeatType = "DAILY"
	RepeatWeekly  RepeatType = "WEEKLY"
	RepeatMonthly RepeatType = "MONTHLY"
	RepeatYearly  RepeatType = "YEARLY"
)

// IsValid reports whether r is a known repeat type. Empty means none.
func (r RepeatType) IsValid() bool {
	switch r {
	case "", RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return true
	}
	return false
}

// Task is a to-do item, optionally linked to a goal.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Priority     Priority   `json:"priority"`
	DueDate      *int64     `json:"dueDate,omitempty"`
	LinkedGoalID string     `json:"linkedGoalId,omitempty"`
	RepeatType   RepeatType `json:"repeatType"`
	IsCompleted  bool       `json:"isCompleted"`
	CompletedAt  *int64     `json:"completedAt,omitempty"`
	CreatedAt    int64      `json:"createdAt"`
	UpdatedAt    int64      `json:"updatedAt"`
}

func (t *Task) GetID() string { return t.ID }
func (t *Task) SetID(id string) { t.ID = id }
func (t *Task) Stamp(created, now int64) { stamp(&t.CreatedAt, &t.UpdatedAt, created, now) }
func (t *Task) CreatedMillis() int64 { return t.CreatedAt }

// IsDueOn reports whether the task's due date falls on the local day of dayMillis.
func (t *Task) IsDueOn(dayMillis int64) bool {
	return t.DueDate != nil && SameDay(*t.DueDate, dayMillis)
}

// CalendarEvent is a dated entry on the calendar.
type CalendarEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Date is day-granular: local midnight of the event day.
	Date      int64  `json:"date"`
	Color     string `json:"color"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

func (e *CalendarEvent) GetID() string { return e.ID }
func (e *CalendarEvent) SetID(id string) { e.ID = id }
func (e *CalendarEvent) Stamp(created, now int64) { stamp(&e.CreatedAt, &e.UpdatedAt, created, now) }
func (e *CalendarEvent) CreatedMillis() int64 { return e.CreatedAt }

// Note is a free-form note.
type Note struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Color     string   `json:"color"`
	IsPinned  bool     `json:"isPinned"`
	Tags      []string `json:"tags,omitempty"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}

func (n *Note) GetID() string { return n.ID }
func (n *Note) SetID(id string) { n.ID = id }
func (n *Note) Stamp(created, now int64) { stamp(&n.CreatedAt, &n.UpdatedAt, created, now) }
func (n *Note) CreatedMillis() int64 { return n.CreatedAt }
