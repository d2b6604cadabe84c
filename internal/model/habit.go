package model

// Habit is the definition of a recurring practice.
type Habit struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	Color             string `json:"color"`
	Icon              string `json:"icon,omitempty"`
	TargetDaysPerWeek int    `json:"targetDaysPerWeek"`
	IsArchived        bool   `json:"isArchived"`
	CreatedAt         int64  `json:"createdAt"`
	UpdatedAt         int64  `json:"updatedAt"`
}

func (h *Habit) GetID() string { return h.ID }
func (h *Habit) SetID(id string) { h.ID = id }
func (h *Habit) Stamp(created, now int64) { stamp(&h.CreatedAt, &h.UpdatedAt, created, now) }
func (h *Habit) CreatedMillis() int64 { return h.CreatedAt }

// HabitEntry records one day's outcome for a habit.
// There is at most one entry per (HabitID, local day).
type HabitEntry struct {
	ID          string `json:"id"`
	HabitID     string `json:"habitId"`
	Date        int64  `json:"date"`
	IsCompleted bool   `json:"isCompleted"`
	Note        string `json:"note,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

func (e *HabitEntry) GetID() string { return e.ID }
func (e *HabitEntry) SetID(id string) { e.ID = id }

// Stamp sets CreatedAt; entries are replaced, never edited in place.
func (e *HabitEntry) Stamp(created, now int64) {
	if created == 0 {
		created = now
	}
	e.CreatedAt = created
}

func (e *HabitEntry) CreatedMillis() int64 { return e.CreatedAt }

// SameSlot reports whether other occupies the same (habit, day) slot.
func (e *HabitEntry) SameSlot(other *HabitEntry) bool {
	return e.HabitID == other.HabitID && SameDay(e.Date, other.Date)
}
