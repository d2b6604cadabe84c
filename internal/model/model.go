// Package model defines the domain models for Lifeledger.
package model

import "time"

// Record is the interface every entity stored in a collection implements.
type Record interface {
	// GetID returns the stable client-generated identifier.
	GetID() string
	// SetID assigns the identifier.
	SetID(id string)
	// Stamp records a mutation at now. The creation time becomes created,
	// or now when created is 0.
	Stamp(created, now int64)
	// CreatedMillis returns the creation time.
	CreatedMillis() int64
}

// Storage keys, one per collection or singleton.
const (
	KeyGoals              = "goals"
	KeyNotes              = "notes"
	KeyTasks              = "tasks"
	KeyEvents             = "events"
	KeyHabitEntries       = "habit_entries"
	KeyHabits             = "habits_list"
	KeySettings           = "settings"
	KeyUserProfile        = "user_profile"
	KeyReminders          = "reminders"
	KeyOnboardingComplete = "onboarding_complete"
	KeyJournalEntries     = "journal_entries"
	KeyJournalPrompts     = "journal_prompts"
	KeyRecentSearches     = "recent_searches"
	KeyTransactions       = "finance_transactions"
	KeyBudgets            = "finance_budgets"
	KeyFinanceLogs        = "finance_logs"
	KeyFirstLaunch        = "first_launch"
	KeyLastSync           = "last_sync"
)

// Millis converts t to epoch milliseconds.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts epoch milliseconds to a local time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).Local()
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayStart returns local midnight, in epoch milliseconds, of the day containing ms.
func DayStart(ms int64) int64 {
	return Millis(StartOfDay(FromMillis(ms)))
}

// SameDay reports whether two epoch-millisecond instants fall on the same local day.
func SameDay(a, b int64) bool {
	return DayStart(a) == DayStart(b)
}

// stamp is shared by records carrying createdAt/updatedAt.
func stamp(createdAt, updatedAt *int64, created, now int64) {
	if created == 0 {
		created = now
	}
	*createdAt = created
	*updatedAt = now
}
