package storage

import (
	"sync"
	"time"

	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/logging"
	"github.com/manav03panchal/lifeledger/internal/model"
)

const (
	// DefaultFinanceLogCap is the number of finance log entries kept.
	DefaultFinanceLogCap = 1000
	// DefaultRecentSearchCap is the number of recent searches kept.
	DefaultRecentSearchCap = 10
)

// Store owns every entity collection persisted in a KV.
type Store struct {
	kv    KV
	clock func() time.Time

	financeLogCap   int
	recentSearchCap int

	// One writer per entity kind. Habits and their entries share habitsMu so
	// a cascading delete is one critical section; the ledger mutex covers
	// transactions, budgets and the finance log.
	goalsMu     sync.Mutex
	notesMu     sync.Mutex
	tasksMu     sync.Mutex
	eventsMu    sync.Mutex
	remindersMu sync.Mutex
	habitsMu    sync.Mutex
	journalMu   sync.Mutex
	ledgerMu    sync.Mutex
	settingsMu  sync.Mutex
	profileMu   sync.Mutex
	searchMu    sync.Mutex
	promptsMu   sync.Mutex
	flagsMu     sync.Mutex

	Goals        *GoalRepo
	Notes        *NoteRepo
	Tasks        *TaskRepo
	Events       *EventRepo
	Reminders    *ReminderRepo
	Habits       *HabitRepo
	HabitEntries *HabitEntryRepo
	Journal      *JournalRepo
	Transactions *TransactionRepo
	Budgets      *BudgetRepo
	FinanceLogs  *FinanceLogRepo
	Settings     *SettingsRepo
	Profile      *ProfileRepo
	Searches     *SearchRepo
	Prompts      *PromptRepo
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithFinanceLogCap overrides how many finance log entries are retained.
func WithFinanceLogCap(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.financeLogCap = n
		}
	}
}

// WithRecentSearchCap overrides how many recent searches are retained.
func WithRecentSearchCap(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.recentSearchCap = n
		}
	}
}

// NewStore builds the repositories on top of kv.
func NewStore(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:              kv,
		clock:           time.Now,
		financeLogCap:   DefaultFinanceLogCap,
		recentSearchCap: DefaultRecentSearchCap,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Goals = &GoalRepo{newCollection[*model.Goal](s, model.KeyGoals, "goal", appendNew, &s.goalsMu)}
	s.Notes = &NoteRepo{newCollection[*model.Note](s, model.KeyNotes, "note", prependNew, &s.notesMu)}
	s.Tasks = &TaskRepo{newCollection[*model.Task](s, model.KeyTasks, "task", appendNew, &s.tasksMu)}
	s.Events = &EventRepo{newCollection[*model.CalendarEvent](s, model.KeyEvents, "event", appendNew, &s.eventsMu)}
	s.Reminders = &ReminderRepo{newCollection[*model.Reminder](s, model.KeyReminders, "reminder", appendNew, &s.remindersMu)}
	s.Habits = &HabitRepo{newCollection[*model.Habit](s, model.KeyHabits, "habit", appendNew, &s.habitsMu)}
	s.HabitEntries = &HabitEntryRepo{newCollection[*model.HabitEntry](s, model.KeyHabitEntries, "habit entry", appendNew, &s.habitsMu)}
	s.Journal = &JournalRepo{newCollection[*model.JournalEntry](s, model.KeyJournalEntries, "journal entry", prependNew, &s.journalMu)}
	s.Transactions = &TransactionRepo{newCollection[*model.Transaction](s, model.KeyTransactions, "transaction", prependNew, &s.ledgerMu)}
	s.Budgets = &BudgetRepo{newCollection[*model.Budget](s, model.KeyBudgets, "budget", appendNew, &s.ledgerMu)}
	s.FinanceLogs = &FinanceLogRepo{newCollection[*model.FinanceLog](s, model.KeyFinanceLogs, "finance log", prependNew, &s.ledgerMu)}
	s.Settings = &SettingsRepo{st: s}
	s.Profile = &ProfileRepo{st: s}
	s.Searches = &SearchRepo{st: s}
	s.Prompts = &PromptRepo{st: s}
	return s
}

// KV returns the underlying key-value store.
func (s *Store) KV() KV {
	return s.kv
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.clock()
}

func (s *Store) nowMillis() int64 {
	return model.Millis(s.clock())
}

// Close closes the underlying key-value store.
func (s *Store) Close() error {
	return s.kv.Close()
}

// lockAll acquires every writer lock in a fixed order so whole-store
// operations exclude all per-kind mutations.
func (s *Store) lockAll() {
	for _, mu := range s.mutexes() {
		mu.Lock()
	}
}

func (s *Store) unlockAll() {
	mus := s.mutexes()
	for i := len(mus) - 1; i >= 0; i-- {
		mus[i].Unlock()
	}
}

func (s *Store) mutexes() []*sync.Mutex {
	return []*sync.Mutex{
		&s.goalsMu, &s.notesMu, &s.tasksMu, &s.eventsMu, &s.remindersMu,
		&s.habitsMu, &s.journalMu, &s.ledgerMu, &s.settingsMu, &s.profileMu,
		&s.searchMu, &s.promptsMu, &s.flagsMu,
	}
}

// OnboardingComplete reports whether onboarding has been finished.
func (s *Store) OnboardingComplete() bool {
	return getBool(s.kv, model.KeyOnboardingComplete, false)
}

// SetOnboardingComplete records the onboarding flag.
func (s *Store) SetOnboardingComplete(done bool) error {
	s.flagsMu.Lock()
	defer s.flagsMu.Unlock()
	return wrapWrite(model.KeyOnboardingComplete, setBool(s.kv, model.KeyOnboardingComplete, done))
}

// IsFirstLaunch reports whether MarkLaunched has never been called.
func (s *Store) IsFirstLaunch() bool {
	return getBool(s.kv, model.KeyFirstLaunch, true)
}

// MarkLaunched clears the first-launch flag.
func (s *Store) MarkLaunched() error {
	s.flagsMu.Lock()
	defer s.flagsMu.Unlock()
	return wrapWrite(model.KeyFirstLaunch, setBool(s.kv, model.KeyFirstLaunch, false))
}

// LastSync returns the epoch milliseconds of the last import, or 0.
func (s *Store) LastSync() int64 {
	return getInt64(s.kv, model.KeyLastSync)
}

// SetLastSync records the last import time.
func (s *Store) SetLastSync(ms int64) error {
	s.flagsMu.Lock()
	defer s.flagsMu.Unlock()
	return wrapWrite(model.KeyLastSync, s.kv.Set(model.KeyLastSync, formatInt64(ms)))
}

// LinkedGoal resolves a weak goal reference. An empty or dangling id is
// reported as unlinked.
func (s *Store) LinkedGoal(id string) (*model.Goal, bool) {
	if id == "" {
		return nil, false
	}
	return s.Goals.Get(id)
}

// ClearAll erases every key in the store.
func (s *Store) ClearAll() error {
	s.lockAll()
	defer s.unlockAll()

	if err := s.kv.DropAll(); err != nil {
		return errors.NewSystemErrorWithOp("clear", "failed to clear data", err)
	}
	logging.Info("all data cleared", logging.KeyOperation, "clear")
	return nil
}

// Restore writes a snapshot in one atomic batch. Nil collections and
// singletons in data are left untouched; empty ones overwrite. syncedAt is
// recorded as the last sync time.
func (s *Store) Restore(data *model.AppData, syncedAt int64) error {
	s.lockAll()
	defer s.unlockAll()

	err := s.kv.Update(func(w Writer) error {
		steps := []func() error{
			func() error { return stage(w, s.Goals.collection, data.Goals) },
			func() error { return stage(w, s.Notes.collection, data.Notes) },
			func() error { return stage(w, s.Tasks.collection, data.Tasks) },
			func() error { return stage(w, s.Events.collection, data.Events) },
			func() error { return stage(w, s.Reminders.collection, data.Reminders) },
			func() error { return stage(w, s.Habits.collection, data.Habits) },
			func() error { return stage(w, s.HabitEntries.collection, data.HabitEntries) },
			func() error { return stage(w, s.Journal.collection, data.JournalEntries) },
			func() error { return stage(w, s.Transactions.collection, data.Transactions) },
			func() error { return stage(w, s.Budgets.collection, data.Budgets) },
			func() error { return stage(w, s.FinanceLogs.collection, data.Logs) },
			func() error { return stageValue(w, model.KeySettings, data.Settings) },
			func() error { return stageValue(w, model.KeyUserProfile, data.UserProfile) },
			func() error { return w.Set(model.KeyLastSync, formatInt64(syncedAt)) },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.NewSystemErrorWithOp("restore", "failed to restore data", err)
	}
	return nil
}

// stage writes items into a batch unless items is nil.
func stage[T model.Record](w Writer, c *collection[T], items []T) error {
	if items == nil {
		return nil
	}
	return c.writeTo(w, items)
}

// stageValue writes a singleton into a batch unless v is nil.
func stageValue[T any](w Writer, key string, v *T) error {
	if v == nil {
		return nil
	}
	data, err := encode(v)
	if err != nil {
		return err
	}
	return w.Set(key, data)
}

func wrapWrite(key string, err error) error {
	if err == nil {
		return nil
	}
	return errors.NewSystemErrorWithOp("write "+key, "failed to save "+key, err)
}
