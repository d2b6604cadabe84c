// Package backup exports the whole store as one versioned JSON envelope and
// restores it with per-field version gating, so backups written by older
// versions stay loadable after the schema grows.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/logging"
	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/storage"
)

// Schema versions. Reminders, habits and journal entries appeared in v2;
// transactions, budgets and the finance log in v3.
const (
	VersionInitial   = 1
	VersionLifestyle = 2
	VersionFinance   = 3

	// CurrentVersion is written by Export.
	CurrentVersion = VersionFinance
)

// Engine exports and imports store snapshots.
type Engine struct {
	st    *storage.Store
	clock func() time.Time
}

// New creates a backup engine over st, using the store's clock.
func New(st *storage.Store) *Engine {
	return &Engine{st: st, clock: st.Now}
}

// Snapshot builds the envelope for the current store contents. Every
// collection is non-nil so an empty collection exports as [] rather than
// null.
func (e *Engine) Snapshot() *model.AppData {
	data := &model.AppData{
		Version:        CurrentVersion,
		ExportedAt:     model.Millis(e.clock()),
		Goals:          e.st.Goals.List(),
		Notes:          e.st.Notes.List(),
		Tasks:          e.st.Tasks.List(),
		Events:         e.st.Events.List(),
		HabitEntries:   e.st.HabitEntries.List(),
		Reminders:      e.st.Reminders.List(),
		Habits:         e.st.Habits.List(),
		JournalEntries: e.st.Journal.List(),
		Transactions:   e.st.Transactions.List(),
		Budgets:        e.st.Budgets.List(),
		Logs:           e.st.FinanceLogs.List(),
		Settings:       e.st.Settings.Get(),
	}
	if p, ok := e.st.Profile.Get(); ok {
		data.UserProfile = p
	}
	return data
}

// Export serializes the current store contents.
func (e *Engine) Export() (string, error) {
	start := time.Now()
	data := e.Snapshot()

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", errors.NewSystemErrorWithOp("export", "failed to serialize backup", err)
	}

	logging.LogOperation("export", start, logging.KeyVersion, data.Version)
	return string(out), nil
}

// ExportAllData is Export for callers that hold only the engine.
func (e *Engine) ExportAllData() (string, error) {
	return e.Export()
}

// ImportAllData is Import for callers that hold only the engine.
func (e *Engine) ImportAllData(text string) bool {
	return e.Import(text)
}

// ExportToFile writes an export to path atomically.
func (e *Engine) ExportToFile(path string) error {
	text, err := e.Export()
	if err != nil {
		return err
	}
	return storage.SafeWrite(path, []byte(text), 0o600)
}

// Import restores a backup and reports success. On failure nothing is
// changed; use ImportError for the reason.
func (e *Engine) Import(text string) bool {
	if err := e.ImportError(text); err != nil {
		logging.Warn("import failed", logging.KeyOperation, "import", logging.KeyError, err)
		return false
	}
	return true
}

// ImportError restores a backup, returning why it failed. A backup that
// parses is applied field by field according to its version; one that does
// not parse leaves the store untouched.
func (e *Engine) ImportError(text string) error {
	start := time.Now()

	data, err := Parse(text)
	if err != nil {
		return err
	}

	gated := Gate(data)
	if err := e.st.Restore(gated, model.Millis(e.clock())); err != nil {
		return err
	}

	logging.LogOperation("import", start, logging.KeyVersion, data.Version)
	return nil
}

// ImportFromFile reads and imports the backup at path.
func (e *Engine) ImportFromFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewUserErrorWithField("file", path, "Backup file not found", "Check the path and try again")
		}
		return errors.NewSystemErrorWithOp("read backup", "failed to read backup file", err)
	}
	return e.ImportError(string(raw))
}

// ClearAllData erases every stored key. It is irreversible.
func (e *Engine) ClearAllData() error {
	return e.st.ClearAll()
}

// Parse decodes a backup envelope.
func Parse(text string) (*model.AppData, error) {
	var data model.AppData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, &errors.UserError{
			Message:    fmt.Sprintf("%v: %v", errors.ErrInvalidBackup, err),
			Suggestion: errors.Suggestions[errors.ErrInvalidBackup],
			Cause:      errors.ErrInvalidBackup,
		}
	}
	if data.Version < VersionInitial {
		return nil, errors.NewUserErrorWithField("version", "",
			errors.ErrInvalidBackup.Error()+": missing version",
			errors.Suggestions[errors.ErrInvalidBackup])
	}
	return &data, nil
}

// Gate returns the subset of data an import applies. Collections set to nil
// are left untouched by the restore:
//
//   - goals, notes, tasks, events and habit entries are always replaced
//     (absent means empty); habit entries keep one per habit and day, the
//     last one in the file winning;
//   - reminders, habits and journal entries only from v2 on, when present;
//   - transactions, budgets and logs only from v3 on, when present;
//   - settings are always replaced, with defaults when absent;
//   - the profile only when present.
func Gate(data *model.AppData) *model.AppData {
	out := &model.AppData{
		Version:      data.Version,
		ExportedAt:   data.ExportedAt,
		Goals:        orEmpty(data.Goals),
		Notes:        orEmpty(data.Notes),
		Tasks:        orEmpty(data.Tasks),
		Events:       orEmpty(data.Events),
		HabitEntries: dedupeEntries(orEmpty(data.HabitEntries)),
		UserProfile:  data.UserProfile,
		Settings:     data.Settings,
	}
	if out.Settings == nil {
		out.Settings = model.DefaultSettings()
	}

	if data.Version >= VersionLifestyle {
		out.Reminders = compact(data.Reminders)
		out.Habits = compact(data.Habits)
		out.JournalEntries = compact(data.JournalEntries)
	}
	if data.Version >= VersionFinance {
		out.Transactions = compact(data.Transactions)
		out.Budgets = compact(data.Budgets)
		out.Logs = compact(data.Logs)
	}
	return out
}

// dedupeEntries normalizes entry dates to day starts and keeps the last
// entry for each (habit, day) slot at the position of the first.
func dedupeEntries(entries []*model.HabitEntry) []*model.HabitEntry {
	type slot struct {
		habit string
		day   int64
	}
	index := make(map[slot]int, len(entries))
	out := make([]*model.HabitEntry, 0, len(entries))
	for _, e := range entries {
		e.Date = model.DayStart(e.Date)
		k := slot{e.HabitID, e.Date}
		if i, ok := index[k]; ok {
			out[i] = e
			continue
		}
		index[k] = len(out)
		out = append(out, e)
	}
	return out
}

// orEmpty is compact with absent treated as empty.
func orEmpty[T any](items []*T) []*T {
	if items == nil {
		return []*T{}
	}
	return compact(items)
}

// compact drops null elements, keeping an absent (nil) slice absent.
func compact[T any](items []*T) []*T {
	if items == nil {
		return nil
	}
	out := make([]*T, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}
