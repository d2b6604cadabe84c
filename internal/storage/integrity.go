package storage

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/logging"
	"github.com/manav03panchal/lifeledger/internal/model"
)

// IntegrityReport is the result of a store health check.
type IntegrityReport struct {
	Healthy     bool              `json:"healthy"`
	CheckedAt   time.Time         `json:"checked_at"`
	KeyCount    int               `json:"key_count"`
	Records     map[string]int    `json:"records"`
	Unreadable  map[string]string `json:"unreadable,omitempty"`
	UnknownKeys []string          `json:"unknown_keys,omitempty"`
}

// rawKeys holds values that are not JSON documents.
var rawKeys = map[string]bool{
	model.KeyOnboardingComplete: true,
	model.KeyFirstLaunch:        true,
	model.KeyLastSync:           true,
}

// CheckIntegrity decodes every known key and reports the ones that would be
// read as empty because their stored value is corrupt.
func (s *Store) CheckIntegrity() *IntegrityReport {
	report := &IntegrityReport{
		Healthy:    true,
		CheckedAt:  s.clock(),
		Records:    make(map[string]int),
		Unreadable: make(map[string]string),
	}

	keys, err := s.kv.Keys()
	if err != nil {
		report.Healthy = false
		report.Unreadable["*"] = err.Error()
		return report
	}
	report.KeyCount = len(keys)

	for _, key := range keys {
		if rawKeys[key] {
			continue
		}
		if !knownKey(key) {
			report.UnknownKeys = append(report.UnknownKeys, key)
			continue
		}

		raw, err := s.kv.Get(key)
		if err != nil {
			report.Unreadable[key] = err.Error()
			continue
		}
		var doc any
		if err := decode(key, raw, &doc); err != nil {
			report.Unreadable[key] = err.Error()
			continue
		}
		if list, ok := doc.([]any); ok {
			report.Records[key] = len(list)
		} else {
			report.Records[key] = 1
		}
	}
	sort.Strings(report.UnknownKeys)

	if len(report.Unreadable) > 0 {
		report.Healthy = false
		logging.Warn("integrity check found unreadable keys", logging.KeyCount, len(report.Unreadable))
	}
	return report
}

// Salvage returns the raw value of every key that still parses as JSON,
// keyed by storage key, for manual recovery.
func (s *Store) Salvage() (map[string]json.RawMessage, error) {
	keys, err := s.kv.Keys()
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("salvage", "failed to list keys", err)
	}

	out := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		raw, err := s.kv.Get(key)
		if err != nil {
			logging.Warn("skipping unreadable key", logging.KeyKey, key, logging.KeyError, err)
			continue
		}
		if json.Valid(raw) {
			out[key] = raw
		}
	}
	return out, nil
}

func knownKey(key string) bool {
	switch key {
	case model.KeyGoals, model.KeyNotes, model.KeyTasks, model.KeyEvents,
		model.KeyHabitEntries, model.KeyHabits, model.KeySettings, model.KeyUserProfile,
		model.KeyReminders, model.KeyJournalEntries, model.KeyJournalPrompts,
		model.KeyRecentSearches, model.KeyTransactions, model.KeyBudgets, model.KeyFinanceLogs:
		return true
	}
	return false
}

// IsDatabaseCorrupted reports whether err looks like on-disk corruption.
func IsDatabaseCorrupted(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, errors.ErrDatabaseCorrupted) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"checksum mismatch", "corrupt", "unexpected eof", "bad magic", "truncated", "malformed"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
