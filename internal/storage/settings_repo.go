package storage

import (
	"strings"

	"github.com/manav03panchal/lifeledger/internal/logging"
	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/validate"
)

// loadValue decodes the singleton at key into v. It reports false when the
// key is absent or unreadable; unreadable values are logged.
func (s *Store) loadValue(key string, v any) bool {
	log := logging.With(logging.KeyKey, key)
	raw, err := s.kv.Get(key)
	if err != nil {
		if !IsErrKeyNotFound(err) {
			log.Warn("read failed", logging.KeyError, err)
		}
		return false
	}
	if err := decode(key, raw, v); err != nil {
		log.Warn("value unreadable, using default", logging.KeyError, err)
		return false
	}
	return true
}

func (s *Store) saveValue(key string, v any) error {
	data, err := encode(v)
	if err != nil {
		return wrapWrite(key, err)
	}
	return wrapWrite(key, s.kv.Set(key, data))
}

// SettingsRepo stores the application settings singleton.
type SettingsRepo struct {
	st *Store
}

// Get returns the stored settings, or the defaults when none are readable.
func (r *SettingsRepo) Get() *model.AppSettings {
	settings := model.DefaultSettings()
	if !r.st.loadValue(model.KeySettings, settings) {
		return model.DefaultSettings()
	}
	return settings
}

// Save overwrites the settings.
func (r *SettingsRepo) Save(settings *model.AppSettings) error {
	r.st.settingsMu.Lock()
	defer r.st.settingsMu.Unlock()
	return r.st.saveValue(model.KeySettings, settings)
}

// ProfileRepo stores the user profile singleton.
type ProfileRepo struct {
	st *Store
}

// Get returns the stored profile, if any.
func (r *ProfileRepo) Get() (*model.UserProfile, bool) {
	var p model.UserProfile
	if !r.st.loadValue(model.KeyUserProfile, &p) {
		return nil, false
	}
	return &p, true
}

// Save overwrites the profile, keeping the original creation time.
func (r *ProfileRepo) Save(p *model.UserProfile) error {
	p.Name = validate.CleanTitle(p.Name)
	if err := validate.Title("name", p.Name); err != nil {
		return err
	}

	r.st.profileMu.Lock()
	defer r.st.profileMu.Unlock()

	var created int64
	if old, ok := r.Get(); ok {
		created = old.CreatedAt
	}
	p.Stamp(created, r.st.nowMillis())
	return r.st.saveValue(model.KeyUserProfile, p)
}

// SearchRepo keeps the most recent search queries, newest first.
type SearchRepo struct {
	st *Store
}

// List returns recent queries, newest first.
func (r *SearchRepo) List() []string {
	var queries []string
	if !r.st.loadValue(model.KeyRecentSearches, &queries) || queries == nil {
		return []string{}
	}
	return queries
}

// Record moves query to the front, removing earlier duplicates and keeping
// at most the configured number of queries. Blank queries are ignored.
func (r *SearchRepo) Record(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	r.st.searchMu.Lock()
	defer r.st.searchMu.Unlock()

	queries := []string{query}
	for _, q := range r.List() {
		if !strings.EqualFold(q, query) {
			queries = append(queries, q)
		}
	}
	if len(queries) > r.st.recentSearchCap {
		queries = queries[:r.st.recentSearchCap]
	}
	return r.st.saveValue(model.KeyRecentSearches, queries)
}

// Clear forgets every recent query.
func (r *SearchRepo) Clear() error {
	r.st.searchMu.Lock()
	defer r.st.searchMu.Unlock()
	return wrapWrite(model.KeyRecentSearches, r.st.kv.Delete(model.KeyRecentSearches))
}

// PromptRepo stores user-defined journal prompts.
type PromptRepo struct {
	st *Store
}

// List returns the saved prompts, or the default prompts when none are saved.
func (r *PromptRepo) List() []string {
	var prompts []string
	if !r.st.loadValue(model.KeyJournalPrompts, &prompts) || len(prompts) == 0 {
		return model.DefaultJournalPrompts()
	}
	return prompts
}

// Save overwrites the prompt list. Blank prompts are dropped.
func (r *PromptRepo) Save(prompts []string) error {
	kept := make([]string, 0, len(prompts))
	for _, p := range prompts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}

	r.st.promptsMu.Lock()
	defer r.st.promptsMu.Unlock()
	return r.st.saveValue(model.KeyJournalPrompts, kept)
}
