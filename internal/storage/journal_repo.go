package storage

import (
	"sort"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/validate"
)

// JournalRepo provides journal entry persistence. New entries are prepended.
type JournalRepo struct {
	*collection[*model.JournalEntry]
}

// Add validates and stores a new journal entry.
func (r *JournalRepo) Add(j *model.JournalEntry) error {
	cleanJournal(j)
	if err := validate.Journal(j); err != nil {
		return err
	}
	return r.collection.Add(j)
}

// Update validates and replaces an existing journal entry.
func (r *JournalRepo) Update(j *model.JournalEntry) error {
	cleanJournal(j)
	if err := validate.Journal(j); err != nil {
		return err
	}
	return r.collection.Update(j)
}

// ListOn returns entries dated on the local day of dayMillis.
func (r *JournalRepo) ListOn(dayMillis int64) []*model.JournalEntry {
	var on []*model.JournalEntry
	for _, j := range r.list() {
		if model.SameDay(j.Date, dayMillis) {
			on = append(on, j)
		}
	}
	return on
}

// MoodCounts tallies entries by mood.
func (r *JournalRepo) MoodCounts() map[model.Mood]int {
	counts := make(map[model.Mood]int)
	for _, j := range r.list() {
		counts[j.Mood]++
	}
	return counts
}

// Tags returns every distinct tag in use, sorted.
func (r *JournalRepo) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, j := range r.list() {
		for _, t := range j.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

func cleanJournal(j *model.JournalEntry) {
	j.Title = validate.CleanTitle(j.Title)
	j.Content = validate.CleanText(j.Content)
	j.Tags = validate.CleanTags(j.Tags)
	if j.Mood == "" {
		j.Mood = model.MoodOkay
	}
}
