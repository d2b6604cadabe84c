package storage

import (
	"strings"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/validate"
)

// NoteRepo provides note persistence. New notes are prepended.
type NoteRepo struct {
	*collection[*model.Note]
}

// Add validates and stores a new note.
func (r *NoteRepo) Add(n *model.Note) error {
	cleanNote(n)
	if err := validate.Note(n); err != nil {
		return err
	}
	return r.collection.Add(n)
}

// Update validates and replaces an existing note.
func (r *NoteRepo) Update(n *model.Note) error {
	cleanNote(n)
	if err := validate.Note(n); err != nil {
		return err
	}
	return r.collection.Update(n)
}

// TogglePinned flips a note's pinned flag.
func (r *NoteRepo) TogglePinned(id string) error {
	return r.modify(id, func(n *model.Note) error {
		n.IsPinned = !n.IsPinned
		return nil
	})
}

// Search returns notes whose title, content or tags contain query,
// case-insensitively, in stored order.
func (r *NoteRepo) Search(query string) []*model.Note {
	q := strings.ToLower(strings.TrimSpace(query))
	var hits []*model.Note
	for _, n := range r.list() {
		if q == "" || noteMatches(n, q) {
			hits = append(hits, n)
		}
	}
	return hits
}

func noteMatches(n *model.Note, q string) bool {
	if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(tag, q) {
			return true
		}
	}
	return false
}

func cleanNote(n *model.Note) {
	n.Title = validate.CleanTitle(n.Title)
	n.Content = validate.CleanText(n.Content)
	n.Tags = validate.CleanTags(n.Tags)
}
