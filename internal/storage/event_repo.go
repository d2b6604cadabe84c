package storage

import (
	"sort"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/validate"
)

// EventRepo provides calendar event persistence. New events are appended.
type EventRepo struct {
	*collection[*model.CalendarEvent]
}

// Add validates and stores a new event. The date is truncated to local midnight.
func (r *EventRepo) Add(e *model.CalendarEvent) error {
	e.Title = validate.CleanTitle(e.Title)
	if err := validate.Event(e); err != nil {
		return err
	}
	e.Date = model.DayStart(e.Date)
	return r.collection.Add(e)
}

// Update validates and replaces an existing event.
func (r *EventRepo) Update(e *model.CalendarEvent) error {
	e.Title = validate.CleanTitle(e.Title)
	if err := validate.Event(e); err != nil {
		return err
	}
	e.Date = model.DayStart(e.Date)
	return r.collection.Update(e)
}

// ListOn returns events on the local day of dayMillis.
func (r *EventRepo) ListOn(dayMillis int64) []*model.CalendarEvent {
	var on []*model.CalendarEvent
	for _, e := range r.list() {
		if model.SameDay(e.Date, dayMillis) {
			on = append(on, e)
		}
	}
	return on
}

// ListBetween returns events with from <= date < to, ordered by date.
func (r *EventRepo) ListBetween(from, to int64) []*model.CalendarEvent {
	var in []*model.CalendarEvent
	for _, e := range r.list() {
		if e.Date >= from && e.Date < to {
			in = append(in, e)
		}
	}
	sort.SliceStable(in, func(i, j int) bool { return in[i].Date < in[j].Date })
	return in
}
