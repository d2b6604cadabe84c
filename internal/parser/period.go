package parser

import (
	"strings"
	"time"

	"github.com/manav03panchal/lifeledger/internal/model"
)

// Range is a half-open [Start, End) interval.
type Range struct {
	Start time.Time
	End   time.Time
}

// Millis returns the range bounds in epoch milliseconds.
func (r Range) Millis() (from, to int64) {
	return model.Millis(r.Start), model.Millis(r.End)
}

// Contains reports whether ms falls inside the range.
func (r Range) Contains(ms int64) bool {
	from, to := r.Millis()
	return ms >= from && ms < to
}

// ParsePeriod resolves names like "today", "this week", "last month" or
// "this year" relative to now. Weeks start on Monday.
func ParsePeriod(period string, now time.Time) (Range, error) {
	p := strings.ToLower(strings.Join(strings.Fields(period), " "))
	day := model.StartOfDay(now)

	last := strings.HasPrefix(p, "last ") || strings.HasPrefix(p, "previous ")
	unit := p
	if i := strings.LastIndex(p, " "); i >= 0 {
		unit = p[i+1:]
	}

	var start, end time.Time
	switch {
	case p == "today":
		start, end = day, day.AddDate(0, 0, 1)
	case p == "yesterday":
		start, end = day.AddDate(0, 0, -1), day
	case p == "tomorrow":
		start, end = day.AddDate(0, 0, 1), day.AddDate(0, 0, 2)
	case unit == "week":
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start = day.AddDate(0, 0, 1-weekday)
		if last {
			start = start.AddDate(0, 0, -7)
		}
		end = start.AddDate(0, 0, 7)
	case unit == "month":
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		if last {
			start = start.AddDate(0, -1, 0)
		}
		end = start.AddDate(0, 1, 0)
	case unit == "year":
		start = time.Date(day.Year(), 1, 1, 0, 0, 0, 0, day.Location())
		if last {
			start = start.AddDate(-1, 0, 0)
		}
		end = start.AddDate(1, 0, 0)
	default:
		return Range{}, NewPeriodError(period)
	}

	if !last && p != "today" && p != "yesterday" && p != "tomorrow" &&
		!strings.HasPrefix(p, "this ") && !strings.HasPrefix(p, "current ") {
		return Range{}, NewPeriodError(period)
	}
	return Range{Start: start, End: end}, nil
}
