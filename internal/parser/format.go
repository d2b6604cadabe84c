package parser

import (
	"fmt"
	"time"

	"github.com/manav03panchal/lifeledger/internal/model"
)

// FormatDay renders an epoch-millisecond date relative to now:
// "Today", "Tomorrow", "Yesterday", a weekday within the coming week, or
// "Mon, Jan 2" (with the year when it differs).
func FormatDay(ms int64, now time.Time) string {
	t := model.FromMillis(ms)
	diff := daysBetween(now, t)

	switch {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Tomorrow"
	case diff == -1:
		return "Yesterday"
	case diff > 1 && diff < 7:
		return t.Format("Monday")
	case t.Year() != now.Year():
		return t.Format("Mon, Jan 2 2006")
	default:
		return t.Format("Mon, Jan 2")
	}
}

// FormatDue describes how far away a due date is.
func FormatDue(ms int64, now time.Time) string {
	diff := daysBetween(now, model.FromMillis(ms))
	switch {
	case diff < -1:
		return fmt.Sprintf("overdue by %d days", -diff)
	case diff == -1:
		return "overdue by 1 day"
	case diff == 0:
		return "due today"
	case diff == 1:
		return "due tomorrow"
	case diff < 14:
		return fmt.Sprintf("due in %d days", diff)
	default:
		return fmt.Sprintf("due in %d weeks", diff/7)
	}
}

// daysBetween counts calendar days from a to b.
func daysBetween(a, b time.Time) int {
	from := model.StartOfDay(a)
	to := model.StartOfDay(b)
	ay, am, ad := from.Date()
	by, bm, bd := to.Date()
	fromUTC := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	toUTC := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(toUTC.Sub(fromUTC).Hours() / 24)
}
