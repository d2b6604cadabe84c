package stats

import (
	"sort"
	"time"

	"github.com/manav03panchal/lifeledger/internal/model"
)

// CompletedDays reduces completed entries to their distinct local day
// starts, in epoch milliseconds, sorted ascending.
func CompletedDays(entries []*model.HabitEntry) []int64 {
	seen := make(map[int64]bool)
	var days []int64
	for _, e := range entries {
		if !e.IsCompleted {
			continue
		}
		d := model.DayStart(e.Date)
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// nextDay returns the start of the calendar day after the day starting at d.
// Calendar arithmetic keeps DST days (23h or 25h long) adjacent.
func nextDay(d int64) int64 {
	return model.Millis(model.FromMillis(d).AddDate(0, 0, 1))
}

func prevDay(d int64) int64 {
	return model.Millis(model.FromMillis(d).AddDate(0, 0, -1))
}

// CurrentStreak counts consecutive completed days ending today, or ending
// yesterday when today has no completion yet.
func CurrentStreak(days []int64, today time.Time) int {
	set := make(map[int64]bool, len(days))
	for _, d := range days {
		set[model.DayStart(d)] = true
	}

	day := model.Millis(model.StartOfDay(today))
	if !set[day] {
		day = prevDay(day)
		if !set[day] {
			return 0
		}
	}

	streak := 0
	for set[day] {
		streak++
		day = prevDay(day)
	}
	return streak
}

// LongestStreak returns the longest run of consecutive calendar days in days.
func LongestStreak(days []int64) int {
	if len(days) == 0 {
		return 0
	}

	sorted := make([]int64, len(days))
	for i, d := range days {
		sorted[i] = model.DayStart(d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		switch {
		case sorted[i] == sorted[i-1]:
			continue
		case sorted[i] == nextDay(sorted[i-1]):
			run++
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
