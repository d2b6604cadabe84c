// Package parser turns natural-language date input from the command line
// into the epoch-millisecond values the store uses.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/lifeledger/internal/model"
)

// relativeDayRegex matches day offsets like "+3d", "-1w".
var relativeDayRegex = regexp.MustCompile(`^([+-])(\d+)([dw])$`)

// ParseDate parses a date expression relative to now. Accepted forms include
// "today", "tomorrow", "next friday", "in 3 days", "2026-01-15" and "+3d".
func ParseDate(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, NewDateError(input)
	}

	switch strings.ToLower(input) {
	case "now":
		return now, nil
	case "today":
		return model.StartOfDay(now), nil
	}

	if match := relativeDayRegex.FindStringSubmatch(input); match != nil {
		n, err := strconv.Atoi(match[2])
		if err != nil {
			return time.Time{}, NewDateError(input)
		}
		if match[3] == "w" {
			n *= 7
		}
		if match[1] == "-" {
			n = -n
		}
		return model.StartOfDay(now).AddDate(0, 0, n), nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return time.Time{}, NewDateError(input)
	}
	return result.Time, nil
}

// ParseDay parses a date expression and returns the start of that local day
// in epoch milliseconds.
func ParseDay(input string, now time.Time) (int64, error) {
	t, err := ParseDate(input, now)
	if err != nil {
		return 0, err
	}
	return model.Millis(model.StartOfDay(t)), nil
}

// ParseMillis parses a date expression keeping its time of day.
func ParseMillis(input string, now time.Time) (int64, error) {
	t, err := ParseDate(input, now)
	if err != nil {
		return 0, err
	}
	return model.Millis(t), nil
}

// OptionalDay is ParseDay for optional flags: an empty input yields nil.
func OptionalDay(input string, now time.Time) (*int64, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	day, err := ParseDay(input, now)
	if err != nil {
		return nil, err
	}
	return &day, nil
}
