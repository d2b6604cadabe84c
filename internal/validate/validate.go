// Package validate provides input validation helpers for Lifeledger records.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/model"
)

const (
	// MaxTitleLength is the maximum length for titles and names.
	MaxTitleLength = 200
	// MaxTextLength is the maximum length for descriptions, notes and journal content.
	MaxTextLength = 20000
	// MaxTags is the maximum number of tags on a note or journal entry.
	MaxTags = 32
)

// Title validates a required title or name.
func Title(field, title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.Invalid(errors.ErrTitleRequired, field, "", "Provide a "+field)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return errors.NewUserErrorWithField(field, title,
			field+" too long",
			fmt.Sprintf("Keep %s to %d characters or fewer", field, MaxTitleLength))
	}
	return nil
}

// Text validates free-form text such as descriptions and note content.
func Text(field, text string) error {
	if utf8.RuneCountInString(text) > MaxTextLength {
		return errors.NewUserError(
			field+" too long",
			fmt.Sprintf("Keep %s to %d characters or fewer", field, MaxTextLength))
	}
	return nil
}

// Tags validates a tag list.
func Tags(tags []string) error {
	if len(tags) > MaxTags {
		return errors.NewUserError("Too many tags",
			fmt.Sprintf("Use at most %d tags", MaxTags))
	}
	return nil
}

// HexColor validates a hex color code. Empty means no color.
func HexColor(color string) error {
	if color == "" {
		return nil
	}
	hex, ok := strings.CutPrefix(color, "#")
	if !ok || len(hex) != 6 {
		return errors.NewUserErrorWithField("color", color,
			"Invalid color format",
			"Use 6-digit hex format like '#FF5733'")
	}
	for _, c := range hex {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return errors.NewUserErrorWithField("color", color,
				"Invalid hex character in color",
				"Use only hex digits (0-9, A-F)")
		}
	}
	return nil
}

// Amount validates a money amount. Amounts must be strictly positive.
func Amount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.Invalid(errors.ErrInvalidAmount, field, amount.String(), "")
	}
	return nil
}

// ParseAmount parses and validates a user-entered amount.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, errors.Invalid(errors.ErrInvalidAmount, field, raw, "")
	}
	return amount, Amount(field, amount)
}

// Rating validates an optional 1-5 milestone rating.
func Rating(rating *int) error {
	if rating == nil {
		return nil
	}
	return InRange("rating", *rating, 1, 5)
}

// InRange validates that an integer is within [lo, hi].
func InRange(field string, value, lo, hi int) error {
	if value < lo || value > hi {
		return errors.NewUserErrorWithField(field, fmt.Sprint(value),
			"Value out of range",
			fmt.Sprintf("Must be between %d and %d", lo, hi))
	}
	return nil
}

// Priority validates a task or reminder priority.
func Priority(p model.Priority) error {
	if !p.IsValid() {
		return errors.Invalid(errors.ErrInvalidPriority, "priority", string(p), "")
	}
	return nil
}

// Repeat validates a repeat type.
func Repeat(r model.RepeatType) error {
	if !r.IsValid() {
		return errors.NewUserErrorWithField("repeat", string(r),
			"Invalid repeat type",
			"Use one of: none, daily, weekly, monthly, yearly")
	}
	return nil
}

// GoalCategory validates a goal category.
func GoalCategory(c model.GoalCategory) error {
	if !c.IsValid() {
		return errors.Invalid(errors.ErrInvalidCategory, "category", string(c), "")
	}
	return nil
}

// TransactionType validates a transaction type.
func TransactionType(t model.TransactionType) error {
	if !t.IsValid() {
		return errors.Invalid(errors.ErrInvalidType, "type", string(t), "")
	}
	return nil
}

// FinanceCategory validates a finance category.
func FinanceCategory(c model.FinanceCategory) error {
	if !c.IsValid() {
		return errors.Invalid(errors.ErrInvalidCategory, "category", string(c), "")
	}
	return nil
}

// Mood validates a journal mood.
func Mood(m model.Mood) error {
	if !m.IsValid() {
		return errors.NewUserErrorWithField("mood", string(m),
			"Invalid mood",
			"Use one of: great, good, okay, bad, terrible")
	}
	return nil
}

// Goal validates a goal before it is stored.
func Goal(g *model.Goal) error {
	if err := Title("title", g.Title); err != nil {
		return err
	}
	if err := Text("description", g.Description); err != nil {
		return err
	}
	if err := GoalCategory(g.Category); err != nil {
		return err
	}
	if err := HexColor(g.Color); err != nil {
		return err
	}
	for _, m := range g.Milestones {
		if err := Title("milestone title", m.Title); err != nil {
			return err
		}
		if err := Rating(m.Rating); err != nil {
			return err
		}
	}
	return nil
}

// Task validates a task before it is stored.
func Task(t *model.Task) error {
	if err := Title("title", t.Title); err != nil {
		return err
	}
	if err := Text("description", t.Description); err != nil {
		return err
	}
	if err := Priority(t.Priority); err != nil {
		return err
	}
	return Repeat(t.RepeatType)
}

// Note validates a note before it is stored.
func Note(n *model.Note) error {
	if strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Content) == "" {
		return errors.Invalid(errors.ErrTitleRequired, "title", "", "Provide a title or some content")
	}
	if err := Text("content", n.Content); err != nil {
		return err
	}
	if err := HexColor(n.Color); err != nil {
		return err
	}
	return Tags(n.Tags)
}

// Event validates a calendar event before it is stored.
func Event(e *model.CalendarEvent) error {
	if err := Title("title", e.Title); err != nil {
		return err
	}
	if err := Text("description", e.Description); err != nil {
		return err
	}
	return HexColor(e.Color)
}

// Reminder validates a reminder before it is stored.
func Reminder(r *model.Reminder) error {
	if err := Title("title", r.Title); err != nil {
		return err
	}
	if err := Priority(r.Priority); err != nil {
		return err
	}
	return Repeat(r.RepeatType)
}

// Habit validates a habit definition before it is stored.
func Habit(h *model.Habit) error {
	if err := Title("name", h.Name); err != nil {
		return err
	}
	if err := HexColor(h.Color); err != nil {
		return err
	}
	return InRange("target days per week", h.TargetDaysPerWeek, 0, 7)
}

// Journal validates a journal entry before it is stored.
func Journal(j *model.JournalEntry) error {
	if err := Mood(j.Mood); err != nil {
		return err
	}
	if err := Text("content", j.Content); err != nil {
		return err
	}
	return Tags(j.Tags)
}

// Transaction validates a transaction before it is stored.
func Transaction(t *model.Transaction) error {
	if err := Amount("amount", t.Amount); err != nil {
		return err
	}
	if err := TransactionType(t.Type); err != nil {
		return err
	}
	if err := FinanceCategory(t.Category); err != nil {
		return err
	}
	return Text("note", t.Note)
}

// Budget validates a budget before it is stored.
func Budget(b *model.Budget) error {
	if err := Amount("limit", b.LimitAmount); err != nil {
		return err
	}
	if !b.Period.IsValid() {
		return errors.NewUserErrorWithField("period", string(b.Period),
			"Invalid budget period",
			"Use one of: weekly, monthly, yearly")
	}
	if b.Category != nil {
		return FinanceCategory(*b.Category)
	}
	return nil
}
