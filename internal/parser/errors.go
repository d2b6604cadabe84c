package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/lifeledger/internal/errors"
)

// ParseError is a date or period input that could not be understood.
type ParseError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidDate.
func (e *ParseError) Unwrap() error {
	return errors.ErrInvalidDate
}

// FormatWithExamples returns the error message with example inputs.
func (e *ParseError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// DateExamples lists accepted date inputs.
var DateExamples = []string{
	"today",
	"tomorrow",
	"next friday",
	"in 3 days",
	"+2w",
	"2026-01-15",
}

// PeriodExamples lists accepted period names.
var PeriodExamples = []string{
	"today",
	"yesterday",
	"this week",
	"last week",
	"this month",
	"last year",
}

// NewDateError creates a date parse error with standard examples.
func NewDateError(input string) *ParseError {
	return &ParseError{
		Input:      input,
		Field:      "date",
		Message:    "could not parse date",
		Examples:   DateExamples,
		Suggestion: "Dates can be relative (+3d, next monday) or absolute (2026-01-15).",
	}
}

// NewPeriodError creates a period parse error with standard examples.
func NewPeriodError(input string) *ParseError {
	return &ParseError{
		Input:      input,
		Field:      "period",
		Message:    "could not parse period",
		Examples:   PeriodExamples,
		Suggestion: "Use period names like 'today', 'this week', or 'last month'.",
	}
}

// ToUserError converts a ParseError to a UserError for consistent handling.
func (e *ParseError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 && suggestion == "" {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}

	ue := errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion)
	ue.Cause = errors.ErrInvalidDate
	return ue
}
