package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	ErrNotFound:          "List the records first (e.g. 'lifeledger task list') and copy the id.",
	ErrInvalidAmount:     "Amounts must be positive numbers like '12.50'.",
	ErrInvalidCategory:   "Run the command with --help to see the accepted categories.",
	ErrInvalidType:       "Use one of: income, expense, borrowed, lent.",
	ErrInvalidPriority:   "Use one of: low, medium, high, urgent.",
	ErrInvalidDate:       "Try formats like 'tomorrow', 'next friday', or '2026-01-15'.",
	ErrInvalidBackup:     "Make sure the file is a Lifeledger JSON backup.",
	ErrTitleRequired:     "Pass a non-empty title.",
	ErrNotSettleable:     "Settle applies to borrowed or lent money only.",
	ErrDiskFull:          "Free up disk space and try again.",
	ErrDatabaseCorrupted: "Restore from a backup with 'lifeledger import <file>'.",
	ErrLockHeld:          "Another lifeledger process is using the database. Close it and retry.",
	ErrPermissionDenied:  "Check file permissions in your data directory.",
}

// GetSuggestion returns a suggestion for an error, if available.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}
	return ""
}
