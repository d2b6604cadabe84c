package runtime

import (
	"fmt"
	"os"
	"strings"

	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/parser"
	"github.com/manav03panchal/lifeledger/internal/storage"
)

// lockPatterns are backend messages for a database held by another process.
var lockPatterns = []string{
	"cannot acquire directory lock",
	"database is locked",
	"resource temporarily unavailable",
}

// openError classifies a failure to open the database at path.
func openError(err error, path string) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range lockPatterns {
		if strings.Contains(msg, pattern) {
			return errors.NewSystemErrorWithOp("open "+path, errors.ErrLockHeld.Error(), errors.ErrLockHeld)
		}
	}

	switch {
	case errors.Is(err, os.ErrPermission):
		return errors.NewSystemErrorWithOp("open "+path, errors.ErrPermissionDenied.Error(), errors.ErrPermissionDenied)
	case storage.IsDatabaseCorrupted(err):
		return errors.NewSystemErrorWithOp("open "+path,
			fmt.Sprintf("%v: %v", errors.ErrDatabaseCorrupted, err), errors.ErrDatabaseCorrupted)
	default:
		return errors.NewSystemErrorWithOp("open "+path, "failed to open database", err)
	}
}

// Normalize converts input errors from other packages into UserErrors so
// they classify and carry suggestions uniformly.
func Normalize(err error) error {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return pe.ToUserError()
	}
	return err
}

// Report is an error prepared for display.
type Report struct {
	Message    string
	Category   errors.Category
	Suggestion string
}

// Describe prepares err for display.
func Describe(err error) Report {
	err = Normalize(err)
	return Report{
		Message:    err.Error(),
		Category:   errors.Classify(err),
		Suggestion: errors.GetSuggestion(err),
	}
}

// FormatError formats an error with its category prefix and suggestion.
func FormatError(err error) string {
	return errors.FormatByCategory(Normalize(err))
}
