package errors

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// UserError Tests
// =============================================================================

func TestNewUserError(t *testing.T) {
	err := NewUserError("invalid input", "try again")
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "try again", err.Suggestion)
	assert.Nil(t, err.Unwrap())
}

func TestUserErrorError(t *testing.T) {
	t.Run("without_field", func(t *testing.T) {
		assert.Equal(t, "invalid input", NewUserError("invalid input", "").Error())
	})

	t.Run("with_field", func(t *testing.T) {
		err := NewUserErrorWithField("color", "red", "Invalid color format", "")
		assert.Equal(t, "Invalid color format: 'red'", err.Error())
	})

	t.Run("field_without_value", func(t *testing.T) {
		err := NewUserErrorWithField("title", "", "title is required", "")
		assert.Equal(t, "title is required", err.Error())
	})
}

func TestInvalid(t *testing.T) {
	err := Invalid(ErrInvalidAmount, "amount", "-3", "")
	assert.Equal(t, "invalid amount: '-3'", err.Error())
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, "amount", err.Field)
	assert.Equal(t, Suggestions[ErrInvalidAmount], GetSuggestion(err))
}

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(NewUserError("test", "")))
	assert.True(t, IsUserError(fmt.Errorf("context: %w", NewUserError("test", ""))))
	assert.False(t, IsUserError(errors.New("plain error")))
	assert.False(t, IsUserError(nil))

	ue, ok := AsUserError(fmt.Errorf("wrapped: %w", NewUserError("test", "suggestion")))
	require.True(t, ok)
	assert.Equal(t, "suggestion", ue.Suggestion)
}

// =============================================================================
// SystemError Tests
// =============================================================================

func TestSystemErrorError(t *testing.T) {
	t.Run("without_op", func(t *testing.T) {
		assert.Equal(t, "system failure", NewSystemError("system failure", nil).Error())
	})

	t.Run("with_op", func(t *testing.T) {
		err := NewSystemErrorWithOp("export", "failed to serialize backup", nil)
		assert.Equal(t, "failed to serialize backup during export", err.Error())
	})
}

func TestSystemErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewSystemError("wrapper", cause)
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))

	se, ok := AsSystemError(fmt.Errorf("context: %w", err))
	require.True(t, ok)
	assert.Equal(t, "wrapper", se.Message)
	assert.True(t, IsSystemError(err))
	assert.False(t, IsSystemError(errors.New("plain")))
}

// =============================================================================
// Helpers
// =============================================================================

func TestNotFound(t *testing.T) {
	err := NotFound("task", "abc")
	assert.Equal(t, `task "abc": not found`, err.Error())
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestWrap(t *testing.T) {
	original := errors.New("original error")
	wrapped := Wrap(original, "context")
	assert.Equal(t, "context: original error", wrapped.Error())
	assert.True(t, Is(wrapped, original))
	assert.Nil(t, Wrap(nil, "context"))

	wrapped = Wrapf(original, "operation %s failed", "save")
	assert.Equal(t, "operation save failed: original error", wrapped.Error())
	assert.Nil(t, Wrapf(nil, "format %s", "arg"))
}

// =============================================================================
// Classification Tests
// =============================================================================

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "user", CategoryUser.String())
	assert.Equal(t, "system", CategorySystem.String())
	assert.Equal(t, "unknown", CategoryUnknown.String())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, CategoryUnknown},
		{"user_error", NewUserError("invalid input", ""), CategoryUser},
		{"not_found", NotFound("goal", "x"), CategoryUser},
		{"system_error", NewSystemError("disk failure", nil), CategorySystem},
		{"disk_full", ErrDiskFull, CategorySystem},
		{"lock_held", fmt.Errorf("open: %w", ErrLockHeld), CategorySystem},
		{"corrupted", ErrDatabaseCorrupted, CategorySystem},
		{"enospc", &os.PathError{Op: "write", Path: "/x", Err: syscall.ENOSPC}, CategorySystem},
		{"eacces", &os.PathError{Op: "open", Path: "/x", Err: syscall.EACCES}, CategorySystem},
		{"enoent", &os.PathError{Op: "open", Path: "/x", Err: syscall.ENOENT}, CategoryUnknown},
		{"plain", errors.New("some random error"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestFormatByCategory(t *testing.T) {
	t.Run("nil_error", func(t *testing.T) {
		assert.Empty(t, FormatByCategory(nil))
	})

	t.Run("user_error_with_suggestion", func(t *testing.T) {
		err := NewUserError("Backup file not found", "Check the path and try again")
		assert.Equal(t, "Backup file not found\n\nTry: Check the path and try again", FormatByCategory(err))
	})

	t.Run("user_error_without_suggestion", func(t *testing.T) {
		assert.Equal(t, "bad", FormatByCategory(NewUserError("bad", "")))
	})

	t.Run("system_error", func(t *testing.T) {
		err := NewSystemError("failed to open database", ErrLockHeld)
		formatted := FormatByCategory(err)
		assert.Contains(t, formatted, "System error: failed to open database")
		assert.Contains(t, formatted, Suggestions[ErrLockHeld])
	})

	t.Run("system_error_without_suggestion", func(t *testing.T) {
		assert.Equal(t, "System error: boom", FormatByCategory(NewSystemError("boom", nil)))
	})

	t.Run("unknown_error", func(t *testing.T) {
		assert.Equal(t, "plain error", FormatByCategory(errors.New("plain error")))
	})
}

func TestGetSuggestion(t *testing.T) {
	assert.Empty(t, GetSuggestion(nil))
	assert.Empty(t, GetSuggestion(errors.New("plain")))
	assert.Equal(t, Suggestions[ErrNotFound], GetSuggestion(NotFound("note", "n1")))
	assert.Equal(t, "custom", GetSuggestion(&UserError{Message: "x", Suggestion: "custom", Cause: ErrInvalidDate}))
	assert.Equal(t, Suggestions[ErrInvalidDate], GetSuggestion(&UserError{Message: "x", Cause: ErrInvalidDate}))
}

func TestEverySentinelHasSuggestion(t *testing.T) {
	for _, sentinel := range []error{
		ErrNotFound, ErrInvalidAmount, ErrInvalidCategory, ErrInvalidType,
		ErrInvalidPriority, ErrInvalidDate, ErrInvalidBackup, ErrTitleRequired,
		ErrNotSettleable, ErrDiskFull, ErrDatabaseCorrupted, ErrLockHeld, ErrPermissionDenied,
	} {
		assert.NotEmpty(t, Suggestions[sentinel], sentinel.Error())
	}
}
