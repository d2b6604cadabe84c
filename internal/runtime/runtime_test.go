package runtime

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/lifeledger/internal/config"
	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/output"
	"github.com/manav03panchal/lifeledger/internal/parser"
	"github.com/manav03panchal/lifeledger/internal/storage"
)

var fixedNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)

// isolate points config and data at temp dirs so tests never touch $HOME.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LIFELEDGER_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv(EnvDatabase, "")
	return dir
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, config.DefaultConfigDir(), opts.ConfigDir)
	assert.False(t, opts.InMemory)
	assert.Equal(t, output.FormatCLI, opts.Format)
	assert.Equal(t, output.ColorAuto, opts.ColorMode)
}

func TestNewInMemory(t *testing.T) {
	dir := isolate(t)
	var buf bytes.Buffer
	ctx, err := New(Options{
		ConfigDir: dir,
		InMemory:  true,
		Format:    output.FormatJSON,
		ColorMode: output.ColorNever,
		Writer:    &buf,
		Clock:     func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	defer ctx.Close()

	assert.NotNil(t, ctx.Store)
	assert.NotNil(t, ctx.Stats)
	assert.NotNil(t, ctx.Backup)
	assert.True(t, ctx.IsJSON())
	assert.Equal(t, fixedNow, ctx.Now())
	assert.Equal(t, config.BackendBadger, ctx.Config.Backend)

	_, isBadger := ctx.KV.(*storage.DB)
	assert.True(t, isBadger)

	require.NoError(t, ctx.JSONFormatter().PrintStatus("ok", ""))
	assert.Contains(t, buf.String(), `"ok"`)
}

func TestNewSQLiteBackend(t *testing.T) {
	dir := isolate(t)
	t.Setenv("LIFELEDGER_BACKEND", "sqlite")

	ctx, err := New(Options{ConfigDir: dir})
	require.NoError(t, err)

	_, isSQLite := ctx.KV.(*storage.SQLiteDB)
	require.True(t, isSQLite)
	require.NoError(t, ctx.Store.Goals.Add(&model.Goal{Title: "Persist", Category: model.GoalCategoryOther}))
	require.NoError(t, ctx.Close())

	_, err = os.Stat(filepath.Join(dir, "data", "lifeledger.db"))
	require.NoError(t, err)

	ctx, err = New(Options{ConfigDir: dir})
	require.NoError(t, err)
	defer ctx.Close()
	assert.Len(t, ctx.Store.Goals.List(), 1)
}

func TestNewEnvDatabaseMemory(t *testing.T) {
	dir := isolate(t)
	t.Setenv(EnvDatabase, ":memory:")

	ctx, err := New(Options{ConfigDir: dir})
	require.NoError(t, err)
	defer ctx.Close()

	_, err = os.Stat(filepath.Join(dir, "data"))
	assert.True(t, os.IsNotExist(err), "in-memory store creates no data dir")
}

func TestNewEnvDatabasePath(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "custom-db")
	t.Setenv(EnvDatabase, dbPath)

	ctx, err := New(Options{ConfigDir: dir})
	require.NoError(t, err)
	defer ctx.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestFirstLaunchSeedsCurrency(t *testing.T) {
	dir := isolate(t)
	t.Setenv("LIFELEDGER_CURRENCY", "EUR")
	t.Setenv("LIFELEDGER_BACKEND", "sqlite")

	ctx, err := New(Options{ConfigDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "EUR", ctx.Store.Settings.Get().Currency)
	assert.Equal(t, "EUR", ctx.Formatter.Currency)
	assert.False(t, ctx.Store.IsFirstLaunch())

	settings := ctx.Store.Settings.Get()
	settings.Currency = "GBP"
	require.NoError(t, ctx.Store.Settings.Save(settings))
	require.NoError(t, ctx.Close())

	ctx, err = New(Options{ConfigDir: dir})
	require.NoError(t, err)
	defer ctx.Close()
	assert.Equal(t, "GBP", ctx.Formatter.Currency, "stored settings win after first launch")
}

func TestNewBadConfig(t *testing.T) {
	dir := isolate(t)
	t.Setenv("LIFELEDGER_BACKEND", "postgres")

	_, err := New(Options{ConfigDir: dir})
	require.Error(t, err)
	assert.True(t, errors.IsUserError(err))
}

func TestNewLockedDatabase(t *testing.T) {
	dir := isolate(t)

	first, err := New(Options{ConfigDir: dir})
	require.NoError(t, err)
	defer first.Close()

	_, err = New(Options{ConfigDir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrLockHeld)
	assert.Equal(t, errors.CategorySystem, errors.Classify(err))
}

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	ctx := &Context{Formatter: &output.Formatter{Writer: &buf}}
	ctx.Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	ctx.Debug = true
	ctx.Debugf("shown %d", 2)
	assert.Equal(t, "[DEBUG] shown 2\n", buf.String())
}

// =============================================================================
// Errors
// =============================================================================

func TestOpenError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"badger_lock", stderrors.New("Cannot acquire directory lock on \"/x\""), errors.ErrLockHeld},
		{"sqlite_lock", stderrors.New("database is locked (5) (SQLITE_BUSY)"), errors.ErrLockHeld},
		{"permission", fmt.Errorf("mkdir: %w", os.ErrPermission), errors.ErrPermissionDenied},
		{"corrupt", stderrors.New("file is not a database: malformed header"), errors.ErrDatabaseCorrupted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := openError(tt.err, "/data")
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, errors.IsSystemError(err))
		})
	}

	assert.NoError(t, openError(nil, "/data"))

	other := stderrors.New("boom")
	assert.ErrorIs(t, openError(other, "/data"), other)
}

func TestDescribe(t *testing.T) {
	r := Describe(errors.NotFound("task", "abc"))
	assert.Equal(t, errors.CategoryUser, r.Category)
	assert.Contains(t, r.Message, `task "abc"`)
	assert.NotEmpty(t, r.Suggestion)

	r = Describe(parser.NewDateError("blah"))
	assert.Equal(t, errors.CategoryUser, r.Category)
	assert.Contains(t, r.Suggestion, "relative")

	r = Describe(errors.NewSystemError("disk gone", errors.ErrDiskFull))
	assert.Equal(t, errors.CategorySystem, r.Category)
}

func TestFormatError(t *testing.T) {
	msg := FormatError(errors.NewUserError("bad title", "Pass a title"))
	assert.Contains(t, msg, "bad title")
	assert.Contains(t, msg, "Try: Pass a title")

	msg = FormatError(errors.NewSystemError("write failed", errors.ErrDiskFull))
	assert.Contains(t, msg, "System error: write failed")
}
