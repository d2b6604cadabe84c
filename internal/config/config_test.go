package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, BackendBadger, cfg.Backend)
	assert.Equal(t, DefaultDataDir(), cfg.DataDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 1000, cfg.FinanceLogCap)
	assert.Equal(t, 10, cfg.RecentSearchCap)
	assert.Equal(t, 10, cfg.RecentTransactions)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Empty(t, cfg.File)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	data := t.TempDir()
	yaml := "backend: SQLite\ndata_dir: " + data + "\nfinance_log_cap: 50\ncurrency: EUR\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, data, cfg.DataDir)
	assert.Equal(t, 50, cfg.FinanceLogCap)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, filepath.Join(data, "lifeledger.db"), cfg.DBPath())
	assert.NotEmpty(t, cfg.File)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("backend: sqlite\n"), 0o644))

	t.Setenv("LIFELEDGER_BACKEND", "badger")
	t.Setenv("LIFELEDGER_LOG_LEVEL", "debug")
	t.Setenv("LIFELEDGER_RECENT_TRANSACTIONS", "25")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, BackendBadger, cfg.Backend)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 25, cfg.RecentTransactions)
	assert.Equal(t, filepath.Join(cfg.DataDir, "db"), cfg.DBPath())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("unknown_backend", func(t *testing.T) {
		t.Setenv("LIFELEDGER_BACKEND", "postgres")
		_, err := Load(t.TempDir())
		assert.ErrorContains(t, err, "unknown backend")
	})

	t.Run("malformed_yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("backend: [unclosed"), 0o644))
		_, err := Load(dir)
		assert.Error(t, err)
	})

	t.Run("non_positive_log_cap", func(t *testing.T) {
		t.Setenv("LIFELEDGER_FINANCE_LOG_CAP", "0")
		_, err := Load(t.TempDir())
		assert.Error(t, err)
	})
}

func TestWriteDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	path, err := WriteDefault(dir)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "backend: badger")

	require.NoError(t, os.WriteFile(path, []byte("backend: sqlite\n"), 0o644))
	_, err = WriteDefault(dir)
	require.NoError(t, err)
	content, _ = os.ReadFile(path)
	assert.Equal(t, "backend: sqlite\n", string(content), "existing file is kept")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
}
