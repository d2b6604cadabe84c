package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testClock is a settable time source.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 14, 10, 30, 0, 0, time.Local)}
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Helper to create an in-memory database for testing
func setupTestDB(t *testing.T) *DB {
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestSQLite(t *testing.T) *SQLiteDB {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// setupTestStore returns a Badger-backed store with a controllable clock.
func setupTestStore(t *testing.T, opts ...Option) (*Store, *testClock) {
	clock := newTestClock()
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return NewStore(setupTestDB(t), opts...), clock
}

// backends returns one fresh instance of every KV implementation.
func backends(t *testing.T) map[string]KV {
	return map[string]KV{
		"badger": setupTestDB(t),
		"sqlite": setupTestSQLite(t),
	}
}

func int64Ptr(v int64) *int64 { return &v }

func intPtr(v int) *int { return &v }
