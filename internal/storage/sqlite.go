package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL
);`

const sqliteUpsert = `INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`

// SQLiteDB is a KV backend storing every key as a row of a single table.
type SQLiteDB struct {
	db   *sql.DB
	path string
}

var _ KV = (*SQLiteDB)(nil)

// DefaultSQLitePath returns the default SQLite file path following XDG spec.
func DefaultSQLitePath() string {
	return filepath.Join(filepath.Dir(DefaultPath()), AppName+".db")
}

// OpenSQLite opens or creates a SQLite database file. An empty path or
// ":memory:" opens a private in-memory database.
func OpenSQLite(path string) (*SQLiteDB, error) {
	dsn := path
	if path == "" || path == ":memory:" {
		dsn = ":memory:"
		path = ""
	} else if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteDB{db: db, path: path}, nil
}

// Path returns the database file, or "" for an in-memory database.
func (s *SQLiteDB) Path() string {
	return s.path
}

// Close closes the database.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Get retrieves the raw value stored at key.
func (s *SQLiteDB) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	return value, err
}

// Set stores value at key.
func (s *SQLiteDB) Set(key string, value []byte) error {
	_, err := s.db.Exec(sqliteUpsert, key, value)
	return err
}

// Delete removes key.
func (s *SQLiteDB) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

type sqliteWriter struct {
	tx *sql.Tx
}

func (w sqliteWriter) Set(key string, value []byte) error {
	_, err := w.tx.Exec(sqliteUpsert, key, value)
	return err
}

func (w sqliteWriter) Delete(key string) error {
	_, err := w.tx.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Update runs fn inside one SQL transaction, rolling back if fn fails.
func (s *SQLiteDB) Update(fn func(w Writer) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(sqliteWriter{tx: tx}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Keys lists all keys in key order.
func (s *SQLiteDB) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// DropAll erases every key.
func (s *SQLiteDB) DropAll() error {
	_, err := s.db.Exec(`DELETE FROM kv`)
	return err
}
