// Package storage provides the persistence layer for Lifeledger: a key-value
// store holding one serialized collection per entity kind, and the
// repositories that read-modify-write those collections.
package storage

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"
)

const (
	// AppName is the application name used for data directories.
	AppName = "lifeledger"
)

// DB wraps a Badger database connection. It is the default KV backend.
type DB struct {
	db   *badger.DB
	path string
}

// Options configures the database connection.
type Options struct {
	// Path is the database directory path. Empty string uses in-memory mode.
	Path string
	// InMemory forces in-memory mode regardless of Path.
	InMemory bool
}

// DefaultPath returns the default database path following XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, "db")
}

// Open opens or creates a database at the given path.
func Open(opts Options) (*DB, error) {
	var badgerOpts badger.Options
	path := opts.Path

	if opts.InMemory || opts.Path == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
		path = ""
	} else {
		if err := os.MkdirAll(opts.Path, 0o700); err != nil {
			return nil, err
		}
		badgerOpts = badger.DefaultOptions(opts.Path).WithSyncWrites(true)
	}

	// Every write replaces a whole collection, so older versions are never read.
	badgerOpts = badgerOpts.WithLoggingLevel(badger.ERROR).WithNumVersionsToKeep(1)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}

	return &DB{db: db, path: path}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the on-disk directory, or "" for an in-memory database.
func (d *DB) Path() string {
	return d.path
}
