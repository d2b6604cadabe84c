package storage

import (
	"errors"

	badger "github.com/dgraph-io/badger/v4"
)

var _ KV = (*DB)(nil)

// Get retrieves a copy of the raw value stored at key.
func (d *DB) Get(key string) ([]byte, error) {
	var result []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}

		result, err = item.ValueCopy(nil)
		return err
	})
	return result, err
}

// Set stores raw bytes with the given key.
func (d *DB) Set(key string, value []byte) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Delete removes a key from the database.
func (d *DB) Delete(key string) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// badgerWriter adapts a Badger transaction to Writer.
type badgerWriter struct {
	txn *badger.Txn
}

func (w badgerWriter) Set(key string, value []byte) error {
	return w.txn.Set([]byte(key), value)
}

func (w badgerWriter) Delete(key string) error {
	return w.txn.Delete([]byte(key))
}

// Update runs fn inside a single Badger read-write transaction.
func (d *DB) Update(fn func(w Writer) error) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return fn(badgerWriter{txn: txn})
	})
}

// Keys lists all keys in the database.
func (d *DB) Keys() ([]string, error) {
	var keys []string
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	return keys, err
}

// DropAll erases every key in the database.
func (d *DB) DropAll() error {
	return d.db.DropAll()
}
