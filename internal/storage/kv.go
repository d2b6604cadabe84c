package storage

import (
	"errors"
	"strconv"
)

// ErrKeyNotFound is returned when a key is not found in the store.
var ErrKeyNotFound = errors.New("key not found")

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// KV is the process-wide string-keyed store the repositories persist through.
// Every write is durable once the call returns.
type KV interface {
	// Get returns a copy of the value stored at key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)
	// Set stores value at key.
	Set(key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Update applies every write made through w atomically.
	Update(fn func(w Writer) error) error
	// Keys lists every stored key.
	Keys() ([]string, error)
	// DropAll erases every key.
	DropAll() error
	// Close releases the underlying database.
	Close() error
}

// Writer buffers writes inside a KV.Update call.
type Writer interface {
	Set(key string, value []byte) error
	Delete(key string) error
}

// getBool reads a raw "true"/"false" value. Absent or malformed yields def.
func getBool(kv KV, key string, def bool) bool {
	raw, err := kv.Get(key)
	if err != nil {
		return def
	}
	v, err := strconv.ParseBool(string(raw))
	if err != nil {
		return def
	}
	return v
}

func setBool(kv KV, key string, v bool) error {
	return kv.Set(key, []byte(strconv.FormatBool(v)))
}

// getInt64 reads a raw decimal integer. Absent or malformed yields 0.
func getInt64(kv KV, key string) int64 {
	raw, err := kv.Get(key)
	if err != nil {
		return 0
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func formatInt64(v int64) []byte {
	return []byte(strconv.FormatInt(v, 10))
}
