package storage

import (
	"encoding/json"
	"fmt"
)

// DecodeError reports a stored value that could not be deserialized.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// encode serializes v for storage.
func encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// decode deserializes a stored value into v. Unknown fields are ignored and
// missing ones keep their zero value, so older blobs stay readable.
func decode(key string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &DecodeError{Key: key, Err: err}
	}
	return nil
}
