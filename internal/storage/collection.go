package storage

import (
	"sync"

	"github.com/google/uuid"

	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/logging"
	"github.com/manav03panchal/lifeledger/internal/model"
)

// insertAt selects where Add places a new record.
type insertAt int

const (
	appendNew insertAt = iota
	prependNew
)

// collection stores every record of one kind as a single serialized list
// under one key. All mutations are whole-collection read-modify-write
// serialized by mu, which may be shared with related collections.
type collection[T model.Record] struct {
	st    *Store
	key   string
	kind  string
	order insertAt
	mu    *sync.Mutex
}

func newCollection[T model.Record](st *Store, key, kind string, order insertAt, mu *sync.Mutex) *collection[T] {
	return &collection[T]{st: st, key: key, kind: kind, order: order, mu: mu}
}

// load reads the stored list. An absent key is an empty list, not an error.
func (c *collection[T]) load() ([]T, error) {
	raw, err := c.st.kv.Get(c.key)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var items []T
	if err := decode(c.key, raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// list is load with the fail-safe-to-empty policy: unreadable data is logged
// and reported as an empty collection.
func (c *collection[T]) list() []T {
	items, err := c.load()
	if err != nil {
		logging.Warn("collection unreadable, treating as empty",
			logging.KeyKey, c.key, logging.KeyError, err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// List returns every stored record.
func (c *collection[T]) List() []T {
	return c.list()
}

// Get looks up a record by id.
func (c *collection[T]) Get(id string) (T, bool) {
	for _, item := range c.list() {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) encode(items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	data, err := encode(items)
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("encode "+c.key, "failed to serialize "+c.kind, err)
	}
	return data, nil
}

// write overwrites the stored list. Callers hold mu.
func (c *collection[T]) write(items []T) error {
	data, err := c.encode(items)
	if err != nil {
		return err
	}
	if err := c.st.kv.Set(c.key, data); err != nil {
		return errors.NewSystemErrorWithOp("write "+c.key, "failed to save "+c.kind, err)
	}
	return nil
}

// writeTo stages the list in a batch. Callers hold mu.
func (c *collection[T]) writeTo(w Writer, items []T) error {
	data, err := c.encode(items)
	if err != nil {
		return err
	}
	return w.Set(c.key, data)
}

// Save serializes and overwrites the entire stored collection.
func (c *collection[T]) Save(items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(items)
}

// mutate runs one read-modify-write cycle under the lock. fn returns the new
// list and whether it changed; an unchanged list is not written back.
func (c *collection[T]) mutate(fn func(items []T) ([]T, bool, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, changed, err := fn(c.list())
	if err != nil || !changed {
		return err
	}
	return c.write(next)
}

// prepare assigns an id if missing and stamps both timestamps.
func (c *collection[T]) prepare(item T) {
	if item.GetID() == "" {
		item.SetID(uuid.NewString())
	}
	item.Stamp(0, c.st.nowMillis())
}

// insert places item according to the collection's ordering policy.
func (c *collection[T]) insert(items []T, item T) []T {
	if c.order == prependNew {
		return append([]T{item}, items...)
	}
	return append(items, item)
}

// Add inserts a new record, assigning its id and timestamps.
func (c *collection[T]) Add(item T) error {
	c.prepare(item)
	return c.mutate(func(items []T) ([]T, bool, error) {
		return c.insert(items, item), true, nil
	})
}

// replace swaps the record with item's id, preserving its creation time.
// It returns false when no record matches.
func (c *collection[T]) replace(items []T, item T) bool {
	for i, existing := range items {
		if existing.GetID() == item.GetID() {
			item.Stamp(existing.CreatedMillis(), c.st.nowMillis())
			items[i] = item
			return true
		}
	}
	return false
}

// Update replaces the stored record with the same id and stamps updatedAt.
// Update never creates: an unknown id returns ErrNotFound and storage is
// left untouched.
func (c *collection[T]) Update(item T) error {
	return c.mutate(func(items []T) ([]T, bool, error) {
		if !c.replace(items, item) {
			return nil, false, errors.NotFound(c.kind, item.GetID())
		}
		return items, true, nil
	})
}

// Delete removes the record with id. An unknown id is a no-op.
func (c *collection[T]) Delete(id string) error {
	return c.mutate(func(items []T) ([]T, bool, error) {
		kept := items[:0]
		for _, item := range items {
			if item.GetID() != id {
				kept = append(kept, item)
			}
		}
		return kept, len(kept) != len(items), nil
	})
}

// modify applies fn to the record with id and stamps updatedAt. An unknown
// id returns ErrNotFound; an error from fn aborts without writing.
func (c *collection[T]) modify(id string, fn func(item T) error) error {
	return c.mutate(func(items []T) ([]T, bool, error) {
		for _, item := range items {
			if item.GetID() == id {
				if err := fn(item); err != nil {
					return nil, false, err
				}
				item.Stamp(item.CreatedMillis(), c.st.nowMillis())
				return items, true, nil
			}
		}
		return nil, false, errors.NotFound(c.kind, id)
	})
}

// Count returns the number of stored records.
func (c *collection[T]) Count() int {
	return len(c.list())
}
