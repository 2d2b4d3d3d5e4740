package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"

	"github.com/dgraph-io/badger/v4"
)

// Collection provides generic get/getAll/set/delete operations for one record type.
type Collection[T any] struct {
	store  *Store
	name   string
	prefix string
	keyOf  func(*T) string
}

// NewCollection creates a collection named name whose records are keyed by keyOf.
func NewCollection[T any](s *Store, name string, keyOf func(*T) string) *Collection[T] {
	return &Collection[T]{
		store:  s,
		name:   name,
		prefix: name + ":",
		keyOf:  keyOf,
	}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Key returns the primary key of record.
func (c *Collection[T]) Key(record *T) string {
	return c.keyOf(record)
}

func (c *Collection[T]) dbKey(key string) []byte {
	return []byte(c.prefix + key)
}

// Get retrieves a record by primary key.
// Returns ErrNotFound if the record does not exist.
func (c *Collection[T]) Get(ctx context.Context, key string) (*T, error) {
	db, err := c.store.handle(ctx)
	if err != nil {
		return nil, err
	}

	var record T
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(c.dbKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get key: %w", err)
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &record); err != nil {
				return fmt.Errorf("failed to unmarshal %s record: %w", c.name, err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// Set inserts or replaces a record under its primary key.
func (c *Collection[T]) Set(ctx context.Context, record *T) error {
	key := c.keyOf(record)
	if key == "" {
		return ErrMissingKey
	}

	db, err := c.store.handle(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal %s record: %w", c.name, err)
	}

	return db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(c.dbKey(key), data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}
		return nil
	})
}

// SetAll upserts records in a single write batch.
func (c *Collection[T]) SetAll(ctx context.Context, records []*T) error {
	db, err := c.store.handle(ctx)
	if err != nil {
		return err
	}

	batch := db.NewWriteBatch()
	defer batch.Cancel()

	for _, record := range records {
		key := c.keyOf(record)
		if key == "" {
			return ErrMissingKey
		}
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal %s record: %w", c.name, err)
		}
		if err := batch.Set(c.dbKey(key), data); err != nil {
			return fmt.Errorf("batch set %s: %w", key, err)
		}
	}

	if err := batch.Flush(); err != nil {
		return fmt.Errorf("flush batch: %w", err)
	}
	return nil
}

// Delete removes a record by primary key.
// This operation is idempotent - it does not return an error if the record does not exist.
func (c *Collection[T]) Delete(ctx context.Context, key string) error {
	db, err := c.store.handle(ctx)
	if err != nil {
		return err
	}

	return db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(c.dbKey(key)); err != nil {
			return fmt.Errorf("failed to delete key: %w", err)
		}
		return nil
	})
}

// List returns an iterator over all records in key order.
func (c *Collection[T]) List(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		db, err := c.store.handle(ctx)
		if err != nil {
			yield(nil, err)
			return
		}

		_ = db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(c.prefix)
			opts.PrefetchValues = true

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
				// Check context cancellation
				if ctx.Err() != nil {
					yield(nil, ctx.Err())
					return ctx.Err()
				}

				var record T
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &record)
				})
				if err != nil {
					yield(nil, fmt.Errorf("failed to unmarshal %s record: %w", c.name, err))
					return err
				}

				if !yield(&record, nil) {
					return nil // Consumer stopped early
				}
			}

			return nil
		})
	}
}

// All collects every record in key order.
func (c *Collection[T]) All(ctx context.Context) ([]*T, error) {
	records := make([]*T, 0)
	for record, err := range c.List(ctx) {
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Count returns the number of records without decoding them.
func (c *Collection[T]) Count(ctx context.Context) (int, error) {
	db, err := c.store.handle(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(c.prefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	return count, err
}
