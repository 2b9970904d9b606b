package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const keyPrefix = "film:"

// BadgerBackend persists entries in an embedded badger database.
type BadgerBackend struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the database at path. An empty path opens
// an in-memory database.
func OpenBadger(path string, syncWrites bool) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.SyncWrites = syncWrites
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}
	return &BadgerBackend{db: db}, nil
}

func (b *BadgerBackend) Load(ctx context.Context, fn func(key string, raw []byte)) error {
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			key := string(item.Key()[len(prefix):])
			raw, err := item.ValueCopy(nil)
			if err != nil {
				// An unreadable value is reported like an undecodable one.
				fn(key, nil)
				continue
			}
			fn(key, raw)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("iterate cache entries: %w", err)
	}
	return nil
}

func (b *BadgerBackend) Save(_ context.Context, key string, raw []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(keyPrefix+key), raw))
	})
}

func (b *BadgerBackend) Delete(_ context.Context, key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(keyPrefix + key))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
}

func (b *BadgerBackend) Close() error {
	return b.db.Close()
}
