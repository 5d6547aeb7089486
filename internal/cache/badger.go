package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

// BadgerCache keeps entries in an embedded badger store and relies on
// badger's per-entry TTL for expiry. An empty path opens an in-memory store.
type BadgerCache struct {
	db  *badger.DB
	ttl time.Duration
}

func NewBadgerCache(path string, ttl time.Duration, logger *logrus.Logger) (*BadgerCache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	var options badger.Options
	if strings.TrimSpace(path) == "" {
		options = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o750); err != nil {
			return nil, fmt.Errorf("create badger directory %s: %w", path, err)
		}
		options = badger.DefaultOptions(path)
	}
	if logger != nil {
		options = options.WithLogger(logger)
	} else {
		options = options.WithLogger(nil)
	}

	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return &BadgerCache{db: db, ttl: ttl}, nil
}

func (cache *BadgerCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := cache.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badger get: %w", err)
	}
	return value, true, nil
}

func (cache *BadgerCache) Set(_ context.Context, key string, value []byte) error {
	err := cache.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), value).WithTTL(cache.ttl))
	})
	if err != nil {
		return fmt.Errorf("badger set: %w", err)
	}
	return nil
}

func (cache *BadgerCache) InvalidatePrefix(_ context.Context, prefix string) error {
	keys := make([][]byte, 0)
	err := cache.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		options.Prefix = []byte(prefix)

		iterator := txn.NewIterator(options)
		defer iterator.Close()
		for iterator.Rewind(); iterator.Valid(); iterator.Next() {
			keys = append(keys, iterator.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("badger scan prefix: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	batch := cache.db.NewWriteBatch()
	for _, key := range keys {
		if err := batch.Delete(key); err != nil {
			batch.Cancel()
			return fmt.Errorf("badger delete: %w", err)
		}
	}
	if err := batch.Flush(); err != nil {
		return fmt.Errorf("badger flush deletes: %w", err)
	}
	return nil
}

func (cache *BadgerCache) Close() error {
	return cache.db.Close()
}
