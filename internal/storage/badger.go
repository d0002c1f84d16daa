// ABOUTME: Badger-backed storage substrate, the default durable backend.
// ABOUTME: Keys are partition-prefixed; operation failures are swallowed.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v3"
)

// badgerKV stores records under "partition:id" keys in a single Badger
// database. Per the adapter contract, individual operation failures are
// swallowed; only opening the database reports an error.
type badgerKV struct {
	db *badger.DB
}

// OpenBadger opens or creates a Badger database at dir and returns an
// adapter over it. Callers that cannot open durable storage should fall
// back to NewMemory.
func OpenBadger(dir string) (Adapter, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	return newAdapter(&badgerKV{db: db}), nil
}

// DefaultDataDir returns the default data directory following XDG conventions.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "gym")
}

func key(partition, id string) []byte {
	return []byte(partition + ":" + id)
}

func prefix(partition string) []byte {
	return []byte(partition + ":")
}

func (b *badgerKV) get(partition, id string) ([]byte, bool) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(partition, id))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false
	}
	return out, true
}

func (b *badgerKV) getAll(partition string) [][]byte {
	var out [][]byte
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix(partition)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			out = append(out, val)
		}
		return nil
	})
	if err != nil {
		return nil
	}
	return out
}

func (b *badgerKV) put(partition, id string, value []byte) {
	_ = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(partition, id), value)
	})
}

func (b *badgerKV) delete(partition, id string) {
	_ = b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(partition, id))
	})
}

func (b *badgerKV) clear(partition string) {
	_ = b.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix(partition)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		var keys [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *badgerKV) close() error { return b.db.Close() }
