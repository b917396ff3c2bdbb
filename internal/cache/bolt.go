package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketEntries = []byte("entries")

type boltEntry struct {
	Value     []byte    `json:"value"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Bolt is a Cache persisted to a local BoltDB file, so cached aggregates
// survive process restarts.
type Bolt struct {
	db *bolt.DB
}

// NewBolt opens (or creates) the cache file at path.
func NewBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEntries)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache bucket: %w", err)
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Get(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		if data := tx.Bucket(bucketEntries).Get([]byte(key)); data != nil {
			raw = make([]byte, len(data))
			copy(raw, data)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read cache entry: %w", err)
	}
	if raw == nil {
		return nil, ErrMiss
	}

	var entry boltEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// A corrupt entry is indistinguishable from a miss to callers.
		_ = b.Delete(ctx, key)
		return nil, ErrMiss
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = b.Delete(ctx, key)
		return nil, ErrMiss
	}
	return entry.Value, nil
}

func (b *Bolt) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := boltEntry{Value: value}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	err = b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEntries).Put([]byte(key), raw)
	})
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

func (b *Bolt) Delete(ctx context.Context, key string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEntries).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
