package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var blobBucket = []byte("blobs")

// BoltStore is the file-backed Store used when the app runs desktop-hosted.
// One bucket, one JSON blob per key.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the data file. The one-second timeout turns a
// second running instance into an error instead of a hang.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("repository: abrir %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(blobBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("repository: crear bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error { return s.db.Close() }

func (s *BoltStore) Load(_ context.Context, key string, v any) error {
	return s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(blobBucket).Get([]byte(key))
		if raw == nil {
			return ErrKeyNotFound
		}
		return json.Unmarshal(raw, v)
	})
}

func (s *BoltStore) Save(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("repository: serializar %s: %w", key, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(blobBucket).Put([]byte(key), raw)
	})
}

func (s *BoltStore) Delete(_ context.Context, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(blobBucket).Delete([]byte(key))
	})
}
