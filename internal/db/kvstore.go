package db

import (
	"context"
	"database/sql"

	"github.com/hpungsan/verso/internal/storage"
)

// Ensure KVStore implements the interface.
var _ storage.Port = (*KVStore)(nil)

// KVStore is a SQLite-backed storage.Port over the kv table.
type KVStore struct {
	db *sql.DB
}

// NewKVStore wraps an initialized database (see Init).
func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	return GetValue(ctx, s.db, key)
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	return PutValue(ctx, s.db, key, value)
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	return DeleteValue(ctx, s.db, key)
}

func (s *KVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	return ListKeys(ctx, s.db, prefix)
}
