package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// The local stores below are the client's stand-in for browser local
// storage: string values under string keys, one value per key.

type SQLiteLocalStore struct {
	db *sql.DB
}

func NewSQLiteLocalStore(db *sql.DB) *SQLiteLocalStore {
	return &SQLiteLocalStore{db: db}
}

func (s *SQLiteLocalStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM local_storage WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLiteLocalStore) SetItem(ctx context.Context, key, value string) error {
	query := `INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	_, err := s.db.ExecContext(ctx, query, key, value)
	return err
}

type RedisLocalStore struct {
	client *redis.Client
	prefix string
}

// NewRedisLocalStore namespaces keys under prefix, e.g. "assistant:".
func NewRedisLocalStore(client *redis.Client, prefix string) *RedisLocalStore {
	return &RedisLocalStore{client: client, prefix: prefix}
}

func (s *RedisLocalStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *RedisLocalStore) SetItem(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

type MemoryLocalStore struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryLocalStore() *MemoryLocalStore {
	return &MemoryLocalStore{items: make(map[string]string)}
}

func (s *MemoryLocalStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	return value, ok, nil
}

func (s *MemoryLocalStore) SetItem(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}
