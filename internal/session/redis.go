package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const maxUpdateRetries = 10

// RedisStore keeps page views as JSON values with a sliding TTL so several
// site instances can share them.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisStore creates a redis-backed store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisStore{redis: client, ttl: ttl}
}

func (s *RedisStore) key(id string) string {
	return fmt.Sprintf("site:view:%s", id)
}

func (s *RedisStore) Create(ctx context.Context, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("session: marshal view: %w", err)
	}
	if err := s.redis.Set(ctx, s.key(st.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: set view: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (State, error) {
	return s.read(ctx, s.redis, id)
}

// Update is an optimistic WATCH/MULTI transaction, retried when another writer
// touches the key first.
func (s *RedisStore) Update(ctx context.Context, id string, fn func(*State) error) (State, error) {
	key := s.key(id)
	var result State
	txf := func(tx *redis.Tx) error {
		st, err := s.read(ctx, tx, id)
		if err != nil {
			return err
		}
		orig := st
		if err := fn(&st); err != nil {
			result = orig
			return err
		}
		data, err := json.Marshal(st)
		if err != nil {
			return fmt.Errorf("session: marshal view: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err == nil {
			result = st
		}
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.redis.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return result, err
	}
	return State{}, fmt.Errorf("session: update view %s: too much contention", id)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisStore) read(ctx context.Context, c getter, id string) (State, error) {
	data, err := c.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, ErrViewNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("session: get view: %w", err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("session: unmarshal view: %w", err)
	}
	return st, nil
}
