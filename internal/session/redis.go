package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisStore implements Store on Redis. The key TTL doubles as the idle
// timeout: it is set on write and refreshed on read, so Redis itself evicts
// idle sessions.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a Redis-backed store with the given idle TTL
// (DefaultTTL when zero).
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Create implements Store.
func (s *RedisStore) Create(ctx context.Context, p *Progress) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Version = 1

	val, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+p.SessionID, val, s.ttl).Err()
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Progress, error) {
	key := sessionKeyPrefix + sessionID
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var p Progress
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return nil, err
	}

	// Refresh the idle timeout on read.
	_ = s.client.Expire(ctx, key, s.ttl).Err()
	return &p, nil
}

// Update implements Store using WATCH for the optimistic version check.
func (s *RedisStore) Update(ctx context.Context, p *Progress) error {
	key := sessionKeyPrefix + p.SessionID

	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var stored Progress
		if err := json.Unmarshal([]byte(val), &stored); err != nil {
			return err
		}
		if stored.Version != p.Version {
			return ErrVersionConflict
		}

		p.Version++
		p.UpdatedAt = time.Now()
		newVal, err := json.Marshal(p)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, newVal, s.ttl)
			return nil
		})
		return err
	}, key)
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
