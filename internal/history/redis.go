package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the list key used when none is configured.
const DefaultRedisKey = "procalc:history"

// RedisStore is a Store kept in a Redis list, so that several daemons can
// share one history. Entries are JSON-encoded, oldest at the head.
type RedisStore struct {
	client redis.UniversalClient
	key    string
	cap    int
	now    func() time.Time
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Store in the list at key. An empty key means
// DefaultRedisKey, and a capacity less than 1 means DefaultCapacity.
func NewRedisStore(client redis.UniversalClient, key string, capacity int) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &RedisStore{
		client: client,
		key:    key,
		cap:    capacity,
		now:    time.Now,
	}
}

// Add appends an entry and trims the list to capacity in one transaction.
func (s *RedisStore) Add(ctx context.Context, expr, result string) (Entry, error) {
	if expr == "" {
		return Entry{}, ErrEmptyExpression
	}
	e := newEntry(expr, result, s.now())
	b, err := json.Marshal(e)
	if err != nil {
		return Entry{}, fmt.Errorf("history: encode entry: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, s.key, b)
		pipe.LTrim(ctx, s.key, -int64(s.cap), -1)
		return nil
	})
	if err != nil {
		return Entry{}, fmt.Errorf("history: add to %s: %w", s.key, err)
	}
	return e, nil
}

// List returns all entries, oldest first.
func (s *RedisStore) List(ctx context.Context) ([]Entry, error) {
	vals, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("history: list %s: %w", s.key, err)
	}
	entries := make([]Entry, 0, len(vals))
	for _, v := range vals {
		var e Entry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			return nil, fmt.Errorf("history: decode entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Clear deletes the list.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("history: clear %s: %w", s.key, err)
	}
	return nil
}
