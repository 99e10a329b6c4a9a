package history

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, capacity int) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, "", capacity)
}

// stores returns one of each Store implementation with the given capacity.
func stores(t *testing.T, capacity int) map[string]Store {
	t.Helper()

	return map[string]Store{
		"ring":  NewRing(capacity),
		"redis": newTestRedisStore(t, capacity),
	}
}

func TestStore_AddList(t *testing.T) {
	t.Parallel()

	for name, s := range stores(t, 3) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			e, err := s.Add(ctx, "2+2", "4")
			require.NoError(t, err)
			assert.Equal(t, "2+2", e.Expression)
			assert.Equal(t, "4", e.Result)
			assert.NotEqual(t, uuid.Nil, e.ID)
			assert.False(t, e.Timestamp.IsZero())

			entries, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, e.ID, entries[0].ID)
			assert.True(t, e.Timestamp.Equal(entries[0].Timestamp))
		})
	}
}

func TestStore_EvictsOldest(t *testing.T) {
	t.Parallel()

	for name, s := range stores(t, 3) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for i := 1; i <= 5; i++ {
				_, err := s.Add(ctx, strconv.Itoa(i), strconv.Itoa(i))
				require.NoError(t, err)
			}

			entries, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, entries, 3)
			assert.Equal(t, "3", entries[0].Expression)
			assert.Equal(t, "4", entries[1].Expression)
			assert.Equal(t, "5", entries[2].Expression)
		})
	}
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	for name, s := range stores(t, 3) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Add(ctx, "1+1", "2")
			require.NoError(t, err)
			require.NoError(t, s.Clear(ctx))

			entries, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries)

			_, err = s.Add(ctx, "1+2", "3")
			require.NoError(t, err)
			entries, err = s.List(ctx)
			require.NoError(t, err)
			assert.Len(t, entries, 1)
		})
	}
}

func TestStore_EmptyExpression(t *testing.T) {
	t.Parallel()

	for name, s := range stores(t, 3) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Add(ctx, "", "0")
			require.ErrorIs(t, err, ErrEmptyExpression)

			entries, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestRing_DefaultCapacity(t *testing.T) {
	t.Parallel()

	r := NewRing(0)
	assert.Equal(t, DefaultCapacity, r.Cap())

	for i := 0; i < DefaultCapacity+10; i++ {
		_, err := r.Add(context.Background(), strconv.Itoa(i), "")
		require.NoError(t, err)
	}

	entries, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, DefaultCapacity)
	assert.Equal(t, "10", entries[0].Expression)
}

func TestRing_ListIsCopy(t *testing.T) {
	t.Parallel()

	r := NewRing(2)
	_, err := r.Add(context.Background(), "1", "1")
	require.NoError(t, err)

	entries, err := r.List(context.Background())
	require.NoError(t, err)
	entries[0].Expression = "changed"

	again, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", again[0].Expression)
}

func TestRing_Timestamp(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 10, 18, 12, 0, 0, 0, time.FixedZone("X", 3600))
	r := NewRing(1)
	r.now = func() time.Time { return fixed }

	e, err := r.Add(context.Background(), "1", "1")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, e.Timestamp.Location())
	assert.True(t, fixed.Equal(e.Timestamp))
}

func TestRing_Concurrent(t *testing.T) {
	t.Parallel()

	r := NewRing(DefaultCapacity)
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = r.Add(context.Background(), strconv.Itoa(i), "")
		}(i)
	}
	wg.Wait()

	entries, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, DefaultCapacity)
}

func TestRedisStore_Key(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s := NewRedisStore(client, "calc:test", 2)
	_, err := s.Add(context.Background(), "1+1", "2")
	require.NoError(t, err)

	assert.True(t, mr.Exists("calc:test"))
	vals, err := mr.List("calc:test")
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Contains(t, vals[0], `"expression":"1+1"`)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	s := NewRedisStore(client, "", 2)
	_, err := s.Add(context.Background(), "1", "1")
	require.Error(t, err)

	_, err = s.List(context.Background())
	require.Error(t, err)

	require.Error(t, s.Clear(context.Background()))
}

func TestRedisStore_CorruptEntry(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	_, err := mr.Push(DefaultRedisKey, "not json")
	require.NoError(t, err)

	s := NewRedisStore(client, "", 2)
	_, err = s.List(context.Background())
	require.Error(t, err)
}
