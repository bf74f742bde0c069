package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(maxSize int, ttl time.Duration) (*MemoryStore, *time.Time) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore(config.CacheConfig{MaxSize: maxSize, TTL: ttl})
	m.now = func() time.Time { return clock }
	return m, &clock
}

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestStore(10, time.Hour)
	defer m.Close()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "k", []byte(`{"ok":true}`)))
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(got))

	stats := m.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
	assert.InDelta(t, 0.5, stats.HitRatio, 0.001)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestStore(10, time.Minute)
	defer m.Close()

	require.NoError(t, m.Set(ctx, "k", []byte("v")))
	*clock = clock.Add(2 * time.Minute)

	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	assert.Equal(t, 0, m.Stats().Size)
	assert.Equal(t, int64(1), m.Stats().Evictions)
}

func TestMemoryStoreEvictsLeastUsed(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestStore(2, time.Hour)
	defer m.Close()

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	*clock = clock.Add(time.Second)
	require.NoError(t, m.Set(ctx, "b", []byte("2")))

	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", []byte("3")))

	_, err = m.Get(ctx, "b")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	_, err = m.Get(ctx, "a")
	assert.NoError(t, err)
	_, err = m.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestMemoryStoreOverwriteAtCapacity(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestStore(1, time.Hour)
	defer m.Close()

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	require.NoError(t, m.Set(ctx, "a", []byte("2")))

	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "2", string(got))
	assert.Equal(t, int64(0), m.Stats().Evictions)
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(config.CacheConfig{MaxSize: 50, TTL: time.Hour, CleanupInterval: time.Millisecond})
	defer m.Close()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (i*100+j)%80)
				_ = m.Set(ctx, key, []byte(key))
				_, _ = m.Get(ctx, key)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	assert.LessOrEqual(t, m.Stats().Size, 50)
}

func TestNew(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		s, err := New(config.CacheConfig{Enabled: false}, config.RedisConfig{})
		require.NoError(t, err)
		_, err = s.Get(context.Background(), "k")
		assert.ErrorIs(t, err, common.ErrCacheDisabled)
		assert.NoError(t, s.Set(context.Background(), "k", nil))
		assert.Equal(t, "disabled", s.Stats().Backend)
	})

	t.Run("memory", func(t *testing.T) {
		s, err := New(config.CacheConfig{Enabled: true, Backend: "memory", MaxSize: 5, TTL: time.Hour}, config.RedisConfig{})
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &MemoryStore{}, s)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := New(config.CacheConfig{Enabled: true, Backend: "memcached"}, config.RedisConfig{})
		assert.Error(t, err)
	})

	t.Run("unreachable redis", func(t *testing.T) {
		_, err := New(
			config.CacheConfig{Enabled: true, Backend: "redis", TTL: time.Hour},
			config.RedisConfig{Addr: "127.0.0.1:1"},
		)
		assert.Error(t, err)
	})
}

func TestKey(t *testing.T) {
	a := Key("import", "Pancakes", "1 cup flour")
	b := Key("import", "Pancakes", "1 cup flour")
	c := Key("import", "Pancakes1", " cup flour")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "import:")
}
