package cache

import (
	"context"
	"fmt"
	"strings"

	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"
)

// Store caches serialized import results.
// Get returns common.ErrCacheMiss when the key is absent or expired.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Stats() Stats
	Close() error
}

// Stats is a point-in-time view of a store.
type Stats struct {
	Backend   string  `json:"backend"`
	Size      int     `json:"size"`
	MaxSize   int     `json:"max_size,omitempty"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	Errors    int64   `json:"errors"`
	HitRatio  float64 `json:"hit_ratio"`
}

func hitRatio(hits, misses int64) float64 {
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses)
}

// New builds the store selected by cfg.Backend. A disabled cache yields a
// store that never hits.
func New(cfg config.CacheConfig, redisCfg config.RedisConfig) (Store, error) {
	if !cfg.Enabled {
		common.LogInfo("Cache disabled")
		return Disabled{}, nil
	}
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(cfg), nil
	case "redis":
		return NewRedisStore(cfg, redisCfg)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Key builds a namespaced cache key from request parts.
func Key(kind string, parts ...string) string {
	return kind + ":" + common.HashString(strings.Join(parts, "\x00"))
}

// Disabled is the store used when caching is turned off.
type Disabled struct{}

func (Disabled) Get(context.Context, string) ([]byte, error) { return nil, common.ErrCacheDisabled }
func (Disabled) Set(context.Context, string, []byte) error { return nil }
func (Disabled) Stats() Stats { return Stats{Backend: "disabled"} }
func (Disabled) Close() error { return nil }
