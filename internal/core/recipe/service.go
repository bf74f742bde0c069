package recipe

import (
	"context"
	"encoding/json"
	"errors"

	"recipe-ingest/internal/core/cache"
	"recipe-ingest/internal/core/metrics"
	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// Service holds the collaborators shared by the recipe services.
type Service struct {
	cache   cache.Store
	metrics *metrics.Collector
}

// NewService creates the shared base. Both arguments may be nil.
func NewService(store cache.Store, collector *metrics.Collector) *Service {
	if store == nil {
		store = cache.Disabled{}
	}
	return &Service{
		cache:   store,
		metrics: collector,
	}
}

// getFromCache loads a cached result. Any failure reads as a miss.
func (s *Service) getFromCache(ctx context.Context, key string) (*ImportResult, bool) {
	data, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrCacheMiss):
		s.metrics.ObserveCache("miss")
		return nil, false
	case errors.Is(err, common.ErrCacheDisabled):
		return nil, false
	default:
		s.metrics.ObserveCache("error")
		common.LogWarn("Cache lookup failed", zap.Error(err), zap.String("key", key))
		return nil, false
	}

	var result ImportResult
	if err := common.ParseJSONBytes(data, &result); err != nil {
		s.metrics.ObserveCache("error")
		common.LogWarn("Discarding unreadable cache entry", zap.Error(err), zap.String("key", key))
		return nil, false
	}
	s.metrics.ObserveCache("hit")
	return &result, true
}

// setToCache stores a result. Failures are logged and otherwise ignored.
func (s *Service) setToCache(ctx context.Context, key string, result *ImportResult) {
	data, err := json.Marshal(result)
	if err != nil {
		common.LogWarn("Failed to encode import result for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		s.metrics.ObserveCache("error")
		common.LogWarn("Failed to store import result", zap.Error(err), zap.String("key", key))
	}
}
