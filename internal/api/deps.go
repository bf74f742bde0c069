package api

import (
	"fmt"

	"recipe-ingest/internal/core/batch"
	"recipe-ingest/internal/core/cache"
	"recipe-ingest/internal/core/category"
	"recipe-ingest/internal/core/course"
	"recipe-ingest/internal/core/fetch"
	"recipe-ingest/internal/core/ingredient"
	"recipe-ingest/internal/core/metrics"
	"recipe-ingest/internal/core/recipe"
	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// Services bundles everything the handlers need.
type Services struct {
	Parser      *ingredient.Parser
	Detector    *course.Detector
	Categorizer *category.Categorizer
	Pool        *batch.Pool
	Cache       cache.Store
	Metrics     *metrics.Collector
	Importer    *recipe.ImportService
	Shopping    *recipe.ShoppingService
}

// NewServices builds the service graph from configuration. A nil store
// disables result caching.
func NewServices(cfg *config.Config, store cache.Store) (*Services, error) {
	tables := course.DefaultTables()
	if cfg.Course.TablesPath != "" {
		loaded, err := course.LoadTables(cfg.Course.TablesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load course tables: %w", err)
		}
		tables = loaded
		common.LogInfo("Loaded course tables", zap.String("path", cfg.Course.TablesPath))
	}

	s := &Services{
		Parser:      ingredient.NewParser(),
		Detector:    course.NewDetector(tables),
		Categorizer: category.NewCategorizer(category.LoadOrFallback(cfg.Dictionary.Path)),
		Pool: batch.NewPool(nil, batch.Options{
			Workers:   cfg.Batch.Workers,
			QueueSize: cfg.Batch.QueueSize,
			ChunkSize: cfg.Batch.ChunkSize,
		}),
		Cache:   store,
		Metrics: metrics.NewCollector(),
	}
	if s.Cache == nil {
		s.Cache = cache.Disabled{}
	}

	s.Importer = recipe.NewImportService(recipe.ImportOptions{
		Parser:   s.Parser,
		Pool:     s.Pool,
		MinLines: cfg.Batch.MinLines,
		Detector: s.Detector,
		Fetcher:  fetch.NewClient(cfg.Fetch),
		Cache:    s.Cache,
		Metrics:  s.Metrics,
	})
	s.Shopping = recipe.NewShoppingService(s.Categorizer, s.Parser, s.Metrics)

	common.LogInfo("Services initialized",
		zap.Int("dictionary_entries", s.Categorizer.Dictionary().Len()),
		zap.String("cache_backend", s.Cache.Stats().Backend),
		zap.Int("batch_workers", cfg.Batch.Workers),
	)
	return s, nil
}

// Close stops the worker pool and releases the cache.
func (s *Services) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.Cache != nil {
		if err := s.Cache.Close(); err != nil {
			common.LogWarn("Failed to close cache", zap.Error(err))
		}
	}
}
