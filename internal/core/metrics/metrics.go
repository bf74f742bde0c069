package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "recipe_ingest"

// Collector owns the service's prometheus registry. A nil *Collector is
// valid and records nothing, so core services can run without metrics.
type Collector struct {
	registry *prometheus.Registry

	linesParsed    *prometheus.CounterVec
	courses        *prometheus.CounterVec
	categorized    *prometheus.CounterVec
	imports        *prometheus.CounterVec
	importDuration *prometheus.HistogramVec
	cacheRequests  *prometheus.CounterVec
}

// NewCollector creates and registers every metric on a private registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		linesParsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lines_parsed_total",
				Help:      "Ingredient lines parsed, by outcome",
			},
			[]string{"outcome"},
		),
		courses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "course_detections_total",
				Help:      "Course classifications, by course and deciding rule",
			},
			[]string{"course", "rule"},
		),
		categorized: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ingredients_categorized_total",
				Help:      "Ingredients categorized, by category",
			},
			[]string{"category"},
		),
		imports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "imports_total",
				Help:      "Recipe imports, by source and status",
			},
			[]string{"source", "status"},
		),
		importDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "import_duration_seconds",
				Help:      "Time taken to import a recipe",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"source"},
		),
		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_requests_total",
				Help:      "Import cache lookups, by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		c.linesParsed,
		c.courses,
		c.categorized,
		c.imports,
		c.importDuration,
		c.cacheRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry exposes the registry for tests and custom exporters.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the registry in the prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Line outcomes.
const (
	OutcomeIngredient = "ingredient"
	OutcomeSection    = "section"
	OutcomeUnparsed   = "unparsed"
)

func (c *Collector) ObserveLine(outcome string) {
	if c == nil {
		return
	}
	c.linesParsed.WithLabelValues(outcome).Inc()
}

func (c *Collector) ObserveCourse(course, rule string) {
	if c == nil {
		return
	}
	c.courses.WithLabelValues(course, rule).Inc()
}

func (c *Collector) ObserveCategory(category string) {
	if c == nil {
		return
	}
	c.categorized.WithLabelValues(category).Inc()
}

func (c *Collector) ObserveImport(source string, err error, d time.Duration) {
	if c == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.imports.WithLabelValues(source, status).Inc()
	c.importDuration.WithLabelValues(source).Observe(d.Seconds())
}

// ObserveCache records "hit", "miss" or "error".
func (c *Collector) ObserveCache(result string) {
	if c == nil {
		return
	}
	c.cacheRequests.WithLabelValues(result).Inc()
}
