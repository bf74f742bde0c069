package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()

	c.ObserveLine(OutcomeIngredient)
	c.ObserveLine(OutcomeIngredient)
	c.ObserveLine(OutcomeSection)
	c.ObserveCourse("Drinks", "drinks")
	c.ObserveCategory("Produce")
	c.ObserveImport("text", nil, 10*time.Millisecond)
	c.ObserveImport("url", errors.New("boom"), time.Second)
	c.ObserveCache("hit")

	body := scrape(t, c)
	assert.Contains(t, body, `recipe_ingest_lines_parsed_total{outcome="ingredient"} 2`)
	assert.Contains(t, body, `recipe_ingest_lines_parsed_total{outcome="section"} 1`)
	assert.Contains(t, body, `recipe_ingest_course_detections_total{course="Drinks",rule="drinks"} 1`)
	assert.Contains(t, body, `recipe_ingest_ingredients_categorized_total{category="Produce"} 1`)
	assert.Contains(t, body, `recipe_ingest_imports_total{source="url",status="error"} 1`)
	assert.Contains(t, body, `recipe_ingest_import_duration_seconds_count{source="text"} 1`)
	assert.Contains(t, body, `recipe_ingest_cache_requests_total{result="hit"} 1`)
}

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveLine(OutcomeUnparsed)
		c.ObserveCourse("Mains", "default")
		c.ObserveCategory("Unknown")
		c.ObserveImport("text", nil, time.Millisecond)
		c.ObserveCache("miss")
	})
	assert.Nil(t, c.Registry())
}

func TestHandler(t *testing.T) {
	var c *Collector
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Contains(t, scrape(t, NewCollector()), "go_goroutines")
}
