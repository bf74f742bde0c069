package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recipe-ingest/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/", ok)
	r.POST("/", ok)
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/request-id", func(c *gin.Context) {
		c.String(http.StatusOK, common.RequestIDFromContext(c.Request.Context()))
	})
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	r.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit(t *testing.T) {
	r := newEngine(RateLimit(2, time.Minute))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", "").Code)

	rec := do(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), common.ErrCodeTooManyRequests)
}

func TestDeduplication(t *testing.T) {
	r := newEngine(Deduplication(time.Minute))

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/", `{"a":1}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/", `{"a":1}`).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/", `{"a":2}`).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", "").Code)
}

func TestDeduperSweepsLazily(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	d := newDeduper(time.Second, start)

	assert.False(t, d.seen("a", start))
	assert.True(t, d.seen("a", start.Add(500*time.Millisecond)))
	assert.False(t, d.seen("b", start.Add(2*time.Second)))
	assert.Len(t, d.requests, 2)

	// past 10 windows the next call drops both stale entries
	later := start.Add(30 * time.Second)
	assert.False(t, d.seen("c", later))
	assert.Len(t, d.requests, 1)
	assert.Equal(t, later, d.lastSweep)
}

func TestBodySizeLimit(t *testing.T) {
	r := newEngine(BodySizeLimit(8))

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/", "small").Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, do(r, http.MethodPost, "/", strings.Repeat("x", 64)).Code)
}

func TestRecovery(t *testing.T) {
	r := newEngine(Recovery(), Logger())

	rec := do(r, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), common.ErrCodeInternalError)
}

func TestRequestContext(t *testing.T) {
	r := newEngine(requestid.New(), RequestContext())

	rec := do(r, http.MethodGet, "/request-id", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
	assert.Equal(t, rec.Header().Get("X-Request-ID"), rec.Body.String())
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})

	rec := do(r, http.MethodGet, "/slow", "")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Contains(t, rec.Body.String(), common.ErrCodeGatewayTimeout)
}
