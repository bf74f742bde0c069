package middleware

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-ingest/internal/pkg/common"
)

// deduper remembers recent request fingerprints. Stale entries are swept
// lazily from seen, at most once per 10 windows.
type deduper struct {
	mu        sync.Mutex
	window    time.Duration
	requests  map[string]time.Time
	lastSweep time.Time
}

func newDeduper(window time.Duration, now time.Time) *deduper {
	return &deduper{window: window, requests: make(map[string]time.Time), lastSweep: now}
}

func (d *deduper) seen(fingerprint string, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if now.Sub(d.lastSweep) > 10*d.window {
		d.sweep(now)
	}
	if last, ok := d.requests[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}

// sweep drops entries older than 10 windows. Callers hold mu.
func (d *deduper) sweep(now time.Time) {
	d.lastSweep = now
	for k, t := range d.requests {
		if now.Sub(t) > 10*d.window {
			delete(d.requests, k)
		}
	}
}

// Deduplication rejects a POST whose path and body repeat within window.
// A double-submitted import is answered with 429 instead of parsed twice.
func Deduplication(window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		window = time.Second
	}
	d := newDeduper(window, time.Now())

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		fingerprint := c.Request.Method + ":" + c.Request.URL.Path
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogWarn("Failed to read request body", zap.Error(err))
				common.WriteError(c, common.Wrap(common.ErrInvalidRequest, err), false)
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
			fingerprint += ":" + common.HashString(string(body))
		}

		if d.seen(fingerprint, time.Now()) {
			common.LogInfo("Duplicate request rejected", zap.String("path", c.Request.URL.Path))
			common.WriteError(c, common.ErrTooManyRequests, false)
			return
		}

		c.Next()
	}
}
