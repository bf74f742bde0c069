package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultMaxBody = 5 << 20

// Client downloads recipe pages.
type Client struct {
	client  *resty.Client
	maxBody int64
}

// NewClient builds a resty client from the fetch settings.
func NewClient(cfg config.FetchConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(cfg.RetryCount).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &Client{client: client, maxBody: maxBody}
}

// ValidateURL accepts absolute http(s) URLs only.
func ValidateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, common.NewValidationError(fmt.Sprintf("invalid url: %v", err))
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, common.NewValidationError("url must be an absolute http or https URL")
	}
	return u, nil
}

// Fetch downloads the HTML at rawURL, refusing non-HTML responses and bodies
// over the configured limit.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(u.String())
	if err != nil {
		if ctx.Err() != nil {
			return nil, common.Wrap(common.ErrGatewayTimeout, err)
		}
		return nil, common.Wrap(common.ErrFetchFailed, fmt.Errorf("failed to fetch %s: %w", u.Host, err))
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, common.Wrap(common.ErrFetchFailed, fmt.Errorf("%s returned HTTP %d", u.Host, resp.StatusCode()))
	}

	contentType := strings.ToLower(resp.Header().Get("Content-Type"))
	if contentType != "" && !strings.Contains(contentType, "html") {
		return nil, common.Wrap(common.ErrFetchFailed, fmt.Errorf("content type is not HTML: %s", contentType))
	}

	data, err := io.ReadAll(io.LimitReader(body, c.maxBody+1))
	if err != nil {
		return nil, common.Wrap(common.ErrFetchFailed, fmt.Errorf("failed to read response body: %w", err))
	}
	if int64(len(data)) > c.maxBody {
		return nil, common.Wrap(common.ErrFetchFailed, fmt.Errorf("page exceeds %d bytes", c.maxBody))
	}

	common.LogDebug("Fetched recipe page",
		zap.String("host", u.Host),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)),
	)
	return data, nil
}
