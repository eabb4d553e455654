// Package fetch retrieves raw HTML from news sites.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Redoy0/political-violence-monitor/internal/logger"
)

// maxResponseBodyBytes limits the size of fetched page responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// Error wraps a fetch failure with the URL it occurred on.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fetcher retrieves HTML pages with a browser-like client identity.
// News sites aggressively block default Go user agents.
type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    logger.Interface
}

// New creates a fetcher. Per-request timeouts are applied via context
// deadlines in Fetch, so the underlying client carries none.
func New(userAgent string, log logger.Interface) *Fetcher {
	return &Fetcher{
		client:    &http.Client{},
		userAgent: userAgent,
		logger:    log,
	}
}

// Fetch retrieves the page at url, honoring the given timeout.
func (f *Fetcher) Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return nil, &Error{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	f.logger.Debug("fetched page", "url", url, "bytes", len(body))
	return body, nil
}
