// Package tools implements the external capabilities roles can call: web
// search, single-page scraping, and site-restricted search.
//
// Every tool honors one contract: text in, text out, and failures are
// absorbed at the boundary. A tool's Run never aborts the enclosing task;
// errors come back as an inline "<name> failed: ..." marker string that the
// role reasons over instead.
package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultUserAgent   = "advisor-research/1.0"
	maxFetchBytes      = 4 << 20 // 4 MiB cap on fetched pages
	maxRedirects       = 5
	defaultToolTimeout = 45 * time.Second
)

// Fetcher retrieves web pages with redirect and size limits. Shared by the
// scrape and site-search tools.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a fetcher with the given timeout. A zero timeout uses
// the package default.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultToolTimeout
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects (max %d)", maxRedirects)
				}
				return nil
			},
		},
		userAgent: defaultUserAgent,
	}
}

// Fetch retrieves the page body at url, capped at maxFetchBytes.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// ValidateURL checks the scheme precondition shared by the research
// pipeline and the scrape tool.
func ValidateURL(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
