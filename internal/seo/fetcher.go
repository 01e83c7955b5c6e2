package seo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// userAgent identifies the service to third-party sites on every fetch.
const userAgent = "Mozilla/5.0 (compatible; SEO-Optimizer/1.0; +https://seo-optimizer.app)"

// DefaultFetchTimeout bounds the wall-clock time of a single page fetch.
const DefaultFetchTimeout = 15 * time.Second

// FetchResult carries either the page body or a human-readable failure
// message; a Fetcher never surfaces a Go error to its caller.
type FetchResult struct {
	HTML string
	Err  string
}

// Fetcher downloads pages with a bounded timeout and a fixed user-agent.
type Fetcher struct {
	client *http.Client
}

// NewFetcher builds a Fetcher. A non-positive timeout falls back to
// DefaultFetchTimeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the page at url. Timeouts, transport failures and non-2xx
// responses all land in the Err variant.
func (f *Fetcher) Fetch(ctx context.Context, url string) FetchResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FetchResult{Err: fmt.Sprintf("Failed to fetch page: %v", err)}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return FetchResult{Err: fmt.Sprintf("Failed to fetch page: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return FetchResult{Err: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FetchResult{Err: fmt.Sprintf("Failed to fetch page: %v", err)}
	}

	return FetchResult{HTML: string(body)}
}
