package gsheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// Fetcher retrieves the text behind a URL.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// StatusError is returned for a non-2xx response.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// HTTPFetcher fetches over HTTP with a client that shares no global state.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns a fetcher whose requests time out after timeout.
// A zero timeout means no limit beyond the request context.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	c := cleanhttp.DefaultClient()
	c.Timeout = timeout
	return &HTTPFetcher{client: c}
}

// FetchText issues a GET and returns the response body.
func (f *HTTPFetcher) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: url, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(body), nil
}
