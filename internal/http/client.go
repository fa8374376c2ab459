package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "beatmap-browser"

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// ErrEmptyBody is returned by GetJSON when the server answered 2xx without a body.
var ErrEmptyBody = errors.New("empty response body")

// Client wraps HTTP operations with mirror-friendly configuration.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - JSON decoding of API responses
//   - Streaming downloads with progress tracking
//
// Example usage:
//
//	client := NewClient(WithTimeout(30 * time.Second))
//
//	var resp searchResponse
//	err := client.GetJSON(ctx, "https://mirror.example/v2/search", &resp)
//
//	err = client.Download(ctx, archiveURL, file, func(written, total int64) {
//	    fmt.Printf("%d/%d\n", written, total)
//	})
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the overall request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithProxy routes requests through proxy. A nil proxy disables proxying.
func WithProxy(proxy func(*http.Request) (*url.URL, error)) Option {
	return func(c *Client) {
		c.httpClient.Transport = &http.Transport{
			Proxy:               proxy,
			MaxIdleConnsPerHost: 8,
			IdleConnTimeout:     90 * time.Second,
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new HTTP client.
//
// The client is configured with a 60 second timeout and DefaultUserAgent
// unless options say otherwise.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProgressWriter wraps a writer to track download progress.
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header), -1 if unknown.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// open performs a GET request and returns the response once its status has
// been checked. The caller owns the body.
func (c *Client) open(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns a *StatusError for non-2xx responses.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// GetJSON performs a GET request and decodes the JSON body into v.
//
// A 2xx response without a body yields ErrEmptyBody so callers can tell an
// absent payload apart from a malformed one.
//
// Example:
//
//	var set dto.Beatmapset
//	if err := client.GetJSON(ctx, url, &set); err != nil {
//	    return err
//	}
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return ErrEmptyBody
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// Download streams the body of url into w.
//
// Parameters:
//   - ctx: Context for cancellation
//   - url: URL to download from
//   - w: Destination writer, typically a temporary file
//   - onProgress: Optional callback called with (bytesWritten, totalBytes).
//     Pass nil to disable progress tracking
func (c *Client) Download(ctx context.Context, url string, w io.Writer, onProgress func(written, total int64)) error {
	resp, err := c.open(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if onProgress != nil {
		w = &ProgressWriter{
			Writer:   w,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	_, err = io.Copy(w, resp.Body)
	return err
}

// DownloadBytes downloads a file and returns the bytes in memory.
//
// Use this for small files like covers and audio previews. Archives are
// streamed with Download.
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url)
}
