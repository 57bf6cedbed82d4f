// Package fetch resolves slide image URLs into embeddable PNG or JPEG bytes.
// HTTPFetcher downloads over a retrying client, FileFetcher reads local
// files, and Multi routes between them by URL scheme. Every fetcher
// normalizes the payload so exporters only ever see PNG or JPEG.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/VantageDataChat/GoDeck/layout"
)

// DefaultMaxBytes caps a single image download.
const DefaultMaxBytes = 20 << 20 // 20 MiB

var (
	ErrTooLarge    = errors.New("fetch: image exceeds size limit")
	ErrUnsupported = errors.New("fetch: unsupported image format")
)

// StatusError reports a non-200 response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.Code)
}

// Options configures NewHTTPFetcher. Zero values take the defaults.
type Options struct {
	Timeout   time.Duration // per attempt, default 15s
	Retries   int           // default 2; negative disables retries
	MaxBytes  int64         // default DefaultMaxBytes
	UserAgent string
}

// HTTPFetcher downloads images over HTTP(S).
type HTTPFetcher struct {
	client    *retryablehttp.Client
	maxBytes  int64
	userAgent string
}

var _ layout.ImageFetcher = (*HTTPFetcher)(nil)

func NewHTTPFetcher(o Options) *HTTPFetcher {
	if o.Timeout <= 0 {
		o.Timeout = 15 * time.Second
	}
	if o.Retries == 0 {
		o.Retries = 2
	} else if o.Retries < 0 {
		o.Retries = 0
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if o.UserAgent == "" {
		o.UserAgent = "godeck-fetch"
	}
	c := retryablehttp.NewClient()
	c.RetryMax = o.Retries
	c.RetryWaitMin = 200 * time.Millisecond
	c.RetryWaitMax = 2 * time.Second
	c.HTTPClient.Timeout = o.Timeout
	c.Logger = nil // suppress retryablehttp's default logging
	return &HTTPFetcher{client: c, maxBytes: o.MaxBytes, userAgent: o.UserAgent}
}

// Fetch downloads url and normalizes the body. The request is abandoned when
// ctx is done, including between retries.
func (h *HTTPFetcher) Fetch(ctx context.Context, url string) (layout.Image, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return layout.Image{}, fmt.Errorf("GET %s: %w", url, err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := h.client.Do(req)
	if err != nil {
		return layout.Image{}, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return layout.Image{}, &StatusError{URL: url, Code: resp.StatusCode}
	}
	body, err := readLimited(resp.Body, h.maxBytes)
	if err != nil {
		return layout.Image{}, fmt.Errorf("reading %s: %w", url, err)
	}
	img, err := Normalize(body)
	if err != nil {
		return layout.Image{}, fmt.Errorf("%s: %w", url, err)
	}
	return img, nil
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, ErrTooLarge
	}
	return body, nil
}
