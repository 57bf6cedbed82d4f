package fetch

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/VantageDataChat/GoDeck/layout"
)

// FileFetcher reads images from disk. It accepts file:// URLs and plain
// paths; relative paths resolve against Root.
type FileFetcher struct {
	Root     string
	MaxBytes int64
}

func (f FileFetcher) Fetch(ctx context.Context, ref string) (layout.Image, error) {
	if err := ctx.Err(); err != nil {
		return layout.Image{}, err
	}
	path := ref
	if strings.HasPrefix(ref, "file://") {
		u, err := url.Parse(ref)
		if err != nil {
			return layout.Image{}, fmt.Errorf("parse %s: %w", ref, err)
		}
		path = u.Path
	}
	if !filepath.IsAbs(path) && f.Root != "" {
		path = filepath.Join(f.Root, path)
	}
	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	fh, err := os.Open(path)
	if err != nil {
		return layout.Image{}, err
	}
	defer fh.Close()
	data, err := readLimited(fh, limit)
	if err != nil {
		return layout.Image{}, fmt.Errorf("reading %s: %w", path, err)
	}
	img, err := Normalize(data)
	if err != nil {
		return layout.Image{}, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Multi routes http(s) URLs to Remote and everything else to Local. A nil
// route fails the fetch.
type Multi struct {
	Remote layout.ImageFetcher
	Local  layout.ImageFetcher
}

func (m Multi) Fetch(ctx context.Context, ref string) (layout.Image, error) {
	target := m.Local
	if isRemote(ref) {
		target = m.Remote
	}
	if target == nil {
		return layout.Image{}, fmt.Errorf("fetch: no fetcher for %q", ref)
	}
	return target.Fetch(ctx, ref)
}

func isRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// WithTimeout bounds every Fetch of next by d.
func WithTimeout(next layout.ImageFetcher, d time.Duration) layout.ImageFetcher {
	if d <= 0 {
		return next
	}
	return layout.ImageFetcherFunc(func(ctx context.Context, ref string) (layout.Image, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return next.Fetch(ctx, ref)
	})
}

// DefaultFlightTimeout bounds a shared cache fetch when Cache.Timeout is
// zero.
const DefaultFlightTimeout = time.Minute

// Cache remembers successful fetches by URL and collapses concurrent
// requests for the same URL into one. Failures are not cached.
//
// The shared fetch does not inherit any caller's cancellation: a caller whose
// context ends returns early while the fetch carries on for the others,
// bounded by Timeout.
type Cache struct {
	Timeout time.Duration

	next  layout.ImageFetcher
	group singleflight.Group

	mu     sync.RWMutex
	images map[string]layout.Image
}

func NewCache(next layout.ImageFetcher) *Cache {
	return &Cache{next: next, images: make(map[string]layout.Image)}
}

func (c *Cache) Fetch(ctx context.Context, ref string) (layout.Image, error) {
	c.mu.RLock()
	img, ok := c.images[ref]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}
	ch := c.group.DoChan(ref, func() (any, error) {
		timeout := c.Timeout
		if timeout <= 0 {
			timeout = DefaultFlightTimeout
		}
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		img, err := c.next.Fetch(fctx, ref)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.images[ref] = img
		c.mu.Unlock()
		return img, nil
	})
	select {
	case <-ctx.Done():
		return layout.Image{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return layout.Image{}, res.Err
		}
		return res.Val.(layout.Image), nil
	}
}

// Len reports how many images are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}
