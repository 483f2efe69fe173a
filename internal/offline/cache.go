// Package offline mirrors a deployed wird site into a local versioned cache
// and routes reads between cache and network per request class. Exactly one
// generation is active per app version; activating a new one deletes every
// older generation, and never before the new one is populated.
package offline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// ErrUnavailable is the hard failure for a request with no usable cache and
// no reachable network.
var ErrUnavailable = errors.New("offline: resource unavailable")

// entryPoint is the navigation fallback document.
const entryPoint = "index.html"

// DefaultAssets is the static asset list pre-populated on install.
var DefaultAssets = []string{
	"index.html",
	"manifest.json",
	"data.json",
	"strings.json",
}

var fileExtRe = regexp.MustCompile(`(?i)/[^/?]+\.[a-z0-9]+$`)

func hasFileExtension(ref string) bool {
	return fileExtRe.MatchString("/" + strings.TrimPrefix(ref, "/"))
}

type Cache struct {
	base       *url.URL
	dir        string // cache root holding one subdirectory per generation
	generation string
	assets     []string
	client     *http.Client
}

// New builds a cache for baseURL under dir, bucketed by generation.
func New(baseURL, dir, generation string) (*Cache, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("offline: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("offline: base url %q needs scheme and host", baseURL)
	}
	return &Cache{
		base:       u,
		dir:        dir,
		generation: generation,
		assets:     DefaultAssets,
		client:     &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// SetAssets overrides the install asset list.
func (c *Cache) SetAssets(assets []string) { c.assets = assets }

// Generation returns the active cache bucket name.
func (c *Cache) Generation() string { return c.generation }

// Install pre-populates the generation with the full asset list. Individual
// fetch failures are tolerated; a partial cache is accepted and never
// retried here.
func (c *Cache) Install(ctx context.Context) error {
	if err := os.MkdirAll(c.genDir(), 0o755); err != nil {
		return err
	}
	for _, asset := range c.assets {
		body, err := c.fetchNetwork(ctx, asset)
		if err != nil {
			continue
		}
		_ = c.put(asset, body)
	}
	return nil
}

// Activate deletes every generation whose name differs from the current one.
func (c *Cache) Activate() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if !e.IsDir() || e.Name() == c.generation {
			continue
		}
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Generations lists the cache buckets currently on disk.
func (c *Cache) Generations() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Fetch resolves ref (a path relative to the base URL) through the routing
// policy. Absolute URLs pointing at a foreign origin pass through to the
// network untouched and are never cached.
func (c *Cache) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		if u.Host != c.base.Host {
			return c.fetchURL(ctx, u.String())
		}
		ref = strings.TrimPrefix(u.Path, "/")
	}
	ref = strings.TrimPrefix(ref, "/")

	switch {
	case strings.HasSuffix(ref, ".apk"):
		// Binary package downloads blow cache quotas and version
		// independently of the app: always network, never cached.
		return c.fetchNetwork(ctx, ref)
	case ref == "" || !hasFileExtension(ref):
		return c.fetchNavigation(ctx, ref)
	case strings.HasSuffix(ref, ".json"):
		return c.fetchStaleWhileRevalidate(ctx, ref)
	default:
		return c.fetchCacheFirst(ctx, ref)
	}
}

// fetchNavigation is network-first: a fresh response overwrites the cached
// entry point; on failure the cached entry point answers instead.
func (c *Cache) fetchNavigation(ctx context.Context, ref string) ([]byte, error) {
	fresh, err := c.fetchNetwork(ctx, ref)
	if err == nil {
		_ = c.put(entryPoint, fresh)
		return fresh, nil
	}
	if cached, ok := c.get(entryPoint); ok {
		return cached, nil
	}
	return nil, ErrUnavailable
}

// fetchStaleWhileRevalidate returns the cached copy immediately when present
// and refreshes it from the network in the background. The refresh is not
// cancellable; a late result only updates the cache for the next reader.
func (c *Cache) fetchStaleWhileRevalidate(ctx context.Context, ref string) ([]byte, error) {
	if cached, ok := c.get(ref); ok {
		go func() {
			body, err := c.fetchNetwork(context.Background(), ref)
			if err == nil {
				_ = c.put(ref, body)
			}
		}()
		return cached, nil
	}
	body, err := c.fetchNetwork(ctx, ref)
	if err != nil {
		return nil, ErrUnavailable
	}
	_ = c.put(ref, body)
	return body, nil
}

func (c *Cache) fetchCacheFirst(ctx context.Context, ref string) ([]byte, error) {
	if cached, ok := c.get(ref); ok {
		return cached, nil
	}
	body, err := c.fetchNetwork(ctx, ref)
	if err != nil {
		return nil, ErrUnavailable
	}
	_ = c.put(ref, body)
	return body, nil
}

func (c *Cache) fetchNetwork(ctx context.Context, ref string) ([]byte, error) {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + ref
	return c.fetchURL(ctx, u.String())
}

func (c *Cache) fetchURL(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("offline: %s: unexpected status %d", rawURL, res.StatusCode)
	}
	return io.ReadAll(res.Body)
}

func (c *Cache) genDir() string { return filepath.Join(c.dir, c.generation) }

func (c *Cache) entryPath(ref string) string {
	return filepath.Join(c.genDir(), url.PathEscape(ref))
}

func (c *Cache) get(ref string) ([]byte, bool) {
	b, err := os.ReadFile(c.entryPath(ref))
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *Cache) put(ref string, body []byte) error {
	if err := os.MkdirAll(c.genDir(), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.entryPath(ref), body, 0o644)
}
