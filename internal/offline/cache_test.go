package offline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// testServer serves a mutable set of paths and counts hits per path.
type testServer struct {
	mu    sync.Mutex
	body  map[string]string
	hits  map[string]int
	down  atomic.Bool
	httpS *httptest.Server
}

func newTestServer(t *testing.T, body map[string]string) *testServer {
	t.Helper()
	ts := &testServer{body: body, hits: map[string]int{}}
	ts.httpS = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ts.down.Load() {
			// connection-level failure stand-in
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		ts.mu.Lock()
		ts.hits[r.URL.Path]++
		b, ok := ts.body[r.URL.Path]
		ts.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(b))
	}))
	t.Cleanup(ts.httpS.Close)
	return ts
}

func (ts *testServer) hitCount(path string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.hits[path]
}

func (ts *testServer) setBody(path, body string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.body[path] = body
}

func newTestCache(t *testing.T, baseURL, generation string) *Cache {
	t.Helper()
	c, err := New(baseURL, t.TempDir(), generation)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	return c
}

func TestInstallToleratesPartialFailure(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"/index.html": "<html>",
		"/data.json":  "[]",
		// manifest.json and strings.json missing: 404s are tolerated
	})
	c := newTestCache(t, ts.httpS.URL, "wird-v1")

	if err := c.Install(context.Background()); err != nil {
		t.Fatalf("install: %v", err)
	}
	if _, ok := c.get("index.html"); !ok {
		t.Fatal("index.html not cached")
	}
	if _, ok := c.get("data.json"); !ok {
		t.Fatal("data.json not cached")
	}
	if _, ok := c.get("manifest.json"); ok {
		t.Fatal("failed asset was cached anyway")
	}
}

func TestActivateDeletesOldGenerationsOnly(t *testing.T) {
	dir := t.TempDir()
	for _, gen := range []string{"wird-v1", "wird-v2", "wird-v3"} {
		if err := os.MkdirAll(filepath.Join(dir, gen), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	c, err := New("http://localhost:1", dir, "wird-v3")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Activate(); err != nil {
		t.Fatalf("activate: %v", err)
	}
	gens, err := c.Generations()
	if err != nil {
		t.Fatal(err)
	}
	if len(gens) != 1 || gens[0] != "wird-v3" {
		t.Fatalf("generations after activate = %v", gens)
	}
}

func TestJSONStaleWhileRevalidate(t *testing.T) {
	ts := newTestServer(t, map[string]string{"/data.json": "v1"})
	c := newTestCache(t, ts.httpS.URL, "wird-v1")
	ctx := context.Background()

	// no cache yet: waits for the network
	got, err := c.Fetch(ctx, "data.json")
	if err != nil || string(got) != "v1" {
		t.Fatalf("cold fetch = %q, %v", got, err)
	}

	// cached copy answers immediately even though the server moved on
	ts.setBody("/data.json", "v2")
	got, err = c.Fetch(ctx, "data.json")
	if err != nil || string(got) != "v1" {
		t.Fatalf("warm fetch = %q, %v", got, err)
	}

	// the background refresh lands eventually
	deadline := time.Now().Add(2 * time.Second)
	for {
		if b, ok := c.get("data.json"); ok && string(b) == "v2" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("background revalidation never updated the cache")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestJSONOfflineServedFromCache(t *testing.T) {
	ts := newTestServer(t, map[string]string{"/data.json": "catalog"})
	c := newTestCache(t, ts.httpS.URL, "wird-v1")
	ctx := context.Background()

	if _, err := c.Fetch(ctx, "data.json"); err != nil {
		t.Fatal(err)
	}
	ts.down.Store(true)

	got, err := c.Fetch(ctx, "data.json")
	if err != nil || string(got) != "catalog" {
		t.Fatalf("offline fetch = %q, %v", got, err)
	}
}

func TestJSONOfflineNoCacheIsHardFailure(t *testing.T) {
	ts := newTestServer(t, map[string]string{})
	ts.down.Store(true)
	c := newTestCache(t, ts.httpS.URL, "wird-v1")

	_, err := c.Fetch(context.Background(), "strings.json")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestNavigationNetworkFirstRefreshesEntryPoint(t *testing.T) {
	ts := newTestServer(t, map[string]string{"/": "fresh-shell", "/index.html": "fresh-shell"})
	c := newTestCache(t, ts.httpS.URL, "wird-v1")
	ctx := context.Background()

	// stale cached entry point from a previous session
	if err := c.put(entryPoint, []byte("stale-shell")); err != nil {
		t.Fatal(err)
	}

	got, err := c.Fetch(ctx, "")
	if err != nil || string(got) != "fresh-shell" {
		t.Fatalf("navigation fetch = %q, %v", got, err)
	}
	if b, _ := c.get(entryPoint); string(b) != "fresh-shell" {
		t.Fatalf("entry point not overwritten: %q", b)
	}
}

func TestNavigationFallsBackToCachedEntryPoint(t *testing.T) {
	ts := newTestServer(t, map[string]string{})
	ts.down.Store(true)
	c := newTestCache(t, ts.httpS.URL, "wird-v1")

	if err := c.put(entryPoint, []byte("shell")); err != nil {
		t.Fatal(err)
	}
	got, err := c.Fetch(context.Background(), "some/route")
	if err != nil || string(got) != "shell" {
		t.Fatalf("fallback = %q, %v", got, err)
	}

	// nothing cached at all: hard failure
	c2 := newTestCache(t, ts.httpS.URL, "wird-v1")
	if _, err := c2.Fetch(context.Background(), "some/route"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestStaticAssetsCacheFirst(t *testing.T) {
	ts := newTestServer(t, map[string]string{"/style.css": "body{}"})
	c := newTestCache(t, ts.httpS.URL, "wird-v1")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := c.Fetch(ctx, "style.css")
		if err != nil || string(got) != "body{}" {
			t.Fatalf("fetch %d = %q, %v", i, got, err)
		}
	}
	if hits := ts.hitCount("/style.css"); hits != 1 {
		t.Fatalf("network hits = %d, want 1 (cache-first)", hits)
	}
}

func TestAPKAlwaysNetworkNeverCached(t *testing.T) {
	ts := newTestServer(t, map[string]string{"/app/wird.apk": "binary"})
	c := newTestCache(t, ts.httpS.URL, "wird-v1")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := c.Fetch(ctx, "app/wird.apk")
		if err != nil || string(got) != "binary" {
			t.Fatalf("apk fetch = %q, %v", got, err)
		}
	}
	if hits := ts.hitCount("/app/wird.apk"); hits != 2 {
		t.Fatalf("network hits = %d, want 2 (no caching)", hits)
	}
	if _, ok := c.get("app/wird.apk"); ok {
		t.Fatal("apk was cached")
	}
}

func TestForeignOriginPassthrough(t *testing.T) {
	foreign := newTestServer(t, map[string]string{"/verify.json": "external"})
	local := newTestServer(t, map[string]string{})
	c := newTestCache(t, local.httpS.URL, "wird-v1")

	ref := foreign.httpS.URL + "/verify.json"
	got, err := c.Fetch(context.Background(), ref)
	if err != nil || string(got) != "external" {
		t.Fatalf("foreign fetch = %q, %v", got, err)
	}
	u, _ := url.Parse(ref)
	if _, ok := c.get(u.Path); ok {
		t.Fatal("foreign response was cached")
	}
	// repeated fetch goes to the network again
	if _, err := c.Fetch(context.Background(), ref); err != nil {
		t.Fatal(err)
	}
	if hits := foreign.hitCount("/verify.json"); hits != 2 {
		t.Fatalf("foreign hits = %d, want 2", hits)
	}
}
