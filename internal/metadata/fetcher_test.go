package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFetcher(cache Cache) *Fetcher {
	return NewFetcher(2*time.Second, 1<<20, cache, zap.NewNop())
}

func servePage(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNormalizeURL(t *testing.T) {
	require.Equal(t, "https://example.com", NormalizeURL("example.com"))
	require.Equal(t, "https://example.com/a?b=c", NormalizeURL("example.com/a?b=c"))
	require.Equal(t, "http://example.com", NormalizeURL("http://example.com"))
	require.Equal(t, "https://example.com", NormalizeURL("  example.com "))
}

func TestFetcher_ExtractsAllFields(t *testing.T) {
	srv := servePage(t, `<html><head>
<title> Example Domain </title>
<meta name="description" content="Illustrative examples">
<link rel="icon" href="https://cdn.example.com/icon.png">
</head><body></body></html>`)

	meta := newTestFetcher(nil).Fetch(context.Background(), srv.URL)
	require.Equal(t, srv.URL, meta.URL)
	require.Equal(t, "Example Domain", meta.Title)
	require.Equal(t, "Illustrative examples", meta.Description)
	require.Equal(t, "https://cdn.example.com/icon.png", meta.Favicon)
}

func TestFetcher_RootRelativeFavicon(t *testing.T) {
	srv := servePage(t, `<html><head><link rel="shortcut icon" href="/icon.png"></head></html>`)

	meta := newTestFetcher(nil).Fetch(context.Background(), srv.URL)
	require.Equal(t, srv.URL+"/icon.png", meta.Favicon)
}

func TestFetcher_SchemelessFavicon(t *testing.T) {
	srv := servePage(t, `<html><head><link rel="icon" href="icon.png"></head></html>`)

	meta := newTestFetcher(nil).Fetch(context.Background(), srv.URL)
	require.Equal(t, srv.URL+"/icon.png", meta.Favicon)
}

func TestFetcher_MissingFieldsFallBack(t *testing.T) {
	srv := servePage(t, `<html><head><title>Only a title</title></head></html>`)

	meta := newTestFetcher(nil).Fetch(context.Background(), srv.URL)
	require.Equal(t, "Only a title", meta.Title)
	require.Equal(t, "", meta.Description)
	require.Equal(t, srv.URL+"/favicon.ico", meta.Favicon)
}

func TestFetcher_FetchFailureUsesDefaults(t *testing.T) {
	// Nothing listens here; the fetch fails entirely.
	const dead = "https://127.0.0.1:1"

	meta := newTestFetcher(nil).Fetch(context.Background(), dead)
	require.Equal(t, dead, meta.URL)
	require.Equal(t, dead, meta.Title)
	require.Equal(t, "", meta.Description)
	require.Equal(t, dead+"/favicon.ico", meta.Favicon)
}

func TestFetcher_BadStatusUsesDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	meta := newTestFetcher(nil).Fetch(context.Background(), srv.URL)
	require.Equal(t, srv.URL, meta.Title)
	require.Equal(t, srv.URL+"/favicon.ico", meta.Favicon)
}

type mapCache struct {
	entries map[string]*Meta
	sets    int
}

func (c *mapCache) Get(_ context.Context, url string) (*Meta, bool) {
	m, ok := c.entries[url]
	return m, ok
}

func (c *mapCache) Set(_ context.Context, url string, m *Meta) {
	c.entries[url] = m
	c.sets++
}

func TestFetcher_CacheHitSkipsFetch(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(`<title>fresh</title>`))
	}))
	t.Cleanup(srv.Close)

	cached := &Meta{URL: srv.URL, Title: "cached"}
	cache := &mapCache{entries: map[string]*Meta{srv.URL: cached}}

	meta := newTestFetcher(cache).Fetch(context.Background(), srv.URL)
	require.Equal(t, "cached", meta.Title)
	require.Zero(t, hits)
}

func TestFetcher_SuccessPopulatesCache(t *testing.T) {
	srv := servePage(t, `<title>fresh</title>`)
	cache := &mapCache{entries: map[string]*Meta{}}

	meta := newTestFetcher(cache).Fetch(context.Background(), srv.URL)
	require.Equal(t, "fresh", meta.Title)
	require.Equal(t, 1, cache.sets)
	require.Equal(t, "fresh", cache.entries[srv.URL].Title)
}

func TestFetcher_FailureDoesNotPopulateCache(t *testing.T) {
	cache := &mapCache{entries: map[string]*Meta{}}

	newTestFetcher(cache).Fetch(context.Background(), "https://127.0.0.1:1")
	require.Zero(t, cache.sets)
}
