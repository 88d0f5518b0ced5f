// Package metadata turns a raw URL into displayable bookmark fields by
// fetching the page and extracting title, description and favicon with
// per-field fallbacks. Extraction is best-effort: nothing here ever fails
// the bookmark creation that triggered it.
package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Meta holds the extracted page fields, defaults already applied.
type Meta struct {
	URL         string `json:"url"` // normalized
	Title       string `json:"title"`
	Description string `json:"description"`
	Favicon     string `json:"favicon"`
}

// Cache stores extraction results per normalized URL. Both methods are
// best-effort; a miss or a failed write only costs a re-fetch.
type Cache interface {
	Get(ctx context.Context, url string) (*Meta, bool)
	Set(ctx context.Context, url string, m *Meta)
}

// Targeted pattern extraction, not a full HTML parse.
var (
	titleRe   = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
	descRe    = regexp.MustCompile(`(?i)<meta[^>]*name=["']description["'][^>]*content=["']([^"']+)["']`)
	faviconRe = regexp.MustCompile(`(?i)<link[^>]*rel=["'](?:icon|shortcut icon)["'][^>]*href=["']([^"']+)["']`)
)

// Fetcher retrieves pages and extracts bookmark metadata.
type Fetcher struct {
	client  *http.Client
	cache   Cache // nil disables caching
	log     *zap.Logger
	maxBody int64
}

// NewFetcher constructs a fetcher with a bounded request timeout and body size.
func NewFetcher(timeout time.Duration, maxBody int64, cache Cache, log *zap.Logger) *Fetcher {
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		cache:   cache,
		log:     log,
		maxBody: maxBody,
	}
}

// NormalizeURL prefixes https:// when the input lacks a scheme.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}

// Fetch retrieves rawURL and extracts page metadata. It always returns a
// usable Meta: network failures, bad statuses and missing elements each fall
// back to defaults (title = normalized URL, description = "", favicon =
// scheme://host/favicon.ico) without aborting the pipeline.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) Meta {
	norm := NormalizeURL(rawURL)
	meta := Meta{URL: norm, Title: norm}

	var origin string // scheme://host
	if u, err := url.Parse(norm); err == nil && u.Host != "" {
		origin = u.Scheme + "://" + u.Host
		meta.Favicon = origin + "/favicon.ico"
	}

	if f.cache != nil {
		if m, ok := f.cache.Get(ctx, norm); ok {
			return *m
		}
	}

	body, err := f.get(ctx, norm)
	if err != nil {
		f.log.Debug("metadata fetch failed", zap.String("url", norm), zap.Error(err))
		return meta
	}

	if m := titleRe.FindSubmatch(body); m != nil {
		if t := strings.TrimSpace(string(m[1])); t != "" {
			meta.Title = t
		}
	}
	if m := descRe.FindSubmatch(body); m != nil {
		meta.Description = strings.TrimSpace(string(m[1]))
	}
	if m := faviconRe.FindSubmatch(body); m != nil && origin != "" {
		meta.Favicon = resolveFavicon(origin, string(m[1]))
	}

	if f.cache != nil {
		f.cache.Set(ctx, norm, &meta)
	}
	return meta
}

// resolveFavicon turns an icon href into an absolute URL against origin.
func resolveFavicon(origin, href string) string {
	switch {
	case strings.HasPrefix(href, "/"):
		return origin + href
	case !strings.HasPrefix(href, "http"):
		return origin + "/" + href
	default:
		return href
	}
}

func (f *Fetcher) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
}
