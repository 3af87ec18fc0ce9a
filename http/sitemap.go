package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/docgraph/docgraph"
)

// Ensure SitemapSeeder implements docgraph.SeedSource at compile time.
var _ docgraph.SeedSource = (*SitemapSeeder)(nil)

// SitemapSeeder discovers crawl seed URLs from a site's sitemaps. It
// checks robots.txt for Sitemap directives first and falls back to the
// conventional /sitemap.xml location. Sitemap index files are followed
// recursively.
type SitemapSeeder struct {
	client *http.Client
}

// SeederOption configures a SitemapSeeder.
type SeederOption func(*SitemapSeeder)

// WithSeederClient sets the underlying HTTP client, mainly for tests.
func WithSeederClient(client *http.Client) SeederOption {
	return func(s *SitemapSeeder) {
		s.client = client
	}
}

// NewSitemapSeeder creates a new SitemapSeeder.
func NewSitemapSeeder(opts ...SeederOption) *SitemapSeeder {
	s := &SitemapSeeder{}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: 30 * time.Second}
	}
	return s
}

// Discover returns the URLs listed in the site's sitemaps. baseURL is
// the root of the documentation site (scheme and host are used). A site
// without any sitemap is not an error; Discover returns an empty slice.
func (s *SitemapSeeder) Discover(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docgraph.Errorf(docgraph.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, docgraph.Errorf(docgraph.EINVALID, "base URL %q must be absolute", baseURL)
	}
	root := base.Scheme + "://" + base.Host

	sitemapURLs := s.findSitemapURLs(ctx, root)
	if len(sitemapURLs) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool)
	var urls []string
	for _, sm := range sitemapURLs {
		found, err := s.processSitemap(ctx, sm, seen)
		if err != nil {
			// A malformed or missing sitemap should not abort
			// discovery of the others.
			continue
		}
		urls = append(urls, found...)
	}

	return urls, nil
}

// findSitemapURLs locates sitemap URLs, preferring robots.txt directives
// over the conventional /sitemap.xml path.
func (s *SitemapSeeder) findSitemapURLs(ctx context.Context, root string) []string {
	if urls := s.parseSitemapsFromRobots(ctx, root + "/robots.txt"); len(urls) > 0 {
		return urls
	}
	return []string{root + "/sitemap.xml"}
}

// parseSitemapsFromRobots extracts Sitemap directives from robots.txt.
func (s *SitemapSeeder) parseSitemapsFromRobots(ctx context.Context, robotsURL string) []string {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil
	}

	var urls []string
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := cutPrefixFold(line, "sitemap:"); ok {
			if u := strings.TrimSpace(rest); u != "" {
				urls = append(urls, u)
			}
		}
	}
	return urls
}

// processSitemap fetches and parses a single sitemap document. It
// handles both urlset and sitemapindex roots; index entries are
// processed recursively. seen guards against cycles between index
// files.
func (s *SitemapSeeder) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, fmt.Errorf("parse sitemap %s: %w", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("sitemap %s has no root element", sitemapURL)
	}

	switch root.Tag {
	case "sitemapindex":
		return s.processSitemapIndex(ctx, root, seen)
	case "urlset":
		return parseURLSet(root), nil
	default:
		return nil, fmt.Errorf("sitemap %s has unexpected root element %q", sitemapURL, root.Tag)
	}
}

// processSitemapIndex recurses into each child sitemap of an index.
func (s *SitemapSeeder) processSitemapIndex(ctx context.Context, root *etree.Element, seen map[string]bool) ([]string, error) {
	var urls []string
	for _, sm := range root.SelectElements("sitemap") {
		loc := sm.SelectElement("loc")
		if loc == nil {
			continue
		}
		child := strings.TrimSpace(loc.Text())
		if child == "" {
			continue
		}
		found, err := s.processSitemap(ctx, child, seen)
		if err != nil {
			continue
		}
		urls = append(urls, found...)
	}
	return urls, nil
}

// parseURLSet extracts page URLs from a urlset element.
func parseURLSet(root *etree.Element) []string {
	var urls []string
	for _, u := range root.SelectElements("url") {
		loc := u.SelectElement("loc")
		if loc == nil {
			continue
		}
		if page := strings.TrimSpace(loc.Text()); page != "" {
			urls = append(urls, page)
		}
	}
	return urls
}

// get fetches a URL and returns the body, erroring on non-200 status.
func (s *SitemapSeeder) get(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, u)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// cutPrefixFold is strings.CutPrefix with ASCII case folding on the
// prefix, for robots.txt directives which are case-insensitive.
func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}
