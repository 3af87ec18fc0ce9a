package docgraph

import (
	"context"
	"net/url"
	"time"
)

// CrawlStatus is the scheduler state machine:
// idle → running → {stopping → stopped} or stopped naturally when the
// frontier drains.
type CrawlStatus string

// Crawl run states.
const (
	CrawlIdle     CrawlStatus = "idle"
	CrawlRunning  CrawlStatus = "running"
	CrawlStopping CrawlStatus = "stopping"
	CrawlStopped  CrawlStatus = "stopped"
)

// CrawlSnapshot is a point-in-time copy of a run's state. Concurrent
// status queries read snapshots; the live state is owned exclusively by
// the scheduler.
type CrawlSnapshot struct {
	Status       CrawlStatus `json:"status"`
	VisitedCount int         `json:"visitedCount"`
	QueuedCount  int         `json:"queuedCount"`
	InFlight     int         `json:"inFlight"`
	Crawled      int         `json:"crawled"`
	Failed       int         `json:"failed"`
	StartedAt    time.Time   `json:"startedAt"`
	FinishedAt   time.Time   `json:"finishedAt,omitempty"`
}

// Candidate is a frontier entry: a discovered absolute URL and its
// distance from the seed. Depth is measured in discovery hops, not URL
// path segments.
type Candidate struct {
	URL   string
	Depth int
}

// CrawlConfig configures one crawl run.
type CrawlConfig struct {
	// Seeds are the start URLs, enqueued at depth 0.
	Seeds []string

	// BaseURL scopes the crawl to one host. Defaults to the first seed.
	BaseURL string

	// MaxDepth bounds link-following; links discovered on pages at
	// MaxDepth are not enqueued.
	MaxDepth int

	// Delay is honored by each worker between the completion of one
	// fetch and its next dequeue.
	Delay time.Duration

	// Concurrency is the fixed worker pool size.
	Concurrency int

	// FetchTimeout bounds each network fetch.
	FetchTimeout time.Duration
}

// Defaults applied by Validate.
const (
	DefaultMaxDepth     = 10
	DefaultDelay        = time.Second
	DefaultConcurrency  = 5
	DefaultFetchTimeout = 30 * time.Second
)

// Validate checks the configuration and fills defaults. Configuration
// errors are the only fatal errors in the pipeline; everything downstream
// degrades per-document instead of failing the run.
func (c *CrawlConfig) Validate() error {
	if len(c.Seeds) == 0 {
		return Errorf(EINVALID, "at least one seed URL required")
	}
	for _, seed := range c.Seeds {
		u, err := url.Parse(seed)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Errorf(EINVALID, "invalid seed URL %q", seed)
		}
	}
	if c.Concurrency < 1 {
		return Errorf(EINVALID, "concurrency must be at least 1")
	}
	if c.MaxDepth < 0 {
		return Errorf(EINVALID, "max depth must not be negative")
	}
	if c.BaseURL == "" {
		c.BaseURL = c.Seeds[0]
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Host == "" {
		return Errorf(EINVALID, "invalid base URL %q", c.BaseURL)
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	return nil
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page body. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	Close() error
}

// Frontier manages the set of discovered-but-unfetched URLs with
// deduplication of raw URLs. Exact once-per-path dedup is the scheduler's
// job via its visited set; the frontier only prevents the queue from
// filling with repeats.
type Frontier interface {
	// Push adds a candidate. Returns false if the URL has already been
	// seen by this frontier.
	Push(c Candidate) bool

	// Pop returns the next candidate, shallowest depth first.
	// Returns false if the frontier is empty.
	Pop() (Candidate, bool)

	// Len returns the number of queued candidates.
	Len() int

	// Seen reports whether the URL was ever pushed.
	Seen(url string) bool
}

// HostLimiter bounds the aggregate request rate per host, on top of the
// per-worker politeness delay.
type HostLimiter interface {
	// Wait blocks until the limiter allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}

// SeedSource discovers additional seed URLs for a site, e.g. from
// sitemaps. Discovered URLs still pass the fetchability filter before
// entering the frontier.
type SeedSource interface {
	Discover(ctx context.Context, baseURL string) ([]string, error)
}
