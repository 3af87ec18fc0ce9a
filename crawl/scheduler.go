// Package crawl provides the crawl scheduler: frontier management,
// bounded-concurrency fetching with politeness and retry, and the
// fetch → parse → normalize → persist pipeline for every page.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/docgraph/docgraph"
	"golang.org/x/sync/errgroup"
)

// Frontier sizing for the raw-URL dedup prefilter.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Scheduler owns the crawl pipeline's collaborators. Parser, Normalizer
// and the path functions are pure and run inline inside whichever worker
// invokes them; the worker pool is the only form of parallelism.
type Scheduler struct {
	Fetcher    docgraph.Fetcher
	Parser     docgraph.PageParser
	Normalizer docgraph.Normalizer
	Documents  docgraph.DocumentService

	// Limiter optionally bounds the aggregate request rate per host.
	Limiter docgraph.HostLimiter

	// Seeds optionally discovers extra depth-0 URLs (e.g. sitemaps).
	Seeds docgraph.SeedSource

	// Logger receives crawl warnings. Defaults to slog.Default().
	Logger *slog.Logger

	// RetryDelays override the fetch backoff schedule. Nil means
	// DefaultRetryDelays.
	RetryDelays []time.Duration
}

// NormalizeDocument runs the parse → normalize stages for a single page
// without touching the frontier or storage. It is the manual
// re-normalization path: callers decide what to do with the document.
func (s *Scheduler) NormalizeDocument(rawHTML string, sourceURL string) (*docgraph.Document, error) {
	page, err := s.Parser.Parse(rawHTML, sourceURL)
	if err != nil || page == nil {
		page = &docgraph.Page{URL: sourceURL}
	}
	res := s.Normalizer.Normalize(page)

	doc := &docgraph.Document{
		DocID:          docgraph.DocID(sourceURL),
		URL:            sourceURL,
		NormalizedPath: docgraph.NormalizePath(sourceURL),
		Title:          page.Meta.Title,
		Section:        page.Meta.Section,
		Content:        res.Blocks,
		OutgoingLinks:  res.OutgoingLinks,
		LastCrawled:    time.Now().UTC(),
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Run is a handle to one crawl run. The run's mutable state (visited set,
// frontier, counters) is owned exclusively by the scheduler's workers;
// callers observe it through Status snapshots.
type Run struct {
	sched  *Scheduler
	cfg    docgraph.CrawlConfig
	logger *slog.Logger

	mu         sync.Mutex
	cond       *sync.Cond
	status     docgraph.CrawlStatus
	visited    map[string]struct{}
	frontier   *Frontier
	inFlight   int
	crawled    int
	failed     int
	startedAt  time.Time
	finishedAt time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// Start validates the configuration, seeds the frontier and launches the
// worker pool. It returns immediately; use the run handle to observe and
// control the crawl. Configuration errors are the only fatal errors; any
// single page's failure is recorded and skipped.
func (s *Scheduler) Start(ctx context.Context, cfg docgraph.CrawlConfig) (*Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Run{
		sched:     s,
		cfg:       cfg,
		logger:    logger,
		status:    docgraph.CrawlRunning,
		visited:   make(map[string]struct{}),
		frontier:  NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate),
		startedAt: time.Now().UTC(),
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
	r.cond = sync.NewCond(&r.mu)

	for _, seed := range cfg.Seeds {
		r.frontier.Push(docgraph.Candidate{URL: seed, Depth: 0})
	}
	if s.Seeds != nil {
		// Discovery runs alongside the workers. Counting it as in-flight
		// keeps the pool alive while the frontier holds nothing but the
		// discovery is still pending.
		r.inFlight++
		go func() {
			discovered, err := s.Seeds.Discover(ctx, cfg.BaseURL)
			if err != nil {
				logger.Warn("seed discovery failed", "base", cfg.BaseURL, "err", err)
			}
			r.mu.Lock()
			for _, u := range discovered {
				if docgraph.IsFetchable(u, cfg.BaseURL) {
					r.frontier.Push(docgraph.Candidate{URL: u, Depth: 0})
				}
			}
			r.inFlight--
			r.cond.Broadcast()
			r.mu.Unlock()
		}()
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Concurrency; i++ {
		g.Go(func() error {
			r.worker(gctx)
			return nil
		})
	}

	// Wake any waiting worker when the caller cancels.
	go func() {
		select {
		case <-ctx.Done():
			r.cond.Broadcast()
		case <-r.done:
		}
	}()

	go func() {
		_ = g.Wait()
		r.mu.Lock()
		r.status = docgraph.CrawlStopped
		r.finishedAt = time.Now().UTC()
		r.mu.Unlock()
		close(r.done)
	}()

	return r, nil
}

// Status returns a point-in-time snapshot of the run.
func (r *Run) Status() docgraph.CrawlSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return docgraph.CrawlSnapshot{
		Status:       r.status,
		VisitedCount: len(r.visited),
		QueuedCount:  r.frontier.Len(),
		InFlight:     r.inFlight,
		Crawled:      r.crawled,
		Failed:       r.failed,
		StartedAt:    r.startedAt,
		FinishedAt:   r.finishedAt,
	}
}

// Stop requests a cooperative stop: workers observe it before dequeuing
// their next item and exit, while in-flight fetches complete or time out
// normally so no partially-written document is persisted.
func (r *Run) Stop() {
	r.stopOnce.Do(func() {
		r.mu.Lock()
		if r.status == docgraph.CrawlRunning {
			r.status = docgraph.CrawlStopping
		}
		r.mu.Unlock()
		close(r.stopCh)
		r.cond.Broadcast()
	})
}

// Wait blocks until the run finishes, naturally or after Stop.
func (r *Run) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// worker pulls candidates until the crawl stops or the frontier drains
// with no fetch in flight.
func (r *Run) worker(ctx context.Context) {
	for {
		cand, ok := r.next(ctx)
		if !ok {
			return
		}

		r.process(ctx, cand)

		// Politeness: wait between the completion of one fetch and the
		// next dequeue from this worker.
		if r.cfg.Delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-r.stopCh:
				return
			case <-time.After(r.cfg.Delay):
			}
		}
	}
}

// next dequeues the next unvisited candidate. The visited check and the
// claim happen under one lock, so no two workers can fetch the same
// normalized path; the path is marked visited before the network call.
// next blocks while the frontier is temporarily empty but fetches are
// still in flight, because those fetches may enqueue more URLs.
func (r *Run) next(ctx context.Context) (docgraph.Candidate, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		if r.status != docgraph.CrawlRunning || ctx.Err() != nil {
			return docgraph.Candidate{}, false
		}

		if cand, ok := r.frontier.Pop(); ok {
			path := docgraph.NormalizePath(cand.URL)
			if path == "" {
				continue
			}
			if _, seen := r.visited[path]; seen {
				continue
			}
			r.visited[path] = struct{}{}
			r.inFlight++
			return cand, true
		}

		if r.inFlight == 0 {
			return docgraph.Candidate{}, false
		}
		r.cond.Wait()
	}
}

// finish publishes a completed fetch's results: counters, and candidate
// links for the frontier. Candidates whose normalized path was already
// claimed are dropped here rather than at fetch time.
func (r *Run) finish(succeeded bool, candidates []docgraph.Candidate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.inFlight--
	if succeeded {
		r.crawled++
	} else {
		r.failed++
	}
	for _, c := range candidates {
		path := docgraph.NormalizePath(c.URL)
		if path == "" {
			continue
		}
		if _, seen := r.visited[path]; seen {
			continue
		}
		r.frontier.Push(c)
	}
	r.cond.Broadcast()
}

// process fetches one page and pushes it through parse → normalize →
// persist. Every failure mode is per-document: recorded, logged, skipped.
func (r *Run) process(ctx context.Context, cand docgraph.Candidate) {
	s := r.sched

	if s.Limiter != nil {
		if u, err := url.Parse(cand.URL); err == nil {
			if err := s.Limiter.Wait(ctx, u.Host); err != nil {
				r.finish(false, nil)
				return
			}
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := fetchWithRetry(ctx, s.Fetcher, cand.URL, r.cfg.FetchTimeout, delays, r.logger)
	if err != nil {
		r.logger.Warn("fetch failed permanently",
			"url", cand.URL,
			"depth", cand.Depth,
			"err", err,
		)
		r.finish(false, nil)
		return
	}

	page, err := s.Parser.Parse(html, cand.URL)
	if err != nil || page == nil {
		// The parser degrades instead of failing; a nil page means the
		// markup was beyond salvage. Persist an empty document so the
		// URL is not re-fetched indefinitely.
		r.logger.Warn("parse degraded to empty page", "url", cand.URL, "err", err)
		page = &docgraph.Page{URL: cand.URL}
	}
	if len(page.Blocks) == 0 {
		r.logger.Warn("page produced no content blocks", "url", cand.URL)
	}

	res := s.Normalizer.Normalize(page)

	now := time.Now().UTC()
	doc := &docgraph.Document{
		DocID:          docgraph.DocID(cand.URL),
		URL:            cand.URL,
		NormalizedPath: docgraph.NormalizePath(cand.URL),
		Title:          page.Meta.Title,
		Section:        page.Meta.Section,
		Content:        res.Blocks,
		OutgoingLinks:  res.OutgoingLinks,
		LastCrawled:    now,
	}

	if existing, err := s.Documents.GetByNormalizedPath(ctx, doc.NormalizedPath); err == nil && existing.URL != doc.URL {
		r.logger.Warn("duplicate normalized path, last-crawled wins",
			"path", doc.NormalizedPath,
			"existing_url", existing.URL,
			"new_url", doc.URL,
		)
	}

	if err := s.Documents.Upsert(ctx, doc); err != nil {
		r.logger.Warn("persist failed", "url", cand.URL, "err", err)
		r.finish(false, nil)
		return
	}

	var candidates []docgraph.Candidate
	if cand.Depth < r.cfg.MaxDepth {
		for _, href := range page.Hrefs {
			if docgraph.IsFetchable(href, r.cfg.BaseURL) {
				candidates = append(candidates, docgraph.Candidate{URL: href, Depth: cand.Depth + 1})
			}
		}
	}

	r.finish(true, candidates)
}
