package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/docgraph/docgraph"
	"github.com/docgraph/docgraph/bloom"
)

// Compile-time interface verification.
var _ docgraph.Frontier = (*Frontier)(nil)

// Frontier is an in-memory crawl queue ordered by discovery depth, with
// Bloom filter deduplication of raw URLs. Shallower candidates are popped
// first; candidates at the same depth come out in insertion order. It is
// safe for concurrent use by multiple goroutines.
//
// The Bloom filter only prevents the queue from filling with repeats of
// the same raw URL; the scheduler's visited set provides the exact
// once-per-normalized-path guarantee.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *candidateHeap
	seq   uint64
}

// NewFrontier creates a Frontier sized for n expected URLs with the given
// false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &candidateHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a candidate to the frontier.
// Returns false if the URL has already been seen. URL fragments are
// stripped before deduplication, so URLs differing only by fragment are
// considered duplicates.
func (f *Frontier) Push(c docgraph.Candidate) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	c.URL = stripFragment(c.URL)
	if f.seen.Test(c.URL) {
		return false
	}
	f.seen.Add(c.URL)

	f.seq++
	heap.Push(f.queue, queued{Candidate: c, seq: f.seq})
	return true
}

// Pop returns the next candidate, shallowest depth first.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (docgraph.Candidate, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return docgraph.Candidate{}, false
	}
	q, _ := heap.Pop(f.queue).(queued)
	return q.Candidate, true
}

// Len returns the number of queued candidates.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen reports whether the URL was ever pushed. Fragments are stripped
// before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if i := strings.Index(url, "#"); i != -1 {
		return url[:i]
	}
	return url
}

// queued pairs a candidate with a monotonic sequence number so the heap
// is FIFO within a depth level.
type queued struct {
	docgraph.Candidate
	seq uint64
}

// candidateHeap implements heap.Interface as a min-heap on (depth, seq).
type candidateHeap []queued

func (h candidateHeap) Len() int { return len(h) }

func (h candidateHeap) Less(i, j int) bool {
	if h[i].Depth != h[j].Depth {
		return h[i].Depth < h[j].Depth
	}
	return h[i].seq < h[j].seq
}

func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x any) {
	q, _ := x.(queued)
	*h = append(*h, q)
}

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
