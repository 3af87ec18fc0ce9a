package mock

import (
	"context"

	"github.com/docgraph/docgraph"
)

var _ docgraph.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of docgraph.Frontier.
type Frontier struct {
	PushFn func(c docgraph.Candidate) bool
	PopFn  func() (docgraph.Candidate, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *Frontier) Push(c docgraph.Candidate) bool {
	return f.PushFn(c)
}

func (f *Frontier) Pop() (docgraph.Candidate, bool) {
	return f.PopFn()
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

func (f *Frontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ docgraph.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of docgraph.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, host)
}

var _ docgraph.SeedSource = (*SeedSource)(nil)

// SeedSource is a mock implementation of docgraph.SeedSource.
type SeedSource struct {
	DiscoverFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SeedSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverFn(ctx, baseURL)
}
