// Package graph builds the bidirectional reference graph over crawled
// documents and reports integrity findings. It runs as a single-threaded
// batch pass over a queried document collection and never runs
// concurrently with active crawling against the same collection.
package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/docgraph/docgraph"
)

// Build returns the forward adjacency: normalized path to the sorted set
// of normalized paths the document references. The result depends only on
// the document set, not on insertion order.
func Build(docs []*docgraph.Document) map[string][]string {
	forward := make(map[string][]string, len(docs))
	for _, doc := range docs {
		if doc.NormalizedPath == "" {
			continue
		}
		targets := dedupeSorted(doc.OutgoingLinks)
		forward[doc.NormalizedPath] = targets
	}
	return forward
}

// Backlinks inverts the forward adjacency into a derived target-to-sources
// index. Sources are sorted; the index is recomputed on demand, never
// stored.
func Backlinks(forward map[string][]string) map[string][]string {
	back := make(map[string][]string)
	for source, targets := range forward {
		for _, target := range targets {
			back[target] = append(back[target], source)
		}
	}
	for target := range back {
		sort.Strings(back[target])
	}
	return back
}

// FindBroken classifies every outgoing link against the set of known
// normalized paths and reports the unresolved ones. Findings are sorted
// by source path, then target, so results are independent of document
// order.
func FindBroken(docs []*docgraph.Document) []docgraph.BrokenLink {
	known := make(map[string]bool, len(docs))
	for _, doc := range docs {
		if doc.NormalizedPath != "" {
			known[doc.NormalizedPath] = true
		}
	}

	var broken []docgraph.BrokenLink
	for _, doc := range docs {
		for _, target := range dedupeSorted(doc.OutgoingLinks) {
			if !known[target] {
				broken = append(broken, docgraph.BrokenLink{
					SourceDocID: doc.DocID,
					SourcePath:  doc.NormalizedPath,
					Target:      target,
				})
			}
		}
	}

	sort.Slice(broken, func(i, j int) bool {
		if broken[i].SourcePath != broken[j].SourcePath {
			return broken[i].SourcePath < broken[j].SourcePath
		}
		return broken[i].Target < broken[j].Target
	})
	return broken
}

// RunIntegrityCheck loads the full collection from storage and produces
// the integrity report.
func RunIntegrityCheck(ctx context.Context, docs docgraph.DocumentService) (*docgraph.IntegrityReport, error) {
	all, err := docs.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	report := &docgraph.IntegrityReport{Documents: len(all)}
	for _, doc := range all {
		report.TotalLinks += len(dedupeSorted(doc.OutgoingLinks))
	}
	report.Broken = FindBroken(all)
	report.BrokenCount = len(report.Broken)
	return report, nil
}

// dedupeSorted returns a sorted copy with duplicates removed. Stored
// outgoing links are already sorted and unique; this keeps the graph
// correct even for documents written by older tooling.
func dedupeSorted(links []string) []string {
	if len(links) == 0 {
		return nil
	}
	out := make([]string, len(links))
	copy(out, links)
	sort.Strings(out)
	j := 0
	for i, link := range out {
		if i == 0 || link != out[i-1] {
			out[j] = link
			j++
		}
	}
	return out[:j]
}
