package docgraph

// BrokenLink is an integrity-check finding: an outgoing link whose target
// normalized path has no corresponding document. Findings are reports,
// never failures; the pipeline does not attempt to repair them.
type BrokenLink struct {
	SourceDocID string `json:"sourceDocId"`
	SourcePath  string `json:"sourcePath"`
	Target      string `json:"target"`
}

// IntegrityReport summarizes one batch integrity pass over the document
// collection.
type IntegrityReport struct {
	Documents   int          `json:"documents"`
	TotalLinks  int          `json:"totalLinks"`
	BrokenCount int          `json:"brokenLinks"`
	Broken      []BrokenLink `json:"brokenLinksList"`
}
