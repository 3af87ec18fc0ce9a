package main

import (
	"encoding/json"
	"fmt"

	"github.com/docgraph/docgraph"
	"github.com/docgraph/docgraph/graph"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	report, err := graph.RunIntegrityCheck(deps.Ctx, deps.Documents)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(deps.Stdout, "%d documents, %d links, %d broken\n",
		report.Documents, report.TotalLinks, report.BrokenCount)
	for _, b := range report.Broken {
		fmt.Fprintf(deps.Stdout, "  %s -> %s\n", b.SourcePath, b.Target)
	}

	return nil
}
