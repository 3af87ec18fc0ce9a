package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/docgraph/docgraph"
)

// Run executes the normalize command.
func (c *NormalizeCmd) Run(deps *Dependencies) error {
	var raw []byte
	var err error
	if c.File == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(c.File)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	doc, err := deps.Scheduler.NormalizeDocument(string(raw), c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		return err
	}

	if c.Save {
		if err := deps.Documents.Upsert(deps.Ctx, doc); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved %s (%d blocks)\n", doc.NormalizedPath, len(doc.Content))
		return nil
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
