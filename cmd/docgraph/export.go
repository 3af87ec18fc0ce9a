package main

import (
	"fmt"

	"github.com/docgraph/docgraph"
	"github.com/docgraph/docgraph/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.ListAll(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		return err
	}

	exporter := fs.NewExporter(c.Dir, c.Name)
	for _, doc := range docs {
		if err := exporter.Save(doc); err != nil {
			_ = exporter.Abort()
			fmt.Fprintf(deps.Stderr, "error exporting %s: %v\n", doc.NormalizedPath, err)
			return err
		}
	}
	if err := exporter.Commit(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d documents\n", len(docs))
	return nil
}
