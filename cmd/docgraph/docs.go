package main

import (
	"fmt"

	"github.com/docgraph/docgraph"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.ListAll(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		return err
	}

	shown := 0
	for _, doc := range docs {
		if c.Section != "" && doc.Section != c.Section {
			continue
		}
		shown++
		fmt.Fprintf(deps.Stdout, "%s\t%s\t%s\n", doc.NormalizedPath, doc.Section, doc.Title)
		if c.Links {
			for _, link := range doc.OutgoingLinks {
				fmt.Fprintf(deps.Stdout, "\t-> %s\n", link)
			}
		}
	}

	fmt.Fprintf(deps.Stdout, "%d documents\n", shown)
	return nil
}
