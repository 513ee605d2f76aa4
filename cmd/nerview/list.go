package main

import (
	"fmt"

	"github.com/fwojciec/nerview"
	"github.com/fwojciec/nerview/fs"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	paths, err := deps.Documents.FindDocuments()
	if nerview.ErrorCode(err) == nerview.ENOTFOUND {
		fmt.Fprintln(deps.Stdout, "No HTML files found! Put NER HTML files in the 'examples' or 'sample_data' folder.")
		fmt.Fprintf(deps.Stdout, "\nExpected folder structure:\n%s\n", fs.LayoutHint)
		return nil
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nerview.ErrorMessage(err))
		return err
	}

	for _, path := range paths {
		doc, err := deps.Documents.LoadDocument(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", nerview.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s  %.1f KB  %s\n", doc.Path, doc.SizeKB(), doc.ModTime.Format("2006-01-02 15:04"))
	}

	return nil
}
