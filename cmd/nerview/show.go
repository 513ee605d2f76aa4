package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fwojciec/nerview"
	"github.com/fwojciec/nerview/extract"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	doc, err := deps.Documents.LoadDocument(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nerview.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "File: %s\n", doc.Path)
	fmt.Fprintf(deps.Stdout, "Size: %.1f KB\n", doc.SizeKB())
	fmt.Fprintf(deps.Stdout, "Modified: %s\n", doc.ModTime.Format("2006-01-02 15:04:05"))

	fmt.Fprintln(deps.Stdout, "\n## Statistics")
	writeStats(deps, doc.Path)

	if c.Preview {
		md, err := deps.Converter.Convert(doc.Content)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", nerview.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "\n## Document\n%s\n", md)
	}

	if c.NoResolve {
		spans, err := deps.Extractor.Parser.Parse(doc.Content)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", nerview.ErrorMessage(err))
			return err
		}
		writeCounts(deps.Stdout, nerview.CountKinds(spans))
		return nil
	}

	result, err := deps.Extractor.Extract(deps.Ctx, doc.Content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nerview.ErrorMessage(err))
		return err
	}
	if deps.Metrics != nil {
		deps.Metrics.IncExtracted()
	}

	writeCounts(deps.Stdout, result.Counts)
	writeEntities(deps.Stdout, result)

	for _, d := range result.Diagnostics {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", d)
	}
	if w := result.Warning(); w != "" {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", w)
	}

	return nil
}

func writeStats(deps *Dependencies, path string) {
	stats, err := deps.Documents.LoadStats(path)
	if err != nil {
		fmt.Fprintln(deps.Stdout, nerview.ErrorMessage(err))
		return
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, stats, "", "  "); err != nil {
		fmt.Fprintln(deps.Stdout, string(stats))
		return
	}
	fmt.Fprintln(deps.Stdout, buf.String())
}

func writeCounts(w io.Writer, counts map[string]int) {
	fmt.Fprintln(w, "\n## Entity Type Distribution")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Entity Type\tCount")
	for _, kc := range nerview.SortedCounts(counts) {
		fmt.Fprintf(tw, "%s\t%d\n", kc.Label, kc.Count)
	}
	_ = tw.Flush()
}

func writeEntities(w io.Writer, result *extract.Result) {
	fmt.Fprintf(w, "\n## Geographic Entities (%d)\n", len(result.Entities))
	if len(result.Entities) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Text\tType\tWikidata Label\tDescription\tOccurrences")
	for _, e := range result.Entities {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", e.Text(), e.Kind, e.Label, e.Description, e.Occurrences)
	}
	_ = tw.Flush()
}
