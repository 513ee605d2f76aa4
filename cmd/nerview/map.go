package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/nerview"
	"github.com/fwojciec/nerview/etree"
	"github.com/fwojciec/nerview/leaflet"
)

// Run executes the map command.
func (c *MapCmd) Run(deps *Dependencies) error {
	doc, err := deps.Documents.LoadDocument(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nerview.ErrorMessage(err))
		return err
	}

	result, err := deps.Extractor.Extract(deps.Ctx, doc.Content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nerview.ErrorMessage(err))
		return err
	}
	if deps.Metrics != nil {
		deps.Metrics.IncExtracted()
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", d)
	}

	m := result.Map()

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Output, err)
	}
	if err := writeMap(f, c.Format, doc.Path, m); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s map: %w", c.Format, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	if w := result.Warning(); w != "" {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", w)
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d markers to %s\n", len(m.Markers), c.Output)
	return nil
}

func writeMap(w io.Writer, format, name string, m *nerview.Map) error {
	switch format {
	case "geojson":
		return leaflet.WriteGeoJSON(w, m)
	case "kml":
		return etree.WriteKML(w, m, name)
	case "html", "":
		return leaflet.NewRenderer().Render(w, m)
	default:
		return nerview.Errorf(nerview.EINVALID, "unknown map format %q", format)
	}
}
