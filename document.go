package nerview

import (
	"encoding/json"
	"time"
)

// Document is an annotated HTML file loaded for a single view.
type Document struct {
	Path    string    `json:"path"`
	Content string    `json:"-"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// SizeKB returns the file size in kilobytes.
func (d *Document) SizeKB() float64 {
	return float64(d.Size) / 1024
}

// DocumentSource discovers and loads annotated documents.
type DocumentSource interface {
	// FindDocuments returns the paths of all annotated documents, sorted.
	// Returns ENOTFOUND if there are none.
	FindDocuments() ([]string, error)

	// LoadDocument reads the document at path.
	// Returns ENOTFOUND if the path is not a discovered document.
	LoadDocument(path string) (*Document, error)

	// LoadStats returns the statistics sidecar of the document verbatim.
	// Returns ENOTFOUND if the document has no sidecar.
	LoadStats(path string) (json.RawMessage, error)
}
