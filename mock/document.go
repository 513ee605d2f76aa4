package mock

import (
	"encoding/json"

	"github.com/fwojciec/nerview"
)

var _ nerview.DocumentSource = (*DocumentSource)(nil)

// DocumentSource is a mock implementation of nerview.DocumentSource.
type DocumentSource struct {
	FindDocumentsFn func() ([]string, error)
	LoadDocumentFn  func(path string) (*nerview.Document, error)
	LoadStatsFn     func(path string) (json.RawMessage, error)
}

func (s *DocumentSource) FindDocuments() ([]string, error) {
	return s.FindDocumentsFn()
}

func (s *DocumentSource) LoadDocument(path string) (*nerview.Document, error) {
	return s.LoadDocumentFn(path)
}

func (s *DocumentSource) LoadStats(path string) (json.RawMessage, error) {
	return s.LoadStatsFn(path)
}
