package mock

import "github.com/fwojciec/nerview"

var _ nerview.Converter = (*Converter)(nil)

// Converter is a mock implementation of nerview.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
