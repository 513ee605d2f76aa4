package mock

import "github.com/fwojciec/nerview"

var _ nerview.SpanParser = (*SpanParser)(nil)

// SpanParser is a mock implementation of nerview.SpanParser.
type SpanParser struct {
	ParseFn func(html string) ([]nerview.EntitySpan, error)
}

func (p *SpanParser) Parse(html string) ([]nerview.EntitySpan, error) {
	return p.ParseFn(html)
}
