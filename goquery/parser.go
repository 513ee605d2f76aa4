// Package goquery parses entity annotations out of NER-rendered HTML.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/nerview"
	"golang.org/x/net/html"
)

// Selectors used by the NER renderer. Each occurrence is a
// <mark class="entity"> whose nested <span> starts with the type label and
// may hold an <a> linking to the knowledge-base item.
const (
	MarkSelector  = "mark.entity"
	LabelSelector = "span"
	LinkSelector  = "a"
)

var _ nerview.SpanParser = (*Parser)(nil)

// Parser extracts entity spans using CSS selectors.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse returns entity spans in document order. Marks without a nested
// label span, or with an empty label, are skipped.
func (p *Parser) Parse(content string) ([]nerview.EntitySpan, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, nerview.Errorf(nerview.EINVALID, "failed to parse HTML: %v", err)
	}

	var spans []nerview.EntitySpan
	doc.Find(MarkSelector).Each(func(_ int, mark *goquery.Selection) {
		span, ok := parseMark(mark)
		if !ok {
			return
		}
		spans = append(spans, span)
	})

	return spans, nil
}

func parseMark(mark *goquery.Selection) (nerview.EntitySpan, bool) {
	labelSel := mark.Find(LabelSelector).First()
	if labelSel.Length() == 0 {
		return nerview.EntitySpan{}, false
	}

	label := nerview.FirstWord(labelSel.Text())
	if label == "" {
		return nerview.EntitySpan{}, false
	}

	span := nerview.EntitySpan{
		Text:  surfaceText(mark, labelSel),
		Label: label,
		Kind:  nerview.ParseKind(label),
	}

	if href, ok := labelSel.Find(LinkSelector).First().Attr("href"); ok {
		span.QID = nerview.FindQID(href)
	}

	return span, true
}

// surfaceText returns the mark's leading child, which holds the entity text
// ahead of the label span. A mark that opens with its label has no surface
// text.
func surfaceText(mark, label *goquery.Selection) string {
	first := mark.Contents().First()
	if first.Length() == 0 || first.IsSelection(label) {
		return ""
	}
	node := first.Get(0)
	if node.Type == html.TextNode {
		return strings.TrimSpace(node.Data)
	}
	return strings.TrimSpace(first.Text())
}
