// Package htmltomarkdown renders annotated documents as Markdown for
// plain-text preview.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/nerview"
)

// Ensure Converter implements nerview.Converter at compile time.
var _ nerview.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. Entity marks are rewritten so each
// mention reads as bold text followed by its type label in code, linked to
// the knowledge-base item when one is present.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms annotated HTML into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nerview.Errorf(nerview.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", nerview.Errorf(nerview.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("mark.entity").Each(func(_ int, mark *goquery.Selection) {
		rewriteMark(mark)
	})

	rewritten, err := doc.Html()
	if err != nil {
		return "", err
	}

	result, err := c.conv.ConvertString(rewritten)
	if err != nil {
		return "", err
	}

	return result, nil
}

func rewriteMark(mark *goquery.Selection) {
	labelSel := mark.Find("span").First()
	if labelSel.Length() == 0 {
		return
	}

	label := nerview.FirstWord(labelSel.Text())
	href, hasLink := labelSel.Find("a").First().Attr("href")
	labelSel.Remove()

	text := strings.TrimSpace(mark.Text())

	var b strings.Builder
	b.WriteString("<strong>")
	b.WriteString(escape(text))
	b.WriteString("</strong>")
	if label != "" {
		b.WriteString(" ")
		if hasLink {
			b.WriteString(`<a href="` + escape(href) + `"><code>` + escape(label) + `</code></a>`)
		} else {
			b.WriteString("<code>" + escape(label) + "</code>")
		}
	}

	mark.ReplaceWithHtml(b.String())
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string {
	return escaper.Replace(s)
}
