package goquery_test

import (
	"testing"

	"github.com/fwojciec/nerview"
	"github.com/fwojciec/nerview/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Parser implements nerview.SpanParser at compile time.
var _ nerview.SpanParser = (*goquery.Parser)(nil)

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("extracts spans in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>
U <mark class="entity">Beogradu <span>LOC <a href="https://www.wikidata.org/wiki/Q3711">Q3711</a></span></mark>
je bio <mark class="entity">Nikola Tesla <span>PERS <a href="https://www.wikidata.org/wiki/Q9036">Q9036</a></span></mark>
sa <mark class="entity">Srbima <span>DEMO</span></mark>.
</p></body></html>`

		spans, err := goquery.NewParser().Parse(html)

		require.NoError(t, err)
		require.Len(t, spans, 3)

		assert.Equal(t, nerview.EntitySpan{Text: "Beogradu", Label: "LOC", Kind: nerview.KindLocation, QID: "Q3711"}, spans[0])
		assert.Equal(t, nerview.EntitySpan{Text: "Nikola Tesla", Label: "PERS", Kind: nerview.KindPerson, QID: "Q9036"}, spans[1])
		assert.Equal(t, nerview.EntitySpan{Text: "Srbima", Label: "DEMO", Kind: nerview.KindDemonym}, spans[2])
	})

	t.Run("skips marks without a label span", func(t *testing.T) {
		t.Parallel()

		html := `<mark class="entity">Beograd</mark><mark class="entity">Niš <span>LOC</span></mark>`

		spans, err := goquery.NewParser().Parse(html)

		require.NoError(t, err)
		require.Len(t, spans, 1)
		assert.Equal(t, "Niš", spans[0].Text)
	})

	t.Run("leaves text empty when mark opens with its label", func(t *testing.T) {
		t.Parallel()

		html := `<mark class="entity"><span>LOC <a href="https://www.wikidata.org/wiki/Q1">Q1</a></span></mark>`

		spans, err := goquery.NewParser().Parse(html)

		require.NoError(t, err)
		require.Len(t, spans, 1)
		assert.Equal(t, nerview.EntitySpan{Label: "LOC", Kind: nerview.KindLocation, QID: "Q1"}, spans[0])
	})

	t.Run("reads surface text from a leading element", func(t *testing.T) {
		t.Parallel()

		html := `<mark class="entity"><b>Beograd</b> <span>LOC</span></mark>`

		spans, err := goquery.NewParser().Parse(html)

		require.NoError(t, err)
		require.Len(t, spans, 1)
		assert.Equal(t, "Beograd", spans[0].Text)
	})

	t.Run("skips marks with an empty label", func(t *testing.T) {
		t.Parallel()

		html := `<mark class="entity">Beograd <span>  </span></mark>`

		spans, err := goquery.NewParser().Parse(html)

		require.NoError(t, err)
		assert.Empty(t, spans)
	})

	t.Run("ignores marks without the entity class", func(t *testing.T) {
		t.Parallel()

		html := `<mark>Beograd <span>LOC</span></mark>`

		spans, err := goquery.NewParser().Parse(html)

		require.NoError(t, err)
		assert.Empty(t, spans)
	})

	t.Run("keeps unknown labels", func(t *testing.T) {
		t.Parallel()

		html := `<mark class="entity">nešto <span>MISC</span></mark>`

		spans, err := goquery.NewParser().Parse(html)

		require.NoError(t, err)
		require.Len(t, spans, 1)
		assert.Equal(t, "MISC", spans[0].Label)
		assert.Equal(t, nerview.KindUnknown, spans[0].Kind)
	})

	t.Run("leaves QID empty when link has no identifier", func(t *testing.T) {
		t.Parallel()

		html := `<mark class="entity">Beograd <span>LOC <a href="https://sr.wikipedia.org/wiki/Beograd">wiki</a></span></mark>`

		spans, err := goquery.NewParser().Parse(html)

		require.NoError(t, err)
		require.Len(t, spans, 1)
		assert.Empty(t, spans[0].QID)
	})

	t.Run("returns no spans for plain HTML", func(t *testing.T) {
		t.Parallel()

		spans, err := goquery.NewParser().Parse(`<p>Bez entiteta.</p>`)

		require.NoError(t, err)
		assert.Empty(t, spans)
	})
}
