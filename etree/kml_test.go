package etree_test

import (
	"bytes"
	"testing"

	"github.com/beevik/etree"
	"github.com/fwojciec/nerview"
	nvetree "github.com/fwojciec/nerview/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteKML(t *testing.T) {
	t.Parallel()

	t.Run("writes one placemark per marker", func(t *testing.T) {
		t.Parallel()

		m := nerview.BuildMap([]*nerview.ResolvedEntity{
			{QID: "Q3711", Kind: nerview.KindLocation, Label: "Belgrade", Lat: 44.8, Lon: 20.4, Variants: []string{"Beograd"}, Occurrences: 2},
			{QID: "Q47235", Kind: nerview.KindLocation, Label: "Novi Sad", Lat: 45.2, Lon: 19.8, Variants: []string{"Novi Sad"}, Occurrences: 1},
		})

		var buf bytes.Buffer
		require.NoError(t, nvetree.WriteKML(&buf, m, "sample.html"))

		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

		root := doc.SelectElement("kml")
		require.NotNil(t, root)
		assert.Equal(t, nvetree.KMLNamespace, root.SelectAttrValue("xmlns", ""))

		placemarks := root.FindElements("//Placemark")
		require.Len(t, placemarks, 2)
		assert.Equal(t, "Q3711", placemarks[0].SelectAttrValue("id", ""))
		assert.Equal(t, "Belgrade", placemarks[0].SelectElement("name").Text())
		assert.Equal(t, "20.4,44.8,0", placemarks[0].FindElement("Point/coordinates").Text())
		assert.Equal(t, "#marker-green", placemarks[0].SelectElement("styleUrl").Text())
		assert.Contains(t, placemarks[0].SelectElement("description").Text(), "Occurrences: 2")

		styles := root.FindElements("//Style")
		require.Len(t, styles, 1)
		assert.Equal(t, "ff008000", styles[0].FindElement("IconStyle/color").Text())
	})

	t.Run("writes LookAt for default view", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, nvetree.WriteKML(&buf, nerview.BuildMap(nil), "empty"))

		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

		assert.Equal(t, "44", doc.FindElement("//LookAt/latitude").Text())
		assert.Equal(t, "21", doc.FindElement("//LookAt/longitude").Text())
		assert.Empty(t, doc.FindElements("//Placemark"))
	})

	t.Run("escapes popup markup", func(t *testing.T) {
		t.Parallel()

		m := nerview.BuildMap([]*nerview.ResolvedEntity{
			{QID: "Q1", Kind: nerview.KindLocation, Label: "<i>x</i>", Variants: []string{"x"}, Occurrences: 1},
		})

		var buf bytes.Buffer
		require.NoError(t, nvetree.WriteKML(&buf, m, "x"))

		assert.Contains(t, buf.String(), "&lt;i&gt;x&lt;/i&gt;")
	})
}

func TestKMLColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ff0000ff", nvetree.KMLColor("red"))
	assert.Equal(t, "ff000000", nvetree.KMLColor("teal"))
}
