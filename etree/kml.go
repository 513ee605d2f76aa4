// Package etree exports map views as KML documents.
package etree

import (
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/beevik/etree"
	"github.com/fwojciec/nerview"
)

// KMLNamespace is the OGC KML 2.2 namespace.
const KMLNamespace = "http://www.opengis.net/kml/2.2"

// kmlColors maps marker colors to KML aabbggrr values.
var kmlColors = map[string]string{
	"green":  "ff008000",
	"blue":   "ffff0000",
	"red":    "ff0000ff",
	"purple": "ff800080",
	"orange": "ff00a5ff",
	"pink":   "ffcbc0ff",
	"gray":   "ff808080",
	"black":  "ff000000",
}

// KMLColor returns the aabbggrr value of a marker color.
func KMLColor(color string) string {
	if c, ok := kmlColors[color]; ok {
		return c
	}
	return kmlColors["black"]
}

// NewKML builds a KML document with one placemark per marker and a LookAt
// matching the map center.
func NewKML(m *nerview.Map, name string) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	kml := doc.CreateElement("kml")
	kml.CreateAttr("xmlns", KMLNamespace)

	d := kml.CreateElement("Document")
	d.CreateElement("name").SetText(name)

	look := d.CreateElement("LookAt")
	look.CreateElement("longitude").SetText(formatFloat(m.Lon))
	look.CreateElement("latitude").SetText(formatFloat(m.Lat))
	look.CreateElement("range").SetText(strconv.Itoa(zoomRange(m.Zoom)))

	styled := make(map[string]bool)
	for _, mk := range m.Markers {
		if styled[mk.Color] {
			continue
		}
		styled[mk.Color] = true

		style := d.CreateElement("Style")
		style.CreateAttr("id", styleID(mk.Color))
		style.CreateElement("IconStyle").CreateElement("color").SetText(KMLColor(mk.Color))
	}

	for _, mk := range m.Markers {
		p := d.CreateElement("Placemark")
		p.CreateAttr("id", mk.QID)
		p.CreateElement("name").SetText(mk.Popup.Label)
		p.CreateElement("description").CreateCData(popupHTML(mk.Popup))
		p.CreateElement("styleUrl").SetText("#" + styleID(mk.Color))
		p.CreateElement("Point").CreateElement("coordinates").
			SetText(formatFloat(mk.Lon) + "," + formatFloat(mk.Lat) + ",0")
	}

	doc.Indent(2)
	return doc
}

// WriteKML writes m as a KML document.
func WriteKML(w io.Writer, m *nerview.Map, name string) error {
	_, err := NewKML(m, name).WriteTo(w)
	return err
}

func styleID(color string) string {
	return "marker-" + color
}

// zoomRange approximates a web-map zoom level as a camera range in meters.
func zoomRange(zoom int) int {
	r := 40000000
	for i := 0; i < zoom; i++ {
		r /= 2
	}
	return r
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func popupHTML(p nerview.Popup) string {
	return fmt.Sprintf(`<b>%s</b><br>Type: %s<br>Text in document: %s<br>Occurrences: %d<br>Description: %s<br><a href="%s">Wikidata</a>`,
		html.EscapeString(p.Label),
		html.EscapeString(p.Type),
		html.EscapeString(p.Text),
		p.Occurrences,
		html.EscapeString(p.Description),
		html.EscapeString(p.URL),
	)
}
