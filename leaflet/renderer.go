// Package leaflet renders map views as standalone Leaflet pages and GeoJSON.
package leaflet

import (
	"embed"
	"encoding/json"
	"html/template"
	"io"

	"github.com/fwojciec/nerview"
)

//go:embed map.html
var templates embed.FS

// Leaflet asset defaults.
const (
	DefaultLeafletURL = "https://unpkg.com/leaflet@1.9.4/dist"
	DefaultTileURL    = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttrib     = "&copy; OpenStreetMap contributors"
)

// Renderer writes maps as HTML pages.
type Renderer struct {
	tmpl *template.Template

	// LeafletURL is the base URL of the Leaflet distribution.
	LeafletURL string

	// TileURL is the tile layer URL template.
	TileURL string

	// Title is shown in the page title.
	Title string
}

// NewRenderer creates a Renderer using the embedded page template.
func NewRenderer() *Renderer {
	return &Renderer{
		tmpl:       template.Must(template.ParseFS(templates, "map.html")),
		LeafletURL: DefaultLeafletURL,
		TileURL:    DefaultTileURL,
		Title:      "Geographic Entities",
	}
}

type pageData struct {
	Title      string
	LeafletURL string
	TileURL    string
	Attrib     string
	Map        *nerview.Map
}

// Render writes m as a complete HTML page. Popup fields are escaped by
// the template.
func (r *Renderer) Render(w io.Writer, m *nerview.Map) error {
	return r.tmpl.ExecuteTemplate(w, "map.html", pageData{
		Title:      r.Title,
		LeafletURL: r.LeafletURL,
		TileURL:    r.TileURL,
		Attrib:     DefaultAttrib,
		Map:        m,
	})
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a GeoJSON point feature.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry is a GeoJSON point. Coordinates are longitude, latitude.
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// GeoJSON converts the markers of m into a feature collection.
func GeoJSON(m *nerview.Map) *FeatureCollection {
	fc := &FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
	for _, mk := range m.Markers {
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: [2]float64{mk.Lon, mk.Lat},
			},
			Properties: map[string]any{
				"qid":          mk.QID,
				"label":        mk.Popup.Label,
				"type":         mk.Popup.Type,
				"text":         mk.Popup.Text,
				"occurrences":  mk.Occurrences,
				"description":  mk.Popup.Description,
				"url":          mk.Popup.URL,
				"marker-color": mk.Color,
			},
		})
	}
	return fc
}

// WriteGeoJSON encodes the markers of m as indented GeoJSON.
func WriteGeoJSON(w io.Writer, m *nerview.Map) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GeoJSON(m))
}
