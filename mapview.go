package nerview

import (
	"fmt"
	"strings"
)

// Map view defaults.
const (
	DefaultLat  = 44.0
	DefaultLon  = 21.0
	DefaultZoom = 7
	FocusZoom   = 6

	// PopupMaxWidth is the popup width limit in pixels.
	PopupMaxWidth = 350

	// MarkerIcon is the glyph shown inside every marker.
	MarkerIcon = "info-sign"
)

var markerColors = map[EntityKind]string{
	KindLocation:     "green",
	KindPerson:       "blue",
	KindOrganization: "red",
	KindEvent:        "purple",
	KindWork:         "orange",
	KindDemonym:      "pink",
	KindRole:         "gray",
}

// MarkerColor returns the marker color for a kind, black when unknown.
func MarkerColor(k EntityKind) string {
	if c, ok := markerColors[k]; ok {
		return c
	}
	return "black"
}

// Map is a renderer-independent description of a map view.
type Map struct {
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers"`
}

// Marker is a single pin on the map.
type Marker struct {
	QID         string     `json:"qid"`
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`
	Color       string     `json:"color"`
	Icon        string     `json:"icon"`
	Tooltip     string     `json:"tooltip"`
	Popup       Popup      `json:"popup"`
	Kind        EntityKind `json:"type"`
	Occurrences int        `json:"occurrences"`
}

// Popup holds the fields shown when a marker is opened.
type Popup struct {
	Label       string `json:"label"`
	Type        string `json:"type"`
	Text        string `json:"text"`
	Occurrences int    `json:"occurrences"`
	Description string `json:"description"`
	URL         string `json:"url"`
	MaxWidth    int    `json:"maxWidth"`
}

// BuildMap lays out resolved entities on a map. With no entities it returns
// the default regional view; otherwise the view is centered on the mean
// of all entity coordinates.
func BuildMap(entities []*ResolvedEntity) *Map {
	if len(entities) == 0 {
		return &Map{Lat: DefaultLat, Lon: DefaultLon, Zoom: DefaultZoom, Markers: []Marker{}}
	}

	var sumLat, sumLon float64
	markers := make([]Marker, 0, len(entities))
	for _, e := range entities {
		sumLat += e.Lat
		sumLon += e.Lon
		markers = append(markers, NewMarker(e))
	}

	n := float64(len(entities))
	return &Map{
		Lat:     sumLat / n,
		Lon:     sumLon / n,
		Zoom:    FocusZoom,
		Markers: markers,
	}
}

// NewMarker builds the marker for a resolved entity.
func NewMarker(e *ResolvedEntity) Marker {
	text := e.Text()
	if len(e.Variants) > 1 {
		text = strings.Join(e.Variants, ", ")
	}

	return Marker{
		QID:     e.QID,
		Lat:     e.Lat,
		Lon:     e.Lon,
		Color:   MarkerColor(e.Kind),
		Icon:    MarkerIcon,
		Tooltip: fmt.Sprintf("%s (%dx)", e.Label, e.Occurrences),
		Popup: Popup{
			Label:       e.Label,
			Type:        string(e.Kind),
			Text:        text,
			Occurrences: e.Occurrences,
			Description: e.Description,
			URL:         EntityURL(e.QID),
			MaxWidth:    PopupMaxWidth,
		},
		Kind:        e.Kind,
		Occurrences: e.Occurrences,
	}
}
