package nerview_test

import (
	"testing"

	"github.com/fwojciec/nerview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMap(t *testing.T) {
	t.Parallel()

	t.Run("returns default view for no entities", func(t *testing.T) {
		t.Parallel()

		m := nerview.BuildMap(nil)

		assert.InDelta(t, 44.0, m.Lat, 1e-9)
		assert.InDelta(t, 21.0, m.Lon, 1e-9)
		assert.Equal(t, nerview.DefaultZoom, m.Zoom)
		assert.Empty(t, m.Markers)
	})

	t.Run("centers on mean coordinates", func(t *testing.T) {
		t.Parallel()

		m := nerview.BuildMap([]*nerview.ResolvedEntity{
			{QID: "Q3711", Kind: nerview.KindLocation, Label: "Belgrade", Lat: 44.8, Lon: 20.4, Variants: []string{"Beograd"}, Occurrences: 2},
			{QID: "Q47235", Kind: nerview.KindLocation, Label: "Novi Sad", Lat: 45.2, Lon: 19.8, Variants: []string{"Novi Sad"}, Occurrences: 1},
		})

		assert.InDelta(t, 45.0, m.Lat, 1e-9)
		assert.InDelta(t, 20.1, m.Lon, 1e-9)
		assert.Equal(t, nerview.FocusZoom, m.Zoom)
		require.Len(t, m.Markers, 2)
		assert.Equal(t, "Q3711", m.Markers[0].QID)
		assert.Equal(t, "Q47235", m.Markers[1].QID)
	})
}

func TestNewMarker(t *testing.T) {
	t.Parallel()

	t.Run("fills popup and tooltip", func(t *testing.T) {
		t.Parallel()

		marker := nerview.NewMarker(&nerview.ResolvedEntity{
			QID:         "Q3711",
			Kind:        nerview.KindLocation,
			Label:       "Belgrade",
			Description: "capital of Serbia",
			Lat:         44.8,
			Lon:         20.4,
			Variants:    []string{"Beograd", "Beogradu"},
			Occurrences: 3,
		})

		assert.Equal(t, "green", marker.Color)
		assert.Equal(t, "info-sign", marker.Icon)
		assert.Equal(t, "Belgrade (3x)", marker.Tooltip)
		assert.Equal(t, "Belgrade", marker.Popup.Label)
		assert.Equal(t, "LOC", marker.Popup.Type)
		assert.Equal(t, "Beograd, Beogradu", marker.Popup.Text)
		assert.Equal(t, 3, marker.Popup.Occurrences)
		assert.Equal(t, "capital of Serbia", marker.Popup.Description)
		assert.Equal(t, "https://www.wikidata.org/entity/Q3711", marker.Popup.URL)
		assert.Equal(t, 350, marker.Popup.MaxWidth)
	})

	t.Run("shows single variant without joining", func(t *testing.T) {
		t.Parallel()

		marker := nerview.NewMarker(&nerview.ResolvedEntity{
			QID:      "Q47235",
			Kind:     nerview.KindLocation,
			Label:    "Novi Sad",
			Variants: []string{"Novom Sadu"},
		})

		assert.Equal(t, "Novom Sadu", marker.Popup.Text)
	})
}

func TestMarkerColor(t *testing.T) {
	t.Parallel()

	tests := map[nerview.EntityKind]string{
		nerview.KindLocation:     "green",
		nerview.KindPerson:       "blue",
		nerview.KindOrganization: "red",
		nerview.KindEvent:        "purple",
		nerview.KindWork:         "orange",
		nerview.KindDemonym:      "pink",
		nerview.KindRole:         "gray",
		nerview.KindUnknown:      "black",
	}
	for kind, want := range tests {
		assert.Equal(t, want, nerview.MarkerColor(kind), "kind %q", kind)
	}
}
