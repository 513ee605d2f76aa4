// Package nerview displays pre-computed named-entity-recognition output for
// annotated documents and places their geographic entities on a map.
// Locations are resolved to coordinates through an external knowledge base
// (Wikidata) and rendered with summary statistics.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, wikidata/, leaflet/).
package nerview
