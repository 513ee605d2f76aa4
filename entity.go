package nerview

import (
	"regexp"
	"strings"
)

// EntityKind identifies the class of a named entity as labeled by the
// upstream NER model.
type EntityKind string

// Entity kinds produced by the Serbian NER model.
const (
	KindUnknown      EntityKind = ""
	KindLocation     EntityKind = "LOC"
	KindPerson       EntityKind = "PERS"
	KindOrganization EntityKind = "ORG"
	KindEvent        EntityKind = "EVENT"
	KindWork         EntityKind = "WORK"
	KindDemonym      EntityKind = "DEMO"
	KindRole         EntityKind = "ROLE"
)

// MappingBehavior declares what the extractor does with spans of a kind.
type MappingBehavior int

const (
	// BehaviorCountOnly spans only contribute to type statistics.
	BehaviorCountOnly MappingBehavior = iota

	// BehaviorLookup spans are resolved to coordinates and placed on the map.
	BehaviorLookup
)

var kinds = map[EntityKind]MappingBehavior{
	KindLocation:     BehaviorLookup,
	KindPerson:       BehaviorCountOnly,
	KindOrganization: BehaviorCountOnly,
	KindEvent:        BehaviorCountOnly,
	KindWork:         BehaviorCountOnly,
	KindDemonym:      BehaviorCountOnly,
	KindRole:         BehaviorCountOnly,
}

// ParseKind returns the EntityKind for a type label.
// Labels outside the known set return KindUnknown.
func ParseKind(label string) EntityKind {
	k := EntityKind(label)
	if _, ok := kinds[k]; ok {
		return k
	}
	return KindUnknown
}

// Behavior returns the mapping behavior declared for the kind.
// Unknown kinds are count-only.
func (k EntityKind) Behavior() MappingBehavior {
	return kinds[k]
}

// Kinds returns every known kind in a stable order.
func Kinds() []EntityKind {
	return []EntityKind{
		KindLocation,
		KindPerson,
		KindOrganization,
		KindEvent,
		KindWork,
		KindDemonym,
		KindRole,
	}
}

// EntitySpan is a single entity occurrence in an annotated document.
type EntitySpan struct {
	// Text is the surface form as it appears in the document.
	Text string `json:"text"`

	// Label is the raw type label, the first word of the annotation.
	Label string `json:"label"`

	Kind EntityKind `json:"kind"`

	// QID is the linked knowledge-base identifier, empty when unlinked.
	QID string `json:"qid,omitempty"`
}

// SpanParser extracts entity spans from annotated HTML.
type SpanParser interface {
	// Parse returns all entity spans in document order.
	// Malformed annotations are skipped rather than reported.
	Parse(html string) ([]EntitySpan, error)
}

var qidRe = regexp.MustCompile(`Q\d+`)

// FindQID returns the first knowledge-base identifier embedded in s,
// or an empty string when none is present.
func FindQID(s string) string {
	return qidRe.FindString(s)
}

// ValidQID reports whether s is exactly a knowledge-base identifier.
func ValidQID(s string) bool {
	return len(s) > 1 && FindQID(s) == s
}

// FirstWord returns the first whitespace-separated token of s.
func FirstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ResolvedEntity aggregates every mention of one knowledge-base identifier
// that could be placed on the map.
type ResolvedEntity struct {
	QID         string     `json:"qid"`
	Kind        EntityKind `json:"type"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`

	// Variants holds the distinct surface forms in first-seen order.
	Variants []string `json:"textVariants"`

	Occurrences int `json:"occurrences"`
}

// Text returns the first surface form seen for the entity.
func (e *ResolvedEntity) Text() string {
	if len(e.Variants) == 0 {
		return ""
	}
	return e.Variants[0]
}

// AddVariant records a surface form if it has not been seen before.
func (e *ResolvedEntity) AddVariant(text string) {
	for _, v := range e.Variants {
		if v == text {
			return
		}
	}
	e.Variants = append(e.Variants, text)
}

// EntityURL returns the public knowledge-base page for a QID.
func EntityURL(qid string) string {
	return "https://www.wikidata.org/entity/" + qid
}
