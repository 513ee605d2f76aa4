// Package extract turns annotated documents into map-ready entities and
// type statistics.
package extract

import (
	"context"
	"fmt"

	"github.com/fwojciec/nerview"
	"github.com/fwojciec/nerview/cache"
	"github.com/google/uuid"
)

// NoEntitiesWarning is reported when nothing could be placed on the map.
const NoEntitiesWarning = "No geographic entities found with coordinates"

// Result is the outcome of extracting one document.
type Result struct {
	// ID identifies the view session in logs.
	ID string `json:"id"`

	Spans []nerview.EntitySpan `json:"-"`

	// Entities are the resolvable lookup entities in first-seen order.
	Entities []*nerview.ResolvedEntity `json:"entities"`

	// Counts maps every type label to its number of spans.
	Counts map[string]int `json:"counts"`

	// Diagnostics holds lookup failures other than missing coordinates.
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// Warning returns a user-facing warning, or an empty string.
func (r *Result) Warning() string {
	if len(r.Entities) == 0 {
		return NoEntitiesWarning
	}
	return ""
}

// Map lays out the result's entities.
func (r *Result) Map() *nerview.Map {
	return nerview.BuildMap(r.Entities)
}

// Extractor runs the parse, aggregate and resolve pipeline.
type Extractor struct {
	Parser   nerview.SpanParser
	Resolver nerview.Resolver

	// Memo, if set, reuses results for identical content. Results carrying
	// diagnostics are not memoized.
	Memo *cache.Memo[*Result]
}

// Extract processes a document. Lookups run sequentially, once per unique
// identifier; failures drop the identifier and never abort the pipeline.
// A context that ends mid-way yields the partial result with a diagnostic
// for each skipped identifier. Only parse errors and a context that is
// already done before the first lookup are returned.
func (x *Extractor) Extract(ctx context.Context, content string) (*Result, error) {
	if x.Memo != nil {
		if r, ok := x.Memo.Get(content); ok {
			return r, nil
		}
	}

	spans, err := x.Parser.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ID:       uuid.New().String(),
		Spans:    spans,
		Counts:   nerview.CountKinds(spans),
		Entities: []*nerview.ResolvedEntity{},
	}

	acc := newAccumulator()
	for _, span := range spans {
		switch span.Kind.Behavior() {
		case nerview.BehaviorLookup:
			acc.add(span)
		case nerview.BehaviorCountOnly:
			// already in Counts
		}
	}

	entities := acc.entities()
	for i, e := range entities {
		if err := ctx.Err(); err != nil {
			if i == 0 {
				return nil, err
			}
			// Keep what was resolved; the rest is reported, not fatal.
			for _, skipped := range entities[i:] {
				result.Diagnostics = append(result.Diagnostics,
					fmt.Sprintf("lookup skipped for %s: %v", skipped.QID, err))
			}
			break
		}

		place, err := x.Resolver.Resolve(ctx, e.QID)
		if err != nil {
			if nerview.ErrorCode(err) != nerview.ENOTFOUND {
				result.Diagnostics = append(result.Diagnostics, err.Error())
			}
			continue
		}

		e.Label = place.Label
		e.Description = place.Description
		e.Lat = place.Lat
		e.Lon = place.Lon
		result.Entities = append(result.Entities, e)
	}

	if x.Memo != nil && len(result.Diagnostics) == 0 {
		x.Memo.Put(content, result)
	}

	return result, nil
}

// accumulator groups lookup spans by identifier. The first span seen for
// an identifier fixes its kind.
type accumulator struct {
	order []string
	byQID map[string]*nerview.ResolvedEntity
}

func newAccumulator() *accumulator {
	return &accumulator{byQID: make(map[string]*nerview.ResolvedEntity)}
}

func (a *accumulator) add(span nerview.EntitySpan) {
	if span.QID == "" {
		return
	}

	e, ok := a.byQID[span.QID]
	if !ok {
		e = &nerview.ResolvedEntity{
			QID:   span.QID,
			Kind:  span.Kind,
			Label: span.Text,
		}
		a.byQID[span.QID] = e
		a.order = append(a.order, span.QID)
	}
	e.Occurrences++
	e.AddVariant(span.Text)
}

func (a *accumulator) entities() []*nerview.ResolvedEntity {
	out := make([]*nerview.ResolvedEntity, 0, len(a.order))
	for _, qid := range a.order {
		out = append(out, a.byQID[qid])
	}
	return out
}
