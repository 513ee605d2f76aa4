package nerview

import "sort"

// KindCount is one row of a type-frequency table.
type KindCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CountKinds counts spans per raw type label.
// The counts always sum to len(spans).
func CountKinds(spans []EntitySpan) map[string]int {
	counts := make(map[string]int)
	for _, s := range spans {
		counts[s.Label]++
	}
	return counts
}

// SortedCounts orders a type-frequency mapping by count descending,
// breaking ties by label so output is deterministic.
func SortedCounts(counts map[string]int) []KindCount {
	rows := make([]KindCount, 0, len(counts))
	for label, n := range counts {
		rows = append(rows, KindCount{Label: label, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}
