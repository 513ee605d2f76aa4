package nerview

import (
	"context"
	"time"
)

// DefaultCacheTTL is how long coordinate lookups, including negative ones,
// are retained.
const DefaultCacheTTL = time.Hour

// ProbeQID is the identifier used for connectivity checks (Europe).
const ProbeQID = "Q46"

// Place is the geographic record of a knowledge-base item.
type Place struct {
	QID         string  `json:"qid"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// Resolver looks up coordinates for knowledge-base identifiers.
type Resolver interface {
	// Resolve returns the place for qid.
	// Returns ENOTFOUND if the item has no coordinates, EINVALID for a
	// malformed identifier and EUNAVAILABLE when the service cannot be
	// reached or answers with a non-success status.
	Resolve(ctx context.Context, qid string) (*Place, error)
}

// CacheEntry is a cached lookup outcome. A nil Place marks an item known
// to have no coordinates.
type CacheEntry struct {
	Place     *Place
	ExpiresAt time.Time
}

// Negative reports whether the entry records the absence of coordinates.
func (e CacheEntry) Negative() bool {
	return e.Place == nil
}

// CoordinateCache stores lookup outcomes for a limited time.
type CoordinateCache interface {
	// Get returns the live entry for qid. Expired entries are reported
	// as missing.
	Get(qid string) (CacheEntry, bool)

	// Put stores a positive place, or a negative marker when place is nil.
	Put(qid string, place *Place)

	// Expire drops the entry for qid.
	Expire(qid string)
}

// TroubleshootingHints are shown when a connectivity check fails.
var TroubleshootingHints = []string{
	"Check internet connection",
	"Corporate network? Check proxy settings (HTTPS_PROXY)",
	"Increase the lookup timeout if the network is slow",
}

// Ping checks that the resolver can reach the knowledge base by resolving
// a well-known item.
func Ping(ctx context.Context, r Resolver) (*Place, error) {
	return r.Resolve(ctx, ProbeQID)
}
