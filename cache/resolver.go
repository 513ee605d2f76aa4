package cache

import (
	"context"

	"github.com/fwojciec/nerview"
)

var _ nerview.Resolver = (*Resolver)(nil)

// Resolver serves lookups from a CoordinateCache and falls through to the
// wrapped resolver on a miss. Places and ENOTFOUND outcomes are cached;
// transient failures are not, so a later view retries them, unless
// WithCacheFailures is set.
type Resolver struct {
	next          nerview.Resolver
	cache         nerview.CoordinateCache
	cacheFailures bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCacheFailures caches every failed lookup as a negative entry, so an
// unreachable item reads as not found until the entry expires.
func WithCacheFailures() Option {
	return func(r *Resolver) {
		r.cacheFailures = true
	}
}

// NewResolver wraps next with cache.
func NewResolver(next nerview.Resolver, cache nerview.CoordinateCache, opts ...Option) *Resolver {
	r := &Resolver{next: next, cache: cache}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the cached outcome for qid or performs a lookup.
func (r *Resolver) Resolve(ctx context.Context, qid string) (*nerview.Place, error) {
	if e, ok := r.cache.Get(qid); ok {
		if e.Negative() {
			return nil, nerview.Errorf(nerview.ENOTFOUND, "no coordinates for %s", qid)
		}
		return e.Place, nil
	}

	place, err := r.next.Resolve(ctx, qid)
	switch {
	case err == nil:
		r.cache.Put(qid, place)
	case nerview.ErrorCode(err) == nerview.ENOTFOUND, r.cacheFailures:
		r.cache.Put(qid, nil)
	}
	return place, err
}
