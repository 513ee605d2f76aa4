package mock

import (
	"context"

	"github.com/fwojciec/nerview"
)

var _ nerview.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of nerview.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, qid string) (*nerview.Place, error)
}

func (r *Resolver) Resolve(ctx context.Context, qid string) (*nerview.Place, error) {
	return r.ResolveFn(ctx, qid)
}

var _ nerview.CoordinateCache = (*CoordinateCache)(nil)

// CoordinateCache is a mock implementation of nerview.CoordinateCache.
type CoordinateCache struct {
	GetFn    func(qid string) (nerview.CacheEntry, bool)
	PutFn    func(qid string, place *nerview.Place)
	ExpireFn func(qid string)
}

func (c *CoordinateCache) Get(qid string) (nerview.CacheEntry, bool) {
	return c.GetFn(qid)
}

func (c *CoordinateCache) Put(qid string, place *nerview.Place) {
	c.PutFn(qid, place)
}

func (c *CoordinateCache) Expire(qid string) {
	c.ExpireFn(qid)
}
