// Package slog provides logging decorators for nerview services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/nerview"
)

// Ensure LoggingResolver implements nerview.Resolver.
var _ nerview.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with logging. Missing coordinates are
// logged at debug level; other failures are warnings.
type LoggingResolver struct {
	next   nerview.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next nerview.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the outcome.
func (r *LoggingResolver) Resolve(ctx context.Context, qid string) (place *nerview.Place, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		switch {
		case err == nil:
		case nerview.ErrorCode(err) == nerview.ENOTFOUND:
			level = slog.LevelDebug
		default:
			level = slog.LevelWarn
		}
		r.logger.Log(ctx, level, "resolve",
			"qid", qid,
			"found", place != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Resolve(ctx, qid)
}
