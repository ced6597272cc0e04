package decorator

import (
	"context"
	"time"

	"github.com/jawad-khan/xblock-group-project-v2/logger"
)

// P - params
type CmdHandler[P any] interface {
	Handle(ctx context.Context, p P) error
}

// Q - query, R - result
type QueryHandler[Q any, R any] interface {
	Handle(ctx context.Context, q Q) (R, error)
}

// QueryFunc adapts a plain function to QueryHandler.
type QueryFunc[Q any, R any] func(ctx context.Context, q Q) (R, error)

func (f QueryFunc[Q, R]) Handle(ctx context.Context, q Q) (R, error) {
	return f(ctx, q)
}

type loggingQuery[Q any, R any] struct {
	name string
	base QueryHandler[Q, R]
}

// WithLogging logs the duration and outcome of every call to base.
func WithLogging[Q any, R any](name string, base QueryHandler[Q, R]) QueryHandler[Q, R] {
	return loggingQuery[Q, R]{name: name, base: base}
}

func (h loggingQuery[Q, R]) Handle(ctx context.Context, q Q) (R, error) {
	start := time.Now()
	res, err := h.base.Handle(ctx, q)
	log := logger.FromContext(ctx).With("handler", h.name, "duration", time.Since(start))
	if err != nil {
		log.Warn("handler failed", "error", err)
	} else {
		log.Debug("handler succeeded")
	}
	return res, err
}
