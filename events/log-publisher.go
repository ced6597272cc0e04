package events

import (
	"context"

	"github.com/jawad-khan/xblock-group-project-v2/logger"
)

// LogPublisher writes events to the context logger. Used when no queue is
// configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, source string, name string, payload map[string]any) error {
	logger.FromContext(ctx).Info("analytics event", "source", source, "event", name, "payload", payload)
	return nil
}
