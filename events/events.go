package events

import (
	"context"
	"time"
)

const SubmissionReceived = "activity.received_submission"

// Event is an analytics record emitted by a component.
type Event struct {
	Source    string         `json:"source"`
	Name      string         `json:"name"`
	Payload   map[string]any `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

// Publisher is a fire-and-forget analytics sink. Callers log and drop
// publish errors.
type Publisher interface {
	Publish(ctx context.Context, source string, name string, payload map[string]any) error
}
