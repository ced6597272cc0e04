package notify

import (
	"context"

	"github.com/jawad-khan/xblock-group-project-v2/logger"
)

// ConsoleNotifier logs notifications instead of delivering them.
type ConsoleNotifier struct{}

var _ Notifier = ConsoleNotifier{}

func (ConsoleNotifier) NotifyFileUploaded(ctx context.Context, recipients []Recipient, msg FileUploaded) error {
	ids := make([]int, len(recipients))
	for i, r := range recipients {
		ids[i] = r.UserID
	}
	logger.FromContext(ctx).Info("file upload notification",
		"course_id", msg.CourseID,
		"recipients", ids,
		"subject", msg.Subject(),
		"text", msg.Text(),
	)
	return nil
}
