package notify

import (
	"context"
	"fmt"
)

type Recipient struct {
	UserID int
	Name   string
	Email  string
}

// FileUploaded tells a group that one of its members uploaded a deliverable.
type FileUploaded struct {
	CourseID       string
	ActionUsername string
	ActivityName   string
}

func (m FileUploaded) Subject() string {
	return fmt.Sprintf("New upload in %s", m.ActivityName)
}

func (m FileUploaded) Text() string {
	return fmt.Sprintf("%s uploaded a file for %s.", m.ActionUsername, m.ActivityName)
}

// Notifier is optional: a nil Notifier means notifications are disabled.
type Notifier interface {
	NotifyFileUploaded(ctx context.Context, recipients []Recipient, msg FileUploaded) error
}
