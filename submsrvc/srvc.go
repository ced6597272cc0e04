package submsrvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/jawad-khan/xblock-group-project-v2/activity"
	"github.com/jawad-khan/xblock-group-project-v2/events"
	"github.com/jawad-khan/xblock-group-project-v2/notify"
	"github.com/jawad-khan/xblock-group-project-v2/projectapi"
	decorator "github.com/jawad-khan/xblock-group-project-v2/srvccqs"
)

// EventSource names this component in published analytics events.
const EventSource = "group_project_v2.submission"

// FileStorage persists uploaded deliverables and returns their URL.
type FileStorage interface {
	SaveFile(ctx context.Context, key string, content []byte, mediaType string) (string, error)
}

// Deps are the collaborators of the submission service. Notifier may be
// nil, in which case upload notifications are not sent.
type Deps struct {
	Activity  *activity.Activity
	Storage   FileStorage
	Project   projectapi.Client
	Publisher events.Publisher
	Notifier  notify.Notifier
}

type SubmSrvc struct {
	logger *slog.Logger

	activity  *activity.Activity
	storage   FileStorage
	project   projectapi.Client
	publisher events.Publisher
	notifier  notify.Notifier

	getUpload decorator.QueryHandler[getUploadQuery, *UploadRecord]

	now func() time.Time
}

func NewSubmSrvc(deps Deps) *SubmSrvc {
	srvc := &SubmSrvc{
		logger:    slog.Default().With("module", "subm"),
		activity:  deps.Activity,
		storage:   deps.Storage,
		project:   deps.Project,
		publisher: deps.Publisher,
		notifier:  deps.Notifier,
		now:       time.Now,
	}
	srvc.getUpload = decorator.WithLogging("GetUpload",
		decorator.QueryFunc[getUploadQuery, *UploadRecord](srvc.handleGetUpload))
	return srvc
}

func (s *SubmSrvc) Activity() *activity.Activity {
	return s.activity
}
