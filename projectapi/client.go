package projectapi

import "context"

// Client is the remote submissions/workgroup API.
type Client interface {
	GetWorkgroupByID(ctx context.Context, groupID int) (Workgroup, error)
	// GetUserWorkgroup returns nil when the user has no group in the project.
	GetUserWorkgroup(ctx context.Context, userID int, projectID string) (*Workgroup, error)

	GetLatestSubmissionsByIdentifier(ctx context.Context, groupID int) (map[string]SubmissionData, error)
	RecordSubmission(ctx context.Context, rec SubmissionRecord) (Submitted, error)

	GetPeerReviewItems(ctx context.Context, userID int, groupID int, contentID string) ([]ReviewItem, error)
	GetGroupReviewItems(ctx context.Context, groupID int, contentID string) ([]ReviewItem, error)

	MarkStageComplete(ctx context.Context, stageID string, userID int) error
	GetStageCompletions(ctx context.Context, stageID string) (map[int]bool, error)
}
