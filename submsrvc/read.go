package submsrvc

import (
	"context"
	"fmt"

	"github.com/jawad-khan/xblock-group-project-v2/activity"
	"github.com/jawad-khan/xblock-group-project-v2/projectapi"
)

const SubmissionDateLayout = "Jan 02, 2006"

// UploadRecord describes the latest file uploaded for one upload id.
type UploadRecord struct {
	Location       string                  `json:"location"`
	FileName       string                  `json:"file_name"`
	SubmissionDate string                  `json:"submission_date"`
	UserDetails    *projectapi.UserDetails `json:"user_details"`
}

type getUploadQuery struct {
	GroupID  int
	UploadID string
}

// GetUpload returns nil when the group has not uploaded anything for uploadID.
func (s *SubmSrvc) GetUpload(ctx context.Context, groupID int, uploadID string) (*UploadRecord, error) {
	return s.getUpload.Handle(ctx, getUploadQuery{GroupID: groupID, UploadID: uploadID})
}

func (s *SubmSrvc) handleGetUpload(ctx context.Context, q getUploadQuery) (*UploadRecord, error) {
	latest, err := s.project.GetLatestSubmissionsByIdentifier(ctx, q.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions of group %d: %w", q.GroupID, err)
	}
	data, ok := latest[q.UploadID]
	if !ok {
		return nil, nil
	}
	return toUploadRecord(data), nil
}

func toUploadRecord(data projectapi.SubmissionData) *UploadRecord {
	return &UploadRecord{
		Location:       data.DocumentURL,
		FileName:       data.DocumentFilename,
		SubmissionDate: data.Modified.Format(SubmissionDateLayout),
		UserDetails:    data.UserDetails,
	}
}

// SlotUpload pairs a submission slot with its latest upload, if any.
type SlotUpload struct {
	Submission activity.Submission
	Upload     *UploadRecord
}

// ListUploads returns every submission slot of the stage in manifest order.
func (s *SubmSrvc) ListUploads(ctx context.Context, stageID string, groupID int) ([]SlotUpload, error) {
	st, err := s.activity.Stage(stageID)
	if err != nil {
		return nil, err
	}
	latest, err := s.project.GetLatestSubmissionsByIdentifier(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions of group %d: %w", groupID, err)
	}

	res := make([]SlotUpload, 0, len(st.Submissions))
	for _, sub := range st.Submissions {
		slot := SlotUpload{Submission: sub}
		if data, ok := latest[sub.UploadID]; ok {
			slot.Upload = toUploadRecord(data)
		}
		res = append(res, slot)
	}
	return res, nil
}
