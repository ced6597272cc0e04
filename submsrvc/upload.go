package submsrvc

import (
	"context"
	"fmt"
	"io"

	"github.com/jawad-khan/xblock-group-project-v2/activity"
	"github.com/jawad-khan/xblock-group-project-v2/logger"
	"github.com/jawad-khan/xblock-group-project-v2/projectapi"
	"github.com/jawad-khan/xblock-group-project-v2/stage"
)

type UploadSubmissionParams struct {
	StageID  string
	UploadID string
	UserID   int
	FileName string
	Content  io.Reader
}

type UploadOutcome struct {
	File           UploadedFile
	Submissions    map[string]string // submission id -> file url
	NewStageStates []stage.StateData
}

// UploadSubmission gates the upload on the stage window and group
// membership, relays the file and then re-evaluates stage completion.
func (s *SubmSrvc) UploadSubmission(ctx context.Context, params UploadSubmissionParams) (UploadOutcome, error) {
	st, err := s.activity.Stage(params.StageID)
	if err != nil {
		return UploadOutcome{}, err
	}
	if _, err = st.Submission(params.UploadID); err != nil {
		return UploadOutcome{}, err
	}

	wg, err := s.project.GetUserWorkgroup(ctx, params.UserID, s.activity.ProjectID)
	if err != nil {
		return UploadOutcome{}, fmt.Errorf("failed to get workgroup of user %d: %w", params.UserID, err)
	}

	err = st.Availability(s.now(), wg != nil).CanUpload()
	if err != nil {
		return UploadOutcome{}, err
	}
	if params.Content == nil {
		return UploadOutcome{}, ErrMissingFile(params.UploadID)
	}

	ctx = logger.WithWorkgroup(ctx, wg.ID, params.UserID)

	user := projectapi.User{ID: params.UserID}
	for _, u := range wg.Users {
		if u.ID == params.UserID {
			user = u
		}
	}

	uploaded, err := s.PersistAndSubmitFile(ctx, UploadContext{
		CourseID:  s.activity.CourseID,
		ContentID: s.activity.ID,
		UploadID:  params.UploadID,
		GroupID:   wg.ID,
		User:      user,
	}, FileStream{FileName: params.FileName, Content: params.Content})
	if err != nil {
		return UploadOutcome{}, err
	}

	state, err := s.CheckSubmissionsAndMarkComplete(ctx, st, *wg)
	if err != nil {
		return UploadOutcome{}, err
	}

	return UploadOutcome{
		File:           uploaded,
		Submissions:    map[string]string{uploaded.SubmissionID: uploaded.FileURL},
		NewStageStates: []stage.StateData{{StageID: st.ID, State: state}},
	}, nil
}

// CheckSubmissionsAndMarkComplete marks the stage complete for every group
// member once each submission slot of the stage has an upload, and returns
// the resulting stage state.
func (s *SubmSrvc) CheckSubmissionsAndMarkComplete(ctx context.Context, st *activity.Stage, wg projectapi.Workgroup) (stage.State, error) {
	latest, err := s.project.GetLatestSubmissionsByIdentifier(ctx, wg.ID)
	if err != nil {
		return "", fmt.Errorf("failed to get submissions of group %d: %w", wg.ID, err)
	}

	if hasAllUploads(st, latest) {
		for _, userID := range wg.UserIDs() {
			err = s.project.MarkStageComplete(ctx, st.ID, userID)
			if err != nil {
				return "", fmt.Errorf("failed to mark stage %s complete for user %d: %w", st.ID, userID, err)
			}
		}
		logger.FromContext(ctx).Info("stage completed by group", "stage_id", st.ID)
	}

	return s.StageState(ctx, st.ID, wg)
}

func (s *SubmSrvc) StageState(ctx context.Context, stageID string, wg projectapi.Workgroup) (stage.State, error) {
	completed, err := s.project.GetStageCompletions(ctx, stageID)
	if err != nil {
		return "", fmt.Errorf("failed to get completions of stage %s: %w", stageID, err)
	}
	return stage.ComputeState(wg.UserIDs(), completed), nil
}

func hasAllUploads(st *activity.Stage, latest map[string]projectapi.SubmissionData) bool {
	if len(st.Submissions) == 0 {
		return false
	}
	for _, sub := range st.Submissions {
		if _, ok := latest[sub.UploadID]; !ok {
			return false
		}
	}
	return true
}
