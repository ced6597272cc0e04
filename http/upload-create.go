package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jawad-khan/xblock-group-project-v2/httpjson"
	"github.com/jawad-khan/xblock-group-project-v2/logger"
	"github.com/jawad-khan/xblock-group-project-v2/srvcerror"
	"github.com/jawad-khan/xblock-group-project-v2/stage"
	"github.com/jawad-khan/xblock-group-project-v2/submsrvc"
)

const maxUploadBytes = 32 << 20

const (
	successfulUploadTitle = "Upload complete."
	failedUploadTitle     = "Upload failed."
	uploadIcon            = "fa fa-paperclip"
	unknownError          = "Unknown error"
)

var successfulUploadMessage = fmt.Sprintf("Your deliverable have been successfully uploaded. You can attach an updated"+
	" version of the deliverable by clicking the <span class='icon %s'></span> icon at any time before the deadline"+
	" passes.", uploadIcon)

type uploadResponse struct {
	Result         string            `json:"result,omitempty"`
	Title          string            `json:"title,omitempty"`
	Message        string            `json:"message"`
	Submissions    map[string]string `json:"submissions,omitempty"`
	NewStageStates []stage.StateData `json:"new_stage_states,omitempty"`
}

func (httpserver *HttpServer) uploadSubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	claims, err := requireClaims(r)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	stageID := chi.URLParam(r, "stageId")
	uploadID := chi.URLParam(r, "uploadId")

	params := submsrvc.UploadSubmissionParams{
		StageID:  stageID,
		UploadID: uploadID,
		UserID:   claims.UserID,
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile(uploadID)
	switch {
	case err == nil:
		defer file.Close()
		params.FileName = header.Filename
		params.Content = file
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// the service rejects the missing file after the stage checks
	default:
		log.Warn("failed to read upload", "error", err)
		writeUploadJson(w, http.StatusBadRequest, uploadResponse{
			Title:   failedUploadTitle,
			Message: fmt.Sprintf("Error uploading file: %s", err),
		})
		return
	}

	outcome, err := httpserver.submSrvc.UploadSubmission(ctx, params)
	if err != nil {
		log.Error("upload failed", "stage_id", stageID, "upload_id", uploadID, "error", err)
		writeUploadError(w, err)
		return
	}

	writeUploadJson(w, http.StatusOK, uploadResponse{
		Title:          successfulUploadTitle,
		Message:        successfulUploadMessage,
		Submissions:    outcome.Submissions,
		NewStageStates: outcome.NewStageStates,
	})
}

// writeUploadError answers stage and membership violations with
// {result, message} and processing failures with {title, message}.
func writeUploadError(w http.ResponseWriter, err error) {
	status := srvcerror.StatusOf(err)

	var srvcErr *srvcerror.Error
	if !errors.As(err, &srvcErr) {
		writeUploadJson(w, status, uploadResponse{
			Title:   failedUploadTitle,
			Message: fmt.Sprintf("Error uploading file: %s", unknownError),
		})
		return
	}

	switch srvcErr.ErrorCode() {
	case stage.ErrCodeStageNotOpen, stage.ErrCodeStageClosed, stage.ErrCodeNotGroupMember,
		ErrCodeUnauthorized:
		writeUploadJson(w, status, uploadResponse{Result: "error", Message: srvcErr.Error()})
	default:
		writeUploadJson(w, status, uploadResponse{
			Title:   failedUploadTitle,
			Message: fmt.Sprintf("Error uploading file: %s", srvcErr.Error()),
		})
	}
}

func writeUploadJson(w http.ResponseWriter, status int, resp uploadResponse) {
	httpjson.WriteJson(w, status, resp)
}
