package activity

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jawad-khan/xblock-group-project-v2/srvcerror"
)

const ErrCodeStageNotFound = "stage_not_found"

func ErrStageNotFound(stageID string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeStageNotFound,
		fmt.Sprintf("Stage %s not found", stageID),
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeSubmissionNotFound = "submission_not_found"

func ErrSubmissionNotFound(uploadID string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSubmissionNotFound,
		fmt.Sprintf("Submission %s not found", uploadID),
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeQuestionNotFound = "question_not_found"

func ErrQuestionNotFound(questionID string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeQuestionNotFound,
		fmt.Sprintf("Selected question %s not found", questionID),
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeQuestionNotSelected = "question_not_selected"

func ErrQuestionNotSelected() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeQuestionNotSelected,
		"No question selected",
	).SetHttpStatusCode(http.StatusUnprocessableEntity)
}

const ErrCodeQuestionNotUnique = "question_not_unique"

func ErrQuestionNotUnique(questionID string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeQuestionNotUnique,
		fmt.Sprintf("Question ID %s is not unique", questionID),
	).SetHttpStatusCode(http.StatusInternalServerError)
}

const ErrCodeFeedbackDisplayNotFound = "feedback_display_not_found"

func ErrFeedbackDisplayNotFound(id string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeFeedbackDisplayNotFound,
		fmt.Sprintf("Feedback display %s not found", id),
	).SetHttpStatusCode(http.StatusNotFound)
}

// ValidationError lists every problem found in a manifest.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid activity manifest: " + strings.Join(e.Problems, "; ")
}
