package projectapi

import (
	"fmt"
	"net/http"

	"github.com/jawad-khan/xblock-group-project-v2/srvcerror"
)

const ErrCodeWorkgroupNotFound = "workgroup_not_found"

func ErrWorkgroupNotFound(groupID int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeWorkgroupNotFound,
		fmt.Sprintf("Workgroup %d not found", groupID),
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeSubmissionConflict = "submission_conflict"

func ErrSubmissionConflict() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSubmissionConflict,
		"submission was updated concurrently",
	).SetHttpStatusCode(http.StatusConflict)
}
