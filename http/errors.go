package http

import (
	"net/http"

	"github.com/jawad-khan/xblock-group-project-v2/srvcerror"
)

const ErrCodeUnauthorized = "unauthorized_access"

func ErrJwtTokenMissing() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUnauthorized,
		"Authentication required",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

const ErrCodeInvalidGroupID = "invalid_group_id"

func ErrInvalidGroupID() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidGroupID,
		"group_id must be a number",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeNoWorkgroup = "no_workgroup"

func ErrNoWorkgroup() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNoWorkgroup,
		"You are not a member of any group in this project",
	).SetHttpStatusCode(http.StatusForbidden)
}
