package feedback

import (
	"net/http"

	"github.com/jawad-khan/xblock-group-project-v2/srvcerror"
)

const ErrCodeOutsiderDisallowed = "outsider_disallowed"

func ErrOutsiderDisallowed() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeOutsiderDisallowed,
		"This content is only available to the members of the group",
	).SetHttpStatusCode(http.StatusForbidden)
}
