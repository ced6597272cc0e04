package stage

import (
	"fmt"
	"net/http"

	"github.com/jawad-khan/xblock-group-project-v2/srvcerror"
)

// Availability is recomputed per request and never stored.
type Availability struct {
	Open   bool
	Closed bool
	Member bool
	Action string
}

func (a Availability) CanUpload() error {
	return CanUpload(a.Open, a.Closed, a.Member, a.Action)
}

// Allowed is CanUpload as a plain boolean, for rendering disabled controls.
func (a Availability) Allowed() bool {
	return a.CanUpload() == nil
}

// CanUpload permits an upload iff the stage is open, not closed and the
// user belongs to the group. Timing is checked before membership.
func CanUpload(isOpen, isClosed, isGroupMember bool, action string) error {
	if !isOpen {
		return ErrStageNotOpen(action)
	}
	if isClosed {
		return ErrStageClosed(action)
	}
	if !isGroupMember {
		return ErrNotGroupMember()
	}
	return nil
}

const ErrCodeStageNotOpen = "stage_not_open"

func ErrStageNotOpen(action string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeStageNotOpen,
		fmt.Sprintf("Can't %s as stage is not yet opened.", action),
	).SetHttpStatusCode(http.StatusUnprocessableEntity)
}

const ErrCodeStageClosed = "stage_closed"

func ErrStageClosed(action string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeStageClosed,
		fmt.Sprintf("Can't %s as stage is closed.", action),
	).SetHttpStatusCode(http.StatusUnprocessableEntity)
}

const ErrCodeNotGroupMember = "not_group_member"

func ErrNotGroupMember() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotGroupMember,
		"Only group members can upload files",
	).SetHttpStatusCode(http.StatusForbidden)
}
