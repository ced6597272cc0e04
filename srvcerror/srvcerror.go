package srvcerror

import (
	"errors"
	"net/http"
)

// Step names the stage of a multi-step operation an error came from.
type Step string

const (
	StepNone         Step = ""
	StepStorage      Step = "storage"
	StepRecording    Step = "recording"
	StepNotification Step = "notification"
)

type Error struct {
	errorCode  string
	msgToUser  string // public
	dbgInfoErr error  // private, for debugging

	httpStatus int // optional, for HTTP responses
	step       Step
}

func (e *Error) Error() string {
	return e.msgToUser
}

func (e *Error) Unwrap() error {
	return e.dbgInfoErr
}

func (e *Error) ErrorCode() string {
	return e.errorCode
}

func (e *Error) DebugInfo() error {
	return e.dbgInfoErr
}

func (e *Error) SetDebug(err error) *Error {
	e.dbgInfoErr = err
	return e
}

func (e *Error) HttpStatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.httpStatus
}

// HasHttpStatusCode reports whether a status was set explicitly.
func (e *Error) HasHttpStatusCode() bool {
	return e.httpStatus != 0
}

func (e *Error) SetHttpStatusCode(code int) *Error {
	e.httpStatus = code
	return e
}

func (e *Error) Step() Step {
	return e.step
}

func (e *Error) SetStep(step Step) *Error {
	e.step = step
	return e
}

func New(errorCode string, msgToUser string) *Error {
	return &Error{
		errorCode: errorCode,
		msgToUser: msgToUser,
	}
}

// StatusOf returns the first explicit HTTP status found in err's chain,
// falling back to 500.
func StatusOf(err error) int {
	for err != nil {
		var srvcErr *Error
		if !errors.As(err, &srvcErr) {
			break
		}
		if srvcErr.HasHttpStatusCode() {
			return srvcErr.httpStatus
		}
		err = srvcErr.dbgInfoErr
	}
	return http.StatusInternalServerError
}

const ErrCodeInternalServerError = "internal_server_error"

func ErrInternalSE() *Error {
	return New(
		ErrCodeInternalServerError,
		"Internal server error",
	).SetHttpStatusCode(http.StatusInternalServerError)
}
