package submsrvc

import (
	"fmt"
	"net/http"

	"github.com/jawad-khan/xblock-group-project-v2/srvcerror"
)

const ErrCodeFileStorageFailed = "file_storage_failed"

// ErrFileStorageFailed keeps the status of the cause when it carries one.
func ErrFileStorageFailed(fileName string, cause error) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeFileStorageFailed,
		fmt.Sprintf("Error storing file %s - %s", fileName, causeMessage(cause)),
	).SetDebug(cause).
		SetHttpStatusCode(srvcerror.StatusOf(cause)).
		SetStep(srvcerror.StepStorage)
}

const ErrCodeFileRecordingFailed = "file_recording_failed"

func ErrFileRecordingFailed(fileName string, cause error) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeFileRecordingFailed,
		fmt.Sprintf("Error recording file information %s - %s", fileName, causeMessage(cause)),
	).SetDebug(cause).
		SetHttpStatusCode(srvcerror.StatusOf(cause)).
		SetStep(srvcerror.StepRecording)
}

const ErrCodeNotificationFailed = "notification_failed"

func ErrNotificationFailed(cause error) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotificationFailed,
		"Failed to notify the group about the upload",
	).SetDebug(cause).SetStep(srvcerror.StepNotification)
}

const ErrCodeMissingFile = "missing_file"

func ErrMissingFile(uploadID string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeMissingFile,
		fmt.Sprintf("No file was attached for %s", uploadID),
	).SetHttpStatusCode(http.StatusBadRequest)
}

func causeMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
