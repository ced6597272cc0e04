package submsrvc

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"path"

	"github.com/wailsapp/mimetype"

	"github.com/jawad-khan/xblock-group-project-v2/events"
	"github.com/jawad-khan/xblock-group-project-v2/logger"
	"github.com/jawad-khan/xblock-group-project-v2/notify"
	"github.com/jawad-khan/xblock-group-project-v2/projectapi"
)

const keyHashLen = 12

// UploadContext identifies who uploads what and where.
type UploadContext struct {
	CourseID  string
	ContentID string
	UploadID  string
	GroupID   int
	User      projectapi.User
}

type FileStream struct {
	FileName string
	Content  io.Reader
}

type UploadedFile struct {
	SubmissionID string
	FileURL      string
	FileName     string
	MediaType    string
}

// PersistAndSubmitFile stores the file, records it with the project API,
// publishes an analytics event and notifies the group. Storage and
// recording failures abort; the stored file is left in place when
// recording fails.
func (s *SubmSrvc) PersistAndSubmitFile(ctx context.Context, uc UploadContext, fs FileStream) (UploadedFile, error) {
	log := logger.FromContext(ctx).With("upload_id", uc.UploadID, "file_name", fs.FileName)

	content, err := io.ReadAll(fs.Content)
	if err != nil {
		return UploadedFile{}, ErrFileStorageFailed(fs.FileName, err)
	}
	mediaType := mimetype.Detect(content).String()

	key := storageKey(uc, fs.FileName, content)
	fileURL, err := s.storage.SaveFile(ctx, key, content, mediaType)
	if err != nil {
		return UploadedFile{}, ErrFileStorageFailed(fs.FileName, err)
	}
	log.Debug("stored uploaded file", "key", key, "media_type", mediaType)

	submitted, err := s.project.RecordSubmission(ctx, projectapi.SubmissionRecord{
		WorkgroupID:      uc.GroupID,
		UserID:           uc.User.ID,
		CourseID:         uc.CourseID,
		DocumentID:       uc.UploadID,
		DocumentURL:      fileURL,
		DocumentFilename: fs.FileName,
		DocumentMimetype: mediaType,
	})
	if err != nil {
		return UploadedFile{}, ErrFileRecordingFailed(fs.FileName, err)
	}

	err = s.publisher.Publish(ctx, EventSource, events.SubmissionReceived, map[string]any{
		"submission_id": submitted.SubmissionID,
		"filename":      fs.FileName,
		"content_id":    uc.ContentID,
		"group_id":      uc.GroupID,
		"user_id":       uc.User.ID,
	})
	if err != nil {
		log.Warn("failed to publish submission event", "error", err)
	}

	if s.notifier != nil {
		err = s.notifyGroup(ctx, uc)
		if err != nil {
			nerr := ErrNotificationFailed(err)
			log.Error(nerr.Error(), "step", nerr.Step(), "error", err)
		}
	}

	return UploadedFile{
		SubmissionID: submitted.SubmissionID,
		FileURL:      submitted.FileURL,
		FileName:     fs.FileName,
		MediaType:    mediaType,
	}, nil
}

func (s *SubmSrvc) notifyGroup(ctx context.Context, uc UploadContext) error {
	wg, err := s.project.GetWorkgroupByID(ctx, uc.GroupID)
	if err != nil {
		return fmt.Errorf("failed to get workgroup %d: %w", uc.GroupID, err)
	}

	recipients := make([]notify.Recipient, 0, len(wg.Users))
	for _, u := range wg.Users {
		recipients = append(recipients, notify.Recipient{UserID: u.ID, Name: u.FullName, Email: u.Email})
	}

	activityName := ""
	if s.activity != nil {
		activityName = s.activity.DisplayName
	}
	return s.notifier.NotifyFileUploaded(ctx, recipients, notify.FileUploaded{
		CourseID:       uc.CourseID,
		ActionUsername: uc.User.Username,
		ActivityName:   activityName,
	})
}

// storageKey is group_work/<course>/<group>/<upload id>/<content hash>/<file name>.
func storageKey(uc UploadContext, fileName string, content []byte) string {
	sum := sha1.Sum(content)
	return path.Join(
		"group_work",
		uc.CourseID,
		fmt.Sprintf("%d", uc.GroupID),
		uc.UploadID,
		hex.EncodeToString(sum[:])[:keyHashLen],
		path.Base(fileName),
	)
}
