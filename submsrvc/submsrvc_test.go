package submsrvc

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jawad-khan/xblock-group-project-v2/activity"
	"github.com/jawad-khan/xblock-group-project-v2/notify"
	"github.com/jawad-khan/xblock-group-project-v2/projectapi"
	"github.com/jawad-khan/xblock-group-project-v2/srvcerror"
	"github.com/jawad-khan/xblock-group-project-v2/stage"
)

type publishedEvent struct {
	source  string
	name    string
	payload map[string]any
}

type publisherMock struct {
	published []publishedEvent
	err       error
}

func (m *publisherMock) Publish(ctx context.Context, source string, name string, payload map[string]any) error {
	m.published = append(m.published, publishedEvent{source: source, name: name, payload: payload})
	return m.err
}

type notifierMock struct {
	recipients []notify.Recipient
	msgs       []notify.FileUploaded
	err        error
}

func (m *notifierMock) NotifyFileUploaded(ctx context.Context, recipients []notify.Recipient, msg notify.FileUploaded) error {
	m.recipients = recipients
	m.msgs = append(m.msgs, msg)
	return m.err
}

type storageFunc func(ctx context.Context, key string, content []byte, mediaType string) (string, error)

func (f storageFunc) SaveFile(ctx context.Context, key string, content []byte, mediaType string) (string, error) {
	return f(ctx, key, content, mediaType)
}

type failingRecorder struct {
	*projectapi.InMemClient
	err error
}

func (f failingRecorder) RecordSubmission(ctx context.Context, rec projectapi.SubmissionRecord) (projectapi.Submitted, error) {
	return projectapi.Submitted{}, f.err
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testActivity() *activity.Activity {
	return &activity.Activity{
		ID:          "activity-1",
		ProjectID:   "project-1",
		CourseID:    "course-1",
		DisplayName: "Research",
		Stages: []*activity.Stage{
			{
				Stage: stage.Stage{
					ID:        "upload",
					Type:      stage.TypeSubmission,
					OpenDate:  date(2024, 1, 1),
					CloseDate: date(2024, 2, 1),
				},
				Submissions: []activity.Submission{
					{StageID: "upload", UploadID: "report"},
					{StageID: "upload", UploadID: "slides"},
				},
			},
		},
	}
}

func testProject() *projectapi.InMemClient {
	p := projectapi.NewInMemClient()
	p.AddWorkgroup(projectapi.Workgroup{
		ID:        7,
		ProjectID: "project-1",
		Users: []projectapi.User{
			{ID: 1, Username: "jack", FullName: "Jack", Email: "jack@example.com"},
			{ID: 2, Username: "jill", FullName: "Jill", Email: "jill@example.com"},
		},
	})
	return p
}

func newTestSrvc(project projectapi.Client, storage FileStorage, pub *publisherMock, n notify.Notifier) *SubmSrvc {
	s := NewSubmSrvc(Deps{
		Activity:  testActivity(),
		Storage:   storage,
		Project:   project,
		Publisher: pub,
		Notifier:  n,
	})
	s.now = func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }
	return s
}

func testUploadContext() UploadContext {
	return UploadContext{
		CourseID:  "course-1",
		ContentID: "activity-1",
		UploadID:  "report",
		GroupID:   7,
		User:      projectapi.User{ID: 1, Username: "jack"},
	}
}

func TestPersistAndSubmitFile(t *testing.T) {
	storage := NewInMemFileStorage("https://files.example.com")
	pub := &publisherMock{}
	n := &notifierMock{}
	s := newTestSrvc(testProject(), storage, pub, n)

	res, err := s.PersistAndSubmitFile(context.Background(), testUploadContext(),
		FileStream{FileName: "report.txt", Content: strings.NewReader("hello world")})
	require.NoError(t, err)

	assert.NotEmpty(t, res.SubmissionID)
	assert.True(t, strings.HasPrefix(res.FileURL, "https://files.example.com/group_work/course-1/7/report/"))
	assert.True(t, strings.HasSuffix(res.FileURL, "/report.txt"))
	assert.Equal(t, "text/plain; charset=utf-8", res.MediaType)

	keys := storage.Keys()
	require.Len(t, keys, 1)
	content, _, ok := storage.Get(keys[0])
	require.True(t, ok)
	assert.Equal(t, "hello world", string(content))

	require.Len(t, pub.published, 1)
	assert.Equal(t, "activity.received_submission", pub.published[0].name)
	assert.Equal(t, map[string]any{
		"submission_id": res.SubmissionID,
		"filename":      "report.txt",
		"content_id":    "activity-1",
		"group_id":      7,
		"user_id":       1,
	}, pub.published[0].payload)

	require.Len(t, n.msgs, 1)
	assert.Equal(t, "jack", n.msgs[0].ActionUsername)
	assert.Equal(t, "Research", n.msgs[0].ActivityName)
	assert.Len(t, n.recipients, 2)
}

func TestPersistAndSubmitFileWithoutNotifier(t *testing.T) {
	pub := &publisherMock{}
	s := newTestSrvc(testProject(), NewInMemFileStorage("http://x"), pub, nil)

	_, err := s.PersistAndSubmitFile(context.Background(), testUploadContext(),
		FileStream{FileName: "a.pdf", Content: strings.NewReader("%PDF-1.4")})
	require.NoError(t, err)
	assert.Len(t, pub.published, 1)
}

func TestPersistAndSubmitFileIgnoresSideChannelFailures(t *testing.T) {
	pub := &publisherMock{err: errors.New("queue down")}
	n := &notifierMock{err: errors.New("smtp down")}
	s := newTestSrvc(testProject(), NewInMemFileStorage("http://x"), pub, n)

	res, err := s.PersistAndSubmitFile(context.Background(), testUploadContext(),
		FileStream{FileName: "a.txt", Content: strings.NewReader("a")})
	require.NoError(t, err)
	assert.NotEmpty(t, res.SubmissionID)
	assert.Len(t, n.msgs, 1)
}

func TestPersistAndSubmitFileStorageFailure(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
	}{
		{name: "plain error", cause: errors.New("disk full"), status: http.StatusInternalServerError},
		{
			name:   "error with status",
			cause:  srvcerror.New("quota", "quota exceeded").SetHttpStatusCode(http.StatusInsufficientStorage),
			status: http.StatusInsufficientStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &publisherMock{}
			storage := storageFunc(func(context.Context, string, []byte, string) (string, error) {
				return "", tt.cause
			})
			s := newTestSrvc(testProject(), storage, pub, nil)

			_, err := s.PersistAndSubmitFile(context.Background(), testUploadContext(),
				FileStream{FileName: "a.txt", Content: strings.NewReader("a")})

			var srvcErr *srvcerror.Error
			require.ErrorAs(t, err, &srvcErr)
			assert.Equal(t, ErrCodeFileStorageFailed, srvcErr.ErrorCode())
			assert.Equal(t, srvcerror.StepStorage, srvcErr.Step())
			assert.Equal(t, "Error storing file a.txt - "+tt.cause.Error(), srvcErr.Error())
			assert.Equal(t, tt.status, srvcerror.StatusOf(err))
			assert.ErrorIs(t, err, tt.cause)
			assert.Empty(t, pub.published)
		})
	}
}

func TestPersistAndSubmitFileRecordingFailure(t *testing.T) {
	storage := NewInMemFileStorage("http://x")
	pub := &publisherMock{}
	project := failingRecorder{InMemClient: testProject(), err: errors.New("api unavailable")}
	s := newTestSrvc(project, storage, pub, nil)

	_, err := s.PersistAndSubmitFile(context.Background(), testUploadContext(),
		FileStream{FileName: "a.txt", Content: strings.NewReader("a")})

	var srvcErr *srvcerror.Error
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, ErrCodeFileRecordingFailed, srvcErr.ErrorCode())
	assert.Equal(t, srvcerror.StepRecording, srvcErr.Step())
	assert.Equal(t, "Error recording file information a.txt - api unavailable", srvcErr.Error())
	assert.Equal(t, http.StatusInternalServerError, srvcerror.StatusOf(err))

	// the stored file is not rolled back
	assert.Len(t, storage.Keys(), 1)
	assert.Empty(t, pub.published)
}

func TestStorageKeyDependsOnContent(t *testing.T) {
	uc := testUploadContext()
	a := storageKey(uc, "dir/report.txt", []byte("a"))
	b := storageKey(uc, "report.txt", []byte("b"))
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "group_work/course-1/7/report/"))
	assert.True(t, strings.HasSuffix(a, "/report.txt"))
	assert.Equal(t, a, storageKey(uc, "report.txt", []byte("a")))
}

func TestUploadSubmissionGate(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		userID int
		code   string
		status int
	}{
		{"not open", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), 1, stage.ErrCodeStageNotOpen, http.StatusUnprocessableEntity},
		{"closed", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 1, stage.ErrCodeStageClosed, http.StatusUnprocessableEntity},
		{"closed outsider", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 99, stage.ErrCodeStageClosed, http.StatusUnprocessableEntity},
		{"outsider", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 99, stage.ErrCodeNotGroupMember, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewInMemFileStorage("http://x")
			s := newTestSrvc(testProject(), storage, &publisherMock{}, nil)
			s.now = func() time.Time { return tt.now }

			_, err := s.UploadSubmission(context.Background(), UploadSubmissionParams{
				StageID: "upload", UploadID: "report", UserID: tt.userID,
				FileName: "a.txt", Content: strings.NewReader("a"),
			})

			var srvcErr *srvcerror.Error
			require.ErrorAs(t, err, &srvcErr)
			assert.Equal(t, tt.code, srvcErr.ErrorCode())
			assert.Equal(t, tt.status, srvcerror.StatusOf(err))
			assert.Empty(t, storage.Keys())
		})
	}
}

func TestUploadSubmissionMarksStageComplete(t *testing.T) {
	project := testProject()
	s := newTestSrvc(project, NewInMemFileStorage("http://x"), &publisherMock{}, nil)
	ctx := context.Background()

	out, err := s.UploadSubmission(ctx, UploadSubmissionParams{
		StageID: "upload", UploadID: "report", UserID: 1,
		FileName: "report.txt", Content: strings.NewReader("r"),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{out.File.SubmissionID: out.File.FileURL}, out.Submissions)
	assert.Equal(t, []stage.StateData{{StageID: "upload", State: stage.StateNotStarted}}, out.NewStageStates)

	out, err = s.UploadSubmission(ctx, UploadSubmissionParams{
		StageID: "upload", UploadID: "slides", UserID: 2,
		FileName: "slides.txt", Content: strings.NewReader("s"),
	})
	require.NoError(t, err)
	assert.Equal(t, []stage.StateData{{StageID: "upload", State: stage.StateCompleted}}, out.NewStageStates)

	completions, err := project.GetStageCompletions(ctx, "upload")
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{1: true, 2: true}, completions)
}

func TestUploadSubmissionUnknownSlot(t *testing.T) {
	s := newTestSrvc(testProject(), NewInMemFileStorage("http://x"), &publisherMock{}, nil)

	_, err := s.UploadSubmission(context.Background(), UploadSubmissionParams{
		StageID: "upload", UploadID: "essay", UserID: 1,
		FileName: "a.txt", Content: strings.NewReader("a"),
	})
	assert.Equal(t, http.StatusNotFound, srvcerror.StatusOf(err))
}

func TestGetUpload(t *testing.T) {
	project := testProject()
	project.SetSubmission(7, projectapi.SubmissionData{
		DocumentID:       "doc1",
		DocumentURL:      "http://x/f.pdf",
		DocumentFilename: "f.pdf",
		Modified:         time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
		UserDetails:      &projectapi.UserDetails{ID: 1, Username: "jack", FullName: "Jack"},
	})
	s := newTestSrvc(project, NewInMemFileStorage("http://x"), &publisherMock{}, nil)

	rec, err := s.GetUpload(context.Background(), 7, "doc1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "http://x/f.pdf", rec.Location)
	assert.Equal(t, "f.pdf", rec.FileName)
	assert.Equal(t, "Jan 05, 2024", rec.SubmissionDate)
	assert.Equal(t, "jack", rec.UserDetails.Username)

	rec, err = s.GetUpload(context.Background(), 7, "doc2")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestListUploads(t *testing.T) {
	project := testProject()
	project.SetSubmission(7, projectapi.SubmissionData{DocumentID: "slides", DocumentURL: "http://x/s.pdf"})
	s := newTestSrvc(project, NewInMemFileStorage("http://x"), &publisherMock{}, nil)

	slots, err := s.ListUploads(context.Background(), "upload", 7)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "report", slots[0].Submission.UploadID)
	assert.Nil(t, slots[0].Upload)
	require.NotNil(t, slots[1].Upload)
	assert.Equal(t, "http://x/s.pdf", slots[1].Upload.Location)
}
