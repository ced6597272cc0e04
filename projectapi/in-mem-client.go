package projectapi

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemClient is a process-local stand-in for the remote project API.
type InMemClient struct {
	lock        sync.Mutex
	workgroups  map[int]Workgroup
	submissions map[int]map[string]SubmissionData // group id -> upload id -> latest
	reviews     []ReviewItem
	completions map[string]map[int]bool // stage id -> user id -> done
	now         func() time.Time
}

var _ Client = (*InMemClient)(nil)

func NewInMemClient() *InMemClient {
	return &InMemClient{
		workgroups:  make(map[int]Workgroup),
		submissions: make(map[int]map[string]SubmissionData),
		completions: make(map[string]map[int]bool),
		now:         time.Now,
	}
}

func (m *InMemClient) AddWorkgroup(wg Workgroup) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.workgroups[wg.ID] = wg
}

func (m *InMemClient) AddReviewItems(items ...ReviewItem) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.reviews = append(m.reviews, items...)
}

// SetSubmission overwrites the latest submission for an upload id.
func (m *InMemClient) SetSubmission(groupID int, data SubmissionData) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.setSubmission(groupID, data)
}

func (m *InMemClient) setSubmission(groupID int, data SubmissionData) {
	if _, ok := m.submissions[groupID]; !ok {
		m.submissions[groupID] = make(map[string]SubmissionData)
	}
	m.submissions[groupID][data.DocumentID] = data
}

func (m *InMemClient) GetWorkgroupByID(ctx context.Context, groupID int) (Workgroup, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	wg, ok := m.workgroups[groupID]
	if !ok {
		return Workgroup{}, ErrWorkgroupNotFound(groupID)
	}
	return wg, nil
}

func (m *InMemClient) GetUserWorkgroup(ctx context.Context, userID int, projectID string) (*Workgroup, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	for _, wg := range m.workgroups {
		if wg.ProjectID == projectID && wg.HasMember(userID) {
			found := wg
			return &found, nil
		}
	}
	return nil, nil
}

func (m *InMemClient) GetLatestSubmissionsByIdentifier(ctx context.Context, groupID int) (map[string]SubmissionData, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	res := make(map[string]SubmissionData, len(m.submissions[groupID]))
	for k, v := range m.submissions[groupID] {
		res[k] = v
	}
	return res, nil
}

func (m *InMemClient) RecordSubmission(ctx context.Context, rec SubmissionRecord) (Submitted, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	wg, ok := m.workgroups[rec.WorkgroupID]
	if !ok {
		return Submitted{}, ErrWorkgroupNotFound(rec.WorkgroupID)
	}

	var details *UserDetails
	for _, u := range wg.Users {
		if u.ID == rec.UserID {
			details = &UserDetails{ID: u.ID, Username: u.Username, FullName: u.FullName}
		}
	}

	submID := uuid.NewString()
	m.setSubmission(rec.WorkgroupID, SubmissionData{
		SubmissionID:     submID,
		DocumentID:       rec.DocumentID,
		DocumentURL:      rec.DocumentURL,
		DocumentFilename: rec.DocumentFilename,
		DocumentMimetype: rec.DocumentMimetype,
		Modified:         m.now(),
		UserDetails:      details,
	})

	return Submitted{SubmissionID: submID, FileURL: rec.DocumentURL}, nil
}

func (m *InMemClient) GetPeerReviewItems(ctx context.Context, userID int, groupID int, contentID string) ([]ReviewItem, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	var res []ReviewItem
	for _, item := range m.reviews {
		if item.User == userID && item.WorkgroupID == groupID && item.ContentID == contentID {
			res = append(res, item)
		}
	}
	return res, nil
}

func (m *InMemClient) GetGroupReviewItems(ctx context.Context, groupID int, contentID string) ([]ReviewItem, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	var res []ReviewItem
	for _, item := range m.reviews {
		if item.User == 0 && item.WorkgroupID == groupID && item.ContentID == contentID {
			res = append(res, item)
		}
	}
	return res, nil
}

func (m *InMemClient) MarkStageComplete(ctx context.Context, stageID string, userID int) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if _, ok := m.completions[stageID]; !ok {
		m.completions[stageID] = make(map[int]bool)
	}
	m.completions[stageID][userID] = true
	return nil
}

func (m *InMemClient) GetStageCompletions(ctx context.Context, stageID string) (map[int]bool, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	res := make(map[int]bool, len(m.completions[stageID]))
	for k, v := range m.completions[stageID] {
		res[k] = v
	}
	return res, nil
}
