package projectapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jawad-khan/xblock-group-project-v2/projectapi"
	"github.com/jawad-khan/xblock-group-project-v2/srvcerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientWithGroup() *projectapi.InMemClient {
	c := projectapi.NewInMemClient()
	c.AddWorkgroup(projectapi.Workgroup{
		ID:        7,
		ProjectID: "proj-1",
		Users: []projectapi.User{
			{ID: 1, Username: "jack", FullName: "Jack Hill"},
			{ID: 2, Username: "jill", FullName: "Jill Hill"},
		},
	})
	return c
}

func TestInMemWorkgroupLookup(t *testing.T) {
	c := newClientWithGroup()
	bg := context.Background()

	wg, err := c.GetUserWorkgroup(bg, 2, "proj-1")
	require.NoError(t, err)
	require.NotNil(t, wg)
	assert.Equal(t, 7, wg.ID)
	assert.Equal(t, []int{1, 2}, wg.UserIDs())

	wg, err = c.GetUserWorkgroup(bg, 2, "other-project")
	require.NoError(t, err)
	assert.Nil(t, wg)

	_, err = c.GetWorkgroupByID(bg, 99)
	var srvcErr *srvcerror.Error
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, http.StatusNotFound, srvcErr.HttpStatusCode())
}

func TestInMemRecordSubmissionOverwritesLatest(t *testing.T) {
	c := newClientWithGroup()
	bg := context.Background()

	first, err := c.RecordSubmission(bg, projectapi.SubmissionRecord{
		WorkgroupID: 7, UserID: 1, DocumentID: "doc1",
		DocumentURL: "http://x/a.pdf", DocumentFilename: "a.pdf",
	})
	require.NoError(t, err)
	second, err := c.RecordSubmission(bg, projectapi.SubmissionRecord{
		WorkgroupID: 7, UserID: 2, DocumentID: "doc1",
		DocumentURL: "http://x/b.pdf", DocumentFilename: "b.pdf",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.SubmissionID, second.SubmissionID)

	subms, err := c.GetLatestSubmissionsByIdentifier(bg, 7)
	require.NoError(t, err)
	require.Len(t, subms, 1)
	assert.Equal(t, "http://x/b.pdf", subms["doc1"].DocumentURL)
	require.NotNil(t, subms["doc1"].UserDetails)
	assert.Equal(t, "jill", subms["doc1"].UserDetails.Username)
}

func TestInMemReviewItems(t *testing.T) {
	c := newClientWithGroup()
	bg := context.Background()
	c.AddReviewItems(
		projectapi.ReviewItem{Reviewer: 2, User: 1, WorkgroupID: 7, ContentID: "stage-a", Question: "q1", Answer: "4"},
		projectapi.ReviewItem{Reviewer: 1, User: 2, WorkgroupID: 7, ContentID: "stage-a", Question: "q1", Answer: "5"},
		projectapi.ReviewItem{Reviewer: 9, WorkgroupID: 7, ContentID: "stage-a", Question: "q1", Answer: "3"},
		projectapi.ReviewItem{Reviewer: 9, WorkgroupID: 7, ContentID: "stage-b", Question: "q1", Answer: "1"},
	)

	peer, err := c.GetPeerReviewItems(bg, 1, 7, "stage-a")
	require.NoError(t, err)
	require.Len(t, peer, 1)
	assert.Equal(t, "4", peer[0].Answer)

	group, err := c.GetGroupReviewItems(bg, 7, "stage-a")
	require.NoError(t, err)
	require.Len(t, group, 1)
	assert.Equal(t, "3", group[0].Answer)
}

func TestInMemCompletions(t *testing.T) {
	c := newClientWithGroup()
	bg := context.Background()

	require.NoError(t, c.MarkStageComplete(bg, "s1", 1))
	done, err := c.GetStageCompletions(bg, "s1")
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{1: true}, done)

	done, err = c.GetStageCompletions(bg, "s2")
	require.NoError(t, err)
	assert.Empty(t, done)
}
