package feedback

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jawad-khan/xblock-group-project-v2/activity"
	"github.com/jawad-khan/xblock-group-project-v2/projectapi"
	"github.com/jawad-khan/xblock-group-project-v2/srvcerror"
	"github.com/jawad-khan/xblock-group-project-v2/stage"
)

func TestAggregate(t *testing.T) {
	items := []Item{
		{Question: "q1", Answer: "3"},
		{Question: "q1", Answer: "5"},
		{Question: "q2", Answer: "1"},
		{Question: "Q1", Answer: "100"},
	}

	tests := []struct {
		name     string
		items    []Item
		wantMean bool
		answers  []string
		mean     *string
	}{
		{
			name:     "mean of numeric answers",
			items:    items,
			wantMean: true,
			answers:  []string{"3", "5"},
			mean:     ptr("4.0"),
		},
		{
			name:    "mean not requested",
			items:   items,
			answers: []string{"3", "5"},
		},
		{
			name:     "non numeric answer",
			items:    []Item{{Question: "q1", Answer: "3"}, {Question: "q1", Answer: "n/a"}},
			wantMean: true,
			answers:  []string{"3", "n/a"},
			mean:     ptr("N/A"),
		},
		{
			name:     "no matching answers",
			items:    []Item{{Question: "q2", Answer: "1"}},
			wantMean: true,
			answers:  []string{},
			mean:     ptr("N/A"),
		},
		{
			name:     "hexadecimal answer",
			items:    []Item{{Question: "q1", Answer: "0x10"}, {Question: "q1", Answer: "2"}},
			wantMean: true,
			answers:  []string{"0x10", "2"},
			mean:     ptr("N/A"),
		},
		{
			name:     "whitespace around numbers",
			items:    []Item{{Question: "q1", Answer: " 2 "}, {Question: "q1", Answer: "3"}},
			wantMean: true,
			answers:  []string{" 2 ", "3"},
			mean:     ptr("2.5"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Aggregate(context.Background(), tt.items, "q1", tt.wantMean)
			assert.Equal(t, tt.answers, res.Answers)
			assert.Equal(t, tt.mean, res.Mean)
		})
	}
}

func TestAggregateEscapesOnce(t *testing.T) {
	items := []Item{{Question: "q1", Answer: "<b>good</b> & fast"}}

	first := Aggregate(context.Background(), items, "q1", false)
	second := Aggregate(context.Background(), items, "q1", false)

	assert.Equal(t, []string{"&lt;b&gt;good&lt;/b&gt; &amp; fast"}, first.Answers)
	assert.Equal(t, first.Answers, second.Answers)
}

func ptr(s string) *string {
	return &s
}

func testSetup() (*FeedbackSrvc, *activity.Activity) {
	a := &activity.Activity{
		ID:        "activity-1",
		ProjectID: "project-1",
		Stages: []*activity.Stage{
			{
				Stage:     stage.Stage{ID: "team-eval", Type: stage.TypeTeamEvaluation},
				Questions: []activity.Question{{StageID: "team-eval", QuestionID: "score", Title: "Score"}},
			},
			{
				Stage: stage.Stage{ID: "peer-review", Type: stage.TypePeerReview},
				Questions: []activity.Question{{
					StageID: "peer-review", QuestionID: "quality", Title: "Quality", AssessmentTitle: "Overall quality",
				}},
			},
			{
				Stage: stage.Stage{ID: "feedback", Type: stage.TypeEvalDisplay},
				FeedbackDisplays: []activity.FeedbackDisplay{
					{StageID: "feedback", ID: "team", Kind: activity.DisplayTeam, QuestionID: "score", ShowMean: true},
					{StageID: "feedback", ID: "grade", Kind: activity.DisplayGrade, QuestionID: "quality"},
					{StageID: "feedback", ID: "broken", Kind: activity.DisplayTeam},
				},
			},
		},
	}

	project := projectapi.NewInMemClient()
	project.AddWorkgroup(projectapi.Workgroup{
		ID: 3, ProjectID: "project-1",
		Users: []projectapi.User{{ID: 1}, {ID: 2}},
	})
	project.AddReviewItems(
		projectapi.ReviewItem{Reviewer: 2, User: 1, WorkgroupID: 3, ContentID: "feedback", Question: "score", Answer: "4"},
		projectapi.ReviewItem{Reviewer: 5, User: 1, WorkgroupID: 3, ContentID: "feedback", Question: "score", Answer: "5"},
		projectapi.ReviewItem{Reviewer: 1, User: 2, WorkgroupID: 3, ContentID: "feedback", Question: "score", Answer: "1"},
		projectapi.ReviewItem{Reviewer: 9, WorkgroupID: 3, ContentID: "feedback", Question: "quality", Answer: "<i>solid</i>"},
	)

	return NewFeedbackSrvc(a, project), a
}

func display(t *testing.T, a *activity.Activity, id string) activity.FeedbackDisplay {
	st, err := a.Stage("feedback")
	require.NoError(t, err)
	d, err := st.FeedbackDisplay(id)
	require.NoError(t, err)
	return d
}

func TestTeamEvaluation(t *testing.T) {
	srvc, a := testSetup()

	res, err := srvc.TeamEvaluation(context.Background(), display(t, a, "team"), Viewer{UserID: 1}, 3)
	require.NoError(t, err)
	assert.Equal(t, "Score", res.QuestionTitle)
	assert.Equal(t, []string{"4", "5"}, res.Answers)
	assert.True(t, res.ShowMean)
	assert.Equal(t, "4.5", res.Mean)
}

func TestGradeEvaluation(t *testing.T) {
	srvc, a := testSetup()

	res, err := srvc.Evaluate(context.Background(), display(t, a, "grade"), Viewer{UserID: 2}, 3)
	require.NoError(t, err)
	assert.Equal(t, "Overall quality", res.QuestionTitle)
	assert.Equal(t, []string{"&lt;i&gt;solid&lt;/i&gt;"}, res.Answers)
	assert.False(t, res.ShowMean)
	assert.Empty(t, res.Mean)
}

func TestEvaluationErrors(t *testing.T) {
	srvc, a := testSetup()
	ctx := context.Background()

	_, err := srvc.TeamEvaluation(ctx, display(t, a, "team"), Viewer{UserID: 42}, 3)
	assert.Equal(t, http.StatusForbidden, srvcerror.StatusOf(err))

	_, err = srvc.TeamEvaluation(ctx, display(t, a, "team"), Viewer{UserID: 42, Staff: true}, 3)
	assert.NoError(t, err)

	_, err = srvc.TeamEvaluation(ctx, display(t, a, "broken"), Viewer{UserID: 1}, 3)
	var srvcErr *srvcerror.Error
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, activity.ErrCodeQuestionNotSelected, srvcErr.ErrorCode())
}
