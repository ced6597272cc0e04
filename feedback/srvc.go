package feedback

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jawad-khan/xblock-group-project-v2/activity"
	"github.com/jawad-khan/xblock-group-project-v2/projectapi"
)

// Viewer is the user looking at a feedback display.
type Viewer struct {
	UserID int
	Staff  bool
}

// Assessment is what a feedback display renders.
type Assessment struct {
	DisplayID     string
	QuestionTitle string
	Answers       []string
	ShowMean      bool
	Mean          string
}

type FeedbackSrvc struct {
	logger   *slog.Logger
	activity *activity.Activity
	project  projectapi.Client
}

func NewFeedbackSrvc(a *activity.Activity, project projectapi.Client) *FeedbackSrvc {
	return &FeedbackSrvc{
		logger:   slog.Default().With("module", "feedback"),
		activity: a,
		project:  project,
	}
}

// TeamEvaluation shows the viewer the answers teammates gave about them.
func (s *FeedbackSrvc) TeamEvaluation(ctx context.Context, display activity.FeedbackDisplay, viewer Viewer, groupID int) (Assessment, error) {
	return s.assess(ctx, display, viewer, groupID, func() ([]projectapi.ReviewItem, error) {
		return s.project.GetPeerReviewItems(ctx, viewer.UserID, groupID, display.StageID)
	})
}

// GradeEvaluation shows the answers other groups gave about the group.
func (s *FeedbackSrvc) GradeEvaluation(ctx context.Context, display activity.FeedbackDisplay, viewer Viewer, groupID int) (Assessment, error) {
	return s.assess(ctx, display, viewer, groupID, func() ([]projectapi.ReviewItem, error) {
		return s.project.GetGroupReviewItems(ctx, groupID, display.StageID)
	})
}

// Evaluate dispatches on the display kind.
func (s *FeedbackSrvc) Evaluate(ctx context.Context, display activity.FeedbackDisplay, viewer Viewer, groupID int) (Assessment, error) {
	if display.Kind == activity.DisplayGrade {
		return s.GradeEvaluation(ctx, display, viewer, groupID)
	}
	return s.TeamEvaluation(ctx, display, viewer, groupID)
}

func (s *FeedbackSrvc) assess(
	ctx context.Context,
	display activity.FeedbackDisplay,
	viewer Viewer,
	groupID int,
	fetch func() ([]projectapi.ReviewItem, error),
) (Assessment, error) {
	err := s.checkMember(ctx, viewer, groupID)
	if err != nil {
		return Assessment{}, err
	}

	q, err := s.activity.DisplayQuestion(display)
	if err != nil {
		return Assessment{}, err
	}

	raw, err := fetch()
	if err != nil {
		return Assessment{}, fmt.Errorf("failed to get review items of group %d: %w", groupID, err)
	}
	items := make([]Item, len(raw))
	for i, r := range raw {
		items[i] = Item{Question: r.Question, Answer: r.Answer}
	}

	res := Aggregate(ctx, items, q.QuestionID, display.ShowMean)
	a := Assessment{
		DisplayID:     display.ID,
		QuestionTitle: q.DisplayTitle(),
		Answers:       res.Answers,
		ShowMean:      display.ShowMean,
	}
	if res.Mean != nil {
		a.Mean = *res.Mean
	}
	return a, nil
}

func (s *FeedbackSrvc) checkMember(ctx context.Context, viewer Viewer, groupID int) error {
	if viewer.Staff {
		return nil
	}
	wg, err := s.project.GetWorkgroupByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !wg.HasMember(viewer.UserID) {
		s.logger.Warn("outsider tried to view group feedback", "user_id", viewer.UserID, "group_id", groupID)
		return ErrOutsiderDisallowed()
	}
	return nil
}
