package activity

import (
	"fmt"

	"github.com/jawad-khan/xblock-group-project-v2/stage"
)

// Activity is a group project activity: an ordered list of stages, each
// holding its components. Components reference their stage by id.
type Activity struct {
	ID          string
	ProjectID   string
	CourseID    string
	DisplayName string
	Stages      []*Stage
}

type Stage struct {
	stage.Stage
	Submissions      []Submission
	Questions        []Question
	FeedbackDisplays []FeedbackDisplay
	Resources        []Resource
	VideoResources   []VideoResource
	HelpTexts        []HelpText
	HasPeerSelector  bool
	HasGroupSelector bool
	HasProjectTeam   bool
}

// Submission is one deliverable slot; UploadID keys the stored file.
type Submission struct {
	StageID     string
	UploadID    string
	DisplayName string
	Description string
}

type Question struct {
	StageID         string
	QuestionID      string
	Title           string
	AssessmentTitle string
	Content         string // answer control markup
	Required        bool
	Grade           bool
	SingleLine      bool
	CSSClasses      string
}

func (q Question) DisplayNameWithDefault() string {
	if q.Title != "" {
		return q.Title
	}
	return "Review Question"
}

// DisplayTitle is the title shown when the question is displayed in an
// assessment.
func (q Question) DisplayTitle() string {
	if q.AssessmentTitle != "" {
		return q.AssessmentTitle
	}
	return q.Title
}

type DisplayKind string

const (
	// DisplayTeam shows peer reviews a user received from teammates.
	DisplayTeam DisplayKind = "team"
	// DisplayGrade shows reviews the whole group received.
	DisplayGrade DisplayKind = "grade"
)

type FeedbackDisplay struct {
	StageID    string
	ID         string
	Kind       DisplayKind
	QuestionID string
	ShowMean   bool
}

type Resource struct {
	StageID         string
	DisplayName     string
	Description     string
	Location        string
	GradingCriteria bool
}

type VideoResource struct {
	StageID     string
	DisplayName string
	Description string
	VideoID     string
}

type HelpTextKind string

const (
	HelpSubmissions HelpTextKind = "submissions"
	HelpGradeRubric HelpTextKind = "grade_rubric"
)

type HelpText struct {
	StageID string
	Kind    HelpTextKind
}

// Text renders the help sentence for the activity.
func (h HelpText) Text(activityName string) string {
	switch h.Kind {
	case HelpSubmissions:
		return "You can upload (or replace) your file(s) before the due date in the project navigator panel" +
			" at right by clicking the upload button"
	case HelpGradeRubric:
		return fmt.Sprintf("The %s grading rubric is provided in the project navigator panel"+
			" at right by clicking the resources button", activityName)
	}
	return ""
}

func (a *Activity) Stage(stageID string) (*Stage, error) {
	for _, s := range a.Stages {
		if s.ID == stageID {
			return s, nil
		}
	}
	return nil, ErrStageNotFound(stageID)
}

func (s *Stage) Submission(uploadID string) (Submission, error) {
	for _, sub := range s.Submissions {
		if sub.UploadID == uploadID {
			return sub, nil
		}
	}
	return Submission{}, ErrSubmissionNotFound(uploadID)
}

func (s *Stage) Question(questionID string) (Question, error) {
	for _, q := range s.Questions {
		if q.QuestionID == questionID {
			return q, nil
		}
	}
	return Question{}, ErrQuestionNotFound(questionID)
}

func (s *Stage) FeedbackDisplay(id string) (FeedbackDisplay, error) {
	for _, d := range s.FeedbackDisplays {
		if d.ID == id {
			return d, nil
		}
	}
	return FeedbackDisplay{}, ErrFeedbackDisplayNotFound(id)
}

// TeamEvaluationQuestions are the questions asked in team evaluation stages.
func (a *Activity) TeamEvaluationQuestions() []Question {
	return a.questionsOf(stage.TypeTeamEvaluation)
}

// PeerReviewQuestions are the questions asked in peer (group) review stages.
func (a *Activity) PeerReviewQuestions() []Question {
	return a.questionsOf(stage.TypePeerReview)
}

func (a *Activity) questionsOf(t stage.Type) []Question {
	var res []Question
	for _, s := range a.Stages {
		if s.Type == t {
			res = append(res, s.Questions...)
		}
	}
	return res
}

// QuestionsFor returns the questions a display of the given kind can show.
func (a *Activity) QuestionsFor(kind DisplayKind) []Question {
	if kind == DisplayGrade {
		return a.PeerReviewQuestions()
	}
	return a.TeamEvaluationQuestions()
}

// DisplayQuestion resolves the question a feedback display points at.
func (a *Activity) DisplayQuestion(d FeedbackDisplay) (Question, error) {
	if d.QuestionID == "" {
		return Question{}, ErrQuestionNotSelected()
	}
	var matching []Question
	for _, q := range a.QuestionsFor(d.Kind) {
		if q.QuestionID == d.QuestionID {
			matching = append(matching, q)
		}
	}
	if len(matching) > 1 {
		return Question{}, ErrQuestionNotUnique(d.QuestionID)
	}
	if len(matching) == 0 {
		return Question{}, ErrQuestionNotFound(d.QuestionID)
	}
	return matching[0], nil
}

// DisplayNameWithDefault mirrors how a feedback display is labelled.
func (a *Activity) DisplayNameWithDefault(d FeedbackDisplay) string {
	q, err := a.DisplayQuestion(d)
	if err != nil {
		return "Review Assessment"
	}
	return fmt.Sprintf("Review Assessment for question %q", q.Title)
}
