package activity

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/jawad-khan/xblock-group-project-v2/stage"
)

type ActivityTomlManifest struct {
	ID          string      `toml:"id" validate:"required"`
	ProjectID   string      `toml:"project_id"`
	CourseID    string      `toml:"course_id" validate:"required"`
	DisplayName string      `toml:"display_name"`
	Stages      []TomlStage `toml:"stages" validate:"required,dive"`
}

type TomlStage struct {
	ID        string     `toml:"id" validate:"required"`
	Name      string     `toml:"name"`
	Type      string     `toml:"type" validate:"required,stage_type"`
	OpenDate  *time.Time `toml:"open_date"`
	CloseDate *time.Time `toml:"close_date"`

	Submissions      []TomlSubmission      `toml:"submissions" validate:"dive"`
	Questions        []TomlQuestion        `toml:"questions" validate:"dive"`
	FeedbackDisplays []TomlFeedbackDisplay `toml:"feedback_displays" validate:"dive"`
	Resources        []TomlResource        `toml:"resources" validate:"dive"`
	VideoResources   []TomlVideoResource   `toml:"video_resources" validate:"dive"`
	HelpTexts        []string              `toml:"help_texts" validate:"dive,oneof=submissions grade_rubric"`

	PeerSelector  bool `toml:"peer_selector"`
	GroupSelector bool `toml:"group_selector"`
	ProjectTeam   bool `toml:"project_team"`
}

type TomlSubmission struct {
	UploadID    string `toml:"upload_id" validate:"required"`
	DisplayName string `toml:"display_name"`
	Description string `toml:"description"`
}

type TomlQuestion struct {
	QuestionID      string `toml:"question_id"`
	Title           string `toml:"title"`
	AssessmentTitle string `toml:"assessment_title"`
	Content         string `toml:"content" validate:"required"`
	Required        bool   `toml:"required"`
	Grade           bool   `toml:"grade"`
	SingleLine      bool   `toml:"single_line"`
	CSSClasses      string `toml:"css_classes"`
}

type TomlFeedbackDisplay struct {
	ID         string `toml:"id"`
	Kind       string `toml:"kind" validate:"required,oneof=team grade"`
	QuestionID string `toml:"question_id"`
	ShowMean   bool   `toml:"show_mean"`
}

type TomlResource struct {
	DisplayName     string `toml:"display_name"`
	Description     string `toml:"description"`
	Location        string `toml:"location" validate:"required"`
	GradingCriteria bool   `toml:"grading_criteria"`
}

type TomlVideoResource struct {
	DisplayName string `toml:"display_name"`
	Description string `toml:"description"`
	VideoID     string `toml:"video_id" validate:"required"`
}

func LoadFile(path string) (*Activity, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read activity manifest %s: %w", path, err)
	}
	return ParseTomlManifest(content)
}

// ParseTomlManifest decodes, validates and links an activity manifest.
func ParseTomlManifest(manifest []byte) (*Activity, error) {
	m := ActivityTomlManifest{}
	err := toml.Unmarshal(manifest, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	assignMissingIDs(&m)

	err = validateManifest(&m)
	if err != nil {
		return nil, err
	}

	a := build(&m)

	err = validateReferences(a)
	if err != nil {
		return nil, err
	}

	return a, nil
}

// assignMissingIDs gives questions and displays without an id a generated one.
func assignMissingIDs(m *ActivityTomlManifest) {
	for i := range m.Stages {
		s := &m.Stages[i]
		for j := range s.Questions {
			if s.Questions[j].QuestionID == "" {
				s.Questions[j].QuestionID = uuid.NewString()
			}
		}
		for j := range s.FeedbackDisplays {
			if s.FeedbackDisplays[j].ID == "" {
				s.FeedbackDisplays[j].ID = fmt.Sprintf("%s-display-%d", s.ID, j+1)
			}
		}
	}
}

func build(m *ActivityTomlManifest) *Activity {
	a := &Activity{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		CourseID:    m.CourseID,
		DisplayName: m.DisplayName,
	}

	for _, ts := range m.Stages {
		s := &Stage{
			Stage: stage.Stage{
				ID:         ts.ID,
				ActivityID: m.ID,
				Name:       ts.Name,
				Type:       stage.Type(ts.Type),
				OpenDate:   ts.OpenDate,
				CloseDate:  ts.CloseDate,
			},
			HasPeerSelector:  ts.PeerSelector,
			HasGroupSelector: ts.GroupSelector,
			HasProjectTeam:   ts.ProjectTeam,
		}

		for _, sub := range ts.Submissions {
			s.Submissions = append(s.Submissions, Submission{
				StageID:     ts.ID,
				UploadID:    sub.UploadID,
				DisplayName: sub.DisplayName,
				Description: sub.Description,
			})
		}
		for _, q := range ts.Questions {
			s.Questions = append(s.Questions, Question{
				StageID:         ts.ID,
				QuestionID:      q.QuestionID,
				Title:           q.Title,
				AssessmentTitle: q.AssessmentTitle,
				Content:         q.Content,
				Required:        q.Required,
				Grade:           q.Grade,
				SingleLine:      q.SingleLine,
				CSSClasses:      q.CSSClasses,
			})
		}
		for _, d := range ts.FeedbackDisplays {
			s.FeedbackDisplays = append(s.FeedbackDisplays, FeedbackDisplay{
				StageID:    ts.ID,
				ID:         d.ID,
				Kind:       DisplayKind(d.Kind),
				QuestionID: d.QuestionID,
				ShowMean:   d.ShowMean,
			})
		}
		for _, r := range ts.Resources {
			s.Resources = append(s.Resources, Resource{
				StageID:         ts.ID,
				DisplayName:     r.DisplayName,
				Description:     r.Description,
				Location:        r.Location,
				GradingCriteria: r.GradingCriteria,
			})
		}
		for _, v := range ts.VideoResources {
			s.VideoResources = append(s.VideoResources, VideoResource{
				StageID:     ts.ID,
				DisplayName: v.DisplayName,
				Description: v.Description,
				VideoID:     v.VideoID,
			})
		}
		for _, h := range ts.HelpTexts {
			s.HelpTexts = append(s.HelpTexts, HelpText{StageID: ts.ID, Kind: HelpTextKind(h)})
		}

		a.Stages = append(a.Stages, s)
	}

	return a
}
