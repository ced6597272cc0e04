package views

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/jawad-khan/xblock-group-project-v2/activity"
	"github.com/jawad-khan/xblock-group-project-v2/feedback"
	"github.com/jawad-khan/xblock-group-project-v2/question"
	"github.com/jawad-khan/xblock-group-project-v2/submsrvc"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, name, data)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

type questionView struct {
	QuestionID string
	Classes    string
	Title      string
	Content    template.HTML
}

// Question renders a review question. disabled is set once the stage closed.
func Question(ctx context.Context, q activity.Question, disabled bool) (string, error) {
	return render("question", questionView{
		QuestionID: q.QuestionID,
		Classes:    question.Classes(q),
		Title:      q.DisplayNameWithDefault(),
		// markup was rebuilt by the renderer, attribute values are escaped
		Content: template.HTML(question.Render(ctx, q, disabled)),
	})
}

type assessmentView struct {
	DisplayID     string
	QuestionTitle string
	Answers       []template.HTML
	ShowMean      bool
	Mean          string
}

// Assessment renders aggregated feedback. Answers arrive escaped and are
// written as is.
func Assessment(a feedback.Assessment) (string, error) {
	answers := make([]template.HTML, len(a.Answers))
	for i, ans := range a.Answers {
		answers[i] = template.HTML(ans)
	}
	return render("assessment", assessmentView{
		DisplayID:     a.DisplayID,
		QuestionTitle: a.QuestionTitle,
		Answers:       answers,
		ShowMean:      a.ShowMean,
		Mean:          a.Mean,
	})
}

type slotView struct {
	UploadID    string
	DisplayName string
	Description string
	Upload      *submsrvc.UploadRecord
}

type submissionsView struct {
	StageID   string
	CanUpload bool
	Slots     []slotView
}

func Submissions(stageID string, slots []submsrvc.SlotUpload, canUpload bool) (string, error) {
	v := submissionsView{StageID: stageID, CanUpload: canUpload}
	for _, s := range slots {
		v.Slots = append(v.Slots, slotView{
			UploadID:    s.Submission.UploadID,
			DisplayName: s.Submission.DisplayName,
			Description: s.Submission.Description,
			Upload:      s.Upload,
		})
	}
	return render("submissions", v)
}

type resourcesView struct {
	Resources []activity.Resource
	Videos    []activity.VideoResource
}

func Resources(st *activity.Stage) (string, error) {
	return render("resources", resourcesView{Resources: st.Resources, Videos: st.VideoResources})
}

func Help(a *activity.Activity, st *activity.Stage) (string, error) {
	texts := make([]string, 0, len(st.HelpTexts))
	for _, h := range st.HelpTexts {
		texts = append(texts, h.Text(a.DisplayName))
	}
	return render("help", texts)
}
