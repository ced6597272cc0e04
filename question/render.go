package question

import (
	"context"
	"errors"
	"strings"

	"github.com/beevik/etree"

	"github.com/jawad-khan/xblock-group-project-v2/activity"
	"github.com/jawad-khan/xblock-group-project-v2/logger"
)

type Options struct {
	Disabled     bool // stage is closed
	SingleLine   bool
	ExtraClasses []string
}

var (
	errNoAnswerElement    = errors.New("no answer element")
	errManyAnswerElements = errors.New("more than one top-level element")
	errStrayText          = errors.New("text outside the answer element")
)

// checkSingleRoot requires exactly one top-level element. Declarations,
// comments and whitespace may surround it.
func checkSingleRoot(doc *etree.Document) error {
	elements := 0
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			elements++
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return errStrayText
			}
		}
	}
	switch {
	case elements == 0:
		return errNoAnswerElement
	case elements > 1:
		return errManyAnswerElements
	}
	return nil
}

// RenderAnswerMarkup injects the question id and answer classes into the
// answer control described by raw. Content that does not parse renders as
// an empty string.
func RenderAnswerMarkup(ctx context.Context, raw string, questionID string, opts Options) string {
	doc := etree.NewDocument()
	err := doc.ReadFromString(raw)
	if err == nil {
		err = checkSingleRoot(doc)
	}
	if err != nil {
		logger.FromContext(ctx).Error("failed to parse question content",
			"question_id", questionID, "content", raw, "error", err)
		return ""
	}

	node := doc.Root()
	node.CreateAttr("name", questionID)
	node.CreateAttr("id", questionID)

	classes := []string{"answer"}
	if current := node.SelectAttrValue("class", ""); current != "" {
		classes = append(classes, current)
	}
	classes = append(classes, opts.ExtraClasses...)
	if opts.SingleLine {
		classes = append(classes, "side")
	}
	if opts.Disabled {
		node.CreateAttr("disabled", "disabled")
	} else {
		classes = append(classes, "editable")
	}
	node.CreateAttr("class", strings.Join(classes, " "))

	out := etree.NewDocument()
	out.SetRoot(node.Copy())
	s, err := out.WriteToString()
	if err != nil {
		logger.FromContext(ctx).Error("failed to write question content",
			"question_id", questionID, "error", err)
		return ""
	}
	return s
}

// Render renders the answer control of q.
func Render(ctx context.Context, q activity.Question, disabled bool) string {
	return RenderAnswerMarkup(ctx, q.Content, q.QuestionID, Options{
		Disabled:   disabled,
		SingleLine: q.SingleLine,
	})
}

// Classes are the CSS classes of the element wrapping a question.
func Classes(q activity.Question) string {
	classes := []string{"question"}
	if q.Required {
		classes = append(classes, "required")
	}
	if q.CSSClasses != "" {
		classes = append(classes, q.CSSClasses)
	}
	return strings.Join(classes, " ")
}
