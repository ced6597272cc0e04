package feedback

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/jawad-khan/xblock-group-project-v2/logger"
)

// MeanNotApplicable replaces the mean when it cannot be computed.
const MeanNotApplicable = "N/A"

type Item struct {
	Question string
	Answer   string
}

// Result holds HTML-escaped answers. Mean is nil unless it was requested.
type Result struct {
	Answers []string
	Mean    *string
}

// Aggregate keeps the answers given to questionID, escapes each of them
// once and, when wantMean is set, averages them. A single non-numeric
// answer or an empty selection makes the mean N/A.
func Aggregate(ctx context.Context, items []Item, questionID string, wantMean bool) Result {
	answers := make([]string, 0, len(items))
	for _, item := range items {
		if item.Question == questionID {
			answers = append(answers, html.EscapeString(item.Answer))
		}
	}

	res := Result{Answers: answers}
	if !wantMean {
		return res
	}

	mean, err := meanOf(answers)
	if err != nil {
		logger.FromContext(ctx).Warn("cannot compute mean of answers",
			"question_id", questionID, "error", err)
		na := MeanNotApplicable
		res.Mean = &na
		return res
	}

	formatted := fmt.Sprintf("%.1f", mean)
	res.Mean = &formatted
	return res
}

func meanOf(answers []string) (float64, error) {
	if len(answers) == 0 {
		return 0, fmt.Errorf("mean of an empty set of answers")
	}
	sum := 0.0
	for _, a := range answers {
		v, err := parseAnswer(a)
		if err != nil {
			return 0, fmt.Errorf("answer %q is not a number: %w", a, err)
		}
		sum += v
	}
	return sum / float64(len(answers)), nil
}

// parseAnswer reads a decimal number. Hex floats are rejected.
func parseAnswer(a string) (float64, error) {
	s := strings.TrimSpace(a)
	digits := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, fmt.Errorf("hexadecimal value %q", s)
	}
	return strconv.ParseFloat(s, 64)
}
