package stage

import "time"

type Type string

const (
	TypeBasic          Type = "basic"
	TypeSubmission     Type = "submission"
	TypeTeamEvaluation Type = "team_evaluation"
	TypePeerReview     Type = "peer_review"
	TypeEvalDisplay    Type = "evaluation_display"
	TypeGradeDisplay   Type = "grade_display"
)

// Action is the verb used in "Can't <action> as stage is ..." messages.
func (t Type) Action() string {
	switch t {
	case TypeSubmission:
		return "upload submission"
	case TypeTeamEvaluation, TypePeerReview:
		return "save feedback"
	case TypeEvalDisplay, TypeGradeDisplay:
		return "view feedback"
	default:
		return "view stage"
	}
}

func (t Type) Valid() bool {
	switch t {
	case TypeBasic, TypeSubmission, TypeTeamEvaluation, TypePeerReview, TypeEvalDisplay, TypeGradeDisplay:
		return true
	}
	return false
}

// Stage is one step of a group activity. ActivityID is the parent
// reference, resolved once when the activity manifest is loaded.
type Stage struct {
	ID         string
	ActivityID string
	Name       string
	Type       Type
	OpenDate   *time.Time
	CloseDate  *time.Time
}

// IsOpen reports whether the open date, if any, has been reached.
func (s Stage) IsOpen(now time.Time) bool {
	return s.OpenDate == nil || !now.Before(*s.OpenDate)
}

// IsClosed reports whether the close date, if any, has passed.
func (s Stage) IsClosed(now time.Time) bool {
	return s.CloseDate != nil && now.After(*s.CloseDate)
}

func (s Stage) AvailableNow(now time.Time) bool {
	return s.IsOpen(now) && !s.IsClosed(now)
}

func (s Stage) Availability(now time.Time, isGroupMember bool) Availability {
	return Availability{
		Open:   s.IsOpen(now),
		Closed: s.IsClosed(now),
		Member: isGroupMember,
		Action: s.Type.Action(),
	}
}
