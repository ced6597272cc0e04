package stage

type State string

const (
	StateNotStarted State = "not_started"
	StateIncomplete State = "incomplete"
	StateCompleted  State = "completed"
)

// StateData is reported to the client after a stage may have changed state.
type StateData struct {
	StageID string `json:"stage_id"`
	State   State  `json:"state"`
}

// ComputeState is completed when every member completed the stage,
// incomplete when some did and not started otherwise.
func ComputeState(memberIDs []int, completed map[int]bool) State {
	done := 0
	for _, id := range memberIDs {
		if completed[id] {
			done++
		}
	}
	switch {
	case len(memberIDs) > 0 && done == len(memberIDs):
		return StateCompleted
	case done > 0:
		return StateIncomplete
	default:
		return StateNotStarted
	}
}
