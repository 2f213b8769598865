package domain

// statusTransitions lists the legal successor statuses for each pipeline
// stage. Backward moves are allowed so users can correct mistakes, with one
// deliberate asymmetry: archived can re-enter offer, rejected cannot.
var statusTransitions = map[PipelineStatus][]PipelineStatus{
	StatusSaved:        {StatusApplied, StatusRejected, StatusArchived},
	StatusApplied:      {StatusSaved, StatusInterviewing, StatusRejected, StatusArchived},
	StatusInterviewing: {StatusSaved, StatusApplied, StatusOffer, StatusRejected, StatusArchived},
	StatusOffer:        {StatusSaved, StatusApplied, StatusInterviewing, StatusRejected, StatusArchived},
	StatusRejected:     {StatusSaved, StatusApplied, StatusInterviewing, StatusArchived},
	StatusArchived:     {StatusSaved, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected},
}

// CanTransitionTo reports whether moving from s to next is a legal pipeline move.
func (s PipelineStatus) CanTransitionTo(next PipelineStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Successors returns the legal successor statuses of s.
func (s PipelineStatus) Successors() []PipelineStatus {
	allowed := statusTransitions[s]
	out := make([]PipelineStatus, len(allowed))
	copy(out, allowed)
	return out
}
