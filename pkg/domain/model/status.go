package model

import "fmt"

// StatusState is the state of a commit status
type StatusState string

const (
	StatusStateSuccess StatusState = "success"
	StatusStateError   StatusState = "error"
	StatusStateFailure StatusState = "failure"
	StatusStatePending StatusState = "pending"
)

// CommitStatus is one status entry on a commit
type CommitStatus struct {
	State       StatusState
	Context     string // Correlation key of the check that reported the status
	TargetURL   string
	Description string
}

// IsFailing reports whether the status is a candidate for being overwritten
func (s *CommitStatus) IsFailing() bool {
	return s.State == StatusStateError || s.State == StatusStateFailure
}

// OverwriteDescription builds the description of a status that replaces a
// failing one on behalf of an approving reviewer.
func OverwriteDescription(reviewer, priorDescription string) string {
	return fmt.Sprintf("Overwritten based on approval from: %s Message: %s", reviewer, priorDescription)
}
