package model

import (
	"strings"
	"time"
)

// EventTypePullRequestReview is the only X-GitHub-Event value that is processed
const EventTypePullRequestReview = "pull_request_review"

// Delivery is a raw webhook delivery as received over HTTP
type Delivery struct {
	ID         string    // Retrieved from X-GitHub-Delivery header
	EventType  string    // Retrieved from X-GitHub-Event header
	Signature  string    // Retrieved from X-Hub-Signature header
	Payload    []byte    // Raw JSON payload, exactly as signed
	ReceivedAt time.Time // Time when the delivery was received
}

// IsSupportedEvent reports whether the delivery should be processed. An empty
// event type is accepted for callers that do not forward the header.
func (d *Delivery) IsSupportedEvent() bool {
	return d.EventType == "" || d.EventType == EventTypePullRequestReview
}

// ReviewState is the state of a submitted pull request review
type ReviewState string

const (
	ReviewStateApproved         ReviewState = "approved"
	ReviewStateChangesRequested ReviewState = "changes_requested"
	ReviewStateCommented        ReviewState = "commented"
	ReviewStateOther            ReviewState = "other"
)

// ParseReviewState normalizes a review state from a webhook payload.
// Webhooks send lower case values while the REST API uses upper case.
func ParseReviewState(s string) ReviewState {
	switch state := ReviewState(strings.ToLower(s)); state {
	case ReviewStateApproved, ReviewStateChangesRequested, ReviewStateCommented:
		return state
	default:
		return ReviewStateOther
	}
}

// WebhookEvent is a parsed pull request review event
type WebhookEvent struct {
	RepoFullName string      // owner/repo
	RepoName     string      // repo
	Owner        string      // Organization or user login owning the repository
	Reviewer     string      // Login of the user who submitted the review
	State        ReviewState // Review state
	CommitID     string      // Commit the review was submitted against
}

// IsApproved reports whether the review approves the pull request
func (e *WebhookEvent) IsApproved() bool {
	return e.State == ReviewStateApproved
}
