package model_test

import (
	"testing"

	"github.com/m-mizutani/approval-checker/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestParseReviewState(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected model.ReviewState
	}{
		{name: "approved", input: "approved", expected: model.ReviewStateApproved},
		{name: "upper case approved", input: "APPROVED", expected: model.ReviewStateApproved},
		{name: "changes requested", input: "changes_requested", expected: model.ReviewStateChangesRequested},
		{name: "commented", input: "commented", expected: model.ReviewStateCommented},
		{name: "dismissed", input: "dismissed", expected: model.ReviewStateOther},
		{name: "empty", input: "", expected: model.ReviewStateOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, model.ParseReviewState(tt.input)).Equal(tt.expected)
		})
	}
}

func TestDelivery_IsSupportedEvent(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		expected  bool
	}{
		{name: "pull request review", eventType: "pull_request_review", expected: true},
		{name: "no event header", eventType: "", expected: true},
		{name: "ping", eventType: "ping", expected: false},
		{name: "pull request", eventType: "pull_request", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &model.Delivery{EventType: tt.eventType}
			gt.Value(t, d.IsSupportedEvent()).Equal(tt.expected)
		})
	}
}

func TestCommitStatus_IsFailing(t *testing.T) {
	for state, expected := range map[model.StatusState]bool{
		model.StatusStateError:   true,
		model.StatusStateFailure: true,
		model.StatusStatePending: false,
		model.StatusStateSuccess: false,
	} {
		s := &model.CommitStatus{State: state}
		gt.Value(t, s.IsFailing()).Equal(expected)
	}
}

func TestOverwriteDescription(t *testing.T) {
	desc := model.OverwriteDescription("alice", "Build failed: 3 tests")
	gt.Value(t, desc).Equal("Overwritten based on approval from: alice Message: Build failed: 3 tests")
}
