package model_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/m-mizutani/approval-checker/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name       string
		err        model.ResponseError
		wantCode   int
		wantStatus string
		wantMsg    string
	}{
		{
			name:       "signature error",
			err:        &model.SignatureError{Kind: model.ErrKindSignatureMismatch, Message: "mismatch"},
			wantCode:   http.StatusBadRequest,
			wantStatus: "Signature Validation Error",
			wantMsg:    "mismatch",
		},
		{
			name: "config error",
			err: &model.ConfigError{
				Kind: model.ErrKindSchemaViolation,
				Violations: []model.Violation{
					{Field: "admins", Reason: "must be a boolean"},
					{Field: "orgs[0]", Reason: "must be a string"},
				},
			},
			wantCode:   http.StatusInternalServerError,
			wantStatus: "Config Validation Error",
			wantMsg:    "admins: must be a boolean; orgs[0]: must be a string",
		},
		{
			name:       "file not found",
			err:        model.NewFileNotFoundError("acme/widgets", ".approval.yml"),
			wantCode:   http.StatusInternalServerError,
			wantStatus: "API Error",
			wantMsg:    "File not found: acme/widgets/.approval.yml",
		},
		{
			name:       "team not found has no detail",
			err:        model.NewTeamNotFoundError("acme", "core"),
			wantCode:   http.StatusInternalServerError,
			wantStatus: "API Error",
			wantMsg:    "",
		},
		{
			name:       "payload error",
			err:        &model.PayloadError{Message: "missing review.user.login"},
			wantCode:   http.StatusBadRequest,
			wantStatus: "Invalid Payload",
			wantMsg:    "missing review.user.login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := tt.err.Response()
			gt.Value(t, code).Equal(tt.wantCode)
			gt.Value(t, resp.Status).Equal(tt.wantStatus)
			gt.Value(t, resp.Message).Equal(tt.wantMsg)
		})
	}
}

func TestIsErrorKind(t *testing.T) {
	err := fmt.Errorf("get config: %w", model.NewFileNotFoundError("acme/widgets", "x.yml"))
	gt.Value(t, model.IsErrorKind(err, model.ErrKindFileNotFound)).Equal(true)
	gt.Value(t, model.IsErrorKind(err, model.ErrKindTeamNotFound)).Equal(false)
	gt.Value(t, model.IsErrorKind(fmt.Errorf("plain"), model.ErrKindFileNotFound)).Equal(false)
}
