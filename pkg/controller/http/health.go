package http

import (
	"net/http"

	"github.com/m-mizutani/approval-checker/pkg/domain/model"
	"github.com/m-mizutani/approval-checker/pkg/domain/types"
)

func healthHandler(policyFile string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, &model.HealthStatus{
			Status:      "healthy",
			Service:     "approval-checker",
			Version:     types.Version,
			WebhookPath: WebhookPath,
			PolicyFile:  policyFile,
		})
	}
}
