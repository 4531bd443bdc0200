package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/approval-checker/pkg/domain/interfaces"
	"github.com/m-mizutani/approval-checker/pkg/domain/model"
	"github.com/m-mizutani/approval-checker/pkg/utils/errs"
	"github.com/m-mizutani/ctxlog"
)

// DefaultMaxPayloadSize matches the 25MB cap GitHub puts on webhook payloads
const DefaultMaxPayloadSize int64 = 25 << 20

// WebhookHandler handles GitHub pull_request_review webhooks
type WebhookHandler struct {
	reviewUC       interfaces.ReviewUseCase
	maxPayloadSize int64
}

// WebhookOption is a functional option for WebhookHandler
type WebhookOption func(*WebhookHandler)

// WithMaxPayloadSize sets the largest accepted request body in bytes
func WithMaxPayloadSize(size int64) WebhookOption {
	return func(h *WebhookHandler) {
		h.maxPayloadSize = size
	}
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(reviewUC interfaces.ReviewUseCase, opts ...WebhookOption) *WebhookHandler {
	h := &WebhookHandler{
		reviewUC:       reviewUC,
		maxPayloadSize: DefaultMaxPayloadSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle processes webhook requests
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deliveryID := r.Header.Get("X-GitHub-Delivery")
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}

	logger := ctxlog.From(r.Context()).With("delivery_id", deliveryID)
	ctx := ctxlog.With(r.Context(), logger)

	// Read payload
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxPayloadSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn("Request body too large", "limit", tooLarge.Limit)
			writeJSON(ctx, w, http.StatusRequestEntityTooLarge, &model.Response{
				Status:  model.ResponseStatusInvalidPayload,
				Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		logger.Error("Failed to read request body", "error", err)
		writeJSON(ctx, w, http.StatusBadRequest, &model.Response{
			Status:  model.ResponseStatusInvalidPayload,
			Message: "failed to read request body",
		})
		return
	}
	defer r.Body.Close()

	delivery := &model.Delivery{
		ID:         deliveryID,
		EventType:  r.Header.Get("X-GitHub-Event"),
		Signature:  r.Header.Get("X-Hub-Signature"),
		Payload:    body,
		ReceivedAt: time.Now(),
	}

	resp, err := h.reviewUC.HandleReview(ctx, delivery)
	if err != nil {
		status, errResp := errorResponse(err)
		if status >= http.StatusInternalServerError {
			errs.Handle(ctx, err)
		} else {
			logger.Warn("Rejected webhook delivery", "error", err, "status", status)
		}
		writeJSON(ctx, w, status, errResp)
		return
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}

// errorResponse maps an error returned by the use case to a response
func errorResponse(err error) (int, *model.Response) {
	var respErr model.ResponseError
	if errors.As(err, &respErr) {
		return respErr.Response()
	}

	// Remote API failures without a known meaning
	return http.StatusInternalServerError, &model.Response{Status: model.ResponseStatusAPIError}
}
