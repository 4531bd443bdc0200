package errs

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
)

// Handle logs err and reports it to Sentry when a client is configured
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := ctxlog.From(ctx)

	hub := sentry.CurrentHub().Clone()
	if hub.Client() != nil {
		evID := hub.CaptureException(err)
		logger = logger.With("sentry_event_id", evID)
	}

	logger.Error("Error occurred", "error", err)
}
