package interfaces

import (
	"context"

	"github.com/m-mizutani/approval-checker/pkg/domain/model"
)

// ReviewUseCase handles pull request review deliveries
type ReviewUseCase interface {
	// HandleReview processes one delivery. A non-nil error terminates the
	// delivery; errors implementing model.ResponseError carry their response.
	HandleReview(ctx context.Context, delivery *model.Delivery) (*model.Response, error)
}
