package usecase

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/approval-checker/pkg/domain/interfaces"
	"github.com/m-mizutani/approval-checker/pkg/domain/model"
	"github.com/m-mizutani/approval-checker/pkg/utils/errs"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// config holds internal use case configuration
type config struct {
	webhookSecret string
	policyFile    string
}

// Option is a functional option for the review use case
type Option func(*config)

// WithWebhookSecret sets the shared secret used to verify deliveries
func WithWebhookSecret(secret string) Option {
	return func(c *config) {
		c.webhookSecret = secret
	}
}

// WithPolicyFile sets the path of the policy file in each repository
func WithPolicyFile(path string) Option {
	return func(c *config) {
		c.policyFile = path
	}
}

type reviewUseCase struct {
	cfg          config
	githubClient interfaces.GitHubClient
	authorizer   *Authorizer
}

// NewReview creates a new instance of ReviewUseCase
func NewReview(githubClient interfaces.GitHubClient, opts ...Option) interfaces.ReviewUseCase {
	cfg := config{
		policyFile: model.DefaultPolicyFile,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &reviewUseCase{
		cfg:          cfg,
		githubClient: githubClient,
		authorizer:   NewAuthorizer(githubClient),
	}
}

// HandleReview verifies a pull request review delivery and, when the review
// approves the pull request and the reviewer is authorized by the repository
// policy, overwrites every failing status of the reviewed commit.
func (uc *reviewUseCase) HandleReview(ctx context.Context, delivery *model.Delivery) (*model.Response, error) {
	logger := ctxlog.From(ctx)

	signature, err := ParseSignature(delivery.Signature)
	if err != nil {
		return nil, err
	}
	if err := VerifySignature(delivery.Payload, signature, uc.cfg.webhookSecret); err != nil {
		return nil, err
	}

	if !delivery.IsSupportedEvent() {
		logger.Info("Ignoring unsupported event type", "event_type", delivery.EventType)
		return &model.Response{
			Status:  model.ResponseStatusOK,
			Message: fmt.Sprintf("Event type %s is ignored", delivery.EventType),
		}, nil
	}

	event, err := ParseReviewEvent(delivery.Payload)
	if err != nil {
		return nil, err
	}

	logger = logger.With("repo", event.RepoFullName, "reviewer", event.Reviewer, "commit", event.CommitID)
	ctx = ctxlog.With(ctx, logger)

	doc, err := uc.githubClient.GetConfig(ctx, event.RepoFullName, uc.cfg.policyFile)
	if err != nil {
		logger.Debug("Failed to load policy file", "file", uc.cfg.policyFile, "error", err)
		return nil, err
	}

	policy, err := ValidatePolicy(doc)
	if err != nil {
		logger.Debug("Policy file is invalid", "file", uc.cfg.policyFile, "error", err)
		return nil, err
	}

	if !event.IsApproved() {
		logger.Info("Review was not approved. Nothing overwritten.", "state", event.State)
		return &model.Response{
			Status:  model.ResponseStatusOK,
			Message: "Review state is not approved",
		}, nil
	}

	statuses, err := uc.githubClient.GetStatuses(ctx, event.RepoFullName, event.CommitID)
	if err != nil {
		return nil, err
	}

	// Evaluated at most once per delivery, on the first failing status
	var authorized *bool

	for _, status := range statuses {
		if !status.IsFailing() {
			continue
		}

		if authorized == nil {
			ok, err := uc.authorizer.IsAuthorized(ctx, event.Reviewer, event.Owner, event.RepoName, policy)
			if err != nil {
				return nil, err
			}
			authorized = &ok
		}
		if !*authorized {
			logger.Info("Reviewer is not authorized to overwrite failed status", "context", status.Context)
			continue
		}

		logger.Info("Reviewer is authorized to overwrite failed status", "context", status.Context)
		code, err := uc.githubClient.PostStatus(ctx,
			event.RepoFullName,
			event.CommitID,
			status.Context,
			status.TargetURL,
			event.Reviewer,
			status.Description,
		)
		if err != nil || code != http.StatusCreated {
			logger.Error("Failed to post a status to GitHub for an approved review",
				"context", status.Context,
				"status_code", code,
			)
			if err != nil {
				errs.Handle(ctx, err)
			}
			continue
		}
		logger.Info("Successfully posted a status", "context", status.Context)
	}

	return &model.Response{Status: model.ResponseStatusOK}, nil
}

// ParseReviewEvent extracts the fields of a pull_request_review payload
// that are needed to process it.
func ParseReviewEvent(payload []byte) (*model.WebhookEvent, error) {
	parsed, err := github.ParseWebHook(model.EventTypePullRequestReview, payload)
	if err != nil {
		return nil, &model.PayloadError{Message: "failed to parse pull_request_review payload: " + err.Error()}
	}
	ev, ok := parsed.(*github.PullRequestReviewEvent)
	if !ok {
		return nil, goerr.New("unexpected payload type", goerr.V("type", fmt.Sprintf("%T", parsed)))
	}

	event := &model.WebhookEvent{
		RepoFullName: ev.GetRepo().GetFullName(),
		RepoName:     ev.GetRepo().GetName(),
		Owner:        ev.GetRepo().GetOwner().GetLogin(),
		Reviewer:     ev.GetReview().GetUser().GetLogin(),
		State:        model.ParseReviewState(ev.GetReview().GetState()),
		CommitID:     ev.GetReview().GetCommitID(),
	}

	for _, required := range []struct{ field, value string }{
		{field: "repository.full_name", value: event.RepoFullName},
		{field: "repository.name", value: event.RepoName},
		{field: "repository.owner.login", value: event.Owner},
		{field: "review.user.login", value: event.Reviewer},
		{field: "review.commit_id", value: event.CommitID},
	} {
		if required.value == "" {
			return nil, &model.PayloadError{Message: "missing required field: " + required.field}
		}
	}

	return event, nil
}
