package usecase

import (
	"context"

	"github.com/m-mizutani/approval-checker/pkg/domain/interfaces"
	"github.com/m-mizutani/approval-checker/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Authorizer decides whether a reviewer may overwrite failing statuses
type Authorizer struct {
	githubClient interfaces.GitHubClient
}

// NewAuthorizer creates a new Authorizer
func NewAuthorizer(githubClient interfaces.GitHubClient) *Authorizer {
	return &Authorizer{
		githubClient: githubClient,
	}
}

// IsAuthorized evaluates username against policy for owner/repo. Checks run
// in order (organizations, teams, users, admins) and stop at the first match.
func (a *Authorizer) IsAuthorized(ctx context.Context, username, owner, repo string, policy *model.AuthorizationPolicy) (bool, error) {
	logger := ctxlog.From(ctx)

	for _, org := range policy.Orgs {
		if a.githubClient.IsUserInOrg(ctx, org, username) {
			logger.Debug("Authorized by organization membership", "user", username, "org", org)
			return true, nil
		}
	}

	for _, slug := range policy.Teams {
		teamID, err := a.githubClient.GetTeamID(ctx, owner, slug)
		if err != nil {
			// An unresolvable team never matches; the remaining branches still apply
			if model.IsErrorKind(err, model.ErrKindTeamNotFound) {
				logger.Warn("Team in policy not found, skipping", "org", owner, "team", slug)
			} else {
				logger.Warn("Failed to resolve team, skipping", "org", owner, "team", slug, "error", err)
			}
			continue
		}

		onTeam, err := a.githubClient.IsUserOnTeam(ctx, teamID, username)
		if err != nil {
			return false, goerr.Wrap(err, "failed to check team membership", goerr.V("team", slug), goerr.V("user", username))
		}
		if onTeam {
			logger.Debug("Authorized by team membership", "user", username, "team", slug)
			return true, nil
		}
	}

	if policy.HasUser(username) {
		logger.Debug("Authorized by user list", "user", username)
		return true, nil
	}

	if policy.Admins {
		perm, err := a.githubClient.GetUserPermission(ctx, owner+"/"+repo, username)
		if err != nil {
			return false, goerr.Wrap(err, "failed to get user permission", goerr.V("user", username))
		}
		return perm == model.PermissionAdmin, nil
	}

	return false, nil
}
