package interfaces

import (
	"context"

	"github.com/m-mizutani/approval-checker/pkg/domain/model"
)

// GitHubClient defines operations for interacting with GitHub API.
// Repositories are addressed by full name (owner/repo).
type GitHubClient interface {
	// GetUserPermission returns the collaborator permission of username on the repository
	GetUserPermission(ctx context.Context, repoFullName, username string) (model.Permission, error)

	// PostStatus creates a success status replacing a failing one and returns the HTTP status code of the write
	PostStatus(ctx context.Context, repoFullName, ref, statusContext, targetURL, reviewer, priorDescription string) (int, error)

	// GetStatuses returns the combined status entries of ref
	GetStatuses(ctx context.Context, repoFullName, ref string) ([]*model.CommitStatus, error)

	// GetOrganizationTeams returns every team of org, following pagination
	GetOrganizationTeams(ctx context.Context, org string) ([]*model.Team, error)

	// GetTeamID resolves a team slug within org
	GetTeamID(ctx context.Context, org, slug string) (int64, error)

	// GetTeamMembers returns the logins of the members of a team
	GetTeamMembers(ctx context.Context, teamID int64) ([]string, error)

	// IsUserOnTeam reports whether username is an active member or maintainer of the team
	IsUserOnTeam(ctx context.Context, teamID int64, username string) (bool, error)

	// IsUserInOrg reports whether username is a member of org. Any failure means false.
	IsUserInOrg(ctx context.Context, org, username string) bool

	// GetFileContents returns the raw contents of path in the default branch
	GetFileContents(ctx context.Context, repoFullName, path string) ([]byte, error)

	// GetConfig fetches and decodes the policy file of a repository without validating it
	GetConfig(ctx context.Context, repoFullName, filename string) (*model.PolicyDocument, error)
}
