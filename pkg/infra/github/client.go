package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/approval-checker/pkg/domain/interfaces"
	"github.com/m-mizutani/approval-checker/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const (
	defaultTimeout = 10 * time.Second
	perPage        = 100
)

// config holds internal client configuration
type config struct {
	baseURL   string
	timeout   time.Duration
	transport http.RoundTripper
}

// Option is a functional option for Client configuration
type Option func(*config)

// WithBaseURL sets the REST API endpoint, e.g. for GitHub Enterprise Server
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the timeout of every API call
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithTransport sets the underlying transport below basic authentication
func WithTransport(transport http.RoundTripper) Option {
	return func(c *config) {
		c.transport = transport
	}
}

// Client is a GitHub REST API client authenticated with basic auth
type Client struct {
	githubClient *github.Client
}

var _ interfaces.GitHubClient = (*Client)(nil)

// NewClient creates a new GitHub client with username and token authentication
func NewClient(cred model.Credentials, opts ...Option) (*Client, error) {
	cfg := &config{
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cred.Username == "" || cred.Token == "" {
		return nil, goerr.New("GitHub username and token are required")
	}

	tp := &github.BasicAuthTransport{
		Username:  cred.Username,
		Password:  cred.Token,
		Transport: cfg.transport,
	}
	githubClient := github.NewClient(&http.Client{
		Transport: tp,
		Timeout:   cfg.timeout,
	})

	if cfg.baseURL != "" {
		baseURL := cfg.baseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API URL", goerr.V("url", cfg.baseURL))
		}
		githubClient.BaseURL = u
	}

	return &Client{
		githubClient: githubClient,
	}, nil
}

// splitRepo splits a full repository name into owner and name
func splitRepo(repoFullName string) (string, string, error) {
	owner, repo, ok := strings.Cut(repoFullName, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", goerr.New("invalid repository full name", goerr.V("repo", repoFullName))
	}
	return owner, repo, nil
}

func isNotFound(resp *github.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusNotFound
}

func isNotFoundErr(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}

// GetUserPermission returns the collaborator permission of username on the repository
func (c *Client) GetUserPermission(ctx context.Context, repoFullName, username string) (model.Permission, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return "", err
	}

	level, _, err := c.githubClient.Repositories.GetPermissionLevel(ctx, owner, repo, username)
	if err != nil {
		return "", goerr.Wrap(err, "failed to get permission level",
			goerr.V("repo", repoFullName),
			goerr.V("user", username),
		)
	}

	return model.Permission(level.GetPermission()), nil
}

// PostStatus creates a success status for ref that replaces a failing one.
// The returned code is the HTTP status of the write; 201 means created.
func (c *Client) PostStatus(ctx context.Context, repoFullName, ref, statusContext, targetURL, reviewer, priorDescription string) (int, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return 0, err
	}

	status := &github.RepoStatus{
		State:       github.Ptr(string(model.StatusStateSuccess)),
		Description: github.Ptr(model.OverwriteDescription(reviewer, priorDescription)),
		Context:     github.Ptr(statusContext),
	}
	if targetURL != "" {
		status.TargetURL = github.Ptr(targetURL)
	}

	u := fmt.Sprintf("repos/%v/%v/statuses/%v", owner, repo, url.PathEscape(ref))
	req, err := c.githubClient.NewRequest(http.MethodPost, u, status)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to build status request", goerr.V("repo", repoFullName))
	}

	resp, err := c.githubClient.Do(ctx, req, nil)
	if resp == nil {
		return 0, goerr.Wrap(err, "failed to post status",
			goerr.V("repo", repoFullName),
			goerr.V("ref", ref),
			goerr.V("context", statusContext),
		)
	}
	if err != nil {
		return resp.StatusCode, goerr.Wrap(err, "GitHub rejected status",
			goerr.V("repo", repoFullName),
			goerr.V("ref", ref),
			goerr.V("context", statusContext),
			goerr.V("status_code", resp.StatusCode),
		)
	}

	return resp.StatusCode, nil
}

// GetStatuses returns the combined status entries of ref
func (c *Client) GetStatuses(ctx context.Context, repoFullName, ref string) ([]*model.CommitStatus, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	combined, _, err := c.githubClient.Repositories.GetCombinedStatus(ctx, owner, repo, ref, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get combined status",
			goerr.V("repo", repoFullName),
			goerr.V("ref", ref),
		)
	}

	statuses := make([]*model.CommitStatus, 0, len(combined.Statuses))
	for _, s := range combined.Statuses {
		statuses = append(statuses, &model.CommitStatus{
			State:       model.StatusState(s.GetState()),
			Context:     s.GetContext(),
			TargetURL:   s.GetTargetURL(),
			Description: s.GetDescription(),
		})
	}
	return statuses, nil
}

// GetOrganizationTeams returns every team of org, following pagination
func (c *Client) GetOrganizationTeams(ctx context.Context, org string) ([]*model.Team, error) {
	teams, err := collectPages(ctx, func(opts *github.ListOptions) ([]*github.Team, *github.Response, error) {
		return c.githubClient.Teams.ListTeams(ctx, org, opts)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list organization teams", goerr.V("org", org))
	}

	result := make([]*model.Team, 0, len(teams))
	for _, t := range teams {
		result = append(result, &model.Team{
			ID:   t.GetID(),
			Slug: t.GetSlug(),
			Name: t.GetName(),
		})
	}
	return result, nil
}

// GetTeamID resolves a team slug within org. It fails with a team_not_found
// APIError when no team matches exactly, or when org has no teams listing at
// all (e.g. the owner is a user account).
func (c *Client) GetTeamID(ctx context.Context, org, slug string) (int64, error) {
	teams, err := c.GetOrganizationTeams(ctx, org)
	if err != nil {
		if isNotFoundErr(err) {
			return 0, model.NewTeamNotFoundError(org, slug)
		}
		return 0, err
	}

	for _, team := range teams {
		if team.Slug == slug {
			return team.ID, nil
		}
	}
	return 0, model.NewTeamNotFoundError(org, slug)
}

// GetTeamMembers returns the logins of the members of a team
func (c *Client) GetTeamMembers(ctx context.Context, teamID int64) ([]string, error) {
	users, err := collectPages(ctx, func(opts *github.ListOptions) ([]*github.User, *github.Response, error) {
		u := fmt.Sprintf("teams/%d/members?per_page=%d", teamID, opts.PerPage)
		if opts.Page > 0 {
			u += fmt.Sprintf("&page=%d", opts.Page)
		}
		req, err := c.githubClient.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, nil, err
		}
		var users []*github.User
		resp, err := c.githubClient.Do(ctx, req, &users)
		return users, resp, err
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list team members", goerr.V("team_id", teamID))
	}

	logins := make([]string, 0, len(users))
	for _, u := range users {
		logins = append(logins, u.GetLogin())
	}
	return logins, nil
}

// IsUserOnTeam reports whether username is an active member or maintainer of
// the team. A pending invitation or a missing membership is not an error.
func (c *Client) IsUserOnTeam(ctx context.Context, teamID int64, username string) (bool, error) {
	u := fmt.Sprintf("teams/%d/memberships/%s", teamID, url.PathEscape(username))
	req, err := c.githubClient.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return false, goerr.Wrap(err, "failed to build team membership request")
	}

	var membership github.Membership
	resp, err := c.githubClient.Do(ctx, req, &membership)
	if err != nil {
		if isNotFound(resp) {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to get team membership",
			goerr.V("team_id", teamID),
			goerr.V("user", username),
		)
	}

	role := membership.GetRole()
	return (role == "member" || role == "maintainer") && membership.GetState() == "active", nil
}

// IsUserInOrg reports whether username is a member of org. Only a 204 from
// the membership check means membership; everything else, including
// transport failures, means not a member.
func (c *Client) IsUserInOrg(ctx context.Context, org, username string) bool {
	isMember, resp, err := c.githubClient.Organizations.IsMember(ctx, org, username)
	if err != nil {
		ctxlog.From(ctx).Debug("Organization membership check failed",
			"org", org,
			"user", username,
			"error", err,
		)
		return false
	}
	return isMember && resp != nil && resp.StatusCode == http.StatusNoContent
}

// GetFileContents returns the raw contents of path in the default branch.
// A missing file is reported as a file_not_found APIError.
func (c *Client) GetFileContents(ctx context.Context, repoFullName, path string) ([]byte, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	file, _, resp, err := c.githubClient.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		if isNotFound(resp) {
			return nil, model.NewFileNotFoundError(repoFullName, path)
		}
		return nil, goerr.Wrap(err, "failed to get file contents",
			goerr.V("repo", repoFullName),
			goerr.V("path", path),
		)
	}
	if file == nil {
		return nil, goerr.New("path is a directory", goerr.V("repo", repoFullName), goerr.V("path", path))
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode file contents",
			goerr.V("repo", repoFullName),
			goerr.V("path", path),
		)
	}
	return []byte(content), nil
}

// GetConfig fetches the policy file of a repository and decodes it. The
// result is not validated.
func (c *Client) GetConfig(ctx context.Context, repoFullName, filename string) (*model.PolicyDocument, error) {
	data, err := c.GetFileContents(ctx, repoFullName, filename)
	if err != nil {
		return nil, err
	}

	return DecodePolicy(filename, data)
}
