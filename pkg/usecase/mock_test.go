package usecase_test

import (
	"context"
	"errors"
	"net/http"

	"github.com/m-mizutani/approval-checker/pkg/domain/model"
)

// MockGitHubClient is a mock implementation of GitHubClient that records calls
type MockGitHubClient struct {
	orgMembers   map[string][]string // org -> members
	teams        map[string]int64    // slug -> id
	teamMembers  map[int64][]string  // id -> active members
	permissions  map[string]model.Permission
	statuses     []*model.CommitStatus
	config       *model.PolicyDocument
	configErr    error
	teamErr      error
	postStatusFn func(statusContext string) (int, error)

	calls       []string
	postedCalls []MockPostStatusCall
}

type MockPostStatusCall struct {
	RepoFullName     string
	Ref              string
	Context          string
	TargetURL        string
	Reviewer         string
	PriorDescription string
}

func (m *MockGitHubClient) count(method string) int {
	n := 0
	for _, c := range m.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (m *MockGitHubClient) GetUserPermission(ctx context.Context, repoFullName, username string) (model.Permission, error) {
	m.calls = append(m.calls, "GetUserPermission")
	if p, ok := m.permissions[repoFullName+":"+username]; ok {
		return p, nil
	}
	return model.PermissionNone, nil
}

func (m *MockGitHubClient) PostStatus(ctx context.Context, repoFullName, ref, statusContext, targetURL, reviewer, priorDescription string) (int, error) {
	m.calls = append(m.calls, "PostStatus")
	m.postedCalls = append(m.postedCalls, MockPostStatusCall{
		RepoFullName:     repoFullName,
		Ref:              ref,
		Context:          statusContext,
		TargetURL:        targetURL,
		Reviewer:         reviewer,
		PriorDescription: priorDescription,
	})
	if m.postStatusFn != nil {
		return m.postStatusFn(statusContext)
	}
	return http.StatusCreated, nil
}

func (m *MockGitHubClient) GetStatuses(ctx context.Context, repoFullName, ref string) ([]*model.CommitStatus, error) {
	m.calls = append(m.calls, "GetStatuses")
	return m.statuses, nil
}

func (m *MockGitHubClient) GetOrganizationTeams(ctx context.Context, org string) ([]*model.Team, error) {
	m.calls = append(m.calls, "GetOrganizationTeams")
	var teams []*model.Team
	for slug, id := range m.teams {
		teams = append(teams, &model.Team{ID: id, Slug: slug})
	}
	return teams, nil
}

func (m *MockGitHubClient) GetTeamID(ctx context.Context, org, slug string) (int64, error) {
	m.calls = append(m.calls, "GetTeamID")
	if m.teamErr != nil {
		return 0, m.teamErr
	}
	if id, ok := m.teams[slug]; ok {
		return id, nil
	}
	return 0, model.NewTeamNotFoundError(org, slug)
}

func (m *MockGitHubClient) GetTeamMembers(ctx context.Context, teamID int64) ([]string, error) {
	m.calls = append(m.calls, "GetTeamMembers")
	return m.teamMembers[teamID], nil
}

func (m *MockGitHubClient) IsUserOnTeam(ctx context.Context, teamID int64, username string) (bool, error) {
	m.calls = append(m.calls, "IsUserOnTeam")
	for _, member := range m.teamMembers[teamID] {
		if member == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockGitHubClient) IsUserInOrg(ctx context.Context, org, username string) bool {
	m.calls = append(m.calls, "IsUserInOrg")
	for _, member := range m.orgMembers[org] {
		if member == username {
			return true
		}
	}
	return false
}

func (m *MockGitHubClient) GetFileContents(ctx context.Context, repoFullName, path string) ([]byte, error) {
	m.calls = append(m.calls, "GetFileContents")
	return nil, errors.New("not supported by mock")
}

func (m *MockGitHubClient) GetConfig(ctx context.Context, repoFullName, filename string) (*model.PolicyDocument, error) {
	m.calls = append(m.calls, "GetConfig")
	if m.configErr != nil {
		return nil, m.configErr
	}
	return m.config, nil
}
