package model

import "slices"

// DefaultPolicyFile is the policy file name used when none is configured
const DefaultPolicyFile = ".approval.yml"

// PolicyDocument is a decoded policy file that has not been validated yet.
// Data holds whatever the decoder produced (mappings, sequences, scalars).
type PolicyDocument struct {
	Source string
	Data   any
}

// AuthorizationPolicy describes who may overwrite failing statuses of a
// repository by approving a pull request.
type AuthorizationPolicy struct {
	Orgs   []string
	Teams  []string
	Users  []string
	Admins bool
}

// HasUser reports whether username is listed explicitly
func (p *AuthorizationPolicy) HasUser(username string) bool {
	return slices.Contains(p.Users, username)
}
