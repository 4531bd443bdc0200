package model

// Credentials authenticate every GitHub API call
type Credentials struct {
	Username string
	Token    string `masq:"secret"`
}

// Permission is a collaborator permission level on a repository
type Permission string

const (
	PermissionAdmin Permission = "admin"
	PermissionWrite Permission = "write"
	PermissionRead  Permission = "read"
	PermissionNone  Permission = "none"
)

// Team is a team of an organization
type Team struct {
	ID   int64
	Slug string
	Name string
}
