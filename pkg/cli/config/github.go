package config

import (
	"time"

	"github.com/m-mizutani/approval-checker/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub configuration
type GitHub struct {
	WebhookSecret string `masq:"secret"`
	Username      string
	Token         string `masq:"secret"`
	PolicyFile    string
	APIURL        string
	Timeout       time.Duration
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "webhook-secret",
			Usage:       "Shared secret of the GitHub webhook",
			Required:    true,
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("APPROVAL_CHECKER_WEBHOOK_SECRET", "webhook_secret"),
		},
		&cli.StringFlag{
			Name:        "github-username",
			Usage:       "GitHub user name used for API calls",
			Required:    true,
			Destination: &c.Username,
			Sources:     cli.EnvVars("APPROVAL_CHECKER_GITHUB_USERNAME", "github_username"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token of the API user",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("APPROVAL_CHECKER_GITHUB_TOKEN", "github_api_key"),
		},
		&cli.StringFlag{
			Name:        "policy-file",
			Usage:       "Path of the policy file in each repository",
			Value:       model.DefaultPolicyFile,
			Destination: &c.PolicyFile,
			Sources:     cli.EnvVars("APPROVAL_CHECKER_POLICY_FILE", "config_filename"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API endpoint",
			Value:       "https://api.github.com/",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("APPROVAL_CHECKER_GITHUB_API_URL"),
		},
		&cli.DurationFlag{
			Name:        "github-timeout",
			Usage:       "Timeout of each GitHub API call",
			Value:       10 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("APPROVAL_CHECKER_GITHUB_TIMEOUT"),
		},
	}
}

// Credentials returns the API credentials
func (c *GitHub) Credentials() model.Credentials {
	return model.Credentials{
		Username: c.Username,
		Token:    c.Token,
	}
}
