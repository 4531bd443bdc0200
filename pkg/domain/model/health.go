package model

// HealthStatus is the body of the health endpoint
type HealthStatus struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	WebhookPath string `json:"webhook_path"`
	PolicyFile  string `json:"policy_file,omitempty"`
}
