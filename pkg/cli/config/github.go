package config

import "github.com/urfave/cli/v3"

// GitHub holds GitHub configuration. App credentials are optional; when
// absent, check reports are logged but not posted as PR comments.
type GitHub struct {
	WebhookSecret  string
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret",
			Required:    true,
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("WARDEN_GITHUB_WEBHOOK_SECRET"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID for posting check reports",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("WARDEN_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("WARDEN_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key",
			Usage:       "Path to the GitHub App private key (PEM)",
			Destination: &c.PrivateKeyPath,
			Sources:     cli.EnvVars("WARDEN_GITHUB_PRIVATE_KEY"),
		},
	}
}

// HasAppCredentials reports whether comment posting can be enabled
func (c *GitHub) HasAppCredentials() bool {
	return c.AppID != 0 && c.InstallationID != 0 && c.PrivateKeyPath != ""
}
