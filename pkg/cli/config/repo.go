package config

import "github.com/urfave/cli/v3"

// Repo holds the repository location for serve mode. In CI the path
// defaults to the workspace checkout.
type Repo struct {
	Path string
}

// Flags returns CLI flags for repository configuration
func (c *Repo) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Path to the local repository checkout",
			Value:       ".",
			Destination: &c.Path,
			Sources:     cli.EnvVars("WARDEN_REPO", "GITHUB_WORKSPACE"),
		},
	}
}
