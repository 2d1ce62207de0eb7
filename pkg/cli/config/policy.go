package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/warden/pkg/domain/model"
)

// Policy holds checking policy configuration. Explicit flags and
// environment variables override the TOML file, which overrides the
// built-in defaults.
type Policy struct {
	ConfigPath    string
	TrackerURL    string
	LookupTimeout time.Duration
}

// policyFile is the TOML schema of the optional policy file
type policyFile struct {
	TrackerURL    string `toml:"tracker_url"`
	LookupTimeout string `toml:"lookup_timeout"`
}

// Flags returns CLI flags for policy configuration
func (c *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to a TOML policy file",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("WARDEN_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "tracker-url",
			Usage:       "Canonical bug tracker URL prefix for BugLink tags",
			Destination: &c.TrackerURL,
			Sources:     cli.EnvVars("WARDEN_TRACKER_URL"),
		},
		&cli.DurationFlag{
			Name:        "lookup-timeout",
			Usage:       "Timeout for each bug tracker lookup",
			Destination: &c.LookupTimeout,
			Sources:     cli.EnvVars("WARDEN_LOOKUP_TIMEOUT"),
		},
	}
}

// Configure resolves the effective policy
func (c *Policy) Configure() (model.Policy, error) {
	policy := model.DefaultPolicy()

	if c.ConfigPath != "" {
		data, err := os.ReadFile(c.ConfigPath)
		if err != nil {
			return model.Policy{}, goerr.Wrap(err, "failed to read policy file",
				goerr.V("path", c.ConfigPath),
			)
		}

		var file policyFile
		if err := toml.Unmarshal(data, &file); err != nil {
			return model.Policy{}, goerr.Wrap(err, "failed to parse policy file",
				goerr.V("path", c.ConfigPath),
			)
		}

		if file.TrackerURL != "" {
			policy.TrackerPrefix = file.TrackerURL
		}
		if file.LookupTimeout != "" {
			timeout, err := time.ParseDuration(file.LookupTimeout)
			if err != nil {
				return model.Policy{}, goerr.Wrap(err, "invalid lookup_timeout in policy file",
					goerr.V("value", file.LookupTimeout),
				)
			}
			policy.LookupTimeout = timeout
		}
	}

	if c.TrackerURL != "" {
		policy.TrackerPrefix = c.TrackerURL
	}
	if c.LookupTimeout > 0 {
		policy.LookupTimeout = c.LookupTimeout
	}

	return policy, nil
}
