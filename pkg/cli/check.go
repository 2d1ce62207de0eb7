package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/warden/pkg/cli/config"
	gitinfra "github.com/m-mizutani/warden/pkg/infra/git"
	"github.com/m-mizutani/warden/pkg/infra/launchpad"
	"github.com/m-mizutani/warden/pkg/usecase"
	"github.com/m-mizutani/warden/pkg/utils/report"
	"github.com/urfave/cli/v3"
)

func cmdCheck() *cli.Command {
	var policyCfg config.Policy
	var warnOnly bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "warn-only",
			Usage:       "Report failures but exit with status 0",
			Sources:     cli.EnvVars("WARDEN_WARN_ONLY"),
			Destination: &warnOnly,
		},
	}
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:      "check",
		Usage:     "Check commit messages in a revision range",
		ArgsUsage: "<repo-path> <start-rev> [<end-rev>]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			args := c.Args().Slice()
			if len(args) < 2 || len(args) > 3 {
				return goerr.New("usage: warden check <repo-path> <start-rev> [<end-rev>]")
			}

			repoPath := args[0]
			startRev := args[1]
			endRev := "HEAD"
			if len(args) == 3 {
				endRev = args[2]
			}

			policy, err := policyCfg.Configure()
			if err != nil {
				return err
			}

			source, err := gitinfra.New(repoPath)
			if err != nil {
				return err
			}

			tracker := launchpad.New(launchpad.WithTimeout(policy.LookupTimeout))

			uc := usecase.NewCheck(source, tracker, usecase.WithPolicy(policy))

			result, err := uc.CheckRange(ctx, startRev, endRev)
			if err != nil {
				return err
			}

			report.Write(os.Stdout, result)

			if !result.Passed() {
				if warnOnly {
					ctxlog.From(ctx).Warn("checks failed, ignored by warn-only",
						"start", startRev,
						"end", endRev,
					)
					return nil
				}
				return goerr.New("patch series checks failed",
					goerr.V("start", startRev),
					goerr.V("end", endRev),
				)
			}

			return nil
		},
	}
}
