package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/warden/pkg/cli/config"
	githubctrl "github.com/m-mizutani/warden/pkg/controller/github"
	controller "github.com/m-mizutani/warden/pkg/controller/http"
	gitinfra "github.com/m-mizutani/warden/pkg/infra/git"
	githubinfra "github.com/m-mizutani/warden/pkg/infra/github"
	"github.com/m-mizutani/warden/pkg/infra/launchpad"
	"github.com/m-mizutani/warden/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		githubCfg config.GitHub
		repoCfg   config.Repo
		policyCfg config.Policy
		sentryCfg config.Sentry
	)

	flags := append(serverCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server handling pull request webhooks",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			flush, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer flush()

			policy, err := policyCfg.Configure()
			if err != nil {
				return err
			}

			source, err := gitinfra.New(repoCfg.Path)
			if err != nil {
				return err
			}

			tracker := launchpad.New(launchpad.WithTimeout(policy.LookupTimeout))
			checkUC := usecase.NewCheck(source, tracker, usecase.WithPolicy(policy))

			var procOpts []githubctrl.Option
			if githubCfg.HasAppCredentials() {
				privateKey, err := os.ReadFile(githubCfg.PrivateKeyPath)
				if err != nil {
					return goerr.Wrap(err, "failed to read GitHub App private key",
						goerr.V("path", githubCfg.PrivateKeyPath),
					)
				}

				ghClient, err := githubinfra.NewClient(githubCfg.AppID, githubCfg.InstallationID, privateKey)
				if err != nil {
					return err
				}

				procOpts = append(procOpts, githubctrl.WithCommenter(ghClient))
				logger.Info("GitHub App commenting enabled",
					slog.Int64("app_id", githubCfg.AppID),
				)
			}

			processor := githubctrl.NewEventProcessor(checkUC, procOpts...)

			server, err := controller.NewServer(
				ctx,
				processor,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
