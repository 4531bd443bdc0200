package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/approval-checker/pkg/cli/config"
	controller "github.com/m-mizutani/approval-checker/pkg/controller/http"
	githubinfra "github.com/m-mizutani/approval-checker/pkg/infra/github"
	"github.com/m-mizutani/approval-checker/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		githubCfg config.GitHub
		sentryCfg config.Sentry
	)

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting approval-checker server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("github", githubCfg),
			)

			sentryEnabled, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			if sentryEnabled {
				defer sentry.Flush(2 * time.Second)
			}

			githubClient, err := githubinfra.NewClient(
				githubCfg.Credentials(),
				githubinfra.WithBaseURL(githubCfg.APIURL),
				githubinfra.WithTimeout(githubCfg.Timeout),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			// Create use cases
			reviewUC := usecase.NewReview(githubClient,
				usecase.WithWebhookSecret(githubCfg.WebhookSecret),
				usecase.WithPolicyFile(githubCfg.PolicyFile),
			)

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				reviewUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithPolicyFile(githubCfg.PolicyFile),
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
