package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	slackclient "github.com/koenrh/sentry/clients/slack"
	"github.com/koenrh/sentry/config"
	corelog "github.com/koenrh/sentry/core/log"
	"github.com/koenrh/sentry/handlers"
	"github.com/koenrh/sentry/middleware"
	"github.com/koenrh/sentry/services/commands"
	"github.com/koenrh/sentry/services/commands/messagebuilder"
	"github.com/koenrh/sentry/services/identitylinks"
	"github.com/koenrh/sentry/utils/origins"
)

const appName = "sentry-slack"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Slack slash-command backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the Slack commands webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	})

	var unknown string
	helpTextCmd := &cobra.Command{
		Use:   "help-text",
		Short: "Print the help message the /commands endpoint replies with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), messagebuilder.BuildHelpText(mo.EmptyableToOption(unknown)))
			return err
		},
	}
	helpTextCmd.Flags().StringVar(&unknown, "unknown", "", "render the reply for this unknown command token")
	rootCmd.AddCommand(helpTextCmd)

	return rootCmd
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := corelog.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	cfg.LogSummary(logger)

	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackConfig.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     appName,
		LogsURL:     cfg.ServerLogsURL,
	}, slackclient.NewSlackWebhookClient(nil), logger)
	defer alertMiddleware.Stop()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newHandler(cfg, alertMiddleware, logger),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server, alertMiddleware, logger)
}

// newHandler wires services, handlers and middleware into the server's root handler
func newHandler(cfg *config.AppConfig, alertMiddleware *middleware.ErrorAlertMiddleware, logger *zap.Logger) http.Handler {
	identityLinksService := identitylinks.NewPendingIdentityLinksService(logger)
	commandsService := commands.NewCommandsService(identityLinksService, logger)

	originPolicy := origins.NewPolicy(cfg.AllowOrigin, cfg.AppURL)
	signatureMiddleware := middleware.NewSlackSignatureMiddleware(cfg.SlackConfig.SigningSecret, logger)

	// Slack calls the webhook server-to-server, so CORS only covers /health.
	c := cors.New(cors.Options{
		AllowOriginFunc: originPolicy.IsValidOrigin,
		AllowedMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:  []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:  []string{middleware.RequestIDHeader},
	})

	router := mux.NewRouter()
	handlers.NewSlackCommandsHandler(commandsService, logger).SetupEndpoints(router, signatureMiddleware.Middleware)
	handlers.NewHealthHandler(logger).SetupEndpoints(router, c.Handler)

	return alertMiddleware.HTTPMiddleware(middleware.RequestID(router))
}

func handleGracefulShutdown(
	server *http.Server,
	alertMiddleware *middleware.ErrorAlertMiddleware,
	logger *zap.Logger,
) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("✅ Listening", zap.String("addr", server.Addr))
		serve := alertMiddleware.WrapBackgroundTask("ListenAndServe", func() error {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		serverErr <- serve()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("❌ Server error", zap.Error(err))
		}
		return err
	case <-stop:
		logger.Info("🛑 Shutdown signal received, cleaning up...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("❌ Server shutdown error", zap.Error(err))
		return err
	}

	logger.Info("✅ Server stopped gracefully")
	return nil
}
