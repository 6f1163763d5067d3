package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/pkg/engine"
	"github.com/wayfind-dev/wayfind/pkg/navserver"
	"github.com/wayfind-dev/wayfind/pkg/notice"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		address    string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the navigation server",
		Long: `Start the HTTP navigation server.

The server exposes JSON endpoints under /nav for resolving and
executing navigations, a WebSocket channel at /nav/ws streaming route
changes, and Prometheus metrics at /metrics.

Examples:
  wayfind serve --config routes.yaml
  wayfind serve --config s3://my-bucket/router/routes.yaml --addr :9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath, address, logLevel)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "routes.yaml", "Route configuration (file path or s3://bucket/key)")
	cmd.Flags().StringVarP(&address, "addr", "a", ":8080", "Listen address")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}

func runServe(ctx context.Context, configPath, address, logLevel string) error {
	logger := newLogger(logLevel)
	slog.SetDefault(logger)

	cfg, err := loadConfig(ctx, configPath)
	if err != nil {
		return err
	}

	matcher, err := router.NewMatcher(cfg)
	if err != nil {
		return fmt.Errorf("build route index: %w", err)
	}

	eng := engine.New(matcher, engine.DefaultConfig())
	defer eng.Close()

	srv := navserver.New(eng, navserver.Config{
		Address: address,
		Logger:  logger,
	})

	// Notices go both to the log and to connected clients.
	eng.SetPresenter(notice.Multi{notice.NewLog(logger), srv.Presenter()})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting wayfind",
		"version", version,
		"config", configPath,
		"routes", matcher.Index().Len())

	return srv.Run(ctx)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
