// Package main is the entry point for the liveness MCP server.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"liveness/internal/platform/config"
	"liveness/internal/platform/logger"
	"liveness/internal/services/api"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "liveness-mcp",
	Short: "MCP server that gates tools behind a face liveness check",
	Long: `An MCP server exposing liveness authentication tools over stdio or HTTP.
A caller starts a session, a human opens the returned url, and the tool reports
progress until the remote face service decides whether a real person was present.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// stdio is the default transport
	RunE: runStdio,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Get().Fatal().Err(err).Msg("liveness-mcp failed")
	}
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// buildApp composes the modules from process config
func buildApp() (*api.App, config.Conf, error) {
	cfg := config.New()
	a, err := api.New(api.Options{Config: cfg, Logger: logger.Get()})
	if err != nil {
		return nil, cfg, err
	}
	return a, cfg, nil
}

// quiet maps a cancelled run to a clean exit
func quiet(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
