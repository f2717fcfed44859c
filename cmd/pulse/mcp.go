package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/sandevgo/pulseboard/internal/config"
	"github.com/sandevgo/pulseboard/internal/transport/mcp"
	"github.com/sandevgo/pulseboard/pkg/log"
	"github.com/sandevgo/pulseboard/pkg/srv"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the live session over the Model Context Protocol",
	Long:  `Runs the monitor headless and exposes the session to MCP clients over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// stdout carries the protocol, so logs go to stderr
		var flushLog func()
		ctx, flushLog = log.NewContextWithLoggerTo(ctx, debug || config.IsDebug(), os.Stderr)
		defer flushLog()

		logger := log.FromCtx(ctx)

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			logger.Fatal().Err(err).Msg("failed to init env")
		}

		appCfg := config.NewAppConfig(ctx)
		stack := NewStack(ctx, appCfg)

		logger.Info().Msg("starting pulseboard mcp server")
		srv.StartServices(ctx, stack.Services)

		s := mcp.NewServer(stack.Store, stack.Monitor.Stats)
		if err := server.ServeStdio(s); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("mcp server stopped")
		}
		stop()

		srv.ShutdownServices(ctx, stack.Services)
		logger.Info().Msg("pulseboard has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
