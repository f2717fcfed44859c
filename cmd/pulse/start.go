package main

import (
	"errors"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandevgo/pulseboard/internal/config"
	"github.com/sandevgo/pulseboard/internal/tui"
	"github.com/sandevgo/pulseboard/pkg/log"
	"github.com/sandevgo/pulseboard/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the monitoring session",
	Long:  `Connects to the vitals stream and runs the dashboard plus any configured notification channels.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			logger.Fatal().Err(err).Msg("failed to init env")
		}

		appCfg := config.NewAppConfig(ctx)

		// The dashboard owns the terminal, so service logging moves to a
		// file for the lifetime of the run.
		runCtx := ctx
		if appCfg.EnableTUI {
			var flushFile func()
			var err error
			runCtx, flushFile, err = log.NewContextWithFileLogger(ctx, debug || config.IsDebug(), appCfg.GetLogPath(), "pulse.log")
			if err != nil {
				logger.Fatal().Err(err).Msg("failed to open log file")
			}
			defer flushFile()
		}

		logger.Info().Msg("starting pulseboard")

		stack := NewStack(runCtx, appCfg)
		srv.StartServices(runCtx, stack.Services)

		if appCfg.EnableTUI {
			err := tui.Run(runCtx, stack.Store, stack.Monitor.Stats, appCfg.GetRuntimePath())
			if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				log.FromCtx(runCtx).Error().Err(err).Msg("dashboard terminated abnormally")
			}
			// Quitting the dashboard ends the whole run
			stop()
		}

		srv.ShutdownServices(runCtx, stack.Services)
		logger.Info().Msg("pulseboard has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
