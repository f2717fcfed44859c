package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sandevgo/pulseboard/internal/config"
	"github.com/sandevgo/pulseboard/internal/core"
	"github.com/sandevgo/pulseboard/internal/service/archive"
	"github.com/sandevgo/pulseboard/internal/service/command"
	"github.com/sandevgo/pulseboard/internal/service/monitor"
	"github.com/sandevgo/pulseboard/internal/service/session"
	"github.com/sandevgo/pulseboard/internal/storage/sqlite"
	"github.com/sandevgo/pulseboard/internal/transport/stream"
	"github.com/sandevgo/pulseboard/internal/transport/telegram"
	"github.com/sandevgo/pulseboard/pkg/log"
	"github.com/sandevgo/pulseboard/pkg/srv"
)

// Stack is the composed service set plus the shared state the
// foreground surfaces (TUI, MCP) consume directly.
type Stack struct {
	Services []srv.Service
	Store    *session.Store
	Monitor  *monitor.Monitor
	Archive  *archive.Archive
}

func NewStack(ctx context.Context, appCfg *config.AppConfig) *Stack {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// 1. Archive storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 2. Live session state
	store := session.NewStore()
	services = append(services, srv.NewCleanup(func() error {
		store.Close()
		return nil
	}))

	// 3. Archive service; mon is assigned below, its stats are read only
	// after composition finished
	var mon *monitor.Monitor
	stats := func() core.SessionStats { return mon.Stats() }

	arch := archive.NewArchive(sqlite.NewSessions(db), sqlite.NewRecommendations(db), stats)
	services = append(services, arch)

	// 4. Notification sinks
	sinks := []monitor.Sink{arch}
	if appCfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		router := command.New(command.NewCommands(store, stats, arch.SessionID))
		bot, err := telegram.NewBot(ctx, tgCfg, router)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		services = append(services, bot)
		sinks = append(sinks, bot)
	}

	// 5. Monitor over the vitals stream
	streamCfg := config.NewStreamConfig(ctx)
	mon = monitor.NewMonitor(stream.NewClient(streamCfg), store, sinks...)
	services = append(services, mon)

	return &Stack{
		Services: services,
		Store:    store,
		Monitor:  mon,
		Archive:  arch,
	}
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
