package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandevgo/pulseboard/internal/config"
	"github.com/sandevgo/pulseboard/internal/core"
	"github.com/sandevgo/pulseboard/internal/render"
	"github.com/sandevgo/pulseboard/internal/storage/sqlite"
	"github.com/sandevgo/pulseboard/pkg/log"
)

var (
	exportSessionID int64
	exportList      bool
)

const sessionListLimit = 20

var exportCmd = &cobra.Command{
	Use:           "export",
	Short:         "Render an archived session as text",
	Long:          `Prints the stored recommendations of a session in export format, newest first. Defaults to the most recent session.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// The artifact goes to stdout, so logs go to stderr
		var flushLog func()
		ctx, flushLog = log.NewContextWithLoggerTo(ctx, debug || config.IsDebug(), os.Stderr)
		defer flushLog()

		logger := log.FromCtx(ctx)

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			logger.Fatal().Err(err).Msg("failed to init env")
		}

		appCfg := config.NewAppConfig(ctx)

		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer db.Close()

		if exportList {
			return listSessions(ctx, db)
		}

		id := exportSessionID
		if id == 0 {
			id, err = sqlite.NewSessions(db).LatestSessionID(ctx)
			if err != nil {
				return fmt.Errorf("failed to find latest session: %w", err)
			}
		}

		stored, err := sqlite.NewRecommendations(db).GetBySession(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load session %d: %w", id, err)
		}

		// Rows arrive newest first, same as the live history
		history := make([]core.Recommendation, 0, len(stored))
		for _, rec := range stored {
			history = append(history, core.Recommendation{
				ID:         rec.Seq,
				Text:       rec.Text,
				Category:   rec.Category,
				Timestamp:  rec.CapturedAt.Format("15:04:05"),
				SourceText: rec.SourceText,
			})
		}

		artifact, ok := render.BuildExport(history)
		if !ok {
			fmt.Println(render.EmptyNotice)
			return nil
		}
		fmt.Print(artifact)
		return nil
	},
}

// listSessions prints the most recent archived sessions so the operator
// can pick an id for --session.
func listSessions(ctx context.Context, db *sql.DB) error {
	sessions, err := sqlite.NewSessions(db).GetSessions(ctx, sessionListLimit)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No archived sessions yet.")
		return nil
	}

	recs := sqlite.NewRecommendations(db)
	for _, sess := range sessions {
		count, err := recs.CountBySession(ctx, sess.ID)
		if err != nil {
			return fmt.Errorf("failed to count session %d: %w", sess.ID, err)
		}
		ended := "running"
		if sess.EndedAt != nil {
			ended = sess.EndedAt.Format("15:04:05")
		}
		fmt.Printf("#%-4d %s  ended %-8s  frames %-7d advice %-5d recs %d\n",
			sess.ID, sess.StartedAt.Format("2006-01-02 15:04:05"), ended, sess.Frames, sess.AdviceCount, count)
	}
	return nil
}

func init() {
	exportCmd.Flags().Int64VarP(&exportSessionID, "session", "s", 0, "archived session id (default: latest)")
	exportCmd.Flags().BoolVarP(&exportList, "list", "l", false, "list archived sessions instead of exporting")
	rootCmd.AddCommand(exportCmd)
}
