package command

import (
	"github.com/sandevgo/pulseboard/internal/core"
	"github.com/sandevgo/pulseboard/internal/service/session"
)

func NewCommands(
	store *session.Store,
	stats func() core.SessionStats,
	sessionID func() int64,
) []core.Command {
	return []core.Command{
		NewRecsCommand(store),
		NewExportCommand(store),
		NewClearCommand(store),
		NewStatusCommand(store, stats, sessionID),
	}
}
