package command

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/pulseboard/internal/core"
	"github.com/sandevgo/pulseboard/internal/render"
	"github.com/sandevgo/pulseboard/internal/service/session"
)

type StatusCommand struct {
	store     *session.Store
	stats     func() core.SessionStats
	sessionID func() int64
	formatter *ResponseFormatter
}

func NewStatusCommand(store *session.Store, stats func() core.SessionStats, sessionID func() int64) *StatusCommand {
	return &StatusCommand{
		store:     store,
		stats:     stats,
		sessionID: sessionID,
		formatter: NewResponseFormatter(),
	}
}

func (c *StatusCommand) Name() string {
	return "status"
}

func (c *StatusCommand) Description() string {
	return "Show stream connection and session counters"
}

func (c *StatusCommand) Execute(ctx context.Context, args []string) (string, error) {
	stats := c.stats()

	stream := "disconnected"
	if stats.Connected {
		stream = "connected"
	}

	filter := c.store.Filter()
	if filter == render.FilterAll {
		filter = "all"
	}

	uptime := "n/a"
	if !stats.StartedAt.IsZero() {
		uptime = time.Since(stats.StartedAt).Round(time.Second).String()
	}

	return c.formatter.Combine(
		c.formatter.Info("Session Status"),
		c.formatter.Label("Stream", stream),
		c.formatter.Label("Uptime", uptime),
		c.formatter.Label("Frames", fmt.Sprintf("%d", stats.Frames)),
		c.formatter.Label("Faces detected", fmt.Sprintf("%d", stats.FacesDetected)),
		c.formatter.Label("Advice seen", fmt.Sprintf("%d", stats.AdviceSeen)),
		c.formatter.Label("Stored", fmt.Sprintf("%d/%d", c.store.Count(), session.HistoryCapacity)),
		c.formatter.Label("Filter", filter),
		c.formatter.Label("Archive session", fmt.Sprintf("#%d", c.sessionID())),
	), nil
}
