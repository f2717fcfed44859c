package command

import (
	"context"

	"github.com/sandevgo/pulseboard/internal/render"
	"github.com/sandevgo/pulseboard/internal/service/session"
)

type ExportCommand struct {
	store     *session.Store
	formatter *ResponseFormatter
}

func NewExportCommand(store *session.Store) *ExportCommand {
	return &ExportCommand{
		store:     store,
		formatter: NewResponseFormatter(),
	}
}

func (c *ExportCommand) Name() string {
	return "export"
}

func (c *ExportCommand) Description() string {
	return "Export the full recommendation history as text"
}

func (c *ExportCommand) Execute(ctx context.Context, args []string) (string, error) {
	artifact, ok := c.store.Export()
	if !ok {
		return render.EmptyNotice, nil
	}
	return c.formatter.Section("📋", "Export", "```\n"+artifact+"```"), nil
}
