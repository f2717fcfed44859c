package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/pulseboard/internal/service/session"
)

type ClearCommand struct {
	store     *session.Store
	formatter *ResponseFormatter
}

func NewClearCommand(store *session.Store) *ClearCommand {
	return &ClearCommand{
		store:     store,
		formatter: NewResponseFormatter(),
	}
}

func (c *ClearCommand) Name() string {
	return "clear"
}

func (c *ClearCommand) Description() string {
	return "Clear the recommendation history (asks for confirmation)"
}

func (c *ClearCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 || args[0] != "yes" {
		count := c.store.Count()
		if count == 0 {
			return "History is already empty.", nil
		}
		return c.formatter.Combine(
			c.formatter.Info("Clear history"),
			fmt.Sprintf("This removes all %d stored recommendations and resets repeat detection.", count),
			c.formatter.Tip("Run `/clear yes` to confirm."),
		), nil
	}

	c.store.Clear()
	return c.formatter.Success("Recommendation history cleared"), nil
}
