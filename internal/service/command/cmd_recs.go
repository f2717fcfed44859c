package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/pulseboard/internal/advisor"
	"github.com/sandevgo/pulseboard/internal/render"
	"github.com/sandevgo/pulseboard/internal/service/session"
)

type RecsCommand struct {
	store     *session.Store
	formatter *ResponseFormatter
}

func NewRecsCommand(store *session.Store) *RecsCommand {
	return &RecsCommand{
		store:     store,
		formatter: NewResponseFormatter(),
	}
}

func (c *RecsCommand) Name() string {
	return "recs"
}

func (c *RecsCommand) Description() string {
	return "Show current recommendations, optionally filtered by category"
}

func (c *RecsCommand) Execute(ctx context.Context, args []string) (string, error) {
	filter := render.FilterAll
	if len(args) > 0 {
		matched, err := matchCategory(strings.Join(args, " "))
		if err != nil {
			return "", err
		}
		filter = matched
	}

	p := render.BuildProjection(c.store.Snapshot(), filter)
	if len(p.Items) == 0 {
		if filter == render.FilterAll {
			return c.formatter.Info("Recommendations") + "Nothing captured yet.", nil
		}
		return c.formatter.Info("Recommendations") + fmt.Sprintf("Nothing stored under %s.", filter), nil
	}

	lines := make([]string, 0, len(p.Items))
	for _, rec := range p.Items {
		badge := ""
		if rec.IsNew {
			badge = " 🆕"
		}
		lines = append(lines, fmt.Sprintf("`%s` **%s**%s\n%s", rec.Timestamp, rec.Category, badge, rec.Text))
	}

	title := fmt.Sprintf("Recommendations (%d of %d shown)", len(p.Items), p.Total)
	return c.formatter.Section("💡", title, c.formatter.List(lines)), nil
}

// matchCategory resolves a case-insensitive category name, accepting
// "all" for the unfiltered view.
func matchCategory(input string) (string, error) {
	if strings.EqualFold(input, "all") {
		return render.FilterAll, nil
	}
	for _, name := range advisor.Categories() {
		if strings.EqualFold(input, name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown category %q, one of: %s", input, strings.Join(advisor.Categories(), ", "))
}
