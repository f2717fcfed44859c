package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/pulseboard/internal/config"
	"github.com/sandevgo/pulseboard/internal/core"
	"github.com/sandevgo/pulseboard/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot     *tele.Bot
	cfg     *config.TelegramConfig
	router  core.CmdRouter
	sender  *sender
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		cfg:     cfg,
		router:  router,
		sender:  newSender(b),
		ownerID: cfg.OwnerID,
	}

	// Attach the root context so handlers inherit its logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// RecommendationsAdded pushes freshly stored recommendations to the
// owner chat. Send failures are logged and dropped so a Telegram outage
// never stalls frame handling.
func (b *Bot) RecommendationsAdded(ctx context.Context, recs []core.Recommendation) {
	if len(recs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString("💡 **New recommendations**\n\n")
	for _, rec := range recs {
		sb.WriteString(fmt.Sprintf("`%s` **%s**\n%s\n\n", rec.Timestamp, rec.Category, rec.Text))
	}

	// Single entries arrive constantly during a session; only bigger
	// batches warrant a notification sound.
	silent := len(recs) == 1
	if err := b.sender.sendMarkdown(ctx, tele.ChatID(b.ownerID), sb.String(), silent); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to push recommendations to telegram")
	}
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	input := strings.TrimSpace(c.Text())

	if input == "/help" || input == "/start" {
		return b.sender.sendMarkdown(ctx, c.Chat(), b.helpText(), false)
	}

	reply, handled := b.router.Execute(ctx, input)
	if !handled {
		reply = "I only understand commands here. Send /help for the list."
	}
	return b.sender.sendMarkdown(ctx, c.Chat(), reply, false)
}

func (b *Bot) helpText() string {
	var sb strings.Builder
	sb.WriteString("**Pulseboard commands**\n\n")
	for _, cmd := range b.router.ListCommands() {
		sb.WriteString(fmt.Sprintf("/%s - %s\n", cmd.Name(), cmd.Description()))
	}
	sb.WriteString("/help - Show this list\n")
	return sb.String()
}
