// Package bot is the Telegram front end of the tracker: a form-driven add
// flow over reply/inline keyboards, list and summary views, and file exports.
package bot

import (
	"fmt"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/vkotenko/fintrack/internal/charts"
	"github.com/vkotenko/fintrack/internal/gateway"
	"github.com/vkotenko/fintrack/internal/model"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// chatState tracks where a user is in the two-step add flow: type chosen,
// then category chosen, then the amount/description message.
type chatState struct {
	TransactionType model.TransactionType
	Category        string
	AwaitingEntry   bool
}

type Bot struct {
	api    *tgbotapi.BotAPI
	gw     *gateway.Gateway
	charts *charts.Generator
	states map[int64]*chatState
}

func New(token string, gw *gateway.Gateway) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:    api,
		gw:     gw,
		charts: charts.NewGenerator(),
		states: make(map[int64]*chatState),
	}, nil
}

// ownerFor derives the owner identity the gateway scopes by from the
// Telegram account.
func ownerFor(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	return fmt.Sprintf("tg-%d", user.ID)
}

// Start runs the bot in long-polling mode. Updates are handled one at a
// time, so gateway calls from the bot never interleave.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if err := b.handleUpdate(update); err != nil {
			logger.Error().Err(err).Msg("handling update")
		}
	}

	return nil
}

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	if update.Message != nil && update.Message.IsCommand() {
		return b.handleCommand(update.Message)
	}

	if update.CallbackQuery != nil {
		return b.handleCallback(update.CallbackQuery)
	}

	return b.handleMessage(update.Message)
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		logger.Error().Err(err).Msg("sending message")
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

// sendError presents a failure with its message. Failures are never
// swallowed silently.
func (b *Bot) sendError(chatID int64, err error) {
	b.sendText(chatID, "⚠️ "+err.Error())
}
