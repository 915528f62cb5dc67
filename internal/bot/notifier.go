package bot

import (
	"context"
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/wortstreak/pkg/models"
)

// BotAPI is the subset of the Telegram client the notifier uses
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier delivers reminders and celebrations to a single chat
type TelegramNotifier struct {
	api    BotAPI
	chatID int64
}

// NewTelegramNotifier authorizes with the Bot API
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID environment variable is not set")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return NewTelegramNotifierWithAPI(api, chatID), nil
}

// NewTelegramNotifierWithAPI wraps an existing client
func NewTelegramNotifierWithAPI(api BotAPI, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{api: api, chatID: chatID}
}

// SendReminder implements scheduler.Notifier
func (n *TelegramNotifier) SendReminder(ctx context.Context, content models.NotificationContent) error {
	return n.send(ctx, "📚 "+content.Title, content.Body)
}

// SendCelebration posts a streak celebration
func (n *TelegramNotifier) SendCelebration(ctx context.Context, c models.Celebration) error {
	return n.send(ctx, "🔥 "+c.Title, c.Body)
}

func (n *TelegramNotifier) send(ctx context.Context, title, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, formatMessage(title, body))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func formatMessage(title, body string) string {
	return fmt.Sprintf("<b>%s</b>\n%s", html.EscapeString(title), html.EscapeString(body))
}
