package bot

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"productivity-manager/internal/model"
	"productivity-manager/internal/service"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier pushes fired reminders to a single Telegram chat.
type TelegramNotifier struct {
	api    sender
	chatID int64
	logger *zap.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	logger = logger.Named("telegram")
	logger.Info("bot authorized", zap.String("account", api.Self.UserName))
	return &TelegramNotifier{api: api, chatID: chatID, logger: logger}, nil
}

func (n *TelegramNotifier) Notify(ctx context.Context, session model.Session, reminders []service.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, formatReminders(session, reminders))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send reminders: %w", err)
	}
	n.logger.Debug("reminders sent", zap.Int("count", len(reminders)), zap.Int64("chat_id", n.chatID))
	return nil
}

func formatReminders(session model.Session, reminders []service.Reminder) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⏰ <b>%s</b>\n", html.EscapeString(session.Username)))
	for _, r := range reminders {
		sb.WriteString(html.EscapeString(r.Message()))
		sb.WriteByte('\n')
	}
	return strings.TrimSpace(sb.String())
}
