package bot

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"productivity-manager/internal/logging"
	"productivity-manager/internal/model"
	"productivity-manager/internal/service"
)

var (
	session   = model.Session{Username: "alice"}
	reminders = []service.Reminder{
		{TaskID: "t_1", TaskName: "Read", ScheduledTime: "18:00", FiredAt: time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)},
		{TaskID: "t_2", TaskName: "Tea & <cake>", ScheduledTime: "18:00", FiredAt: time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)},
	}
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, model.Session, []service.Reminder) error {
	return errors.New("down")
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriterNotifier(&buf).Notify(context.Background(), session, reminders))
	assert.Equal(t, "Reminder: Read (scheduled at 18:00)\nReminder: Tea & <cake> (scheduled at 18:00)\n", buf.String())
}

func TestLogNotifier(t *testing.T) {
	logger, logs := logging.NewObserved(zapcore.InfoLevel)
	require.NoError(t, NewLogNotifier(logger).Notify(context.Background(), session, reminders))
	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Reminder: Read (scheduled at 18:00)", entry.Message)
	assert.Equal(t, "alice", entry.ContextMap()["username"])
}

func TestFanoutJoinsErrors(t *testing.T) {
	var buf bytes.Buffer
	f := Fanout{failingNotifier{}, NewWriterNotifier(&buf)}
	err := f.Notify(context.Background(), session, reminders[:1])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "down")
	assert.Contains(t, buf.String(), "Reminder: Read")
}

func TestTelegramNotifierSendsOneMessage(t *testing.T) {
	logger, _ := logging.NewObserved(zapcore.DebugLevel)
	sender := &fakeSender{}
	n := &TelegramNotifier{api: sender, chatID: 42, logger: logger}

	require.NoError(t, n.Notify(context.Background(), session, reminders))
	require.Len(t, sender.sent, 1)
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.Contains(t, msg.Text, "Reminder: Read (scheduled at 18:00)")
	assert.Contains(t, msg.Text, "Tea &amp; &lt;cake&gt;")

	require.NoError(t, n.Notify(context.Background(), session, nil))
	assert.Len(t, sender.sent, 1)
}

func TestTelegramNotifierErrors(t *testing.T) {
	logger, _ := logging.NewObserved(zapcore.DebugLevel)
	n := &TelegramNotifier{api: &fakeSender{err: errors.New("429")}, chatID: 1, logger: logger}
	assert.ErrorContains(t, n.Notify(context.Background(), session, reminders), "send reminders")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.Notify(ctx, session, reminders), context.Canceled)
}
