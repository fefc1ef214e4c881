package notification

import (
	"context"
	"log/slog"
)

// Action is an inline resolution button attached to an operator message.
// URL carries every parameter needed to resolve the underlying request.
type Action struct {
	Label string
	URL   string
}

// Message describes a notification payload addressed to a chat.
type Message struct {
	ChatID  string
	Text    string
	Actions []Action
}

// Notifier delivers notifications to downstream systems. Delivery is
// best-effort; callers must never let a send failure affect ledger state.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	attrs := []any{"chat_id", message.ChatID, "text", message.Text}
	for _, a := range message.Actions {
		attrs = append(attrs, "action", a.Label+" "+a.URL)
	}
	n.logger.Info("notification", attrs...)
	return nil
}
