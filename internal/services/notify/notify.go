// Package notify delivers out-of-band messages to players: game-over
// announcements and idle-turn reminders. Delivery is best effort; the
// engine never fails an interaction because a notification could not
// be sent.
package notify

import (
	"context"
	"log/slog"

	"github.com/pocketarcade/pocketarcade/internal/model"
)

// Notifier sends a direct message to a player
type Notifier interface {
	Notify(ctx context.Context, recipient model.PlayerID, content string) error
}

// LogNotifier writes notifications to the log instead of delivering
// them, for deployments without a platform sender configured
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

var _ Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) Notify(_ context.Context, recipient model.PlayerID, content string) error {
	n.logger.Info("notification",
		"recipient", string(recipient),
		"content", content)
	return nil
}
