// Package games defines the contract every built-in game implements
// and the collaborators handed to each game handler.
package games

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pocketarcade/pocketarcade/internal/command"
	"github.com/pocketarcade/pocketarcade/internal/dependencies/clock"
	"github.com/pocketarcade/pocketarcade/internal/dependencies/random"
	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/render"
	"github.com/pocketarcade/pocketarcade/internal/services/identity"
	"github.com/pocketarcade/pocketarcade/internal/services/notify"
	"github.com/pocketarcade/pocketarcade/internal/storage"
)

// Deps are the collaborators shared by all game handlers. Store may be
// nil, in which case results are not persisted and games stay fully
// playable. Notifier may be nil to disable out-of-band messages.
type Deps struct {
	Store    storage.Store
	Notifier notify.Notifier
	Resolver identity.Resolver
	Clock    clock.Clock
	Random   random.Random
	Logger   *slog.Logger

	// AllowSelfPlay permits challenging yourself, for development
	AllowSelfPlay bool
	// IdleThreshold is how long a game sits untouched before the next
	// player gets a turn reminder
	IdleThreshold time.Duration
}

// CommandRequest is an inbound slash command starting a new game
type CommandRequest struct {
	Player  model.PlayerID
	Options []command.Option
}

// ComponentEvent is an inbound control activation on an existing game
// message. MessageContent carries the embedded state token.
type ComponentEvent struct {
	ControlID      string
	Player         model.PlayerID
	MessageContent string
	MessageLink    string
}

// Handler is one game's entry points. Implementations are stateless;
// all game state rides in the message content.
type Handler interface {
	Kind() model.GameKind
	Command(ctx context.Context, req CommandRequest) (*render.Message, error)
	Component(ctx context.Context, evt ComponentEvent) (*render.Message, error)
}

// ActionID builds a namespaced control id: the game kind, then the
// action name and its arguments, colon-separated.
func ActionID(kind model.GameKind, parts ...string) string {
	return string(kind) + ":" + strings.Join(parts, ":")
}

// SplitAction splits a control id into its namespace and the remaining
// fields. The namespace must be a known game kind.
func SplitAction(controlID string) (model.GameKind, []string, error) {
	fields := strings.Split(controlID, ":")
	if len(fields) < 2 {
		return "", nil, &model.UnknownActionError{ID: controlID, Err: model.ErrUnknownAction}
	}
	kind := model.GameKind(fields[0])
	switch kind {
	case model.KindTicTacToe, model.KindUltimateTicTacToe, model.KindSlidingPuzzle:
		return kind, fields[1:], nil
	}
	return "", nil, fmt.Errorf("%w: namespace %q", model.ErrUnknownGame, fields[0])
}

// AnnounceResult tells every participant how the game ended. Delivery
// is best effort with per-recipient isolation.
func AnnounceResult(ctx context.Context, deps Deps, gameName string, players []model.Player, outcome *model.Outcome, link string) {
	if deps.Notifier == nil || outcome == nil {
		return
	}
	suffix := ""
	if link != "" {
		suffix = "\n" + link
	}
	for _, p := range players {
		var content string
		switch {
		case outcome.IsTie():
			content = fmt.Sprintf("Your game of %s ended in a tie!%s", gameName, suffix)
		case outcome.Winner.ID == p.ID:
			content = fmt.Sprintf("You won your game of %s!%s", gameName, suffix)
		default:
			content = fmt.Sprintf("You lost your game of %s.%s", gameName, suffix)
		}
		if err := deps.Notifier.Notify(ctx, p.ID, content); err != nil {
			deps.Logger.Warn("failed to deliver result notification",
				"recipient", string(p.ID),
				"error", err)
		}
	}
}

// PingIfIdle reminds the next player it is their turn, but only when
// the game had gone quiet: a fast-moving game is assumed to have both
// players watching.
func PingIfIdle(ctx context.Context, deps Deps, lastMove time.Time, next model.PlayerID, gameName, link string) {
	if deps.Notifier == nil || lastMove.IsZero() {
		return
	}
	if deps.Clock.Now().Sub(lastMove) < deps.IdleThreshold {
		return
	}
	content := fmt.Sprintf("It's your turn in %s!", gameName)
	if link != "" {
		content += "\n" + link
	}
	if err := deps.Notifier.Notify(ctx, next, content); err != nil {
		deps.Logger.Warn("failed to deliver turn reminder",
			"recipient", string(next),
			"error", err)
	}
}
