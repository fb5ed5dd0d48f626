// Package engine routes inbound interactions to the game they belong
// to and turns expected gameplay rejections into ephemeral replies.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pocketarcade/pocketarcade/internal/games"
	"github.com/pocketarcade/pocketarcade/internal/games/slidingpuzzle"
	"github.com/pocketarcade/pocketarcade/internal/games/tictactoe"
	"github.com/pocketarcade/pocketarcade/internal/games/ultimate"
	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/render"
	"github.com/pocketarcade/pocketarcade/internal/services/leaderboard"
)

// Engine dispatches to the built-in games. The game set is closed, so
// dispatch is a switch over the known kinds rather than a registry.
type Engine struct {
	tictactoe *tictactoe.Handler
	ultimate  *ultimate.Handler
	puzzle    *slidingpuzzle.Handler
	board     *leaderboard.Service
	logger    *slog.Logger
}

func New(deps games.Deps, board *leaderboard.Service) *Engine {
	return &Engine{
		tictactoe: tictactoe.New(deps),
		ultimate:  ultimate.New(deps),
		puzzle:    slidingpuzzle.New(deps),
		board:     board,
		logger:    deps.Logger,
	}
}

// HandleCommand starts a new game from a slash command, or answers a
// leaderboard query
func (e *Engine) HandleCommand(ctx context.Context, name string, req games.CommandRequest) (*render.Message, error) {
	if name == "leaderboard" {
		filters, err := leaderboard.ParseFilters(req.Options)
		if err != nil {
			return nil, err
		}
		return e.board.Render(ctx, filters, 0)
	}

	var handler games.Handler
	switch model.GameKind(name) {
	case model.KindTicTacToe:
		handler = e.tictactoe
	case model.KindUltimateTicTacToe:
		handler = e.ultimate
	case model.KindSlidingPuzzle:
		handler = e.puzzle
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownGame, name)
	}

	msg, err := handler.Command(ctx, req)
	return e.soften(msg, err)
}

// HandleComponent applies a control activation to the game embedded in
// the message it was clicked on
func (e *Engine) HandleComponent(ctx context.Context, evt games.ComponentEvent) (*render.Message, error) {
	kind, _, err := games.SplitAction(evt.ControlID)
	if err != nil {
		return nil, err
	}

	var handler games.Handler
	switch kind {
	case model.KindTicTacToe:
		handler = e.tictactoe
	case model.KindUltimateTicTacToe:
		handler = e.ultimate
	case model.KindSlidingPuzzle:
		handler = e.puzzle
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownGame, kind)
	}

	msg, err := handler.Component(ctx, evt)
	return e.soften(msg, err)
}

// soften converts expected gameplay rejections into ephemeral replies
// to the acting player. Anything else propagates as an error.
func (e *Engine) soften(msg *render.Message, err error) (*render.Message, error) {
	if err == nil {
		return msg, nil
	}
	if text, ok := rejectionText(err); ok {
		e.logger.Debug("rejected interaction", "reason", err.Error())
		return render.Ephemeral(text), nil
	}
	return nil, err
}

// rejectionText maps the rule-violation sentinels to player-facing
// text. Structural errors, like corrupt tokens or unknown control ids,
// are deliberately absent: those are transport problems, not rule
// violations.
func rejectionText(err error) (string, bool) {
	for _, rejection := range []struct {
		target error
		text   string
	}{
		{model.ErrNotYourTurn, "It's not your turn!"},
		{model.ErrNotInvitee, "This challenge isn't yours to answer."},
		{model.ErrNotYourGame, "You are not playing this game."},
		{model.ErrGameOver, "This game is already over."},
		{model.ErrActionNotAllowed, "You can't do that right now."},
		{model.ErrSelfPlay, "You can't challenge yourself."},
		{model.ErrOutOfBounds, "That move is out of bounds."},
		{model.ErrSpaceOccupied, "That space is already taken."},
		{model.ErrBoardDecided, "That board is already decided."},
		{model.ErrNotAdjacent, "That tile can't slide there."},
		{model.ErrBlankRequired, "That tile can't slide there."},
	} {
		if errors.Is(err, rejection.target) {
			return rejection.text, true
		}
	}
	return "", false
}
