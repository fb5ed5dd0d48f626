package tictactoe

import (
	"fmt"
	"strconv"

	"github.com/pocketarcade/pocketarcade/internal/games"
	"github.com/pocketarcade/pocketarcade/internal/model"
)

const (
	actionAccept  = "Accept"
	actionDecline = "Decline"
	actionPlace   = "Place"
)

// Action is one decoded control activation
type Action interface {
	// ControlID renders the action back into its control id
	ControlID() string
}

// Accept approves a pending challenge
type Accept struct{}

// Decline rejects a pending challenge
type Decline struct{}

// Place marks the space at (X, Y) for the current player
type Place struct {
	X, Y int
}

func (Accept) ControlID() string {
	return games.ActionID(model.KindTicTacToe, actionAccept)
}

func (Decline) ControlID() string {
	return games.ActionID(model.KindTicTacToe, actionDecline)
}

func (p Place) ControlID() string {
	return games.ActionID(model.KindTicTacToe, actionPlace,
		strconv.Itoa(p.X), strconv.Itoa(p.Y))
}

// parseAction decodes the fields after the namespace. Arity is strict:
// trailing fields an action does not define are an error, since a
// malformed id means a forged or corrupted control.
func parseAction(fields []string) (Action, error) {
	if len(fields) == 0 {
		return nil, model.ErrUnknownAction
	}
	switch fields[0] {
	case actionAccept:
		if len(fields) != 1 {
			return nil, fmt.Errorf("%w: %s takes no arguments", model.ErrUnknownAction, actionAccept)
		}
		return Accept{}, nil
	case actionDecline:
		if len(fields) != 1 {
			return nil, fmt.Errorf("%w: %s takes no arguments", model.ErrUnknownAction, actionDecline)
		}
		return Decline{}, nil
	case actionPlace:
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: %s takes two coordinates", model.ErrUnknownAction, actionPlace)
		}
		x, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: bad coordinate %q", model.ErrUnknownAction, fields[1])
		}
		y, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: bad coordinate %q", model.ErrUnknownAction, fields[2])
		}
		return Place{X: x, Y: y}, nil
	}
	return nil, fmt.Errorf("%w: %q", model.ErrUnknownAction, fields[0])
}
