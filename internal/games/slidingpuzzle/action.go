package slidingpuzzle

import (
	"fmt"
	"strconv"

	"github.com/pocketarcade/pocketarcade/internal/games"
	"github.com/pocketarcade/pocketarcade/internal/model"
)

const (
	actionSetSize       = "SetSize"
	actionSetDifficulty = "SetDifficulty"
	actionStart         = "Start"
	actionMoveTile      = "MoveTile"
	actionInvalidMove   = "InvalidMove"
)

// Action is one decoded control activation
type Action interface {
	ControlID() string
}

// SetSize picks the board size on the setup screen
type SetSize struct {
	Size int
}

// SetDifficulty picks the shuffle depth on the setup screen
type SetDifficulty struct {
	Difficulty model.Difficulty
}

// Start shuffles the board and begins play
type Start struct{}

// MoveTile slides the tile at index From into the blank at index To
type MoveTile struct {
	From, To int
}

// InvalidMove is attached to tiles that cannot slide. Activating one
// does nothing but rerender, matching a grid where every cell is a
// control whether useful or not.
type InvalidMove struct {
	Index int
}

func (a SetSize) ControlID() string {
	return games.ActionID(model.KindSlidingPuzzle, actionSetSize, strconv.Itoa(a.Size))
}

func (a SetDifficulty) ControlID() string {
	return games.ActionID(model.KindSlidingPuzzle, actionSetDifficulty, string(a.Difficulty))
}

func (Start) ControlID() string {
	return games.ActionID(model.KindSlidingPuzzle, actionStart)
}

func (a MoveTile) ControlID() string {
	return games.ActionID(model.KindSlidingPuzzle, actionMoveTile,
		strconv.Itoa(a.From), strconv.Itoa(a.To))
}

func (a InvalidMove) ControlID() string {
	return games.ActionID(model.KindSlidingPuzzle, actionInvalidMove, strconv.Itoa(a.Index))
}

// parseAction decodes the fields after the namespace, with strict arity
func parseAction(fields []string) (Action, error) {
	if len(fields) == 0 {
		return nil, model.ErrUnknownAction
	}
	switch fields[0] {
	case actionSetSize:
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %s takes one size", model.ErrUnknownAction, actionSetSize)
		}
		size, err := strconv.Atoi(fields[1])
		if err != nil || !model.ValidPuzzleSize(size) {
			return nil, fmt.Errorf("%w: bad size %q", model.ErrUnknownAction, fields[1])
		}
		return SetSize{Size: size}, nil
	case actionSetDifficulty:
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %s takes one difficulty", model.ErrUnknownAction, actionSetDifficulty)
		}
		difficulty, err := model.ParseDifficulty(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: bad difficulty %q", model.ErrUnknownAction, fields[1])
		}
		return SetDifficulty{Difficulty: difficulty}, nil
	case actionStart:
		if len(fields) != 1 {
			return nil, fmt.Errorf("%w: %s takes no arguments", model.ErrUnknownAction, actionStart)
		}
		return Start{}, nil
	case actionMoveTile:
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: %s takes two indices", model.ErrUnknownAction, actionMoveTile)
		}
		from, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: bad index %q", model.ErrUnknownAction, fields[1])
		}
		to, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: bad index %q", model.ErrUnknownAction, fields[2])
		}
		return MoveTile{From: from, To: to}, nil
	case actionInvalidMove:
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %s takes one index", model.ErrUnknownAction, actionInvalidMove)
		}
		i, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: bad index %q", model.ErrUnknownAction, fields[1])
		}
		return InvalidMove{Index: i}, nil
	}
	return nil, fmt.Errorf("%w: %q", model.ErrUnknownAction, fields[0])
}
