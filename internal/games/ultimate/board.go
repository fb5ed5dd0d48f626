package ultimate

import (
	"github.com/pocketarcade/pocketarcade/internal/games/tictactoe"
	"github.com/pocketarcade/pocketarcade/internal/model"
)

// Size of the meta grid; each meta space holds a full inner board
const Size = 3

// MetaSpace is one cell of the meta board: an inner game plus its
// verdict once decided. The inner board is kept after the verdict so
// the final position stays visible.
type MetaSpace struct {
	Board tictactoe.Board `msgpack:"board" json:"board"`
	Won   model.Piece     `msgpack:"won" json:"won"`
	Tied  bool            `msgpack:"tied" json:"tied"`
}

// Decided reports whether this inner board accepts no further moves
func (s *MetaSpace) Decided() bool {
	return s.Won != model.PieceNone || s.Tied
}

// Coord addresses a cell on a 3x3 grid
type Coord struct {
	X int `msgpack:"x" json:"x"`
	Y int `msgpack:"y" json:"y"`
}

// MetaBoard is the full playing surface. Selected, when set, is the
// inner board the current player must play in; nil means they are
// choosing a board first.
type MetaBoard struct {
	Selected *Coord                `msgpack:"selected" json:"selected"`
	Spaces   [Size][Size]MetaSpace `msgpack:"spaces" json:"spaces"`
}

// At returns the meta space at (x, y)
func (m *MetaBoard) At(x, y int) *MetaSpace {
	return &m.Spaces[y][x]
}

// MakeMove applies one activation of grid cell (x, y). With no board
// selected it selects that inner board; with one selected it places the
// piece there. placed reports whether a piece actually landed, which is
// what decides whether the turn passes.
func (m *MetaBoard) MakeMove(x, y int, piece model.Piece) (placed bool, err error) {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return false, model.ErrOutOfBounds
	}

	if m.Selected == nil {
		if m.At(x, y).Decided() {
			return false, model.ErrBoardDecided
		}
		m.Selected = &Coord{X: x, Y: y}
		return false, nil
	}

	sel := m.At(m.Selected.X, m.Selected.Y)
	if err := sel.Board.Place(x, y, piece); err != nil {
		return false, err
	}
	if w := sel.Board.Winner(); w != model.PieceNone {
		sel.Won = w
	} else if sel.Board.Full() {
		sel.Tied = true
	}

	// The opponent is sent to the board matching the cell just played;
	// if that board is already decided they choose freely instead
	if m.At(x, y).Decided() {
		m.Selected = nil
	} else {
		m.Selected = &Coord{X: x, Y: y}
	}
	return true, nil
}

// metaLines enumerates every winning line of the meta grid
var metaLines = [8][3][2]int{
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{2, 0}, {1, 1}, {0, 2}},
}

// lineWinner resolves one meta line. Verdict matching is deliberately
// asymmetric: a tied inner board counts as a match for EITHER side, so
// X-Tie-X and Tie-Tie-O both complete a line, but X never matches O and
// an undecided board matches nothing. Three ties alone complete a line
// for nobody.
func lineWinner(a, b, c *MetaSpace) (model.Piece, bool) {
	piece := model.PieceNone
	for _, s := range [3]*MetaSpace{a, b, c} {
		if !s.Decided() {
			return model.PieceNone, false
		}
		if s.Tied {
			continue
		}
		if piece == model.PieceNone {
			piece = s.Won
			continue
		}
		if piece != s.Won {
			return model.PieceNone, false
		}
	}
	if piece == model.PieceNone {
		// all three tied
		return model.PieceNone, false
	}
	return piece, true
}

// Outcome inspects the meta grid for a verdict. done is false while the
// game continues. A tie is reported when every inner board is decided,
// and that check deliberately precedes the completed-line results:
// filling the last board ends the game as a tie even if the same move
// completed a line. Distinct winners on different lines (possible since
// a tie counts for both sides) also resolve as a tie.
func (m *MetaBoard) Outcome() (winner model.Piece, tie bool, done bool) {
	var winners []model.Piece
	for _, line := range metaLines {
		a := m.At(line[0][0], line[0][1])
		b := m.At(line[1][0], line[1][1])
		c := m.At(line[2][0], line[2][1])
		if piece, won := lineWinner(a, b, c); won {
			winners = append(winners, piece)
		}
	}

	allDecided := true
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if !m.At(x, y).Decided() {
				allDecided = false
			}
		}
	}
	if allDecided {
		return model.PieceNone, true, true
	}

	distinct := make(map[model.Piece]struct{})
	for _, w := range winners {
		distinct[w] = struct{}{}
	}
	switch len(distinct) {
	case 0:
		return model.PieceNone, false, false
	case 1:
		return winners[0], false, true
	default:
		return model.PieceNone, true, true
	}
}
