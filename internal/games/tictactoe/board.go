package tictactoe

import (
	"github.com/pocketarcade/pocketarcade/internal/model"
)

// Size of the board along each axis
const Size = 3

// Board is the 3x3 grid. It serializes inside the state token, so the
// representation is exported.
type Board struct {
	Spaces [Size][Size]model.Piece `msgpack:"spaces" json:"spaces"`
}

// At returns the piece at (x, y)
func (b *Board) At(x, y int) model.Piece {
	return b.Spaces[y][x]
}

// Place puts piece at (x, y), rejecting out-of-range coordinates and
// occupied spaces
func (b *Board) Place(x, y int, piece model.Piece) error {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return model.ErrOutOfBounds
	}
	if b.Spaces[y][x] != model.PieceNone {
		return model.ErrSpaceOccupied
	}
	b.Spaces[y][x] = piece
	return nil
}

// lines enumerates every winning line as coordinate triples
var lines = [8][3][2]int{
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{2, 0}, {1, 1}, {0, 2}},
}

// Winner returns the piece holding a completed line, or PieceNone
func (b *Board) Winner() model.Piece {
	for _, line := range lines {
		first := b.At(line[0][0], line[0][1])
		if first == model.PieceNone {
			continue
		}
		if b.At(line[1][0], line[1][1]) == first && b.At(line[2][0], line[2][1]) == first {
			return first
		}
	}
	return model.PieceNone
}

// Full reports whether every space is occupied
func (b *Board) Full() bool {
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b.Spaces[y][x] == model.PieceNone {
				return false
			}
		}
	}
	return true
}
