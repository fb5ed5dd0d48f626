package slidingpuzzle

import (
	"github.com/pocketarcade/pocketarcade/internal/dependencies/random"
	"github.com/pocketarcade/pocketarcade/internal/model"
)

// Blank marks the empty space in the tile slice
const Blank = 0

// Direction of a blank-tile move during shuffling
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Board is the puzzle surface: Size*Size tiles in row-major order, one
// of them the blank. Tile values are the solved positions plus one, so
// a solved board reads 1..N*N-1 with the blank last.
type Board struct {
	Size   int   `msgpack:"size" json:"size"`
	Spaces []int `msgpack:"spaces" json:"spaces"`
}

// shuffleFactor is how many random blank moves each difficulty applies
// per board cell. Shuffling by legal moves keeps the board solvable by
// construction.
func shuffleFactor(difficulty model.Difficulty) int {
	switch difficulty {
	case model.DifficultyMedium:
		return 50
	case model.DifficultyHard:
		return 100
	}
	return 10
}

// NewBoard builds a solved board of the given size, blank in the final
// cell, then shuffles it by walking the blank a difficulty-scaled
// number of random legal moves.
func NewBoard(size int, difficulty model.Difficulty, rng random.Random) *Board {
	cells := size * size
	b := &Board{
		Size:   size,
		Spaces: make([]int, cells),
	}
	for i := 0; i < cells-1; i++ {
		b.Spaces[i] = i + 1
	}
	b.Spaces[cells-1] = Blank

	moves := shuffleFactor(difficulty) * cells
	for i := 0; i < moves; i++ {
		b.moveBlank(Direction(rng.Intn(4)))
	}
	return b
}

// BlankIndex locates the blank tile. The bool result is false only for
// forged state with no blank at all.
func (b *Board) BlankIndex() (int, bool) {
	for i, v := range b.Spaces {
		if v == Blank {
			return i, true
		}
	}
	return 0, false
}

// moveBlank slides the blank one step. A move that would leave the
// board rotates clockwise until it fits: left on the west edge becomes
// up, up on the north edge becomes right, and so on. Every direction
// is legal somewhere, so this always terminates.
func (b *Board) moveBlank(dir Direction) {
	blank, ok := b.BlankIndex()
	if !ok {
		return
	}
	x, y := blank%b.Size, blank/b.Size

	for rotating := true; rotating; {
		switch {
		case x == 0 && dir == Left:
			dir = Up
		case x == b.Size-1 && dir == Right:
			dir = Down
		case y == 0 && dir == Up:
			dir = Right
		case y == b.Size-1 && dir == Down:
			dir = Left
		default:
			rotating = false
		}
	}
	switch dir {
	case Up:
		y--
	case Down:
		y++
	case Left:
		x--
	case Right:
		x++
	}
	target := x + y*b.Size
	b.Spaces[blank], b.Spaces[target] = b.Spaces[target], b.Spaces[blank]
}

// SwapChecked swaps the tiles at indices s and f. Exactly one of them
// must be the blank and they must be cardinally adjacent.
func (b *Board) SwapChecked(s, f int) error {
	cells := b.Size * b.Size
	if s < 0 || s >= cells || f < 0 || f >= cells {
		return model.ErrOutOfBounds
	}
	if (b.Spaces[s] == Blank) == (b.Spaces[f] == Blank) {
		return model.ErrBlankRequired
	}
	sx, sy := s%b.Size, s/b.Size
	fx, fy := f%b.Size, f/b.Size
	dx, dy := sx-fx, sy-fy
	if dx*dx+dy*dy != 1 {
		return model.ErrNotAdjacent
	}
	b.Spaces[s], b.Spaces[f] = b.Spaces[f], b.Spaces[s]
	return nil
}

// Solved reports whether every tile sits at its home position
func (b *Board) Solved() bool {
	for i, v := range b.Spaces {
		if v != Blank && v != i+1 {
			return false
		}
	}
	return true
}

// AdjacentToBlank reports whether the tile at index i can slide into
// the blank
func (b *Board) AdjacentToBlank(i int) bool {
	blank, ok := b.BlankIndex()
	if !ok || i == blank {
		return false
	}
	x, y := i%b.Size, i/b.Size
	bx, by := blank%b.Size, blank/b.Size
	dx, dy := x-bx, y-by
	return dx*dx+dy*dy == 1
}
