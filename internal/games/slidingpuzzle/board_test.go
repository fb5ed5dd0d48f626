package slidingpuzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketarcade/pocketarcade/internal/dependencies/mocks"
	"github.com/pocketarcade/pocketarcade/internal/model"
)

func solvedBoard(size int) *Board {
	b := &Board{Size: size, Spaces: make([]int, size*size)}
	for i := 0; i < size*size-1; i++ {
		b.Spaces[i] = i + 1
	}
	return b
}

func TestNewBoardIsPermutation(t *testing.T) {
	for _, size := range model.PuzzleSizes() {
		for _, difficulty := range model.Difficulties() {
			b := NewBoard(size, difficulty, mocks.NewMockRandom())
			require.Len(t, b.Spaces, size*size)

			seen := make(map[int]bool)
			for _, v := range b.Spaces {
				assert.False(t, seen[v], "duplicate tile %d", v)
				assert.GreaterOrEqual(t, v, 0)
				assert.Less(t, v, size*size)
				seen[v] = true
			}
		}
	}
}

func TestNewBoardShuffleIsDeterministic(t *testing.T) {
	a := NewBoard(3, model.DifficultyMedium, mocks.NewMockRandom())
	b := NewBoard(3, model.DifficultyMedium, mocks.NewMockRandom())
	assert.Equal(t, a.Spaces, b.Spaces)
}

// Shuffling walks the blank through legal moves only, so undoing the
// walk in reverse must slide the board back to solved.
func TestShuffledBoardIsSolvable(t *testing.T) {
	for _, size := range model.PuzzleSizes() {
		moves := shuffleFactor(model.DifficultyHard) * size * size
		dirs := make([]int, moves)
		for i := range dirs {
			dirs[i] = (i*31 + 7) % 4
		}

		rng := mocks.NewMockRandom()
		rng.QueueIntn(dirs...)
		b := NewBoard(size, model.DifficultyHard, rng)

		// replay the same walk on a solved board, recording where the
		// blank went on each step
		replay := solvedBoard(size)
		type step struct{ from, to int }
		history := make([]step, 0, moves)
		for _, d := range dirs {
			before, ok := replay.BlankIndex()
			require.True(t, ok)
			replay.moveBlank(Direction(d))
			after, _ := replay.BlankIndex()
			history = append(history, step{from: before, to: after})
		}
		require.Equal(t, b.Spaces, replay.Spaces)

		for i := len(history) - 1; i >= 0; i-- {
			require.NoError(t, b.SwapChecked(history[i].from, history[i].to))
		}
		assert.True(t, b.Solved(), "size %d", size)
	}
}

func TestMoveBlankRotatesClockwiseAtEdges(t *testing.T) {
	// Blank sits in the south-east corner: down rotates to left
	b := solvedBoard(3)
	b.moveBlank(Down)
	blank, ok := b.BlankIndex()
	require.True(t, ok)
	assert.Equal(t, 7, blank)

	// Right rotates to down, which rotates again to left
	b = solvedBoard(3)
	b.moveBlank(Right)
	blank, _ = b.BlankIndex()
	assert.Equal(t, 7, blank)

	// Up is legal from the corner and just moves
	b = solvedBoard(3)
	b.moveBlank(Up)
	blank, _ = b.BlankIndex()
	assert.Equal(t, 5, blank)
}

func TestSwapChecked(t *testing.T) {
	b := solvedBoard(3)

	// tile 8 at index 7 slides into the blank at index 8
	require.NoError(t, b.SwapChecked(7, 8))
	assert.Equal(t, Blank, b.Spaces[7])
	assert.Equal(t, 8, b.Spaces[8])

	err := b.SwapChecked(0, 9)
	assert.ErrorIs(t, err, model.ErrOutOfBounds)

	// neither index is the blank
	err = b.SwapChecked(0, 1)
	assert.ErrorIs(t, err, model.ErrBlankRequired)

	// same row as the blank but two cells apart
	b = solvedBoard(3)
	err = b.SwapChecked(6, 8)
	assert.ErrorIs(t, err, model.ErrNotAdjacent)
}

func TestSolved(t *testing.T) {
	b := solvedBoard(4)
	assert.True(t, b.Solved())

	require.NoError(t, b.SwapChecked(14, 15))
	assert.False(t, b.Solved())

	require.NoError(t, b.SwapChecked(15, 14))
	assert.True(t, b.Solved())
}

func TestAdjacentToBlank(t *testing.T) {
	b := solvedBoard(3)
	// blank at index 8, corner: neighbors are 5 and 7
	assert.True(t, b.AdjacentToBlank(5))
	assert.True(t, b.AdjacentToBlank(7))
	assert.False(t, b.AdjacentToBlank(4))
	assert.False(t, b.AdjacentToBlank(6))
	assert.False(t, b.AdjacentToBlank(8))
}
