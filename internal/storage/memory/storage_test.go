package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pocketarcade/pocketarcade/internal/dependencies/mocks"
	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/storage"
)

func TestMemoryStore(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s := New(clk)
	ctx := context.Background()

	err := s.RecordFinishedMatch(ctx, model.KindTicTacToe, []storage.Participant{
		{ID: "player-1", Name: "Alice", Won: true},
		{ID: "player-2", Name: "Bob", Won: false},
	})
	require.NoError(t, err)

	records, err := s.MatchRecords(ctx, model.KindTicTacToe)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.True(t, records[0].Won)
	require.Equal(t, clk.Now(), records[0].CreatedAt)

	name, err := s.DisplayName(ctx, "player-2")
	require.NoError(t, err)
	require.Equal(t, "Bob", name)

	_, err = s.DisplayName(ctx, "player-3")
	require.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestMemoryStorePuzzleBuckets(t *testing.T) {
	s := New(mocks.NewMockClock(time.Now()))
	ctx := context.Background()

	err := s.RecordFinishedPuzzle(ctx, storage.PuzzleScore{
		PlayerID:   "player-1",
		Name:       "Alice",
		Size:       5,
		Difficulty: model.DifficultyHard,
		Moves:      300,
		Duration:   10 * time.Minute,
	})
	require.NoError(t, err)

	records, err := s.PuzzleRecords(ctx, 5, model.DifficultyHard)
	require.NoError(t, err)
	require.Len(t, records, 1)

	other, err := s.PuzzleRecords(ctx, 5, model.DifficultyEasy)
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := New(mocks.NewMockClock(time.Now()))
	ctx := context.Background()

	err := s.RecordFinishedMatch(ctx, model.KindTicTacToe, []storage.Participant{
		{ID: "player-1", Name: "Alice", Won: true},
	})
	require.NoError(t, err)

	records, _ := s.MatchRecords(ctx, model.KindTicTacToe)
	records[0].Won = false

	again, _ := s.MatchRecords(ctx, model.KindTicTacToe)
	require.True(t, again[0].Won)
}
