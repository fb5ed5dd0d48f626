package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketarcade/pocketarcade/internal/dependencies/mocks"
	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/services/identity"
	"github.com/pocketarcade/pocketarcade/internal/storage"
	"github.com/pocketarcade/pocketarcade/internal/storage/memory"
)

type fixture struct {
	service *Service
	store   *memory.Storage
	clock   *mocks.MockClock
}

func newFixture(t *testing.T, pageSize int) *fixture {
	t.Helper()

	clk := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	store := memory.New(clk)
	resolver := identity.Static{"alice": "Alice", "bob": "Bob", "carol": "Carol"}
	return &fixture{
		service: New(store, resolver, pageSize),
		store:   store,
		clock:   clk,
	}
}

func (f *fixture) recordMatch(t *testing.T, kind model.GameKind, winner, loser model.PlayerID) {
	t.Helper()
	err := f.store.RecordFinishedMatch(context.Background(), kind, []storage.Participant{
		{ID: winner, Name: string(winner), Won: true},
		{ID: loser, Name: string(loser), Won: false},
	})
	require.NoError(t, err)
}

func (f *fixture) recordPuzzle(t *testing.T, player model.PlayerID, moves int, duration time.Duration) {
	t.Helper()
	err := f.store.RecordFinishedPuzzle(context.Background(), storage.PuzzleScore{
		PlayerID:   player,
		Name:       string(player),
		Size:       3,
		Difficulty: model.DifficultyEasy,
		Moves:      moves,
		Duration:   duration,
	})
	require.NoError(t, err)
}

func TestMatchStandingsRating(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	// alice 2-0, bob 1-2, carol 0-1
	f.recordMatch(t, model.KindTicTacToe, "alice", "bob")
	f.recordMatch(t, model.KindTicTacToe, "alice", "bob")
	f.recordMatch(t, model.KindTicTacToe, "bob", "carol")

	standings, more, err := f.service.MatchStandings(ctx, model.KindTicTacToe, 0)
	require.NoError(t, err)
	assert.False(t, more)
	require.Len(t, standings, 3)

	assert.Equal(t, MatchStanding{PlayerID: "alice", Name: "Alice", Wins: 2, Rating: 34}, standings[0])
	assert.Equal(t, MatchStanding{PlayerID: "bob", Name: "Bob", Wins: 1, Losses: 2, Rating: -9}, standings[1])
	assert.Equal(t, MatchStanding{PlayerID: "carol", Name: "Carol", Losses: 1, Rating: -13}, standings[2])
}

func TestMatchStandingsKindsAreSeparate(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	f.recordMatch(t, model.KindTicTacToe, "alice", "bob")
	f.recordMatch(t, model.KindUltimateTicTacToe, "bob", "alice")

	standings, _, err := f.service.MatchStandings(ctx, model.KindUltimateTicTacToe, 0)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, model.PlayerID("bob"), standings[0].PlayerID)
	assert.Equal(t, 17, standings[0].Rating)
}

func TestMatchStandingsPagination(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()

	f.recordMatch(t, model.KindTicTacToe, "alice", "bob")
	f.recordMatch(t, model.KindTicTacToe, "alice", "carol")
	f.recordMatch(t, model.KindTicTacToe, "bob", "carol")

	first, more, err := f.service.MatchStandings(ctx, model.KindTicTacToe, 0)
	require.NoError(t, err)
	assert.True(t, more)
	require.Len(t, first, 2)
	assert.Equal(t, model.PlayerID("alice"), first[0].PlayerID)

	second, more, err := f.service.MatchStandings(ctx, model.KindTicTacToe, 1)
	require.NoError(t, err)
	assert.False(t, more)
	require.Len(t, second, 1)
	assert.Equal(t, model.PlayerID("carol"), second[0].PlayerID)

	third, more, err := f.service.MatchStandings(ctx, model.KindTicTacToe, 2)
	require.NoError(t, err)
	assert.False(t, more)
	assert.Empty(t, third)

	_, _, err = f.service.MatchStandings(ctx, model.KindTicTacToe, -1)
	require.ErrorIs(t, err, model.ErrBadFilter)
}

func TestPuzzleStandingsBestPerPlayer(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	f.recordPuzzle(t, "alice", 60, 90*time.Second)
	f.recordPuzzle(t, "alice", 40, 200*time.Second)
	f.recordPuzzle(t, "bob", 50, 30*time.Second)

	filters := Filters{Game: model.KindSlidingPuzzle, Size: 3, Difficulty: model.DifficultyEasy, Sort: SortByScore}
	standings, more, err := f.service.PuzzleStandings(ctx, filters, 0)
	require.NoError(t, err)
	assert.False(t, more)
	require.Len(t, standings, 2)

	// alice keeps her 40-move solve; fewer moves outranks faster time
	assert.Equal(t, model.PlayerID("alice"), standings[0].PlayerID)
	assert.Equal(t, 40, standings[0].Moves)
	assert.Equal(t, "Alice", standings[0].Name)
	assert.Equal(t, model.PlayerID("bob"), standings[1].PlayerID)
}

func TestPuzzleStandingsSortByTime(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	f.recordPuzzle(t, "alice", 40, 200*time.Second)
	f.recordPuzzle(t, "bob", 50, 30*time.Second)

	filters := Filters{Game: model.KindSlidingPuzzle, Size: 3, Difficulty: model.DifficultyEasy, Sort: SortByTime}
	standings, _, err := f.service.PuzzleStandings(ctx, filters, 0)
	require.NoError(t, err)
	require.Len(t, standings, 2)

	assert.Equal(t, model.PlayerID("bob"), standings[0].PlayerID)
	assert.Equal(t, model.PlayerID("alice"), standings[1].PlayerID)
}

func TestPuzzleStandingsBestEntryFixedAcrossSorts(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	// alice's best is her 30-move solve even though her 50-move one
	// was faster; the sort mode must not change which entry counts
	f.recordPuzzle(t, "alice", 30, 120*time.Second)
	f.recordPuzzle(t, "alice", 50, 20*time.Second)
	f.recordPuzzle(t, "bob", 40, 60*time.Second)

	filters := Filters{Game: model.KindSlidingPuzzle, Size: 3, Difficulty: model.DifficultyEasy, Sort: SortByTime}
	standings, _, err := f.service.PuzzleStandings(ctx, filters, 0)
	require.NoError(t, err)
	require.Len(t, standings, 2)

	assert.Equal(t, model.PlayerID("bob"), standings[0].PlayerID)
	assert.Equal(t, model.PlayerID("alice"), standings[1].PlayerID)
	assert.Equal(t, 30, standings[1].Moves)
	assert.Equal(t, 120*time.Second, standings[1].Duration)
}

func TestPuzzleStandingsTiebreaks(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	// same move count: faster solve ranks first; the earlier record wins
	// a full tie
	f.recordPuzzle(t, "alice", 40, 100*time.Second)
	f.clock.Advance(time.Hour)
	f.recordPuzzle(t, "bob", 40, 80*time.Second)
	f.clock.Advance(time.Hour)
	f.recordPuzzle(t, "carol", 40, 100*time.Second)

	filters := Filters{Game: model.KindSlidingPuzzle, Size: 3, Difficulty: model.DifficultyEasy, Sort: SortByScore}
	standings, _, err := f.service.PuzzleStandings(ctx, filters, 0)
	require.NoError(t, err)
	require.Len(t, standings, 3)

	assert.Equal(t, model.PlayerID("bob"), standings[0].PlayerID)
	assert.Equal(t, model.PlayerID("alice"), standings[1].PlayerID)
	assert.Equal(t, model.PlayerID("carol"), standings[2].PlayerID)
}

func TestPuzzleStandingsBucketed(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	f.recordPuzzle(t, "alice", 40, 100*time.Second)
	err := f.store.RecordFinishedPuzzle(ctx, storage.PuzzleScore{
		PlayerID: "bob", Name: "bob", Size: 4, Difficulty: model.DifficultyEasy, Moves: 10, Duration: time.Second,
	})
	require.NoError(t, err)

	filters := Filters{Game: model.KindSlidingPuzzle, Size: 3, Difficulty: model.DifficultyEasy, Sort: SortByScore}
	standings, _, err := f.service.PuzzleStandings(ctx, filters, 0)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, model.PlayerID("alice"), standings[0].PlayerID)
}

func TestRenderMatchLeaderboard(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	f.recordMatch(t, model.KindTicTacToe, "alice", "bob")

	msg, err := f.service.Render(ctx, Filters{Game: model.KindTicTacToe}, 0)
	require.NoError(t, err)
	assert.True(t, msg.Ephemeral)
	assert.Contains(t, msg.Content, "`Tic Tac Toe Leaderboard`")
	assert.Contains(t, msg.Content, "#1: Alice (alice)")
	assert.Contains(t, msg.Content, "Wins: 1 | Rating: 17")
	assert.Contains(t, msg.Content, "#2: Bob (bob)")
	assert.NotContains(t, msg.Content, "More results available.")
}

func TestRenderPuzzleLeaderboard(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	f.recordPuzzle(t, "alice", 42, 90*time.Second)

	filters := Filters{Game: model.KindSlidingPuzzle, Size: 3, Difficulty: model.DifficultyEasy, Sort: SortByScore}
	msg, err := f.service.Render(ctx, filters, 0)
	require.NoError(t, err)
	assert.Contains(t, msg.Content, "`Sliding Puzzle 3x3 Leaderboard`")
	assert.Contains(t, msg.Content, "Score: 42 | Time: 1m 30s")
}

func TestRenderEmptyLeaderboard(t *testing.T) {
	f := newFixture(t, 10)

	msg, err := f.service.Render(context.Background(), Filters{Game: model.KindUltimateTicTacToe}, 0)
	require.NoError(t, err)
	assert.Contains(t, msg.Content, "No results recorded yet.")
}
