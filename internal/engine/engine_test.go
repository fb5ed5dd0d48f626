package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketarcade/pocketarcade/internal/command"
	"github.com/pocketarcade/pocketarcade/internal/dependencies/mocks"
	"github.com/pocketarcade/pocketarcade/internal/games"
	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/render"
	"github.com/pocketarcade/pocketarcade/internal/services/identity"
	"github.com/pocketarcade/pocketarcade/internal/services/leaderboard"
	"github.com/pocketarcade/pocketarcade/internal/storage/memory"
	"github.com/pocketarcade/pocketarcade/internal/testutil"
)

type fixture struct {
	engine   *Engine
	store    *memory.Storage
	notifier *mocks.MockNotifier
	clock    *mocks.MockClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	rnd := mocks.NewMockRandom()
	rnd.NoShuffle = true
	store := memory.New(clk)
	notifier := mocks.NewMockNotifier()

	deps := games.Deps{
		Store:    store,
		Notifier: notifier,
		Resolver: identity.Static{"alice": "Alice", "bob": "Bob"},
		Clock:    clk,
		Random:   rnd,
		Logger:   testutil.NopLogger(),

		IdleThreshold: time.Minute,
	}
	return &fixture{
		engine:   New(deps, leaderboard.New(store, deps.Resolver, 10)),
		store:    store,
		notifier: notifier,
		clock:    clk,
	}
}

func (f *fixture) act(t *testing.T, msg *render.Message, player model.PlayerID, controlID string) *render.Message {
	t.Helper()

	next, err := f.engine.HandleComponent(context.Background(), games.ComponentEvent{
		ControlID:      controlID,
		Player:         player,
		MessageContent: msg.Content,
	})
	require.NoError(t, err)
	return next
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.HandleCommand(context.Background(), "chess", games.CommandRequest{Player: "alice"})
	require.ErrorIs(t, err, model.ErrUnknownGame)
}

func TestUnknownComponentNamespace(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.HandleComponent(context.Background(), games.ComponentEvent{
		ControlID: "chess:Move:e2:e4",
		Player:    "alice",
	})
	require.ErrorIs(t, err, model.ErrUnknownGame)

	_, err = f.engine.HandleComponent(context.Background(), games.ComponentEvent{
		ControlID: "nocolon",
		Player:    "alice",
	})
	require.ErrorIs(t, err, model.ErrUnknownAction)
}

// A full round of the classic game through the engine: challenge,
// accept, X takes a column, result is recorded.
func TestFullTicTacToeRound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	msg, err := f.engine.HandleCommand(ctx, "tictactoe", games.CommandRequest{
		Player:  "alice",
		Options: []command.Option{{Name: "opponent", Value: "bob"}},
	})
	require.NoError(t, err)

	msg = f.act(t, msg, "bob", "tictactoe:Accept")
	msg = f.act(t, msg, "alice", "tictactoe:Place:0:0")
	msg = f.act(t, msg, "bob", "tictactoe:Place:1:1")
	msg = f.act(t, msg, "alice", "tictactoe:Place:0:1")
	msg = f.act(t, msg, "bob", "tictactoe:Place:2:2")
	msg = f.act(t, msg, "alice", "tictactoe:Place:0:2")

	assert.Contains(t, msg.Content, "@alice (X) wins!")

	records, err := f.store.MatchRecords(ctx, model.KindTicTacToe)
	require.NoError(t, err)
	require.Len(t, records, 2)
}

// The rejection path renders an ephemeral reply instead of an error
func TestRejectionsBecomeEphemeral(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	msg, err := f.engine.HandleCommand(ctx, "tictactoe", games.CommandRequest{
		Player:  "alice",
		Options: []command.Option{{Name: "opponent", Value: "bob"}},
	})
	require.NoError(t, err)

	// the challenger answering their own challenge
	reply, err := f.engine.HandleComponent(ctx, games.ComponentEvent{
		ControlID:      "tictactoe:Accept",
		Player:         "alice",
		MessageContent: msg.Content,
	})
	require.NoError(t, err)
	assert.True(t, reply.Ephemeral)
	assert.Contains(t, reply.Content, "isn't yours to answer")

	// wrong turn after acceptance
	msg = f.act(t, msg, "bob", "tictactoe:Accept")
	reply, err = f.engine.HandleComponent(ctx, games.ComponentEvent{
		ControlID:      "tictactoe:Place:0:0",
		Player:         "bob",
		MessageContent: msg.Content,
	})
	require.NoError(t, err)
	assert.True(t, reply.Ephemeral)
	assert.Contains(t, reply.Content, "not your turn")
}

func TestSelfPlayCommandEphemeral(t *testing.T) {
	f := newFixture(t)

	reply, err := f.engine.HandleCommand(context.Background(), "ultimatetictactoe", games.CommandRequest{
		Player:  "alice",
		Options: []command.Option{{Name: "opponent", Value: "alice"}},
	})
	require.NoError(t, err)
	assert.True(t, reply.Ephemeral)
	assert.Contains(t, reply.Content, "challenge yourself")
}

// Structural failures stay errors for the transport layer to report
func TestStructuralErrorsPropagate(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.HandleComponent(context.Background(), games.ComponentEvent{
		ControlID:      "tictactoe:Accept",
		Player:         "alice",
		MessageContent: "no token here",
	})
	require.ErrorIs(t, err, model.ErrNoGameData)

	_, err = f.engine.HandleComponent(context.Background(), games.ComponentEvent{
		ControlID:      "tictactoe:Resign",
		Player:         "alice",
		MessageContent: "irrelevant",
	})
	require.ErrorIs(t, err, model.ErrUnknownAction)
}

// The puzzle flows through the same dispatch: set up, start, slide
func TestSlidingPuzzleDispatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	msg, err := f.engine.HandleCommand(ctx, "slidingpuzzle", games.CommandRequest{Player: "alice"})
	require.NoError(t, err)
	assert.Contains(t, msg.Content, "setting up")

	msg = f.act(t, msg, "alice", "slidingpuzzle:SetSize:4")
	msg = f.act(t, msg, "alice", "slidingpuzzle:Start")
	require.Len(t, msg.Controls, 4)
}

// Finished games surface on the leaderboard command
func TestLeaderboardCommand(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	msg, err := f.engine.HandleCommand(ctx, "tictactoe", games.CommandRequest{
		Player:  "alice",
		Options: []command.Option{{Name: "opponent", Value: "bob"}},
	})
	require.NoError(t, err)

	msg = f.act(t, msg, "bob", "tictactoe:Accept")
	msg = f.act(t, msg, "alice", "tictactoe:Place:0:0")
	msg = f.act(t, msg, "bob", "tictactoe:Place:1:1")
	msg = f.act(t, msg, "alice", "tictactoe:Place:0:1")
	msg = f.act(t, msg, "bob", "tictactoe:Place:2:2")
	f.act(t, msg, "alice", "tictactoe:Place:0:2")

	reply, err := f.engine.HandleCommand(ctx, "leaderboard", games.CommandRequest{
		Player:  "carol",
		Options: []command.Option{{Name: "tictactoe"}},
	})
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "Tic Tac Toe Leaderboard")
	assert.Contains(t, reply.Content, "#1: Alice (alice)")
	assert.Contains(t, reply.Content, "Rating: 17")

	_, err = f.engine.HandleCommand(ctx, "leaderboard", games.CommandRequest{
		Player:  "carol",
		Options: []command.Option{{Name: "checkers"}},
	})
	require.ErrorIs(t, err, model.ErrBadFilter)
}
