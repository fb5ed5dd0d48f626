package tictactoe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketarcade/pocketarcade/internal/codec"
	"github.com/pocketarcade/pocketarcade/internal/command"
	"github.com/pocketarcade/pocketarcade/internal/games"
	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/render"
	"github.com/pocketarcade/pocketarcade/internal/services/identity"
	"github.com/pocketarcade/pocketarcade/internal/storage/memory"
	"github.com/pocketarcade/pocketarcade/internal/testutil"

	"github.com/pocketarcade/pocketarcade/internal/dependencies/mocks"
)

type fixture struct {
	handler  *Handler
	store    *memory.Storage
	notifier *mocks.MockNotifier
	clock    *mocks.MockClock
	random   *mocks.MockRandom
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
		handler:  New(deps),
		store:    store,
		notifier: notifier,
		clock:    clk,
		random:   rnd,
	}
}

func (f *fixture) challenge(t *testing.T) *render.Message {
	t.Helper()

	msg, err := f.handler.Command(context.Background(), games.CommandRequest{
		Player: "alice",
		Options: []command.Option{
			{Name: "opponent", Value: "bob"},
		},
	})
	require.NoError(t, err)
	return msg
}

func (f *fixture) act(t *testing.T, msg *render.Message, player model.PlayerID, action Action) *render.Message {
	t.Helper()

	next, err := f.handler.Component(context.Background(), games.ComponentEvent{
		ControlID:      action.ControlID(),
		Player:         player,
		MessageContent: msg.Content,
	})
	require.NoError(t, err)
	return next
}

func (f *fixture) actErr(t *testing.T, msg *render.Message, player model.PlayerID, action Action) error {
	t.Helper()

	_, err := f.handler.Component(context.Background(), games.ComponentEvent{
		ControlID:      action.ControlID(),
		Player:         player,
		MessageContent: msg.Content,
	})
	require.Error(t, err)
	return err
}

func TestChallengeRendersInvite(t *testing.T) {
	f := newFixture(t)
	msg := f.challenge(t)

	assert.Contains(t, msg.Content, "@alice")
	assert.Contains(t, msg.Content, "@bob")
	require.Len(t, msg.Controls, 1)
	require.Len(t, msg.Controls[0], 2)
	assert.Equal(t, "tictactoe:Accept", msg.Controls[0][0].ID)
	assert.Equal(t, "tictactoe:Decline", msg.Controls[0][1].ID)

	// Token is present and decodes back to the awaiting state
	var g Game
	require.NoError(t, codec.ExtractInto(msg.Content, &g))
	assert.Equal(t, model.PhaseAwaitingApproval, g.Phase)
	assert.Equal(t, model.PlayerID("bob"), g.Invite.Invitee)
}

func TestChallengeSelfPlayRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.handler.Command(context.Background(), games.CommandRequest{
		Player:  "alice",
		Options: []command.Option{{Name: "opponent", Value: "alice"}},
	})
	require.ErrorIs(t, err, model.ErrSelfPlay)
}

func TestChallengeMissingOpponent(t *testing.T) {
	f := newFixture(t)

	_, err := f.handler.Command(context.Background(), games.CommandRequest{Player: "alice"})
	require.ErrorIs(t, err, model.ErrMissingOption)
}

func TestOnlyInviteeMayAnswer(t *testing.T) {
	f := newFixture(t)
	msg := f.challenge(t)

	err := f.actErr(t, msg, "alice", Accept{})
	assert.ErrorIs(t, err, model.ErrNotInvitee)

	err = f.actErr(t, msg, "carol", Decline{})
	assert.ErrorIs(t, err, model.ErrNotInvitee)
}

func TestDeclineCancels(t *testing.T) {
	f := newFixture(t)
	msg := f.challenge(t)

	msg = f.act(t, msg, "bob", Decline{})
	assert.Contains(t, msg.Content, "declined")
	assert.Empty(t, msg.Controls)

	// Nothing further is accepted on a cancelled game
	err := f.actErr(t, msg, "bob", Accept{})
	assert.ErrorIs(t, err, model.ErrGameOver)
}

func TestAcceptStartsGame(t *testing.T) {
	f := newFixture(t)
	msg := f.challenge(t)

	msg = f.act(t, msg, "bob", Accept{})

	// NoShuffle keeps the challenger first, so alice is X and moves first
	assert.Contains(t, msg.Content, "It's your turn, @alice")
	require.Len(t, msg.Controls, Size)
	for _, row := range msg.Controls {
		require.Len(t, row, Size)
		for _, c := range row {
			assert.False(t, c.Disabled)
			assert.Equal(t, render.StyleSecondary, c.Style)
		}
	}
}

func TestPlaceValidation(t *testing.T) {
	f := newFixture(t)
	msg := f.challenge(t)
	msg = f.act(t, msg, "bob", Accept{})

	err := f.actErr(t, msg, "bob", Place{X: 0, Y: 0})
	assert.ErrorIs(t, err, model.ErrNotYourTurn)

	err = f.actErr(t, msg, "carol", Place{X: 0, Y: 0})
	assert.ErrorIs(t, err, model.ErrNotYourGame)

	err = f.actErr(t, msg, "alice", Place{X: 3, Y: 0})
	assert.ErrorIs(t, err, model.ErrOutOfBounds)

	msg = f.act(t, msg, "alice", Place{X: 1, Y: 1})
	err = f.actErr(t, msg, "bob", Place{X: 1, Y: 1})
	assert.ErrorIs(t, err, model.ErrSpaceOccupied)
}

func TestPlaceBeforeAcceptRejected(t *testing.T) {
	f := newFixture(t)
	msg := f.challenge(t)

	err := f.actErr(t, msg, "alice", Place{X: 0, Y: 0})
	assert.ErrorIs(t, err, model.ErrActionNotAllowed)
}

func TestWinRecordsAndNotifies(t *testing.T) {
	f := newFixture(t)
	msg := f.challenge(t)
	msg = f.act(t, msg, "bob", Accept{})

	// alice (X) takes the main diagonal
	msg = f.act(t, msg, "alice", Place{X: 0, Y: 0})
	msg = f.act(t, msg, "bob", Place{X: 1, Y: 0})
	msg = f.act(t, msg, "alice", Place{X: 1, Y: 1})
	msg = f.act(t, msg, "bob", Place{X: 2, Y: 0})
	msg = f.act(t, msg, "alice", Place{X: 2, Y: 2})

	assert.Contains(t, msg.Content, "@alice (X) wins!")
	for _, row := range msg.Controls {
		for _, c := range row {
			assert.True(t, c.Disabled)
		}
	}

	// Further moves are rejected
	err := f.actErr(t, msg, "bob", Place{X: 0, Y: 1})
	assert.ErrorIs(t, err, model.ErrGameOver)

	// Both players hear about the result
	require.Len(t, f.notifier.SentTo("alice"), 1)
	assert.Contains(t, f.notifier.SentTo("alice")[0], "You won")
	require.Len(t, f.notifier.SentTo("bob"), 1)
	assert.Contains(t, f.notifier.SentTo("bob")[0], "You lost")

	// Decisive result lands as one row per participant
	records, err := f.store.MatchRecords(context.Background(), model.KindTicTacToe)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		if r.PlayerID == "alice" {
			assert.True(t, r.Won)
		} else {
			assert.False(t, r.Won)
		}
	}
}

func TestTieNotRecorded(t *testing.T) {
	f := newFixture(t)
	msg := f.challenge(t)
	msg = f.act(t, msg, "bob", Accept{})

	moves := []struct {
		player model.PlayerID
		place  Place
	}{
		{"alice", Place{X: 0, Y: 0}},
		{"bob", Place{X: 1, Y: 1}},
		{"alice", Place{X: 2, Y: 2}},
		{"bob", Place{X: 0, Y: 1}},
		{"alice", Place{X: 2, Y: 1}},
		{"bob", Place{X: 2, Y: 0}},
		{"alice", Place{X: 0, Y: 2}},
		{"bob", Place{X: 1, Y: 2}},
		{"alice", Place{X: 1, Y: 0}},
	}
	for _, m := range moves {
		msg = f.act(t, msg, m.player, m.place)
	}

	assert.Contains(t, msg.Content, "It's a tie!")
	assert.Contains(t, f.notifier.SentTo("alice")[0], "tie")

	records, err := f.store.MatchRecords(context.Background(), model.KindTicTacToe)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTurnReminderAfterIdle(t *testing.T) {
	f := newFixture(t)
	msg := f.challenge(t)
	msg = f.act(t, msg, "bob", Accept{})

	// A prompt move sends no reminder
	msg = f.act(t, msg, "alice", Place{X: 0, Y: 0})
	assert.Empty(t, f.notifier.SentTo("alice"))

	// A move after the game sat idle pings the next player
	f.clock.Advance(2 * time.Minute)
	msg = f.act(t, msg, "bob", Place{X: 1, Y: 1})
	require.Len(t, f.notifier.SentTo("alice"), 1)
	assert.Contains(t, f.notifier.SentTo("alice")[0], "your turn")
}

func TestStrictActionArity(t *testing.T) {
	f := newFixture(t)
	msg := f.challenge(t)

	for _, id := range []string{
		"tictactoe:Accept:extra",
		"tictactoe:Place:1",
		"tictactoe:Place:1:2:3",
		"tictactoe:Place:one:two",
		"tictactoe:Resign",
	} {
		_, err := f.handler.Component(context.Background(), games.ComponentEvent{
			ControlID:      id,
			Player:         "bob",
			MessageContent: msg.Content,
		})
		assert.ErrorIs(t, err, model.ErrUnknownAction, "control id %q", id)
	}
}

func TestComponentWithoutToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.handler.Component(context.Background(), games.ComponentEvent{
		ControlID:      Accept{}.ControlID(),
		Player:         "bob",
		MessageContent: "just some chat message",
	})
	require.ErrorIs(t, err, model.ErrNoGameData)
}

func TestCorruptTokenIsDecodeError(t *testing.T) {
	f := newFixture(t)

	_, err := f.handler.Component(context.Background(), games.ComponentEvent{
		ControlID:      Accept{}.ControlID(),
		Player:         "bob",
		MessageContent: "```not-a-real-token!!\nTic Tac Toe\n```\n",
	})
	var decodeErr *codec.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestAllowSelfPlay(t *testing.T) {
	f := newFixture(t)
	deps := f.handler.deps
	deps.AllowSelfPlay = true
	h := New(deps)

	msg, err := h.Command(context.Background(), games.CommandRequest{
		Player:  "alice",
		Options: []command.Option{{Name: "opponent", Value: "alice"}},
	})
	require.NoError(t, err)
	assert.Contains(t, msg.Content, "@alice has challenged @alice")
}
