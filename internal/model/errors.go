package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Action/control id errors
	ErrUnknownAction = errors.New("invalid action id")
	ErrUnknownGame   = errors.New("unknown game")

	// Command errors
	ErrMissingOption = errors.New("missing required option")

	// State token errors
	ErrNoGameData = errors.New("no game data found")

	// Phase/authorization errors
	ErrActionNotAllowed = errors.New("action not allowed in this phase")
	ErrNotYourTurn      = errors.New("it is not your turn")
	ErrNotInvitee       = errors.New("you are not the invitee")
	ErrNotYourGame      = errors.New("you are not the player")
	ErrGameOver         = errors.New("game is already over")
	ErrSelfPlay         = errors.New("playing with yourself is not permitted")

	// Board errors
	ErrOutOfBounds   = errors.New("invalid move, out of bounds")
	ErrSpaceOccupied = errors.New("invalid move, space already occupied")
	ErrBoardDecided  = errors.New("invalid move, board already decided")
	ErrNotAdjacent   = errors.New("invalid move, tiles are not adjacent")
	ErrBlankRequired = errors.New("invalid move, neither tile is the blank")

	// Turn cycle errors
	ErrNoPlayers = errors.New("at least one player is required")

	// Leaderboard errors
	ErrBadFilter = errors.New("invalid leaderboard filter")

	// Storage errors
	ErrUserNotFound = errors.New("user not found")
)

// UnknownActionError carries the literal control id that failed to
// decode, so rejections can quote it back to the player. It matches
// ErrUnknownAction through its chain.
type UnknownActionError struct {
	ID  string
	Err error
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("control id %q: %v", e.ID, e.Err)
}

func (e *UnknownActionError) Unwrap() error {
	return e.Err
}
