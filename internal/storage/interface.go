// Package storage defines the persistence interface for finished-game
// results and the player identities attached to them. Games remain
// playable with no store configured; only result recording and
// leaderboards need one.
package storage

import (
	"context"
	"time"

	"github.com/pocketarcade/pocketarcade/internal/model"
)

// Participant is one player of a finished versus match
type Participant struct {
	ID   model.PlayerID `json:"id"`
	Name string         `json:"name"`
	Won  bool           `json:"won"`
}

// MatchRecord is one participant's row of a finished versus match.
// A decisive two-player match produces two rows, one per participant.
type MatchRecord struct {
	Kind      model.GameKind `json:"kind"`
	PlayerID  model.PlayerID `json:"player_id"`
	Won       bool           `json:"won"`
	CreatedAt time.Time      `json:"created_at"`
}

// PuzzleScore is a completed sliding puzzle submitted for recording
type PuzzleScore struct {
	PlayerID   model.PlayerID   `json:"player_id"`
	Name       string           `json:"name"`
	Size       int              `json:"size"`
	Difficulty model.Difficulty `json:"difficulty"`
	Moves      int              `json:"moves"`
	Duration   time.Duration    `json:"duration"`
}

// PuzzleRecord is one stored sliding puzzle completion
type PuzzleRecord struct {
	PlayerID   model.PlayerID   `json:"player_id"`
	Size       int              `json:"size"`
	Difficulty model.Difficulty `json:"difficulty"`
	Moves      int              `json:"moves"`
	Duration   time.Duration    `json:"duration"`
	CreatedAt  time.Time        `json:"created_at"`
}

// Store is the persistence interface. RecordFinishedMatch and
// RecordFinishedPuzzle are atomic: either every row of the result lands
// or none does.
type Store interface {
	// RecordFinishedMatch stores one row per participant and upserts
	// each participant's display name
	RecordFinishedMatch(ctx context.Context, kind model.GameKind, participants []Participant) error
	// RecordFinishedPuzzle stores a puzzle completion and upserts the
	// player's display name
	RecordFinishedPuzzle(ctx context.Context, score PuzzleScore) error
	// MatchRecords returns every stored row for a game kind
	MatchRecords(ctx context.Context, kind model.GameKind) ([]MatchRecord, error)
	// PuzzleRecords returns every stored completion for a size and
	// difficulty bucket
	PuzzleRecords(ctx context.Context, size int, difficulty model.Difficulty) ([]PuzzleRecord, error)
	// DisplayName returns the last-recorded display name for a player,
	// or model.ErrUserNotFound
	DisplayName(ctx context.Context, id model.PlayerID) (string, error)
	Close() error
}
