// Package sqlite provides a file-backed Store using the pure-Go sqlite
// driver, for single-node deployments without a Redis instance.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pocketarcade/pocketarcade/internal/dependencies/clock"
	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS matches (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	kind       TEXT    NOT NULL,
	player_id  TEXT    NOT NULL,
	won        INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_matches_kind ON matches(kind);

CREATE TABLE IF NOT EXISTS puzzle_scores (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	player_id   TEXT    NOT NULL,
	size        INTEGER NOT NULL,
	difficulty  TEXT    NOT NULL,
	moves       INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_puzzle_scores_bucket ON puzzle_scores(size, difficulty);
`

// Storage is a sqlite-backed implementation of the storage interface
type Storage struct {
	db    *sql.DB
	clock clock.Clock
}

// New opens (creating if needed) the database at path and applies the schema
func New(path string, clk clock.Clock) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// The driver serializes access; a pool of writers just contends
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Storage{db: db, clock: clk}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) RecordFinishedMatch(ctx context.Context, kind model.GameKind, participants []storage.Participant) error {
	now := s.clock.Now().UnixMilli()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range participants {
		if err := upsertUser(ctx, tx, p.ID, p.Name); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO matches (kind, player_id, won, created_at) VALUES (?, ?, ?, ?)`,
			string(kind), string(p.ID), boolToInt(p.Won), now)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Storage) RecordFinishedPuzzle(ctx context.Context, score storage.PuzzleScore) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := upsertUser(ctx, tx, score.PlayerID, score.Name); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO puzzle_scores (player_id, size, difficulty, moves, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(score.PlayerID), score.Size, string(score.Difficulty),
		score.Moves, score.Duration.Milliseconds(), s.clock.Now().UnixMilli())
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Storage) MatchRecords(ctx context.Context, kind model.GameKind) ([]storage.MatchRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, won, created_at FROM matches WHERE kind = ? ORDER BY id`,
		string(kind))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []storage.MatchRecord
	for rows.Next() {
		var (
			playerID  string
			won       int
			createdAt int64
		)
		if err := rows.Scan(&playerID, &won, &createdAt); err != nil {
			return nil, err
		}
		records = append(records, storage.MatchRecord{
			Kind:      kind,
			PlayerID:  model.PlayerID(playerID),
			Won:       won != 0,
			CreatedAt: time.UnixMilli(createdAt).UTC(),
		})
	}
	return records, rows.Err()
}

func (s *Storage) PuzzleRecords(ctx context.Context, size int, difficulty model.Difficulty) ([]storage.PuzzleRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, moves, duration_ms, created_at
		 FROM puzzle_scores WHERE size = ? AND difficulty = ? ORDER BY id`,
		size, string(difficulty))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []storage.PuzzleRecord
	for rows.Next() {
		var (
			playerID   string
			moves      int
			durationMS int64
			createdAt  int64
		)
		if err := rows.Scan(&playerID, &moves, &durationMS, &createdAt); err != nil {
			return nil, err
		}
		records = append(records, storage.PuzzleRecord{
			PlayerID:   model.PlayerID(playerID),
			Size:       size,
			Difficulty: difficulty,
			Moves:      moves,
			Duration:   time.Duration(durationMS) * time.Millisecond,
			CreatedAt:  time.UnixMilli(createdAt).UTC(),
		})
	}
	return records, rows.Err()
}

func (s *Storage) DisplayName(ctx context.Context, id model.PlayerID) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM users WHERE id = ?`, string(id)).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", model.ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

func upsertUser(ctx context.Context, tx *sql.Tx, id model.PlayerID, name string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO users (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		string(id), name)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
