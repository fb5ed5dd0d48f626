// Package redis provides a Redis-backed Store. Result rows are JSON
// documents in per-bucket lists; display names live in a single hash.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pocketarcade/pocketarcade/internal/dependencies/clock"
	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	clock  clock.Clock
}

// New creates a new Redis storage instance
func New(cfg Config, clk clock.Clock) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		clock:  clk,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, clk clock.Clock) *Storage {
	return &Storage{
		client: client,
		clock:  clk,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) RecordFinishedMatch(ctx context.Context, kind model.GameKind, participants []storage.Participant) error {
	now := s.clock.Now()

	// One pipeline so either every row and name lands or none does
	pipe := s.client.TxPipeline()
	for _, p := range participants {
		row := storage.MatchRecord{
			Kind:      kind,
			PlayerID:  p.ID,
			Won:       p.Won,
			CreatedAt: now,
		}
		data, err := json.Marshal(row)
		if err != nil {
			return err
		}
		pipe.RPush(ctx, matchesKey(kind), data)
		pipe.HSet(ctx, usersKey(), string(p.ID), p.Name)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) RecordFinishedPuzzle(ctx context.Context, score storage.PuzzleScore) error {
	row := storage.PuzzleRecord{
		PlayerID:   score.PlayerID,
		Size:       score.Size,
		Difficulty: score.Difficulty,
		Moves:      score.Moves,
		Duration:   score.Duration,
		CreatedAt:  s.clock.Now(),
	}
	data, err := json.Marshal(row)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, puzzlesKey(score.Size, score.Difficulty), data)
	pipe.HSet(ctx, usersKey(), string(score.PlayerID), score.Name)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) MatchRecords(ctx context.Context, kind model.GameKind) ([]storage.MatchRecord, error) {
	rows, err := s.client.LRange(ctx, matchesKey(kind), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]storage.MatchRecord, 0, len(rows))
	for _, raw := range rows {
		var record storage.MatchRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			continue // Skip invalid data
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *Storage) PuzzleRecords(ctx context.Context, size int, difficulty model.Difficulty) ([]storage.PuzzleRecord, error) {
	rows, err := s.client.LRange(ctx, puzzlesKey(size, difficulty), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]storage.PuzzleRecord, 0, len(rows))
	for _, raw := range rows {
		var record storage.PuzzleRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			continue // Skip invalid data
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *Storage) DisplayName(ctx context.Context, id model.PlayerID) (string, error) {
	name, err := s.client.HGet(ctx, usersKey(), string(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrUserNotFound
		}
		return "", err
	}
	return name, nil
}
