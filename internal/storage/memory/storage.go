// Package memory provides an in-memory Store for tests and for running
// without external infrastructure. Contents are lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/pocketarcade/pocketarcade/internal/dependencies/clock"
	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/storage"
)

type puzzleBucket struct {
	size       int
	difficulty model.Difficulty
}

type Storage struct {
	mu      sync.RWMutex
	clock   clock.Clock
	matches map[model.GameKind][]storage.MatchRecord
	puzzles map[puzzleBucket][]storage.PuzzleRecord
	users   map[model.PlayerID]string
}

func New(clk clock.Clock) *Storage {
	return &Storage{
		clock:   clk,
		matches: make(map[model.GameKind][]storage.MatchRecord),
		puzzles: make(map[puzzleBucket][]storage.PuzzleRecord),
		users:   make(map[model.PlayerID]string),
	}
}

func (s *Storage) RecordFinishedMatch(_ context.Context, kind model.GameKind, participants []storage.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for _, p := range participants {
		s.users[p.ID] = p.Name
		s.matches[kind] = append(s.matches[kind], storage.MatchRecord{
			Kind:      kind,
			PlayerID:  p.ID,
			Won:       p.Won,
			CreatedAt: now,
		})
	}
	return nil
}

func (s *Storage) RecordFinishedPuzzle(_ context.Context, score storage.PuzzleScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[score.PlayerID] = score.Name
	bucket := puzzleBucket{size: score.Size, difficulty: score.Difficulty}
	s.puzzles[bucket] = append(s.puzzles[bucket], storage.PuzzleRecord{
		PlayerID:   score.PlayerID,
		Size:       score.Size,
		Difficulty: score.Difficulty,
		Moves:      score.Moves,
		Duration:   score.Duration,
		CreatedAt:  s.clock.Now(),
	})
	return nil
}

func (s *Storage) MatchRecords(_ context.Context, kind model.GameKind) ([]storage.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]storage.MatchRecord, len(s.matches[kind]))
	copy(records, s.matches[kind])
	return records, nil
}

func (s *Storage) PuzzleRecords(_ context.Context, size int, difficulty model.Difficulty) ([]storage.PuzzleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := puzzleBucket{size: size, difficulty: difficulty}
	records := make([]storage.PuzzleRecord, len(s.puzzles[bucket]))
	copy(records, s.puzzles[bucket])
	return records, nil
}

func (s *Storage) DisplayName(_ context.Context, id model.PlayerID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.users[id]
	if !ok {
		return "", model.ErrUserNotFound
	}
	return name, nil
}

func (s *Storage) Close() error {
	return nil
}
