package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/pocketarcade/pocketarcade/internal/dependencies/mocks"
	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	clock   *mocks.MockClock
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.storage = NewWithClient(client, s.clock)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestRecordAndListMatches() {
	err := s.storage.RecordFinishedMatch(s.ctx, model.KindTicTacToe, []storage.Participant{
		{ID: "player-1", Name: "Alice", Won: true},
		{ID: "player-2", Name: "Bob", Won: false},
	})
	s.Require().NoError(err)

	records, err := s.storage.MatchRecords(s.ctx, model.KindTicTacToe)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(model.PlayerID("player-1"), records[0].PlayerID)
	s.True(records[0].Won)
	s.Equal(model.PlayerID("player-2"), records[1].PlayerID)
	s.False(records[1].Won)
	s.Equal(s.clock.Now(), records[0].CreatedAt.UTC())
}

func (s *StorageSuite) TestMatchRecordsKeyedByKind() {
	err := s.storage.RecordFinishedMatch(s.ctx, model.KindTicTacToe, []storage.Participant{
		{ID: "player-1", Name: "Alice", Won: true},
	})
	s.Require().NoError(err)

	records, err := s.storage.MatchRecords(s.ctx, model.KindUltimateTicTacToe)
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *StorageSuite) TestRecordAndListPuzzles() {
	err := s.storage.RecordFinishedPuzzle(s.ctx, storage.PuzzleScore{
		PlayerID:   "player-1",
		Name:       "Alice",
		Size:       4,
		Difficulty: model.DifficultyMedium,
		Moves:      120,
		Duration:   3 * time.Minute,
	})
	s.Require().NoError(err)

	records, err := s.storage.PuzzleRecords(s.ctx, 4, model.DifficultyMedium)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(model.PlayerID("player-1"), records[0].PlayerID)
	s.Equal(120, records[0].Moves)
	s.Equal(3*time.Minute, records[0].Duration)

	// Different bucket stays empty
	other, err := s.storage.PuzzleRecords(s.ctx, 4, model.DifficultyHard)
	s.Require().NoError(err)
	s.Empty(other)
}

func (s *StorageSuite) TestDisplayNameUpserted() {
	err := s.storage.RecordFinishedMatch(s.ctx, model.KindTicTacToe, []storage.Participant{
		{ID: "player-1", Name: "Alice", Won: true},
		{ID: "player-2", Name: "Bob", Won: false},
	})
	s.Require().NoError(err)

	name, err := s.storage.DisplayName(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("Alice", name)

	// Later result overwrites the stored name
	err = s.storage.RecordFinishedMatch(s.ctx, model.KindTicTacToe, []storage.Participant{
		{ID: "player-1", Name: "Alice the Great", Won: false},
		{ID: "player-2", Name: "Bob", Won: true},
	})
	s.Require().NoError(err)

	name, err = s.storage.DisplayName(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("Alice the Great", name)
}

func (s *StorageSuite) TestDisplayNameNotFound() {
	_, err := s.storage.DisplayName(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}
