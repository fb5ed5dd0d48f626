// Package leaderboard aggregates stored results into ranked standings.
package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/services/identity"
	"github.com/pocketarcade/pocketarcade/internal/storage"
)

// Rating points per recorded match row. Ties are never recorded, so
// every row contributes one of the two.
const (
	pointsPerWin  = 17
	pointsPerLoss = -13
)

// MatchStanding is one ranked row of a versus-game leaderboard
type MatchStanding struct {
	PlayerID model.PlayerID `json:"player_id"`
	Name     string         `json:"name"`
	Wins     int            `json:"wins"`
	Losses   int            `json:"losses"`
	Rating   int            `json:"rating"`
}

// PuzzleStanding is one ranked row of a sliding-puzzle leaderboard,
// the player's single best completion for the queried bucket
type PuzzleStanding struct {
	PlayerID  model.PlayerID `json:"player_id"`
	Name      string         `json:"name"`
	Moves     int            `json:"moves"`
	Duration  time.Duration  `json:"duration"`
	CreatedAt time.Time      `json:"created_at"`
}

// Service builds standings from the result store
type Service struct {
	store    storage.Store
	resolver identity.Resolver
	pageSize int
}

// New creates a leaderboard service. pageSize bounds every returned page.
func New(store storage.Store, resolver identity.Resolver, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Service{
		store:    store,
		resolver: resolver,
		pageSize: pageSize,
	}
}

// PageSize reports the page bound used for every standings query
func (s *Service) PageSize() int {
	return s.pageSize
}

// MatchStandings aggregates per-row match results into per-player
// win/loss tallies, rated and sorted best first
func (s *Service) MatchStandings(ctx context.Context, kind model.GameKind, page int) ([]MatchStanding, bool, error) {
	records, err := s.store.MatchRecords(ctx, kind)
	if err != nil {
		return nil, false, fmt.Errorf("loading match records: %w", err)
	}

	tallies := make(map[model.PlayerID]*MatchStanding)
	order := make([]model.PlayerID, 0, len(records))
	for _, rec := range records {
		standing, ok := tallies[rec.PlayerID]
		if !ok {
			standing = &MatchStanding{PlayerID: rec.PlayerID}
			tallies[rec.PlayerID] = standing
			order = append(order, rec.PlayerID)
		}
		if rec.Won {
			standing.Wins++
		} else {
			standing.Losses++
		}
	}

	standings := make([]MatchStanding, 0, len(order))
	for _, id := range order {
		standing := *tallies[id]
		standing.Rating = standing.Wins*pointsPerWin + standing.Losses*pointsPerLoss
		standing.Name = s.resolver.Resolve(ctx, standing.PlayerID)
		standings = append(standings, standing)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.PlayerID < b.PlayerID
	})

	return s.pageMatch(standings, page)
}

// PuzzleStandings returns each player's single best completion for the
// queried size and difficulty, ordered by the requested sort
func (s *Service) PuzzleStandings(ctx context.Context, f Filters, page int) ([]PuzzleStanding, bool, error) {
	records, err := s.store.PuzzleRecords(ctx, f.Size, f.Difficulty)
	if err != nil {
		return nil, false, fmt.Errorf("loading puzzle records: %w", err)
	}

	// One entry per player. The best completion is fixed as lowest
	// score, then lowest time, then earliest, independent of the
	// requested sort.
	best := make(map[model.PlayerID]PuzzleStanding)
	order := make([]model.PlayerID, 0, len(records))
	for _, rec := range records {
		candidate := PuzzleStanding{
			PlayerID:  rec.PlayerID,
			Moves:     rec.Moves,
			Duration:  rec.Duration,
			CreatedAt: rec.CreatedAt,
		}
		current, ok := best[rec.PlayerID]
		if !ok {
			best[rec.PlayerID] = candidate
			order = append(order, rec.PlayerID)
			continue
		}
		if puzzleLess(candidate, current, SortByScore) {
			best[rec.PlayerID] = candidate
		}
	}

	standings := make([]PuzzleStanding, 0, len(order))
	for _, id := range order {
		standing := best[id]
		standing.Name = s.resolver.Resolve(ctx, id)
		standings = append(standings, standing)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return puzzleLess(standings[i], standings[j], f.Sort)
	})

	return s.pagePuzzle(standings, page)
}

// puzzleLess orders completions for a sort mode: the chosen key first,
// the other key as tiebreak, oldest completion last resort
func puzzleLess(a, b PuzzleStanding, sortBy SortBy) bool {
	primaryA, primaryB := a.Moves, b.Moves
	secondaryA, secondaryB := a.Duration, b.Duration
	if sortBy == SortByTime {
		primaryA, primaryB = int(a.Duration), int(b.Duration)
		secondaryA, secondaryB = time.Duration(a.Moves), time.Duration(b.Moves)
	}
	if primaryA != primaryB {
		return primaryA < primaryB
	}
	if secondaryA != secondaryB {
		return secondaryA < secondaryB
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func (s *Service) pageMatch(standings []MatchStanding, page int) ([]MatchStanding, bool, error) {
	if page < 0 {
		return nil, false, fmt.Errorf("%w: negative page", model.ErrBadFilter)
	}
	start := page * s.pageSize
	if start >= len(standings) {
		return []MatchStanding{}, false, nil
	}
	standings = standings[start:]
	more := len(standings) > s.pageSize
	if more {
		standings = standings[:s.pageSize]
	}
	return standings, more, nil
}

func (s *Service) pagePuzzle(standings []PuzzleStanding, page int) ([]PuzzleStanding, bool, error) {
	if page < 0 {
		return nil, false, fmt.Errorf("%w: negative page", model.ErrBadFilter)
	}
	start := page * s.pageSize
	if start >= len(standings) {
		return []PuzzleStanding{}, false, nil
	}
	standings = standings[start:]
	more := len(standings) > s.pageSize
	if more {
		standings = standings[:s.pageSize]
	}
	return standings, more, nil
}
