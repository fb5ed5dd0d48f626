package leaderboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/render"
)

// Render builds the leaderboard reply for a parsed query
func (s *Service) Render(ctx context.Context, f Filters, page int) (*render.Message, error) {
	var sb strings.Builder

	switch f.Game {
	case model.KindTicTacToe, model.KindUltimateTicTacToe:
		standings, more, err := s.MatchStandings(ctx, f.Game, page)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&sb, "`%s Leaderboard`\n", matchTitle(f.Game))
		if len(standings) == 0 {
			sb.WriteString("No results recorded yet.")
			break
		}
		for i, entry := range standings {
			fmt.Fprintf(&sb, "#%d: %s (%s)\nWins: %d | Rating: %d\n",
				page*s.pageSize+i+1, entry.Name, entry.PlayerID, entry.Wins, entry.Rating)
		}
		if more {
			sb.WriteString("More results available.")
		}
	case model.KindSlidingPuzzle:
		standings, more, err := s.PuzzleStandings(ctx, f, page)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&sb, "`Sliding Puzzle %s Leaderboard`\n", SizeName(f.Size))
		if len(standings) == 0 {
			sb.WriteString("No results recorded yet.")
			break
		}
		for i, entry := range standings {
			fmt.Fprintf(&sb, "#%d: %s (%s)\nScore: %d | Time: %s\n",
				page*s.pageSize+i+1, entry.Name, entry.PlayerID, entry.Moves, render.FormatDuration(entry.Duration))
		}
		if more {
			sb.WriteString("More results available.")
		}
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownGame, f.Game)
	}

	return render.Ephemeral(strings.TrimRight(sb.String(), "\n")), nil
}

func matchTitle(kind model.GameKind) string {
	if kind == model.KindUltimateTicTacToe {
		return "Ultimate Tic Tac Toe"
	}
	return "Tic Tac Toe"
}
