package leaderboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pocketarcade/pocketarcade/internal/command"
	"github.com/pocketarcade/pocketarcade/internal/model"
)

// SortBy selects the primary ordering of puzzle standings
type SortBy string

const (
	SortByScore SortBy = "score"
	SortByTime  SortBy = "time"
)

// Filters is a parsed leaderboard query. Game is always set; the puzzle
// fields are meaningful only when Game is the sliding puzzle.
type Filters struct {
	Game       model.GameKind
	Size       int
	Difficulty model.Difficulty
	Sort       SortBy
}

// ParseFilters walks the leaderboard command's option tree. The tree is
// fixed at two levels below the game: a versus game is a bare
// subcommand, while the sliding puzzle nests a size subcommand carrying
// optional sort and difficulty leaves. Anything outside that shape is
// ErrBadFilter; the descent never recurses past the known depth.
func ParseFilters(opts []command.Option) (Filters, error) {
	if len(opts) != 1 {
		return Filters{}, fmt.Errorf("%w: expected one game selection, got %d", model.ErrBadFilter, len(opts))
	}
	return parseGame(opts[0])
}

func parseGame(opt command.Option) (Filters, error) {
	switch model.GameKind(opt.Name) {
	case model.KindTicTacToe, model.KindUltimateTicTacToe:
		if len(opt.Options) != 0 {
			return Filters{}, fmt.Errorf("%w: %s takes no sub-options", model.ErrBadFilter, opt.Name)
		}
		return Filters{Game: model.GameKind(opt.Name)}, nil
	case model.KindSlidingPuzzle:
		if len(opt.Options) != 1 {
			return Filters{}, fmt.Errorf("%w: expected one puzzle size selection", model.ErrBadFilter)
		}
		return parsePuzzleSize(opt.Options[0])
	default:
		return Filters{}, fmt.Errorf("%w: unknown game %q", model.ErrBadFilter, opt.Name)
	}
}

func parsePuzzleSize(opt command.Option) (Filters, error) {
	size, err := sizeFromName(opt.Name)
	if err != nil {
		return Filters{}, err
	}

	f := Filters{
		Game:       model.KindSlidingPuzzle,
		Size:       size,
		Difficulty: model.DifficultyEasy,
		Sort:       SortByScore,
	}

	for _, leaf := range opt.Options {
		switch leaf.Name {
		case "sort":
			switch SortBy(leaf.Value) {
			case SortByScore, SortByTime:
				f.Sort = SortBy(leaf.Value)
			default:
				return Filters{}, fmt.Errorf("%w: unknown sort %q", model.ErrBadFilter, leaf.Value)
			}
		case "difficulty":
			difficulty, err := model.ParseDifficulty(leaf.Value)
			if err != nil {
				return Filters{}, err
			}
			f.Difficulty = difficulty
		default:
			return Filters{}, fmt.Errorf("%w: unknown option %q", model.ErrBadFilter, leaf.Name)
		}
	}

	return f, nil
}

// sizeFromName turns a "3x3" style subcommand name back into a board size
func sizeFromName(name string) (int, error) {
	side, rest, found := strings.Cut(name, "x")
	if !found || side != rest {
		return 0, fmt.Errorf("%w: unknown puzzle size %q", model.ErrBadFilter, name)
	}
	size, err := strconv.Atoi(side)
	if err != nil || !model.ValidPuzzleSize(size) {
		return 0, fmt.Errorf("%w: unknown puzzle size %q", model.ErrBadFilter, name)
	}
	return size, nil
}

// SizeName renders a board size as the subcommand name it registers under
func SizeName(size int) string {
	return fmt.Sprintf("%dx%d", size, size)
}
