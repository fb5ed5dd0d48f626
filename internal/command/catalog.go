package command

import (
	"fmt"

	"github.com/pocketarcade/pocketarcade/internal/model"
)

// Catalog returns the commands this service registers, one per game
// plus the leaderboard query command
func Catalog() []Info {
	return []Info{
		{
			Name:        string(model.KindTicTacToe),
			Description: "Challenge another player to tic-tac-toe",
			Options: []OptionSpec{
				{Name: "opponent", Description: "Player to challenge", Required: true},
			},
		},
		{
			Name:        string(model.KindUltimateTicTacToe),
			Description: "Challenge another player to ultimate tic-tac-toe",
			Options: []OptionSpec{
				{Name: "opponent", Description: "Player to challenge", Required: true},
			},
		},
		{
			Name:        string(model.KindSlidingPuzzle),
			Description: "Start a sliding puzzle",
		},
		{
			Name:        "leaderboard",
			Description: "Show standings",
			Options: []OptionSpec{
				{
					Name:        string(model.KindSlidingPuzzle),
					Description: "Sliding puzzle leaderboards",
					Options:     puzzleSizeSpecs(),
				},
				{Name: string(model.KindTicTacToe), Description: "Tic-tac-toe leaderboard"},
				{Name: string(model.KindUltimateTicTacToe), Description: "Ultimate tic-tac-toe leaderboard"},
			},
		},
	}
}

// puzzleSizeSpecs builds one size subcommand per puzzle size, each with
// optional sort and difficulty leaves
func puzzleSizeSpecs() []OptionSpec {
	difficulties := model.Difficulties()
	choices := make([]string, 0, len(difficulties))
	for _, d := range difficulties {
		choices = append(choices, string(d))
	}

	specs := make([]OptionSpec, 0, len(model.PuzzleSizes()))
	for _, size := range model.PuzzleSizes() {
		name := fmt.Sprintf("%dx%d", size, size)
		specs = append(specs, OptionSpec{
			Name:        name,
			Description: fmt.Sprintf("%s sliding puzzle leaderboard", name),
			Options: []OptionSpec{
				{Name: "sort", Description: "Order standings by score or time", Choices: []string{"score", "time"}},
				{Name: "difficulty", Description: "Difficulty to rank", Choices: choices},
			},
		})
	}
	return specs
}

// ByName looks a registered command up by its name
func ByName(name string) (Info, bool) {
	for _, info := range Catalog() {
		if info.Name == name {
			return info, true
		}
	}
	return Info{}, false
}
