package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Message:
		o.printMessage(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		o.printJSON(data)
	}
}

// Control mirrors one interactive element of an API message
type Control struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Style    string `json:"style"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Message mirrors the API's rendered message response
type Message struct {
	MessageID string      `json:"message_id"`
	Content   string      `json:"content"`
	Controls  [][]Control `json:"controls,omitempty"`
	Ephemeral bool        `json:"ephemeral,omitempty"`
}

// MatchStanding mirrors one versus-game leaderboard row
type MatchStanding struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Rating   int    `json:"rating"`
}

// PuzzleStanding mirrors one puzzle leaderboard row
type PuzzleStanding struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Moves    int    `json:"moves"`
	Duration string `json:"duration"`
}

// Leaderboard mirrors the standings response
type Leaderboard struct {
	Game            string           `json:"game"`
	MatchStandings  []MatchStanding  `json:"match_standings,omitempty"`
	PuzzleStandings []PuzzleStanding `json:"puzzle_standings,omitempty"`
	More            bool             `json:"more"`
}

// HealthResult mirrors the health response
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printMessage(msg Message) {
	fmt.Println(msg.Content)

	for _, row := range msg.Controls {
		var cells []string
		for _, control := range row {
			cell := fmt.Sprintf("[%s] %s", control.ID, control.Label)
			if control.Disabled {
				cell += " (disabled)"
			}
			cells = append(cells, cell)
		}
		fmt.Println(strings.Join(cells, "  "))
	}

	if len(msg.Controls) > 0 {
		fmt.Println("\nActivate a control with: pocketarcade act <control-id>")
	}
}

func (o *Output) printLeaderboard(board Leaderboard) {
	for _, row := range board.MatchStandings {
		fmt.Printf("#%d: %s (%s)  Wins: %d  Losses: %d  Rating: %d\n",
			row.Rank, row.Name, row.PlayerID, row.Wins, row.Losses, row.Rating)
	}
	for _, row := range board.PuzzleStandings {
		fmt.Printf("#%d: %s (%s)  Moves: %d  Time: %s\n",
			row.Rank, row.Name, row.PlayerID, row.Moves, row.Duration)
	}
	if len(board.MatchStandings) == 0 && len(board.PuzzleStandings) == 0 {
		fmt.Println("No results recorded yet.")
	}
	if board.More {
		fmt.Println("More results available; pass --page to see them.")
	}
}
