package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/pocketarcade/pocketarcade/internal/render"
	"github.com/pocketarcade/pocketarcade/internal/services/leaderboard"
)

// Message is a rendered interaction reply. MessageID is minted by the
// gateway so callers can reference the message in later interactions.
type Message struct {
	MessageID string             `json:"message_id"`
	Content   string             `json:"content"`
	Controls  [][]render.Control `json:"controls,omitempty"`
	Ephemeral bool               `json:"ephemeral,omitempty"`
}

// MessageFromRender converts a rendered message into an API response
func MessageFromRender(msg *render.Message) Message {
	return Message{
		MessageID: uuid.NewString(),
		Content:   msg.Content,
		Controls:  msg.Controls,
		Ephemeral: msg.Ephemeral,
	}
}

// MatchStanding is one ranked row of a versus-game leaderboard
type MatchStanding struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Rating   int    `json:"rating"`
}

// PuzzleStanding is one ranked row of a sliding-puzzle leaderboard
type PuzzleStanding struct {
	Rank      int       `json:"rank"`
	PlayerID  string    `json:"player_id"`
	Name      string    `json:"name"`
	Moves     int       `json:"moves"`
	Duration  string    `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
}

// Leaderboard is the standings response for one game. Exactly one of
// the standings slices is populated.
type Leaderboard struct {
	Game            string           `json:"game"`
	MatchStandings  []MatchStanding  `json:"match_standings,omitempty"`
	PuzzleStandings []PuzzleStanding `json:"puzzle_standings,omitempty"`
	More            bool             `json:"more"`
}

// MatchLeaderboard builds a Leaderboard response from match standings
func MatchLeaderboard(game string, standings []leaderboard.MatchStanding, page, pageSize int, more bool) Leaderboard {
	rows := make([]MatchStanding, 0, len(standings))
	for i, s := range standings {
		rows = append(rows, MatchStanding{
			Rank:     page*pageSize + i + 1,
			PlayerID: string(s.PlayerID),
			Name:     s.Name,
			Wins:     s.Wins,
			Losses:   s.Losses,
			Rating:   s.Rating,
		})
	}
	return Leaderboard{Game: game, MatchStandings: rows, More: more}
}

// PuzzleLeaderboard builds a Leaderboard response from puzzle standings
func PuzzleLeaderboard(game string, standings []leaderboard.PuzzleStanding, page, pageSize int, more bool) Leaderboard {
	rows := make([]PuzzleStanding, 0, len(standings))
	for i, s := range standings {
		rows = append(rows, PuzzleStanding{
			Rank:      page*pageSize + i + 1,
			PlayerID:  string(s.PlayerID),
			Name:      s.Name,
			Moves:     s.Moves,
			Duration:  render.FormatDuration(s.Duration),
			CreatedAt: s.CreatedAt,
		})
	}
	return Leaderboard{Game: game, PuzzleStandings: rows, More: more}
}
