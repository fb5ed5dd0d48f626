package model

// GameKind identifies one of the built-in games. The set is closed:
// dispatch is a switch over these values, not an open registry.
type GameKind string

const (
	KindTicTacToe         GameKind = "tictactoe"
	KindUltimateTicTacToe GameKind = "ultimatetictactoe"
	KindSlidingPuzzle     GameKind = "slidingpuzzle"
)

// Kinds returns all known game kinds in registration order
func Kinds() []GameKind {
	return []GameKind{KindTicTacToe, KindUltimateTicTacToe, KindSlidingPuzzle}
}

// Phase is the lifecycle state of a game
type Phase string

const (
	PhaseAwaitingApproval Phase = "awaiting_approval"
	PhaseInProgress       Phase = "in_progress"
	PhaseFinished         Phase = "finished"
	PhaseCancelled        Phase = "cancelled"
)

// Terminal reports whether no further actions are accepted in this phase
func (p Phase) Terminal() bool {
	return p == PhaseFinished || p == PhaseCancelled
}

// Outcome is the terminal result of a multiplayer game.
// A nil Winner means the game was tied.
type Outcome struct {
	Winner *Player `msgpack:"winner" json:"winner"`
}

// Win builds a decisive outcome for the given player
func Win(p Player) *Outcome {
	return &Outcome{Winner: &p}
}

// Tie builds a drawn outcome
func Tie() *Outcome {
	return &Outcome{}
}

// IsTie reports whether the outcome is a draw
func (o *Outcome) IsTie() bool {
	return o.Winner == nil
}
