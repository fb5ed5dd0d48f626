package model

// PlayerID is the opaque, platform-assigned identity of a player
type PlayerID string

// Mention renders the player id as a chat mention
func (id PlayerID) Mention() string {
	return "@" + string(id)
}

// Piece is the marker a player owns on a board
type Piece string

const (
	PieceNone Piece = ""
	PieceX    Piece = "X"
	PieceO    Piece = "O"
)

// String returns the display form of the piece
func (p Piece) String() string {
	if p == PieceNone {
		return "."
	}
	return string(p)
}

// Player binds a platform identity to an assigned piece.
// Players are immutable once a game starts; everything needed to
// validate ownership travels inside the game state itself.
type Player struct {
	ID    PlayerID `msgpack:"id" json:"id"`
	Piece Piece    `msgpack:"piece" json:"piece"`
}
