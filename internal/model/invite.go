package model

// Invite records a pending challenge awaiting the invitee's approval.
// It stays in the game state after acceptance so the original pairing
// remains visible in the token.
type Invite struct {
	Challenger PlayerID `msgpack:"challenger" json:"challenger"`
	Invitee    PlayerID `msgpack:"invitee" json:"invitee"`
}
