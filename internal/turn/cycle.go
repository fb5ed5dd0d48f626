// Package turn implements the round-robin player rotation shared by the
// multiplayer games.
package turn

import (
	"github.com/pocketarcade/pocketarcade/internal/dependencies/random"
	"github.com/pocketarcade/pocketarcade/internal/model"
)

// Cycle is a fixed-membership player rotation with a current-player
// cursor. The order is randomized exactly once at construction, which is
// the only randomness point deciding who plays first; after that the
// sequence never changes. Fields are exported so the cycle serializes
// inside the state token.
type Cycle struct {
	Players []model.Player `msgpack:"players" json:"players"`
	Index   int            `msgpack:"index" json:"index"`
}

// NewCycle builds a cycle over the given players in a shuffled order.
// An empty player list is rejected here so Current and Advance never
// have to handle an empty cycle built through this constructor.
func NewCycle(players []model.Player, rng random.Random) (*Cycle, error) {
	if len(players) == 0 {
		return nil, model.ErrNoPlayers
	}
	shuffled := make([]model.Player, len(players))
	copy(shuffled, players)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return &Cycle{Players: shuffled}, nil
}

// Current returns the player whose turn it is. The ok result is false
// only for cycles decoded from forged or corrupt tokens; constructed
// cycles always have a current player.
func (c *Cycle) Current() (model.Player, bool) {
	if len(c.Players) == 0 || c.Index < 0 || c.Index >= len(c.Players) {
		return model.Player{}, false
	}
	return c.Players[c.Index], true
}

// Advance moves the cursor to the next player, wrapping around. It is a
// no-op on an empty cycle.
func (c *Cycle) Advance() {
	if len(c.Players) == 0 {
		return
	}
	c.Index = (c.Index + 1) % len(c.Players)
}

// All returns the players in their fixed rotation order
func (c *Cycle) All() []model.Player {
	return c.Players
}

// FindByPiece returns the player holding the given piece. The soft
// failure mode covers inconsistent decoded state where a winning mark
// has no owner.
func (c *Cycle) FindByPiece(piece model.Piece) (model.Player, bool) {
	for _, p := range c.Players {
		if p.Piece == piece {
			return p, true
		}
	}
	return model.Player{}, false
}

// Contains reports whether the given identity is part of the cycle
func (c *Cycle) Contains(id model.PlayerID) bool {
	for _, p := range c.Players {
		if p.ID == id {
			return true
		}
	}
	return false
}
