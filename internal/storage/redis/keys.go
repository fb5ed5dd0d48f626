package redis

import (
	"fmt"

	"github.com/pocketarcade/pocketarcade/internal/model"
)

// Key prefix for all result data
const keyPrefix = "pocketarcade"

// matchesKey returns the Redis key for the LIST of match rows of a game kind
func matchesKey(kind model.GameKind) string {
	return fmt.Sprintf("%s:matches:%s", keyPrefix, kind)
}

// puzzlesKey returns the Redis key for the LIST of puzzle completions in a
// size/difficulty bucket
func puzzlesKey(size int, difficulty model.Difficulty) string {
	return fmt.Sprintf("%s:puzzles:%d:%s", keyPrefix, size, difficulty)
}

// usersKey returns the Redis key for the player_id -> display name HASH
func usersKey() string {
	return fmt.Sprintf("%s:users", keyPrefix)
}
