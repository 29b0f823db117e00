package redis

import (
	"fmt"

	"github.com/perkycoffee/perkyjump/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "perkyjump"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, id)
}

// resultsKey returns the Redis key for a player's game-result list
func resultsKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:results:%d", keyPrefix, id)
}

// rankedIndexKey returns the Redis key for the SET of players with games played
func rankedIndexKey() string {
	return fmt.Sprintf("%s:idx:ranked", keyPrefix)
}

// skinKey returns the Redis key for a catalog Skin
func skinKey(id model.SkinID) string {
	return fmt.Sprintf("%s:skin:%s", keyPrefix, id)
}

// skinIndexKey returns the Redis key for the SET of catalog skin ids
func skinIndexKey() string {
	return fmt.Sprintf("%s:idx:skins", keyPrefix)
}

// ownershipKey returns the Redis key for the SET of skins a player owns
func ownershipKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:owned:%d", keyPrefix, id)
}
