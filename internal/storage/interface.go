package storage

import (
	"context"

	"github.com/perkycoffee/perkyjump/internal/model"
)

// Storage defines the interface for data persistence.
//
// The two composite writes (SaveGameResult, GrantSkin) carry the already-updated
// player snapshot alongside the new row so each backend can apply both as a
// single atomic unit; a failure must leave neither applied.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// Game result operations
	SaveGameResult(ctx context.Context, result *model.GameResult, player *model.Player) error
	ListGameResults(ctx context.Context, id model.PlayerID) ([]*model.GameResult, error)

	// ListRankedPlayers returns every player with at least one recorded game,
	// in no particular order. Ranking is the ledger's job.
	ListRankedPlayers(ctx context.Context) ([]*model.Player, error)

	// Skin catalog operations
	SaveSkin(ctx context.Context, skin *model.Skin) error
	GetSkin(ctx context.Context, id model.SkinID) (*model.Skin, error)
	ListSkins(ctx context.Context) ([]*model.Skin, error)

	// Ownership operations. The default skin never has an ownership record.
	GrantSkin(ctx context.Context, playerID model.PlayerID, skinID model.SkinID, player *model.Player) error
	HasSkin(ctx context.Context, playerID model.PlayerID, skinID model.SkinID) (bool, error)
	ListOwnedSkins(ctx context.Context, playerID model.PlayerID) ([]model.SkinID, error)
}
