package memory

import (
	"context"
	"sync"

	"github.com/perkycoffee/perkyjump/internal/model"
	"github.com/perkycoffee/perkyjump/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players   map[model.PlayerID]*model.Player
	results   map[model.PlayerID][]*model.GameResult
	skins     map[model.SkinID]*model.Skin
	ownership map[ownershipKey]struct{}
}

type ownershipKey struct {
	playerID model.PlayerID
	skinID   model.SkinID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:   make(map[model.PlayerID]*model.Player),
		results:   make(map[model.PlayerID][]*model.GameResult),
		skins:     make(map[model.SkinID]*model.Skin),
		ownership: make(map[ownershipKey]struct{}),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = copyPlayer(player)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return copyPlayer(player), nil
}

// Game result operations

func (s *Storage) SaveGameResult(ctx context.Context, result *model.GameResult, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[player.ID]; !ok {
		return model.ErrPlayerNotFound
	}
	r := *result
	s.results[result.PlayerID] = append(s.results[result.PlayerID], &r)
	s.players[player.ID] = copyPlayer(player)
	return nil
}

func (s *Storage) ListGameResults(ctx context.Context, id model.PlayerID) ([]*model.GameResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]*model.GameResult, 0, len(s.results[id]))
	for _, r := range s.results[id] {
		c := *r
		results = append(results, &c)
	}
	return results, nil
}

func (s *Storage) ListRankedPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var players []*model.Player
	for _, p := range s.players {
		if p.GamesPlayed > 0 {
			players = append(players, copyPlayer(p))
		}
	}
	return players, nil
}

// Skin catalog operations

func (s *Storage) SaveSkin(ctx context.Context, skin *model.Skin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *skin
	s.skins[skin.ID] = &c
	return nil
}

func (s *Storage) GetSkin(ctx context.Context, id model.SkinID) (*model.Skin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	skin, ok := s.skins[id]
	if !ok {
		return nil, model.ErrSkinNotFound
	}
	c := *skin
	return &c, nil
}

func (s *Storage) ListSkins(ctx context.Context) ([]*model.Skin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	skins := make([]*model.Skin, 0, len(s.skins))
	for _, skin := range s.skins {
		c := *skin
		skins = append(skins, &c)
	}
	return skins, nil
}

// Ownership operations

func (s *Storage) GrantSkin(ctx context.Context, playerID model.PlayerID, skinID model.SkinID, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[playerID]; !ok {
		return model.ErrPlayerNotFound
	}
	s.ownership[ownershipKey{playerID: playerID, skinID: skinID}] = struct{}{}
	s.players[player.ID] = copyPlayer(player)
	return nil
}

func (s *Storage) HasSkin(ctx context.Context, playerID model.PlayerID, skinID model.SkinID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ownership[ownershipKey{playerID: playerID, skinID: skinID}]
	return ok, nil
}

func (s *Storage) ListOwnedSkins(ctx context.Context, playerID model.PlayerID) ([]model.SkinID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var owned []model.SkinID
	for key := range s.ownership {
		if key.playerID == playerID {
			owned = append(owned, key.skinID)
		}
	}
	return owned, nil
}

// copyPlayer returns a detached copy so callers never alias stored state
func copyPlayer(p *model.Player) *model.Player {
	c := *p
	return &c
}
