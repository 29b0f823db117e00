package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/perkycoffee/perkyjump/internal/dependencies/clock"
	"github.com/perkycoffee/perkyjump/internal/model"
	"github.com/perkycoffee/perkyjump/internal/storage"
)

// DefaultLeaderboardLimit is the number of entries callers request when no
// explicit limit is given
const DefaultLeaderboardLimit = 10

// Config holds configuration for the ledger service
type Config struct {
	// OpTimeout bounds each storage round-trip
	OpTimeout time.Duration
}

// DefaultConfig returns sensible defaults for the ledger
func DefaultConfig() Config {
	return Config{
		OpTimeout: 5 * time.Second,
	}
}

// Service is the single authority for player statistics, game history and the
// skin economy. Mutations for the same player are serialized; operations on
// different players run concurrently.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	cfg     Config

	locks       playerLocks
	defaultSkin model.SkinID
}

// New creates a new ledger service
func New(store storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.OpTimeout == 0 {
		cfg = DefaultConfig()
	}
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
		cfg:     cfg,
	}
}

// SeedCatalog writes the skin catalog to storage. It is idempotent and safe to
// run on every startup. Exactly one skin must be flagged as the default.
func (s *Service) SeedCatalog(ctx context.Context, skins []model.Skin) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var defaultID model.SkinID
	for _, skin := range skins {
		if skin.IsDefault {
			if defaultID != "" {
				return fmt.Errorf("%w: multiple default skins in catalog", model.ErrInvalidInput)
			}
			defaultID = skin.ID
		}
	}
	if defaultID == "" {
		return fmt.Errorf("%w: catalog has no default skin", model.ErrInvalidInput)
	}

	for _, skin := range skins {
		skin := skin
		if err := s.storage.SaveSkin(ctx, &skin); err != nil {
			return err
		}
	}

	s.defaultSkin = defaultID
	return nil
}

// SyncPlayer creates the player record if absent, otherwise refreshes the
// display name. Idempotent.
func (s *Service) SyncPlayer(ctx context.Context, id model.PlayerID, displayName string) (*model.Player, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	unlock := s.locks.lock(int64(id))
	defer unlock()

	player, err := s.storage.GetPlayer(ctx, id)
	switch {
	case err == nil:
		if displayName != "" && displayName != player.DisplayName {
			player.DisplayName = displayName
			if err := s.storage.SavePlayer(ctx, player); err != nil {
				return nil, err
			}
		}
		return player, nil

	case errors.Is(err, model.ErrPlayerNotFound):
		if s.defaultSkin == "" {
			return nil, fmt.Errorf("skin catalog not seeded")
		}
		player = &model.Player{
			ID:           id,
			DisplayName:  displayName,
			ActiveSkinID: s.defaultSkin,
			CreatedAt:    s.clock.Now().UTC(),
		}
		if err := s.storage.SavePlayer(ctx, player); err != nil {
			return nil, err
		}
		s.logger.Info("player created", slog.Int64("player_id", int64(id)))
		return player, nil

	default:
		return nil, err
	}
}

// RecordGameResult appends the immutable game row and folds it into the
// player's running statistics as one atomic unit.
func (s *Service) RecordGameResult(ctx context.Context, id model.PlayerID, height, beans int) (*model.Player, error) {
	if height < 0 {
		return nil, fmt.Errorf("%w: height must be >= 0", model.ErrInvalidInput)
	}
	if beans < 0 {
		return nil, fmt.Errorf("%w: beans must be >= 0", model.ErrInvalidInput)
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	unlock := s.locks.lock(int64(id))
	defer unlock()

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	result := &model.GameResult{
		PlayerID: id,
		Height:   height,
		Beans:    beans,
		PlayedAt: now,
	}

	if height > player.MaxHeight {
		player.MaxHeight = height
	}
	player.TotalBeans += beans
	player.GamesPlayed++
	player.LastPlayedAt = now

	if err := s.storage.SaveGameResult(ctx, result, player); err != nil {
		return nil, err
	}

	s.logger.Info("game result recorded",
		slog.Int64("player_id", int64(id)),
		slog.Int("height", height),
		slog.Int("beans", beans),
	)
	return player, nil
}

// GetPlayerStats returns a consistent snapshot of the player's statistics
func (s *Service) GetPlayerStats(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	return s.storage.GetPlayer(ctx, id)
}

// GetLeaderboard returns up to limit players with at least one game, ranked by
// best height. Ties rank the earlier last-played time first, then the lower
// player id, so the ordering never depends on storage iteration order.
func (s *Service) GetLeaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be > 0", model.ErrInvalidInput)
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	players, err := s.storage.ListRankedPlayers(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.MaxHeight != b.MaxHeight {
			return a.MaxHeight > b.MaxHeight
		}
		if !a.LastPlayedAt.Equal(b.LastPlayedAt) {
			return a.LastPlayedAt.Before(b.LastPlayedAt)
		}
		return a.ID < b.ID
	})

	if len(players) > limit {
		players = players[:limit]
	}

	entries := make([]model.LeaderboardEntry, len(players))
	for i, p := range players {
		entries[i] = model.LeaderboardEntry{
			Rank:        i + 1,
			DisplayName: displayNameOf(p),
			MaxHeight:   p.MaxHeight,
			TotalBeans:  p.TotalBeans,
		}
	}
	return entries, nil
}

// ListSkins returns the full catalog annotated with the player's ownership and
// active selection. The default skin is always owned; exactly one entry is
// active. Ordered default-first, then by price, then by id.
func (s *Service) ListSkins(ctx context.Context, id model.PlayerID) ([]model.SkinStatus, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	skins, err := s.storage.ListSkins(ctx)
	if err != nil {
		return nil, err
	}

	ownedIDs, err := s.storage.ListOwnedSkins(ctx, id)
	if err != nil {
		return nil, err
	}
	owned := make(map[model.SkinID]bool, len(ownedIDs))
	for _, sid := range ownedIDs {
		owned[sid] = true
	}

	sort.Slice(skins, func(i, j int) bool {
		a, b := skins[i], skins[j]
		if a.IsDefault != b.IsDefault {
			return a.IsDefault
		}
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		return a.ID < b.ID
	})

	statuses := make([]model.SkinStatus, len(skins))
	for i, skin := range skins {
		statuses[i] = model.SkinStatus{
			Skin:   *skin,
			Owned:  skin.IsDefault || owned[skin.ID],
			Active: skin.ID == player.ActiveSkinID,
		}
	}
	return statuses, nil
}

// PurchaseSkin debits the player's beans and grants ownership atomically.
// Preconditions are checked in order; the first failure wins and leaves the
// balance untouched.
func (s *Service) PurchaseSkin(ctx context.Context, id model.PlayerID, skinID model.SkinID) (*model.Player, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	unlock := s.locks.lock(int64(id))
	defer unlock()

	skin, err := s.storage.GetSkin(ctx, skinID)
	if err != nil {
		return nil, err
	}
	if skin.IsDefault {
		return nil, model.ErrSkinNotPurchasable
	}

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	alreadyOwned, err := s.storage.HasSkin(ctx, id, skinID)
	if err != nil {
		return nil, err
	}
	if alreadyOwned {
		return nil, model.ErrSkinAlreadyOwned
	}

	if player.TotalBeans < skin.Price {
		return nil, model.ErrInsufficientBeans
	}

	player.TotalBeans -= skin.Price
	if err := s.storage.GrantSkin(ctx, id, skinID, player); err != nil {
		return nil, err
	}

	s.logger.Info("skin purchased",
		slog.Int64("player_id", int64(id)),
		slog.String("skin_id", string(skinID)),
		slog.Int("price", skin.Price),
	)
	return player, nil
}

// ActivateSkin makes the given skin the player's active one. The skin must be
// the default or owned. Idempotent if already active.
func (s *Service) ActivateSkin(ctx context.Context, id model.PlayerID, skinID model.SkinID) (*model.Player, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	unlock := s.locks.lock(int64(id))
	defer unlock()

	skin, err := s.storage.GetSkin(ctx, skinID)
	if err != nil {
		return nil, err
	}

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	if !skin.IsDefault {
		owned, err := s.storage.HasSkin(ctx, id, skinID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, model.ErrSkinNotOwned
		}
	}

	if player.ActiveSkinID == skinID {
		return player, nil
	}

	player.ActiveSkinID = skinID
	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *Service) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.OpTimeout)
}

// displayNameOf mirrors the leaderboard name fallback: display name when set,
// otherwise a generated "Player <id>" label
func displayNameOf(p *model.Player) string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return fmt.Sprintf("Player %d", p.ID)
}
