package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/perkycoffee/perkyjump/internal/model"
	"github.com/perkycoffee/perkyjump/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Records are stored as JSON values; ownership and the ranked-player index
// live in sets so composite writes stay pipelined.
type Storage struct {
	client *redis.Client
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client) *Storage {
	return &Storage{client: client}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, 0)
	if player.GamesPlayed > 0 {
		pipe.SAdd(ctx, rankedIndexKey(), int64(player.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// Game result operations

func (s *Storage) SaveGameResult(ctx context.Context, result *model.GameResult, player *model.Player) error {
	if err := s.requirePlayer(ctx, player.ID); err != nil {
		return err
	}

	resultData, err := json.Marshal(result)
	if err != nil {
		return err
	}
	playerData, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// One pipeline: audit row append, snapshot update, index membership
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, resultsKey(result.PlayerID), resultData)
	pipe.Set(ctx, playerKey(player.ID), playerData, 0)
	pipe.SAdd(ctx, rankedIndexKey(), int64(player.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListGameResults(ctx context.Context, id model.PlayerID) ([]*model.GameResult, error) {
	values, err := s.client.LRange(ctx, resultsKey(id), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	results := make([]*model.GameResult, 0, len(values))
	for _, val := range values {
		var r model.GameResult
		if err := json.Unmarshal([]byte(val), &r); err != nil {
			return nil, err
		}
		results = append(results, &r)
	}
	return results, nil
}

func (s *Storage) ListRankedPlayers(ctx context.Context) ([]*model.Player, error) {
	ids, err := s.client.SMembers(ctx, rankedIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = fmt.Sprintf("%s:player:%s", keyPrefix, id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var p model.Player
		if err := json.Unmarshal([]byte(val.(string)), &p); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &p)
	}
	return players, nil
}

// Skin catalog operations

func (s *Storage) SaveSkin(ctx context.Context, skin *model.Skin) error {
	data, err := json.Marshal(skin)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, skinKey(skin.ID), data, 0)
	pipe.SAdd(ctx, skinIndexKey(), string(skin.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSkin(ctx context.Context, id model.SkinID) (*model.Skin, error) {
	data, err := s.client.Get(ctx, skinKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSkinNotFound
		}
		return nil, err
	}

	var skin model.Skin
	if err := json.Unmarshal(data, &skin); err != nil {
		return nil, err
	}
	return &skin, nil
}

func (s *Storage) ListSkins(ctx context.Context) ([]*model.Skin, error) {
	ids, err := s.client.SMembers(ctx, skinIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	skins := make([]*model.Skin, 0, len(ids))
	for _, id := range ids {
		skin, err := s.GetSkin(ctx, model.SkinID(id))
		if err != nil {
			if errors.Is(err, model.ErrSkinNotFound) {
				continue
			}
			return nil, err
		}
		skins = append(skins, skin)
	}
	return skins, nil
}

// Ownership operations

func (s *Storage) GrantSkin(ctx context.Context, playerID model.PlayerID, skinID model.SkinID, player *model.Player) error {
	if err := s.requirePlayer(ctx, playerID); err != nil {
		return err
	}

	playerData, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// One pipeline: ownership grant and debited snapshot together
	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, ownershipKey(playerID), string(skinID))
	pipe.Set(ctx, playerKey(player.ID), playerData, 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) HasSkin(ctx context.Context, playerID model.PlayerID, skinID model.SkinID) (bool, error) {
	return s.client.SIsMember(ctx, ownershipKey(playerID), string(skinID)).Result()
}

func (s *Storage) ListOwnedSkins(ctx context.Context, playerID model.PlayerID) ([]model.SkinID, error) {
	members, err := s.client.SMembers(ctx, ownershipKey(playerID)).Result()
	if err != nil {
		return nil, err
	}

	owned := make([]model.SkinID, 0, len(members))
	for _, m := range members {
		owned = append(owned, model.SkinID(m))
	}
	return owned, nil
}

func (s *Storage) requirePlayer(ctx context.Context, id model.PlayerID) error {
	exists, err := s.client.Exists(ctx, playerKey(id)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}
