package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/perkycoffee/perkyjump/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:           42,
		DisplayName:  "Alice",
		ActiveSkinID: "classic",
		CreatedAt:    time.Now().UTC(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal("Alice", retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, 999)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerReturnsDetachedCopy() {
	player := &model.Player{ID: 42, DisplayName: "Alice"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	first, err := s.storage.GetPlayer(s.ctx, 42)
	s.Require().NoError(err)
	first.TotalBeans = 9999

	second, err := s.storage.GetPlayer(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal(0, second.TotalBeans)
}

func (s *StorageSuite) TestSaveGameResultUpdatesBoth() {
	player := &model.Player{ID: 42, DisplayName: "Alice"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	player.MaxHeight = 120
	player.TotalBeans = 30
	player.GamesPlayed = 1
	result := &model.GameResult{PlayerID: 42, Height: 120, Beans: 30, PlayedAt: time.Now().UTC()}

	err := s.storage.SaveGameResult(s.ctx, result, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal(120, retrieved.MaxHeight)

	results, err := s.storage.ListGameResults(s.ctx, 42)
	s.Require().NoError(err)
	s.Len(results, 1)
}

func (s *StorageSuite) TestSaveGameResultUnknownPlayer() {
	result := &model.GameResult{PlayerID: 999, Height: 1, Beans: 1}
	err := s.storage.SaveGameResult(s.ctx, result, &model.Player{ID: 999})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListRankedPlayersFiltersByGamesPlayed() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: 1, GamesPlayed: 2}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: 2, GamesPlayed: 0}))

	players, err := s.storage.ListRankedPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal(model.PlayerID(1), players[0].ID)
}

func (s *StorageSuite) TestSkinCatalog() {
	skin := &model.Skin{ID: "espresso", Name: "Espresso Shadow", Price: 150}
	s.Require().NoError(s.storage.SaveSkin(s.ctx, skin))

	retrieved, err := s.storage.GetSkin(s.ctx, "espresso")
	s.Require().NoError(err)
	s.Equal(150, retrieved.Price)

	_, err = s.storage.GetSkin(s.ctx, "nope")
	s.ErrorIs(err, model.ErrSkinNotFound)

	skins, err := s.storage.ListSkins(s.ctx)
	s.Require().NoError(err)
	s.Len(skins, 1)
}

func (s *StorageSuite) TestGrantAndListOwnership() {
	player := &model.Player{ID: 42, TotalBeans: 100}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	owned, err := s.storage.HasSkin(s.ctx, 42, "espresso")
	s.Require().NoError(err)
	s.False(owned)

	player.TotalBeans = 0
	s.Require().NoError(s.storage.GrantSkin(s.ctx, 42, "espresso", player))

	owned, err = s.storage.HasSkin(s.ctx, 42, "espresso")
	s.Require().NoError(err)
	s.True(owned)

	list, err := s.storage.ListOwnedSkins(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal([]model.SkinID{"espresso"}, list)

	retrieved, err := s.storage.GetPlayer(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal(0, retrieved.TotalBeans, "debited snapshot is persisted with the grant")
}
