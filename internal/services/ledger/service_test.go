package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/perkycoffee/perkyjump/internal/dependencies/mocks"
	"github.com/perkycoffee/perkyjump/internal/model"
	"github.com/perkycoffee/perkyjump/internal/storage/memory"
	"github.com/perkycoffee/perkyjump/internal/testutil"
)

func testCatalog() []model.Skin {
	return []model.Skin{
		{ID: "classic", Name: "Perky Classic", IsDefault: true, Asset: "skins/classic.png"},
		{ID: "espresso", Name: "Espresso Shadow", Price: 150, Asset: "skins/espresso.png"},
		{ID: "latte", Name: "Latte Gold", Price: 300, Asset: "skins/latte.png"},
		{ID: "neon", Name: "Neon Roast", Price: 500, Asset: "skins/neon.png"},
	}
}

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()

	s.Require().NoError(s.service.SeedCatalog(s.ctx, testCatalog()))
}

// SyncPlayer tests

func (s *ServiceSuite) TestSyncPlayerCreatesWithZeroedStats() {
	player, err := s.service.SyncPlayer(s.ctx, 42, "Alice")
	s.Require().NoError(err)

	s.Equal(model.PlayerID(42), player.ID)
	s.Equal("Alice", player.DisplayName)
	s.Equal(0, player.MaxHeight)
	s.Equal(0, player.TotalBeans)
	s.Equal(0, player.GamesPlayed)
	s.Equal(model.SkinID("classic"), player.ActiveSkinID)
	s.Equal(s.clock.CurrentTime, player.CreatedAt)
}

func (s *ServiceSuite) TestSyncPlayerIsIdempotent() {
	_, err := s.service.SyncPlayer(s.ctx, 42, "Alice")
	s.Require().NoError(err)
	_, err = s.service.RecordGameResult(s.ctx, 42, 100, 10)
	s.Require().NoError(err)

	player, err := s.service.SyncPlayer(s.ctx, 42, "Alice")
	s.Require().NoError(err)

	s.Equal(100, player.MaxHeight)
	s.Equal(10, player.TotalBeans)
	s.Equal(1, player.GamesPlayed)
}

func (s *ServiceSuite) TestSyncPlayerRefreshesDisplayName() {
	_, err := s.service.SyncPlayer(s.ctx, 42, "Alice")
	s.Require().NoError(err)

	player, err := s.service.SyncPlayer(s.ctx, 42, "Alicia")
	s.Require().NoError(err)
	s.Equal("Alicia", player.DisplayName)

	stored, err := s.service.GetPlayerStats(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal("Alicia", stored.DisplayName)
}

func (s *ServiceSuite) TestSyncPlayerKeepsNameWhenEmpty() {
	_, err := s.service.SyncPlayer(s.ctx, 42, "Alice")
	s.Require().NoError(err)

	player, err := s.service.SyncPlayer(s.ctx, 42, "")
	s.Require().NoError(err)
	s.Equal("Alice", player.DisplayName)
}

// RecordGameResult tests

func (s *ServiceSuite) TestRecordGameResultAggregates() {
	_, err := s.service.SyncPlayer(s.ctx, 42, "Alice")
	s.Require().NoError(err)

	_, err = s.service.RecordGameResult(s.ctx, 42, 120, 30)
	s.Require().NoError(err)
	player, err := s.service.RecordGameResult(s.ctx, 42, 90, 50)
	s.Require().NoError(err)

	s.Equal(120, player.MaxHeight, "height is a running maximum")
	s.Equal(80, player.TotalBeans, "beans accumulate additively")
	s.Equal(2, player.GamesPlayed)
}

func (s *ServiceSuite) TestRecordGameResultSetsLastPlayedAt() {
	_, err := s.service.SyncPlayer(s.ctx, 42, "Alice")
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	player, err := s.service.RecordGameResult(s.ctx, 42, 10, 0)
	s.Require().NoError(err)
	s.Equal(s.clock.CurrentTime, player.LastPlayedAt)
}

func (s *ServiceSuite) TestRecordGameResultAppendsAuditRow() {
	_, err := s.service.SyncPlayer(s.ctx, 42, "Alice")
	s.Require().NoError(err)

	_, err = s.service.RecordGameResult(s.ctx, 42, 120, 30)
	s.Require().NoError(err)
	_, err = s.service.RecordGameResult(s.ctx, 42, 90, 50)
	s.Require().NoError(err)

	results, err := s.storage.ListGameResults(s.ctx, 42)
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal(120, results[0].Height)
	s.Equal(50, results[1].Beans)
}

func (s *ServiceSuite) TestRecordGameResultRejectsNegativeInput() {
	_, err := s.service.SyncPlayer(s.ctx, 42, "Alice")
	s.Require().NoError(err)

	_, err = s.service.RecordGameResult(s.ctx, 42, -1, 0)
	s.ErrorIs(err, model.ErrInvalidInput)
	_, err = s.service.RecordGameResult(s.ctx, 42, 0, -1)
	s.ErrorIs(err, model.ErrInvalidInput)

	player, err := s.service.GetPlayerStats(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal(0, player.GamesPlayed)
}

func (s *ServiceSuite) TestRecordGameResultForUnknownPlayerFails() {
	_, err := s.service.RecordGameResult(s.ctx, 999, 10, 10)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestRecordGameResultConcurrentSamePlayer() {
	_, err := s.service.SyncPlayer(s.ctx, 42, "Alice")
	s.Require().NoError(err)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := s.service.RecordGameResult(s.ctx, 42, 10, 2)
			s.NoError(err)
		}()
	}
	wg.Wait()

	player, err := s.service.GetPlayerStats(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal(n, player.GamesPlayed)
	s.Equal(n*2, player.TotalBeans)
}

// GetLeaderboard tests

func (s *ServiceSuite) playWith(id model.PlayerID, name string, height, beans int) {
	_, err := s.service.SyncPlayer(s.ctx, id, name)
	s.Require().NoError(err)
	_, err = s.service.RecordGameResult(s.ctx, id, height, beans)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestLeaderboardOrdersByMaxHeightDescending() {
	s.playWith(1, "Alice", 100, 5)
	s.playWith(2, "Bob", 300, 5)
	s.playWith(3, "Carol", 200, 5)

	entries, err := s.service.GetLeaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("Bob", entries[0].DisplayName)
	s.Equal("Carol", entries[1].DisplayName)
	s.Equal("Alice", entries[2].DisplayName)
	s.Equal(1, entries[0].Rank)
	s.Equal(3, entries[2].Rank)
}

func (s *ServiceSuite) TestLeaderboardBreaksTiesByEarlierPlay() {
	s.playWith(1, "Alice", 200, 0)
	s.clock.Advance(time.Minute)
	s.playWith(2, "Bob", 200, 0)

	entries, err := s.service.GetLeaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("Alice", entries[0].DisplayName, "earlier record wins the tie")
	s.Equal("Bob", entries[1].DisplayName)
}

func (s *ServiceSuite) TestLeaderboardExcludesPlayersWithoutGames() {
	_, err := s.service.SyncPlayer(s.ctx, 1, "Lurker")
	s.Require().NoError(err)
	s.playWith(2, "Bob", 50, 0)

	entries, err := s.service.GetLeaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("Bob", entries[0].DisplayName)
}

func (s *ServiceSuite) TestLeaderboardAppliesLimit() {
	for i := 1; i <= 5; i++ {
		s.playWith(model.PlayerID(i), "", i*10, 0)
	}

	entries, err := s.service.GetLeaderboard(s.ctx, 3)
	s.Require().NoError(err)
	s.Len(entries, 3)
}

func (s *ServiceSuite) TestLeaderboardIsStableAcrossQueries() {
	s.playWith(1, "Alice", 100, 1)
	s.playWith(2, "Bob", 100, 2)
	s.playWith(3, "Carol", 50, 3)

	first, err := s.service.GetLeaderboard(s.ctx, 10)
	s.Require().NoError(err)
	for i := 0; i < 10; i++ {
		again, err := s.service.GetLeaderboard(s.ctx, 10)
		s.Require().NoError(err)
		s.Equal(first, again)
	}
}

func (s *ServiceSuite) TestLeaderboardRejectsNonPositiveLimit() {
	_, err := s.service.GetLeaderboard(s.ctx, 0)
	s.ErrorIs(err, model.ErrInvalidInput)
	_, err = s.service.GetLeaderboard(s.ctx, -1)
	s.ErrorIs(err, model.ErrInvalidInput)
}

func (s *ServiceSuite) TestLeaderboardFallsBackToGeneratedName() {
	s.playWith(777, "", 10, 0)

	entries, err := s.service.GetLeaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("Player 777", entries[0].DisplayName)
}

// ListSkins tests

func (s *ServiceSuite) TestListSkinsAnnotatesCatalog() {
	_, err := s.service.SyncPlayer(s.ctx, 42, "Alice")
	s.Require().NoError(err)

	statuses, err := s.service.ListSkins(s.ctx, 42)
	s.Require().NoError(err)
	s.Require().Len(statuses, 4)

	s.Equal(model.SkinID("classic"), statuses[0].Skin.ID, "default skin sorts first")
	s.True(statuses[0].Owned, "default skin is implicitly owned")
	s.True(statuses[0].Active)

	for _, st := range statuses[1:] {
		s.False(st.Owned)
		s.False(st.Active)
	}
}

func (s *ServiceSuite) TestListSkinsHasExactlyOneActive() {
	s.playWith(42, "Alice", 100, 500)
	_, err := s.service.PurchaseSkin(s.ctx, 42, "espresso")
	s.Require().NoError(err)
	_, err = s.service.ActivateSkin(s.ctx, 42, "espresso")
	s.Require().NoError(err)

	statuses, err := s.service.ListSkins(s.ctx, 42)
	s.Require().NoError(err)

	active := 0
	for _, st := range statuses {
		if st.Active {
			active++
			s.Equal(model.SkinID("espresso"), st.Skin.ID)
		}
	}
	s.Equal(1, active)
}

func (s *ServiceSuite) TestListSkinsForUnknownPlayerFails() {
	_, err := s.service.ListSkins(s.ctx, 999)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// PurchaseSkin tests

func (s *ServiceSuite) TestPurchaseSkinDebitsAndGrants() {
	s.playWith(42, "Alice", 100, 200)

	player, err := s.service.PurchaseSkin(s.ctx, 42, "espresso")
	s.Require().NoError(err)
	s.Equal(50, player.TotalBeans, "balance decreases by exactly the price")

	statuses, err := s.service.ListSkins(s.ctx, 42)
	s.Require().NoError(err)
	for _, st := range statuses {
		if st.Skin.ID == "espresso" {
			s.True(st.Owned)
		}
	}
}

func (s *ServiceSuite) TestPurchaseSkinExactBalance() {
	// Concrete shop scenario: two games then a purchase that zeroes the balance
	_, err := s.service.SyncPlayer(s.ctx, 42, "Alice")
	s.Require().NoError(err)
	_, err = s.service.RecordGameResult(s.ctx, 42, 120, 30)
	s.Require().NoError(err)
	_, err = s.service.RecordGameResult(s.ctx, 42, 90, 50)
	s.Require().NoError(err)

	s.Require().NoError(s.storage.SaveSkin(s.ctx, &model.Skin{ID: "budget", Name: "Budget", Price: 80}))

	player, err := s.service.PurchaseSkin(s.ctx, 42, "budget")
	s.Require().NoError(err)
	s.Equal(0, player.TotalBeans)

	_, err = s.service.PurchaseSkin(s.ctx, 42, "budget")
	s.ErrorIs(err, model.ErrSkinAlreadyOwned)
}

func (s *ServiceSuite) TestPurchaseSkinAlreadyOwnedLeavesBalance() {
	s.playWith(42, "Alice", 100, 400)
	_, err := s.service.PurchaseSkin(s.ctx, 42, "espresso")
	s.Require().NoError(err)

	_, err = s.service.PurchaseSkin(s.ctx, 42, "espresso")
	s.ErrorIs(err, model.ErrSkinAlreadyOwned)

	player, err := s.service.GetPlayerStats(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal(250, player.TotalBeans)
}

func (s *ServiceSuite) TestPurchaseSkinInsufficientBeans() {
	s.playWith(42, "Alice", 100, 100)

	_, err := s.service.PurchaseSkin(s.ctx, 42, "espresso")
	s.ErrorIs(err, model.ErrInsufficientBeans)

	player, err := s.service.GetPlayerStats(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal(100, player.TotalBeans, "no partial debit")

	owned, err := s.storage.HasSkin(s.ctx, 42, "espresso")
	s.Require().NoError(err)
	s.False(owned)
}

func (s *ServiceSuite) TestPurchaseSkinRejectsDefault() {
	s.playWith(42, "Alice", 100, 1000)

	_, err := s.service.PurchaseSkin(s.ctx, 42, "classic")
	s.ErrorIs(err, model.ErrSkinNotPurchasable)
}

func (s *ServiceSuite) TestPurchaseSkinUnknownSkin() {
	s.playWith(42, "Alice", 100, 1000)

	_, err := s.service.PurchaseSkin(s.ctx, 42, "nope")
	s.ErrorIs(err, model.ErrSkinNotFound)
}

func (s *ServiceSuite) TestPurchaseSkinConcurrentSingleDebit() {
	s.playWith(42, "Alice", 100, 150)

	const n = 10
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = s.service.PurchaseSkin(s.ctx, 42, "espresso")
		}()
	}
	wg.Wait()

	player, err := s.service.GetPlayerStats(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal(0, player.TotalBeans, "price is debited exactly once")
}

// ActivateSkin tests

func (s *ServiceSuite) TestActivateSkinRequiresOwnership() {
	s.playWith(42, "Alice", 100, 0)

	_, err := s.service.ActivateSkin(s.ctx, 42, "espresso")
	s.ErrorIs(err, model.ErrSkinNotOwned)
}

func (s *ServiceSuite) TestActivateSkinReplacesActive() {
	s.playWith(42, "Alice", 100, 500)
	_, err := s.service.PurchaseSkin(s.ctx, 42, "espresso")
	s.Require().NoError(err)

	player, err := s.service.ActivateSkin(s.ctx, 42, "espresso")
	s.Require().NoError(err)
	s.Equal(model.SkinID("espresso"), player.ActiveSkinID)

	// Switching back to the default always works
	player, err = s.service.ActivateSkin(s.ctx, 42, "classic")
	s.Require().NoError(err)
	s.Equal(model.SkinID("classic"), player.ActiveSkinID)
}

func (s *ServiceSuite) TestActivateSkinIsIdempotent() {
	s.playWith(42, "Alice", 100, 0)

	player, err := s.service.ActivateSkin(s.ctx, 42, "classic")
	s.Require().NoError(err)
	s.Equal(model.SkinID("classic"), player.ActiveSkinID)
}

func (s *ServiceSuite) TestActivateSkinUnknownSkin() {
	s.playWith(42, "Alice", 100, 0)

	_, err := s.service.ActivateSkin(s.ctx, 42, "nope")
	s.ErrorIs(err, model.ErrSkinNotFound)
}

// SeedCatalog tests

func (s *ServiceSuite) TestSeedCatalogRequiresExactlyOneDefault() {
	svc := New(memory.New(), s.clock, DefaultConfig(), testutil.NopLogger())

	err := svc.SeedCatalog(s.ctx, []model.Skin{{ID: "a", Name: "A", Price: 1}})
	s.ErrorIs(err, model.ErrInvalidInput)

	err = svc.SeedCatalog(s.ctx, []model.Skin{
		{ID: "a", Name: "A", IsDefault: true},
		{ID: "b", Name: "B", IsDefault: true},
	})
	s.ErrorIs(err, model.ErrInvalidInput)
}

func (s *ServiceSuite) TestSeedCatalogIsIdempotent() {
	s.Require().NoError(s.service.SeedCatalog(s.ctx, testCatalog()))

	skins, err := s.storage.ListSkins(s.ctx)
	s.Require().NoError(err)
	s.Len(skins, 4)
}
