package factory

import (
	"context"
	"time"

	"github.com/perkycoffee/perkyjump/internal/dependencies/mocks"
	"github.com/perkycoffee/perkyjump/internal/services/ledger"
	"github.com/perkycoffee/perkyjump/internal/storage/memory"
	"github.com/perkycoffee/perkyjump/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with a mocked clock,
// in-memory storage and the default catalog seeded
func NewTestApp() (*TestApp, error) {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))

	ledgerService := ledger.New(store, mockClock, ledger.Config{}, testutil.NopLogger())
	if err := ledgerService.SeedCatalog(context.Background(), DefaultCatalog()); err != nil {
		return nil, err
	}

	return &TestApp{
		App: &App{
			Storage: store,
			Clock:   mockClock,
			Ledger:  ledgerService,
		},
		MockClock: mockClock,
	}, nil
}
