package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/perkycoffee/perkyjump/internal/config"
	"github.com/perkycoffee/perkyjump/internal/dependencies/clock"
	"github.com/perkycoffee/perkyjump/internal/model"
	"github.com/perkycoffee/perkyjump/internal/services/ledger"
	"github.com/perkycoffee/perkyjump/internal/storage"
	"github.com/perkycoffee/perkyjump/internal/storage/memory"
	redisstorage "github.com/perkycoffee/perkyjump/internal/storage/redis"
	"github.com/perkycoffee/perkyjump/internal/storage/sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	Ledger *ledger.Service
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the storage backend ("memory", "sqlite" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// SqlitePath is the database file path (required if StorageType is "sqlite")
	SqlitePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// LedgerConfig tunes the ledger service (optional)
	LedgerConfig ledger.Config
	// Catalog is the skin catalog to seed (optional)
	// If nil, DefaultCatalog() is used
	Catalog []model.Skin
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired and the
// skin catalog seeded
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageMemory
	}

	var store storage.Storage
	switch storageType {
	case config.StorageMemory:
		store = memory.New()
	case config.StorageSqlite:
		if cfg.SqlitePath == "" {
			return nil, errors.New("SqlitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlite.New(cfg.SqlitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	case config.StorageRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'sqlite' or 'redis'")
	}

	clk := clock.New()
	ledgerService := ledger.New(store, clk, cfg.LedgerConfig, logger)

	catalog := cfg.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if err := ledgerService.SeedCatalog(ctx, catalog); err != nil {
		return nil, err
	}

	return &App{
		Storage: store,
		Clock:   clk,
		Ledger:  ledgerService,
	}, nil
}

// DefaultCatalog is the built-in skin lineup
func DefaultCatalog() []model.Skin {
	return []model.Skin{
		{
			ID:          "classic",
			Name:        "Classic Cup",
			Description: "The original perky paper cup.",
			Price:       0,
			IsDefault:   true,
			Asset:       "skins/classic.png",
		},
		{
			ID:          "espresso",
			Name:        "Espresso Shot",
			Description: "Small, dark and dangerously fast.",
			Price:       150,
			Asset:       "skins/espresso.png",
		},
		{
			ID:          "latte",
			Name:        "Latte Art",
			Description: "A swirl of foam for the stylish jumper.",
			Price:       300,
			Asset:       "skins/latte.png",
		},
		{
			ID:          "neon",
			Name:        "Neon Brew",
			Description: "Glows all the way to the top.",
			Price:       500,
			Asset:       "skins/neon.png",
		},
	}
}
