package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/perkycoffee/perkyjump/internal/model"
	"github.com/perkycoffee/perkyjump/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New opens (or creates) the database at path and runs migrations
func New(path string) (*Storage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// modernc sqlite serializes writes per connection; a single connection
	// avoids SQLITE_BUSY on concurrent transactions
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// migrate creates the database schema
func (s *Storage) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id INTEGER PRIMARY KEY,
			display_name TEXT NOT NULL DEFAULT '',
			max_height INTEGER NOT NULL DEFAULT 0,
			total_beans INTEGER NOT NULL DEFAULT 0,
			games_played INTEGER NOT NULL DEFAULT 0,
			last_played_at TIMESTAMP,
			active_skin_id TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS game_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id INTEGER NOT NULL,
			height INTEGER NOT NULL,
			beans INTEGER NOT NULL,
			played_at TIMESTAMP NOT NULL,
			FOREIGN KEY (player_id) REFERENCES players (id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_game_results_player ON game_results (player_id)`,
		`CREATE TABLE IF NOT EXISTS skins (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price INTEGER NOT NULL DEFAULT 0,
			is_default INTEGER NOT NULL DEFAULT 0,
			asset TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS skin_ownership (
			player_id INTEGER NOT NULL,
			skin_id TEXT NOT NULL,
			granted_at TIMESTAMP NOT NULL,
			PRIMARY KEY (player_id, skin_id),
			FOREIGN KEY (player_id) REFERENCES players (id),
			FOREIGN KEY (skin_id) REFERENCES skins (id)
		)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (id, display_name, max_height, total_beans, games_played, last_played_at, active_skin_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			display_name = excluded.display_name,
			max_height = excluded.max_height,
			total_beans = excluded.total_beans,
			games_played = excluded.games_played,
			last_played_at = excluded.last_played_at,
			active_skin_id = excluded.active_skin_id`,
		player.ID, player.DisplayName, player.MaxHeight, player.TotalBeans,
		player.GamesPlayed, nullableTime(player.LastPlayedAt), string(player.ActiveSkinID), player.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, display_name, max_height, total_beans, games_played, last_played_at, active_skin_id, created_at
		FROM players WHERE id = ?`, id)
	return scanPlayer(row)
}

// Game result operations

func (s *Storage) SaveGameResult(ctx context.Context, result *model.GameResult, player *model.Player) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO game_results (player_id, height, beans, played_at)
		VALUES (?, ?, ?, ?)`,
		result.PlayerID, result.Height, result.Beans, result.PlayedAt); err != nil {
		return fmt.Errorf("failed to insert game result: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE players SET
			max_height = ?,
			total_beans = ?,
			games_played = ?,
			last_played_at = ?
		WHERE id = ?`,
		player.MaxHeight, player.TotalBeans, player.GamesPlayed,
		nullableTime(player.LastPlayedAt), player.ID)
	if err != nil {
		return fmt.Errorf("failed to update player stats: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrPlayerNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit game result: %w", err)
	}
	return nil
}

func (s *Storage) ListGameResults(ctx context.Context, id model.PlayerID) ([]*model.GameResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT player_id, height, beans, played_at
		FROM game_results WHERE player_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list game results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*model.GameResult
	for rows.Next() {
		var r model.GameResult
		if err := rows.Scan(&r.PlayerID, &r.Height, &r.Beans, &r.PlayedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game result: %w", err)
		}
		results = append(results, &r)
	}
	return results, rows.Err()
}

func (s *Storage) ListRankedPlayers(ctx context.Context) ([]*model.Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, display_name, max_height, total_beans, games_played, last_played_at, active_skin_id, created_at
		FROM players WHERE games_played > 0`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var players []*model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// Skin catalog operations

func (s *Storage) SaveSkin(ctx context.Context, skin *model.Skin) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO skins (id, name, description, price, is_default, asset)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			price = excluded.price,
			is_default = excluded.is_default,
			asset = excluded.asset`,
		string(skin.ID), skin.Name, skin.Description, skin.Price, skin.IsDefault, skin.Asset)
	if err != nil {
		return fmt.Errorf("failed to save skin: %w", err)
	}
	return nil
}

func (s *Storage) GetSkin(ctx context.Context, id model.SkinID) (*model.Skin, error) {
	var skin model.Skin
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, is_default, asset
		FROM skins WHERE id = ?`, string(id)).
		Scan(&skin.ID, &skin.Name, &skin.Description, &skin.Price, &skin.IsDefault, &skin.Asset)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrSkinNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get skin: %w", err)
	}
	return &skin, nil
}

func (s *Storage) ListSkins(ctx context.Context) ([]*model.Skin, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, price, is_default, asset FROM skins`)
	if err != nil {
		return nil, fmt.Errorf("failed to list skins: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var skins []*model.Skin
	for rows.Next() {
		var skin model.Skin
		if err := rows.Scan(&skin.ID, &skin.Name, &skin.Description, &skin.Price, &skin.IsDefault, &skin.Asset); err != nil {
			return nil, fmt.Errorf("failed to scan skin: %w", err)
		}
		skins = append(skins, &skin)
	}
	return skins, rows.Err()
}

// Ownership operations

func (s *Storage) GrantSkin(ctx context.Context, playerID model.PlayerID, skinID model.SkinID, player *model.Player) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO skin_ownership (player_id, skin_id, granted_at)
		VALUES (?, ?, ?)`,
		playerID, string(skinID), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to insert ownership: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE players SET total_beans = ?, active_skin_id = ? WHERE id = ?`,
		player.TotalBeans, string(player.ActiveSkinID), player.ID)
	if err != nil {
		return fmt.Errorf("failed to debit player: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrPlayerNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit purchase: %w", err)
	}
	return nil
}

func (s *Storage) HasSkin(ctx context.Context, playerID model.PlayerID, skinID model.SkinID) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM skin_ownership WHERE player_id = ? AND skin_id = ?`,
		playerID, string(skinID)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check ownership: %w", err)
	}
	return n > 0, nil
}

func (s *Storage) ListOwnedSkins(ctx context.Context, playerID model.PlayerID) ([]model.SkinID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT skin_id FROM skin_ownership WHERE player_id = ? ORDER BY granted_at`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned skins: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var owned []model.SkinID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan ownership: %w", err)
		}
		owned = append(owned, model.SkinID(id))
	}
	return owned, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (*model.Player, error) {
	var p model.Player
	var lastPlayed sql.NullTime
	var activeSkin string
	err := row.Scan(&p.ID, &p.DisplayName, &p.MaxHeight, &p.TotalBeans,
		&p.GamesPlayed, &lastPlayed, &activeSkin, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}
	if lastPlayed.Valid {
		p.LastPlayedAt = lastPlayed.Time
	}
	p.ActiveSkinID = model.SkinID(activeSkin)
	return &p, nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
