package model

import "time"

// PlayerID is the player's Telegram account id
type PlayerID int64

// Player holds the persistent per-player statistics
type Player struct {
	ID           PlayerID
	DisplayName  string
	MaxHeight    int
	TotalBeans   int
	GamesPlayed  int
	LastPlayedAt time.Time
	ActiveSkinID SkinID
	CreatedAt    time.Time
}

// GameResult is the immutable audit record of one completed run
type GameResult struct {
	PlayerID PlayerID
	Height   int
	Beans    int
	PlayedAt time.Time
}

// LeaderboardEntry is one row of the global leaderboard
type LeaderboardEntry struct {
	Rank        int
	DisplayName string
	MaxHeight   int
	TotalBeans  int
}
