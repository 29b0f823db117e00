package response

import (
	"time"

	"github.com/perkycoffee/perkyjump/internal/model"
)

// PlayerStats represents a player's statistics in API responses
type PlayerStats struct {
	ID           int64      `json:"id"`
	DisplayName  string     `json:"display_name,omitempty"`
	MaxHeight    int        `json:"max_height"`
	TotalBeans   int        `json:"total_beans"`
	GamesPlayed  int        `json:"games_played"`
	LastPlayedAt *time.Time `json:"last_played_at,omitempty"`
	ActiveSkinID string     `json:"active_skin_id"`
}

// PlayerStatsFromModel converts a model.Player to a response PlayerStats
func PlayerStatsFromModel(p *model.Player) PlayerStats {
	var lastPlayed *time.Time
	if !p.LastPlayedAt.IsZero() {
		t := p.LastPlayedAt
		lastPlayed = &t
	}
	return PlayerStats{
		ID:           int64(p.ID),
		DisplayName:  p.DisplayName,
		MaxHeight:    p.MaxHeight,
		TotalBeans:   p.TotalBeans,
		GamesPlayed:  p.GamesPlayed,
		LastPlayedAt: lastPlayed,
		ActiveSkinID: string(p.ActiveSkinID),
	}
}

// LeaderboardEntry represents one leaderboard row
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	DisplayName string `json:"display_name"`
	MaxHeight   int    `json:"max_height"`
	TotalBeans  int    `json:"total_beans"`
}

// Leaderboard wraps the leaderboard rows
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromModel converts ledger entries to the response shape
func LeaderboardFromModel(entries []model.LeaderboardEntry) Leaderboard {
	out := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntry{
			Rank:        e.Rank,
			DisplayName: e.DisplayName,
			MaxHeight:   e.MaxHeight,
			TotalBeans:  e.TotalBeans,
		}
	}
	return Leaderboard{Entries: out}
}

// Skin represents one catalog entry annotated for a player
type Skin struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int    `json:"price"`
	IsDefault   bool   `json:"is_default,omitempty"`
	Asset       string `json:"asset"`
	Owned       bool   `json:"owned"`
	Active      bool   `json:"active"`
}

// SkinList wraps the annotated catalog
type SkinList struct {
	Skins []Skin `json:"skins"`
}

// SkinListFromModel converts skin statuses to the response shape
func SkinListFromModel(statuses []model.SkinStatus) SkinList {
	skins := make([]Skin, len(statuses))
	for i, st := range statuses {
		skins[i] = Skin{
			ID:          string(st.Skin.ID),
			Name:        st.Skin.Name,
			Description: st.Skin.Description,
			Price:       st.Skin.Price,
			IsDefault:   st.Skin.IsDefault,
			Asset:       st.Skin.Asset,
			Owned:       st.Owned,
			Active:      st.Active,
		}
	}
	return SkinList{Skins: skins}
}

// PurchaseResult is returned after a successful purchase
type PurchaseResult struct {
	SkinID       string `json:"skin_id"`
	BeansBalance int    `json:"beans_balance"`
}
