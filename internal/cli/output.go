package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case PlayerStats:
		o.printPlayerStats(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case SkinList:
		o.printSkinList(v)
	case PurchaseResult:
		o.printPurchaseResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// PlayerStats response type (matches API)
type PlayerStats struct {
	ID           int64      `json:"id"`
	DisplayName  string     `json:"display_name"`
	MaxHeight    int        `json:"max_height"`
	TotalBeans   int        `json:"total_beans"`
	GamesPlayed  int        `json:"games_played"`
	LastPlayedAt *time.Time `json:"last_played_at"`
	ActiveSkinID string     `json:"active_skin_id"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	DisplayName string `json:"display_name"`
	MaxHeight   int    `json:"max_height"`
	TotalBeans  int    `json:"total_beans"`
}

// SkinList response type
type SkinList struct {
	Skins []Skin `json:"skins"`
}

// Skin response type
type Skin struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	IsDefault   bool   `json:"is_default"`
	Owned       bool   `json:"owned"`
	Active      bool   `json:"active"`
}

// PurchaseResult response type
type PurchaseResult struct {
	SkinID       string `json:"skin_id"`
	BeansBalance int    `json:"beans_balance"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayerStats(p PlayerStats) {
	fmt.Printf("Player: %s (%d)\n", p.DisplayName, p.ID)
	fmt.Printf("Best Height: %d\n", p.MaxHeight)
	fmt.Printf("Beans: %d\n", p.TotalBeans)
	fmt.Printf("Games Played: %d\n", p.GamesPlayed)
	if p.LastPlayedAt != nil {
		fmt.Printf("Last Played: %s\n", p.LastPlayedAt.Format(time.RFC3339))
	}
	fmt.Printf("Active Skin: %s\n", p.ActiveSkinID)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Entries) == 0 {
		fmt.Println("Leaderboard is empty")
		return
	}
	fmt.Printf("Leaderboard (%d):\n", len(l.Entries))
	for _, e := range l.Entries {
		fmt.Printf("  %2d. %-20s height %-6d beans %d\n", e.Rank, e.DisplayName, e.MaxHeight, e.TotalBeans)
	}
}

func (o *Output) printSkinList(s SkinList) {
	fmt.Printf("Skins (%d):\n", len(s.Skins))
	for _, skin := range s.Skins {
		status := "locked"
		switch {
		case skin.Active:
			status = "active"
		case skin.Owned:
			status = "owned"
		}
		fmt.Printf("  - %s (%s) - %d beans [%s]\n", skin.Name, skin.ID, skin.Price, status)
		if skin.Description != "" {
			fmt.Printf("    %s\n", skin.Description)
		}
	}
}

func (o *Output) printPurchaseResult(p PurchaseResult) {
	fmt.Printf("Purchased: %s\n", p.SkinID)
	fmt.Printf("Beans Remaining: %d\n", p.BeansBalance)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
