package model

// SkinID identifies a catalog skin
type SkinID string

// Skin is one entry in the cosmetic catalog.
// The catalog is seeded at startup and never mutated by players.
type Skin struct {
	ID          SkinID
	Name        string
	Description string
	// Price in beans. Zero for the default skin.
	Price     int
	IsDefault bool
	// Asset is the sprite path the game client loads for this skin
	Asset string
}

// SkinStatus annotates a catalog skin with per-player state
type SkinStatus struct {
	Skin   Skin
	Owned  bool
	Active bool
}
