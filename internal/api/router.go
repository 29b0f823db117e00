package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/perkycoffee/perkyjump/internal/api/handler"
	"github.com/perkycoffee/perkyjump/internal/api/middleware"
	"github.com/perkycoffee/perkyjump/internal/services/ledger"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger *slog.Logger
	Ledger *ledger.Service

	// BotToken enables Telegram init-data verification on mutating routes
	// when non-empty
	BotToken string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	resultHandler := handler.NewResultHandler(cfg.Ledger)
	playerHandler := handler.NewPlayerHandler(cfg.Ledger)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.Ledger)
	skinHandler := handler.NewSkinHandler(cfg.Ledger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Read-only routes
	api.HandleFunc("/players/{id}/stats", playerHandler.GetStats).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}/skins", skinHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Mutating routes carry the game client's init data when a token is set
	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.TelegramAuth(cfg.BotToken))
	authed.HandleFunc("/results", resultHandler.Submit).Methods(http.MethodPost)
	authed.HandleFunc("/players/{id}/skins/{skin_id}/purchase", skinHandler.Purchase).Methods(http.MethodPost)
	authed.HandleFunc("/players/{id}/skins/{skin_id}/activate", skinHandler.Activate).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
