package handler

import (
	"net/http"
	"strconv"

	"github.com/perkycoffee/perkyjump/internal/api/apierr"
	"github.com/perkycoffee/perkyjump/internal/api/response"
	"github.com/perkycoffee/perkyjump/internal/services/ledger"
)

// LeaderboardHandler handles the global leaderboard endpoint
type LeaderboardHandler struct {
	ledger *ledger.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(ledgerService *ledger.Service) *LeaderboardHandler {
	return &LeaderboardHandler{ledger: ledgerService}
}

// Get handles GET /api/v1/leaderboard?limit=
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	limit := ledger.DefaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			apierr.WriteError(w, apierr.NewInvalidRequestError("limit must be an integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.ledger.GetLeaderboard(r.Context(), limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}
