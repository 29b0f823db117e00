package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/perkycoffee/perkyjump/internal/api/apierr"
	"github.com/perkycoffee/perkyjump/internal/api/response"
	"github.com/perkycoffee/perkyjump/internal/model"
	"github.com/perkycoffee/perkyjump/internal/services/ledger"
)

// PlayerHandler handles player statistics endpoints
type PlayerHandler struct {
	ledger *ledger.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(ledgerService *ledger.Service) *PlayerHandler {
	return &PlayerHandler{ledger: ledgerService}
}

// GetStats handles GET /api/v1/players/{id}/stats
func (h *PlayerHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	id, ok := playerIDFromPath(w, r)
	if !ok {
		return
	}

	player, err := h.ledger.GetPlayerStats(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerStatsFromModel(player))
}

// playerIDFromPath extracts and validates the {id} path variable.
// Writes the error response itself when the id is malformed.
func playerIDFromPath(w http.ResponseWriter, r *http.Request) (model.PlayerID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id == 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid player id"))
		return 0, false
	}
	return model.PlayerID(id), true
}
