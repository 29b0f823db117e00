package handler

import (
	"encoding/json"
	"net/http"

	"github.com/perkycoffee/perkyjump/internal/api/apierr"
	"github.com/perkycoffee/perkyjump/internal/api/request"
	"github.com/perkycoffee/perkyjump/internal/api/response"
	"github.com/perkycoffee/perkyjump/internal/model"
	"github.com/perkycoffee/perkyjump/internal/services/ledger"
)

// ResultHandler handles game-result submissions from the browser game
type ResultHandler struct {
	ledger *ledger.Service
}

// NewResultHandler creates a new result handler
func NewResultHandler(ledgerService *ledger.Service) *ResultHandler {
	return &ResultHandler{ledger: ledgerService}
}

// Submit handles POST /api/v1/results
func (h *ResultHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.UserID == 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("user_id is required"))
		return
	}

	id := model.PlayerID(req.UserID)

	// The game submits identity alongside the result, so the player record is
	// refreshed (or created) before the result is folded in.
	if _, err := h.ledger.SyncPlayer(r.Context(), id, req.DisplayName); err != nil {
		apierr.WriteError(w, err)
		return
	}

	player, err := h.ledger.RecordGameResult(r.Context(), id, req.Height, req.Beans)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerStatsFromModel(player))
}
