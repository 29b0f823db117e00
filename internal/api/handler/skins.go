package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/perkycoffee/perkyjump/internal/api/apierr"
	"github.com/perkycoffee/perkyjump/internal/api/response"
	"github.com/perkycoffee/perkyjump/internal/model"
	"github.com/perkycoffee/perkyjump/internal/services/ledger"
)

// SkinHandler handles the skin shop endpoints
type SkinHandler struct {
	ledger *ledger.Service
}

// NewSkinHandler creates a new skin handler
func NewSkinHandler(ledgerService *ledger.Service) *SkinHandler {
	return &SkinHandler{ledger: ledgerService}
}

// List handles GET /api/v1/players/{id}/skins
func (h *SkinHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := playerIDFromPath(w, r)
	if !ok {
		return
	}

	statuses, err := h.ledger.ListSkins(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SkinListFromModel(statuses))
}

// Purchase handles POST /api/v1/players/{id}/skins/{skin_id}/purchase
func (h *SkinHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	id, ok := playerIDFromPath(w, r)
	if !ok {
		return
	}
	skinID := model.SkinID(mux.Vars(r)["skin_id"])

	player, err := h.ledger.PurchaseSkin(r.Context(), id, skinID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PurchaseResult{
		SkinID:       string(skinID),
		BeansBalance: player.TotalBeans,
	})
}

// Activate handles POST /api/v1/players/{id}/skins/{skin_id}/activate
func (h *SkinHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id, ok := playerIDFromPath(w, r)
	if !ok {
		return
	}
	skinID := model.SkinID(mux.Vars(r)["skin_id"])

	player, err := h.ledger.ActivateSkin(r.Context(), id, skinID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerStatsFromModel(player))
}
