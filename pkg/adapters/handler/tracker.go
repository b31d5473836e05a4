package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/ports"
)

type TrackerHandler struct {
	service ports.TrackerService
}

func NewTrackerHandler(service ports.TrackerService) *TrackerHandler {
	return &TrackerHandler{service: service}
}

type trackRequest struct {
	Store string `json:"store"`
}

type snapshotsResponse struct {
	Shop      *domain.TrackedShop   `json:"shop"`
	Snapshots []domain.ShopSnapshot `json:"snapshots"`
}

func (h *TrackerHandler) List(w http.ResponseWriter, r *http.Request) {
	shops, err := h.service.ListTracked(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": shops})
}

func (h *TrackerHandler) Track(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	shop, err := h.service.Track(r.Context(), UserIDFromContext(r.Context()), req.Store)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, shop)
}

// Snapshots opens a tracked shop, refreshing it first when stale
func (h *TrackerHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	shop, snapshots, err := h.service.Open(r.Context(), UserIDFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotsResponse{Shop: shop, Snapshots: snapshots})
}

func (h *TrackerHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shop, err := h.owned(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.service.Refresh(ctx, shop.ID, shop.ShopID); err != nil {
		writeError(w, r, err)
		return
	}
	// re-read for the new last_updated
	if shop, err = h.owned(r); err != nil {
		writeError(w, r, err)
		return
	}
	snapshots, err := h.service.ListSnapshots(ctx, shop.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotsResponse{Shop: shop, Snapshots: snapshots})
}

func (h *TrackerHandler) Untrack(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Untrack(r.Context(), UserIDFromContext(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// owned finds the path's tracked shop among the caller's own shops
func (h *TrackerHandler) owned(r *http.Request) (*domain.TrackedShop, error) {
	shops, err := h.service.ListTracked(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		return nil, err
	}
	id := r.PathValue("id")
	for i := range shops {
		if shops[i].ID == id {
			return &shops[i], nil
		}
	}
	return nil, domain.NotFound("tracked shop not found")
}
