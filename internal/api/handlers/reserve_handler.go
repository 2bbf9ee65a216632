package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/drivelane/rental-backend/internal/application/services"
	"github.com/drivelane/rental-backend/internal/domain/repositories"
)

// ReserveHandler handles reservation-related HTTP requests
type ReserveHandler struct {
	service *services.ReserveService
}

// NewReserveHandler creates a new reserve handler
func NewReserveHandler(service *services.ReserveService) *ReserveHandler {
	return &ReserveHandler{service: service}
}

// CreateReserve handles POST /api/reserves
func (h *ReserveHandler) CreateReserve(w http.ResponseWriter, r *http.Request) {
	var props repositories.CreateReserveProps
	if err := json.NewDecoder(r.Body).Decode(&props); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reserve, err := h.service.Create(r.Context(), props)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, reserve)
}

// GetReserve handles GET /api/reserves/{id}
func (h *ReserveHandler) GetReserve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "reserve id is required")
		return
	}

	reserve, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reserve)
}

// UpdateReserve handles PUT /api/reserves/{id}
func (h *ReserveHandler) UpdateReserve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "reserve id is required")
		return
	}

	var props services.UpdateReserveProps
	if err := json.NewDecoder(r.Body).Decode(&props); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reserve, err := h.service.Update(r.Context(), id, props)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reserve)
}

// DeleteReserve handles DELETE /api/reserves/{id}
func (h *ReserveHandler) DeleteReserve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "reserve id is required")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchReserves handles GET /api/reserves
func (h *ReserveHandler) SearchReserves(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Search(r.Context(), parseSearchQuery(r))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// ListUserReserves handles GET /api/users/{id}/reserves
func (h *ReserveHandler) ListUserReserves(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "user id is required")
		return
	}

	reserves, err := h.service.ListByUser(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reserves": reserves,
		"count":    len(reserves),
	})
}

// ListVehicleReserves handles GET /api/vehicles/{id}/reserves
func (h *ReserveHandler) ListVehicleReserves(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "vehicle id is required")
		return
	}

	reserves, err := h.service.ListByVehicle(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reserves": reserves,
		"count":    len(reserves),
	})
}
