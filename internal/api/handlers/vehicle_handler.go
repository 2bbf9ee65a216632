package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/drivelane/rental-backend/internal/application/services"
	"github.com/drivelane/rental-backend/internal/domain/repositories"
)

// VehicleHandler handles vehicle-related HTTP requests
type VehicleHandler struct {
	service *services.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(service *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// CreateVehicle handles POST /api/vehicles
func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var props repositories.CreateVehicleProps
	if err := json.NewDecoder(r.Body).Decode(&props); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vehicle, err := h.service.Create(r.Context(), props)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, vehicle)
}

// GetVehicle handles GET /api/vehicles/{id}
func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "vehicle id is required")
		return
	}

	vehicle, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, vehicle)
}

// UpdateVehicle handles PUT /api/vehicles/{id}
func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "vehicle id is required")
		return
	}

	var props services.UpdateVehicleProps
	if err := json.NewDecoder(r.Body).Decode(&props); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vehicle, err := h.service.Update(r.Context(), id, props)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, vehicle)
}

// DeleteVehicle handles DELETE /api/vehicles/{id}
func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "vehicle id is required")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchVehicles handles GET /api/vehicles
func (h *VehicleHandler) SearchVehicles(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Search(r.Context(), parseSearchQuery(r))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
