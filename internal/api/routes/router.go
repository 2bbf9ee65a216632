package routes

import (
	"net/http"

	"github.com/drivelane/rental-backend/internal/api/handlers"
	"github.com/drivelane/rental-backend/internal/api/middleware"
	"github.com/drivelane/rental-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	vehicleHandler *handlers.VehicleHandler
	userHandler    *handlers.UserHandler
	reserveHandler *handlers.ReserveHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	vehicleHandler *handlers.VehicleHandler,
	userHandler *handlers.UserHandler,
	reserveHandler *handlers.ReserveHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		vehicleHandler: vehicleHandler,
		userHandler:    userHandler,
		reserveHandler: reserveHandler,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Vehicle endpoints
	r.mux.HandleFunc("POST /api/vehicles", r.vehicleHandler.CreateVehicle)
	r.mux.HandleFunc("GET /api/vehicles", r.vehicleHandler.SearchVehicles)
	r.mux.HandleFunc("GET /api/vehicles/{id}", r.vehicleHandler.GetVehicle)
	r.mux.HandleFunc("PUT /api/vehicles/{id}", r.vehicleHandler.UpdateVehicle)
	r.mux.HandleFunc("DELETE /api/vehicles/{id}", r.vehicleHandler.DeleteVehicle)
	r.mux.HandleFunc("GET /api/vehicles/{id}/reserves", r.reserveHandler.ListVehicleReserves)

	// User endpoints
	r.mux.HandleFunc("POST /api/auth/login", r.userHandler.Login)
	r.mux.HandleFunc("POST /api/users", r.userHandler.CreateUser)
	r.mux.HandleFunc("GET /api/users", r.userHandler.SearchUsers)
	r.mux.HandleFunc("GET /api/users/{id}", r.userHandler.GetUser)
	r.mux.HandleFunc("PUT /api/users/{id}", r.userHandler.UpdateUser)
	r.mux.HandleFunc("DELETE /api/users/{id}", r.userHandler.DeleteUser)
	r.mux.HandleFunc("GET /api/users/{id}/reserves", r.reserveHandler.ListUserReserves)

	// Reserve endpoints
	r.mux.HandleFunc("POST /api/reserves", r.reserveHandler.CreateReserve)
	r.mux.HandleFunc("GET /api/reserves", r.reserveHandler.SearchReserves)
	r.mux.HandleFunc("GET /api/reserves/{id}", r.reserveHandler.GetReserve)
	r.mux.HandleFunc("PUT /api/reserves/{id}", r.reserveHandler.UpdateReserve)
	r.mux.HandleFunc("DELETE /api/reserves/{id}", r.reserveHandler.DeleteReserve)

	// Apply middleware chain
	var handler http.Handler = r.mux
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
