package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/drivelane/rental-backend/internal/domain/entities"
	"github.com/drivelane/rental-backend/internal/domain/providers"
	"github.com/drivelane/rental-backend/internal/domain/repositories"
)

// Cache TTLs (in seconds)
const (
	vehicleByIDTTL = 300 // 5 minutes for single vehicle lookups
)

// CachedVehicleAdapter wraps a VehicleRepository with read-through caching
// of id lookups; every write invalidates the cached entry
type CachedVehicleAdapter struct {
	adapter repositories.VehicleRepository
	cache   providers.CacheProvider
}

// NewCachedVehicleAdapter creates a new cached vehicle adapter
func NewCachedVehicleAdapter(adapter repositories.VehicleRepository, cache providers.CacheProvider) repositories.VehicleRepository {
	return &CachedVehicleAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

func vehicleCacheKey(id string) string {
	return fmt.Sprintf("vehicle:%s", id)
}

// Create constructs a vehicle without persisting it
func (a *CachedVehicleAdapter) Create(props repositories.CreateVehicleProps) entities.Vehicle {
	return a.adapter.Create(props)
}

// Insert persists the vehicle
func (a *CachedVehicleAdapter) Insert(ctx context.Context, vehicle entities.Vehicle) (*entities.Vehicle, error) {
	return a.adapter.Insert(ctx, vehicle)
}

// FindByID retrieves a vehicle by id with caching
func (a *CachedVehicleAdapter) FindByID(ctx context.Context, id string) (*entities.Vehicle, error) {
	cacheKey := vehicleCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var vehicle entities.Vehicle
		if err := json.Unmarshal(cached, &vehicle); err == nil {
			return &vehicle, nil
		}
		log.Warn().Str("vehicle_id", id).Msg("failed to unmarshal cached vehicle")
	}

	vehicle, err := a.adapter.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(vehicle); err == nil {
		if err := a.cache.Set(ctx, cacheKey, data, vehicleByIDTTL); err != nil {
			log.Warn().Err(err).Str("vehicle_id", id).Msg("failed to cache vehicle")
		}
	}
	return vehicle, nil
}

// Update overwrites the stored vehicle and invalidates its cache entry
func (a *CachedVehicleAdapter) Update(ctx context.Context, vehicle entities.Vehicle) (*entities.Vehicle, error) {
	updated, err := a.adapter.Update(ctx, vehicle)
	if err != nil {
		return nil, err
	}
	a.invalidate(ctx, vehicle.ID)
	return updated, nil
}

// Delete removes the vehicle and invalidates its cache entry
func (a *CachedVehicleAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	a.invalidate(ctx, id)
	return nil
}

// Search always goes to the backing repository
func (a *CachedVehicleAdapter) Search(ctx context.Context, query repositories.SearchQuery) (*repositories.SearchResult[entities.Vehicle], error) {
	return a.adapter.Search(ctx, query)
}

// FindByName retrieves a vehicle by its exact name
func (a *CachedVehicleAdapter) FindByName(ctx context.Context, name string) (*entities.Vehicle, error) {
	return a.adapter.FindByName(ctx, name)
}

// FindAllByIDs retrieves the vehicles whose ids exist, skipping absent ones
func (a *CachedVehicleAdapter) FindAllByIDs(ctx context.Context, ids []string) ([]entities.Vehicle, error) {
	return a.adapter.FindAllByIDs(ctx, ids)
}

// ConflictingName fails with Conflict when the name is already in use
func (a *CachedVehicleAdapter) ConflictingName(ctx context.Context, name string) error {
	return a.adapter.ConflictingName(ctx, name)
}

func (a *CachedVehicleAdapter) invalidate(ctx context.Context, id string) {
	if err := a.cache.Delete(ctx, vehicleCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("vehicle_id", id).Msg("failed to invalidate vehicle cache")
	}
}
