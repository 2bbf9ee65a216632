package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/drivelane/rental-backend/internal/domain/entities"
	"github.com/drivelane/rental-backend/internal/domain/repositories"
	"github.com/drivelane/rental-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/drivelane/rental-backend/pkg/errors"
)

var vehicleSearchSpec = searchSpec{
	table: "vehicles",
	columns: []any{
		"id", "name", "color", "year", "value_per_day",
		"number_of_passengers", "accessories", "created_at", "updated_at",
	},
	filterCols: []string{"name"},
	sortable: map[string]string{
		"name":       "name",
		"created_at": "created_at",
	},
	// Vehicles sort descending when the caller gives no direction
	defaultDir: repositories.SortDesc,
}

// VehicleAdapter implements the VehicleRepository interface
type VehicleAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewVehicleAdapter creates a new vehicle adapter
func NewVehicleAdapter(client *postgres.Client) repositories.VehicleRepository {
	return &VehicleAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create constructs a vehicle without persisting it
func (a *VehicleAdapter) Create(props repositories.CreateVehicleProps) entities.Vehicle {
	now := time.Now()
	return entities.Vehicle{
		ID:                 uuid.NewString(),
		Name:               props.Name,
		Color:              props.Color,
		Year:               props.Year,
		ValuePerDay:        props.ValuePerDay,
		NumberOfPassengers: props.NumberOfPassengers,
		Accessories:        props.Accessories,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Insert persists the vehicle
func (a *VehicleAdapter) Insert(ctx context.Context, vehicle entities.Vehicle) (*entities.Vehicle, error) {
	accessories, err := json.Marshal(vehicle.Accessories)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode accessories", err)
	}

	query, args, err := a.db.Insert("vehicles").Rows(goqu.Record{
		"id":                   vehicle.ID,
		"name":                 vehicle.Name,
		"color":                vehicle.Color,
		"year":                 vehicle.Year,
		"value_per_day":        vehicle.ValuePerDay,
		"number_of_passengers": vehicle.NumberOfPassengers,
		"accessories":          accessories,
		"created_at":           vehicle.CreatedAt,
		"updated_at":           vehicle.UpdatedAt,
	}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to insert vehicle", err)
	}
	return &vehicle, nil
}

// FindByID retrieves a vehicle by id
func (a *VehicleAdapter) FindByID(ctx context.Context, id string) (*entities.Vehicle, error) {
	query, args, err := a.db.From("vehicles").
		Select(vehicleSearchSpec.columns...).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	vehicle, err := scanVehicle(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("vehicle with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get vehicle", err)
	}
	return &vehicle, nil
}

// Update overwrites all fields of the stored vehicle and refreshes updated_at
func (a *VehicleAdapter) Update(ctx context.Context, vehicle entities.Vehicle) (*entities.Vehicle, error) {
	vehicle.UpdatedAt = time.Now()

	accessories, err := json.Marshal(vehicle.Accessories)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode accessories", err)
	}

	query, args, err := a.db.Update("vehicles").Set(goqu.Record{
		"name":                 vehicle.Name,
		"color":                vehicle.Color,
		"year":                 vehicle.Year,
		"value_per_day":        vehicle.ValuePerDay,
		"number_of_passengers": vehicle.NumberOfPassengers,
		"accessories":          accessories,
		"updated_at":           vehicle.UpdatedAt,
	}).Where(goqu.Ex{"id": vehicle.ID}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update vehicle", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get rows affected", err)
	}
	if affected == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("vehicle with id %s not found", vehicle.ID))
	}
	return &vehicle, nil
}

// Delete removes the vehicle permanently
func (a *VehicleAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("vehicles").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete vehicle", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("vehicle with id %s not found", id))
	}
	return nil
}

// Search runs the filter -> sort -> paginate pipeline over vehicles
func (a *VehicleAdapter) Search(ctx context.Context, query repositories.SearchQuery) (*repositories.SearchResult[entities.Vehicle], error) {
	return runSearch(ctx, a.client.DB(), vehicleSearchSpec, a.db, query, func(rows rowScanner) (entities.Vehicle, error) {
		return scanVehicle(rows)
	})
}

// FindByName retrieves a vehicle by its exact name
func (a *VehicleAdapter) FindByName(ctx context.Context, name string) (*entities.Vehicle, error) {
	query, args, err := a.db.From("vehicles").
		Select(vehicleSearchSpec.columns...).
		Where(goqu.Ex{"name": name}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	vehicle, err := scanVehicle(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("vehicle with name %s not found", name))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get vehicle", err)
	}
	return &vehicle, nil
}

// FindAllByIDs retrieves the vehicles whose ids exist, skipping absent ones
func (a *VehicleAdapter) FindAllByIDs(ctx context.Context, ids []string) ([]entities.Vehicle, error) {
	if len(ids) == 0 {
		return []entities.Vehicle{}, nil
	}

	query, args, err := a.db.From("vehicles").
		Select(vehicleSearchSpec.columns...).
		Where(goqu.C("id").In(ids)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list vehicles", err)
	}
	defer rows.Close()

	vehicles := []entities.Vehicle{}
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan vehicle", err)
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, rows.Err()
}

// ConflictingName fails with Conflict when the name is already in use
func (a *VehicleAdapter) ConflictingName(ctx context.Context, name string) error {
	query, args, err := a.db.From("vehicles").
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.Ex{"name": name}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return apperrors.NewInternalError("failed to check vehicle name", err)
	}
	if count > 0 {
		return apperrors.NewConflictError("name already used on another vehicle")
	}
	return nil
}

func scanVehicle(row rowScanner) (entities.Vehicle, error) {
	var vehicle entities.Vehicle
	var accessories []byte

	err := row.Scan(
		&vehicle.ID,
		&vehicle.Name,
		&vehicle.Color,
		&vehicle.Year,
		&vehicle.ValuePerDay,
		&vehicle.NumberOfPassengers,
		&accessories,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)
	if err != nil {
		return entities.Vehicle{}, err
	}

	if len(accessories) > 0 {
		if err := json.Unmarshal(accessories, &vehicle.Accessories); err != nil {
			return entities.Vehicle{}, err
		}
	}
	return vehicle, nil
}
