package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/drivelane/rental-backend/internal/domain/entities"
	"github.com/drivelane/rental-backend/internal/domain/repositories"
	"github.com/drivelane/rental-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/drivelane/rental-backend/pkg/errors"
)

var reserveSearchSpec = searchSpec{
	table: "reserves",
	columns: []any{
		"id", "start_date", "end_date", "vehicle_id", "user_id",
		"created_at", "updated_at",
	},
	filterCols: []string{"user_id", "vehicle_id"},
	sortable: map[string]string{
		"start_date": "start_date",
		"end_date":   "end_date",
		"created_at": "created_at",
	},
}

// ReserveAdapter implements the ReserveRepository interface
type ReserveAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReserveAdapter creates a new reserve adapter
func NewReserveAdapter(client *postgres.Client) repositories.ReserveRepository {
	return &ReserveAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create constructs a reserve without persisting it
func (a *ReserveAdapter) Create(props repositories.CreateReserveProps) entities.Reserve {
	now := time.Now()
	return entities.Reserve{
		ID:        uuid.NewString(),
		StartDate: props.StartDate,
		EndDate:   props.EndDate,
		VehicleID: props.VehicleID,
		UserID:    props.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Insert persists the reserve without a conflict check; InsertChecked is
// the write path the booking flow uses
func (a *ReserveAdapter) Insert(ctx context.Context, reserve entities.Reserve) (*entities.Reserve, error) {
	if err := a.insert(ctx, a.client.DB(), reserve); err != nil {
		return nil, err
	}
	return &reserve, nil
}

// FindByID retrieves a reserve by id
func (a *ReserveAdapter) FindByID(ctx context.Context, id string) (*entities.Reserve, error) {
	query, args, err := a.db.From("reserves").
		Select(reserveSearchSpec.columns...).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	reserve, err := scanReserve(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("reserve with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get reserve", err)
	}
	return &reserve, nil
}

// Update overwrites all fields of the stored reserve and refreshes updated_at
func (a *ReserveAdapter) Update(ctx context.Context, reserve entities.Reserve) (*entities.Reserve, error) {
	updated, err := a.update(ctx, a.client.DB(), reserve)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the reserve permanently
func (a *ReserveAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("reserves").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete reserve", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("reserve with id %s not found", id))
	}
	return nil
}

// Search runs the filter -> sort -> paginate pipeline over reserves
func (a *ReserveAdapter) Search(ctx context.Context, query repositories.SearchQuery) (*repositories.SearchResult[entities.Reserve], error) {
	return runSearch(ctx, a.client.DB(), reserveSearchSpec, a.db, query, func(rows rowScanner) (entities.Reserve, error) {
		return scanReserve(rows)
	})
}

// FindByUser retrieves all reserves made by a user
func (a *ReserveAdapter) FindByUser(ctx context.Context, userID string) ([]entities.Reserve, error) {
	return a.findAll(ctx, goqu.Ex{"user_id": userID})
}

// FindByVehicle retrieves all reserves of a vehicle
func (a *ReserveAdapter) FindByVehicle(ctx context.Context, vehicleID string) ([]entities.Reserve, error) {
	return a.findAll(ctx, goqu.Ex{"vehicle_id": vehicleID})
}

// FindConflicting returns a reserve of the vehicle whose window overlaps
// [start, end), or nil when none does
func (a *ReserveAdapter) FindConflicting(ctx context.Context, vehicleID string, start, end time.Time, excludeID string) (*entities.Reserve, error) {
	return a.findConflicting(ctx, a.client.DB(), vehicleID, start, end, excludeID)
}

// InsertChecked runs the conflict check and the insert in one transaction,
// serialized per vehicle with an advisory lock so concurrent bookings of
// overlapping windows cannot both commit
func (a *ReserveAdapter) InsertChecked(ctx context.Context, reserve entities.Reserve) (*entities.Reserve, error) {
	err := a.withVehicleLock(ctx, reserve.VehicleID, func(tx *sql.Tx) error {
		conflict, err := a.findConflicting(ctx, tx, reserve.VehicleID, reserve.StartDate, reserve.EndDate, "")
		if err != nil {
			return err
		}
		if conflict != nil {
			return apperrors.NewConflictError("vehicle is already reserved for the selected period")
		}
		return a.insert(ctx, tx, reserve)
	})
	if err != nil {
		return nil, err
	}
	return &reserve, nil
}

// UpdateChecked runs the conflict check (excluding the reserve's own id)
// and the update in one transaction under the vehicle's advisory lock
func (a *ReserveAdapter) UpdateChecked(ctx context.Context, reserve entities.Reserve) (*entities.Reserve, error) {
	var updated *entities.Reserve
	err := a.withVehicleLock(ctx, reserve.VehicleID, func(tx *sql.Tx) error {
		conflict, err := a.findConflicting(ctx, tx, reserve.VehicleID, reserve.StartDate, reserve.EndDate, reserve.ID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return apperrors.NewConflictError("vehicle is already reserved for the selected period")
		}
		updated, err = a.update(ctx, tx, reserve)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (a *ReserveAdapter) withVehicleLock(ctx context.Context, vehicleID string, fn func(tx *sql.Tx) error) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	// Serializes all checked reserve writes for one vehicle; released at
	// commit/rollback.
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", vehicleID); err != nil {
		return apperrors.NewInternalError("failed to lock vehicle reserves", err)
	}

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit transaction", err)
	}
	return nil
}

func (a *ReserveAdapter) findConflicting(ctx context.Context, q queryer, vehicleID string, start, end time.Time, excludeID string) (*entities.Reserve, error) {
	// The three clauses mirror the window-overlap definition: new start
	// inside an existing window, new end inside it, or new window enclosing
	// it. Boundaries are inclusive/exclusive exactly as written so that
	// back-to-back reserves do not conflict.
	ds := a.db.From("reserves").
		Select(reserveSearchSpec.columns...).
		Where(
			goqu.Ex{"vehicle_id": vehicleID},
			goqu.Or(
				goqu.And(goqu.C("start_date").Lte(start), goqu.C("end_date").Gt(start)),
				goqu.And(goqu.C("start_date").Lt(end), goqu.C("end_date").Gte(end)),
				goqu.And(goqu.C("start_date").Gte(start), goqu.C("end_date").Lte(end)),
			),
		)
	if excludeID != "" {
		ds = ds.Where(goqu.C("id").Neq(excludeID))
	}

	query, args, err := ds.Limit(1).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build conflict query", err)
	}

	reserve, err := scanReserve(q.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check conflicting reserve", err)
	}
	return &reserve, nil
}

func (a *ReserveAdapter) insert(ctx context.Context, q queryer, reserve entities.Reserve) error {
	query, args, err := a.db.Insert("reserves").Rows(goqu.Record{
		"id":         reserve.ID,
		"start_date": reserve.StartDate,
		"end_date":   reserve.EndDate,
		"vehicle_id": reserve.VehicleID,
		"user_id":    reserve.UserID,
		"created_at": reserve.CreatedAt,
		"updated_at": reserve.UpdatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to insert reserve", err)
	}
	return nil
}

func (a *ReserveAdapter) update(ctx context.Context, q queryer, reserve entities.Reserve) (*entities.Reserve, error) {
	reserve.UpdatedAt = time.Now()

	query, args, err := a.db.Update("reserves").Set(goqu.Record{
		"start_date": reserve.StartDate,
		"end_date":   reserve.EndDate,
		"vehicle_id": reserve.VehicleID,
		"user_id":    reserve.UserID,
		"updated_at": reserve.UpdatedAt,
	}).Where(goqu.Ex{"id": reserve.ID}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update reserve", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get rows affected", err)
	}
	if affected == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("reserve with id %s not found", reserve.ID))
	}
	return &reserve, nil
}

func (a *ReserveAdapter) findAll(ctx context.Context, where goqu.Ex) ([]entities.Reserve, error) {
	query, args, err := a.db.From("reserves").
		Select(reserveSearchSpec.columns...).
		Where(where).
		Order(goqu.I("start_date").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reserves", err)
	}
	defer rows.Close()

	reserves := []entities.Reserve{}
	for rows.Next() {
		reserve, err := scanReserve(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan reserve", err)
		}
		reserves = append(reserves, reserve)
	}
	return reserves, rows.Err()
}

func scanReserve(row rowScanner) (entities.Reserve, error) {
	var reserve entities.Reserve
	err := row.Scan(
		&reserve.ID,
		&reserve.StartDate,
		&reserve.EndDate,
		&reserve.VehicleID,
		&reserve.UserID,
		&reserve.CreatedAt,
		&reserve.UpdatedAt,
	)
	return reserve, err
}
