package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivelane/rental-backend/internal/adapters/memory"
	"github.com/drivelane/rental-backend/internal/api/handlers"
	"github.com/drivelane/rental-backend/internal/application/services"
	"github.com/drivelane/rental-backend/internal/domain/entities"
	"github.com/drivelane/rental-backend/internal/domain/repositories"
)

type reserveHandlerFixture struct {
	handler *handlers.ReserveHandler
	user    entities.User
	vehicle entities.Vehicle
}

func newReserveHandlerFixture(t *testing.T) *reserveHandlerFixture {
	t.Helper()
	ctx := context.Background()

	reserveRepo := memory.NewReserveRepository()
	vehicleRepo := memory.NewVehicleRepository()
	userRepo := memory.NewUserRepository()

	vehicle := vehicleRepo.Create(repositories.CreateVehicleProps{Name: "Ford Ka", Year: 2024, ValuePerDay: 95})
	_, err := vehicleRepo.Insert(ctx, vehicle)
	require.NoError(t, err)

	user := userRepo.Create(repositories.CreateUserProps{Name: "Paulo", Email: "paulo@example.com", Password: "x"})
	_, err = userRepo.Insert(ctx, user)
	require.NoError(t, err)

	service := services.NewReserveService(reserveRepo, vehicleRepo, userRepo, nil)
	return &reserveHandlerFixture{
		handler: handlers.NewReserveHandler(service),
		user:    user,
		vehicle: vehicle,
	}
}

func (f *reserveHandlerFixture) bookingBody(startDays, endDays int) string {
	start := time.Now().AddDate(0, 0, startDays).Format(time.RFC3339)
	end := time.Now().AddDate(0, 0, endDays).Format(time.RFC3339)
	return fmt.Sprintf(
		`{"start_date":%q,"end_date":%q,"vehicle_id":%q,"user_id":%q}`,
		start, end, f.vehicle.ID, f.user.ID,
	)
}

func (f *reserveHandlerFixture) post(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/reserves", strings.NewReader(body))
	w := httptest.NewRecorder()
	f.handler.CreateReserve(w, req)
	return w
}

func TestReserveHandler_CreateReserve(t *testing.T) {
	f := newReserveHandlerFixture(t)

	w := f.post(f.bookingBody(1, 5))
	require.Equal(t, http.StatusCreated, w.Code)

	var reserve entities.Reserve
	require.NoError(t, json.NewDecoder(w.Body).Decode(&reserve))
	assert.NotEmpty(t, reserve.ID)
	assert.Equal(t, f.vehicle.ID, reserve.VehicleID)
}

func TestReserveHandler_CreateReserve_OverlapMapsTo409(t *testing.T) {
	f := newReserveHandlerFixture(t)

	require.Equal(t, http.StatusCreated, f.post(f.bookingBody(1, 10)).Code)

	w := f.post(f.bookingBody(5, 15))
	assert.Equal(t, http.StatusConflict, w.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Contains(t, body["error"], "already reserved")
}

func TestReserveHandler_CreateReserve_InvalidWindowMapsTo400(t *testing.T) {
	f := newReserveHandlerFixture(t)

	w := f.post(f.bookingBody(5, 1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReserveHandler_ListUserReserves(t *testing.T) {
	f := newReserveHandlerFixture(t)
	require.Equal(t, http.StatusCreated, f.post(f.bookingBody(1, 5)).Code)

	req := httptest.NewRequest("GET", "/api/users/"+f.user.ID+"/reserves", nil)
	req.SetPathValue("id", f.user.ID)
	w := httptest.NewRecorder()
	f.handler.ListUserReserves(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Reserves []entities.Reserve `json:"reserves"`
		Count    int                `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Reserves, 1)
	assert.Equal(t, f.user.ID, body.Reserves[0].UserID)
}
