package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivelane/rental-backend/internal/adapters/memory"
	providersadapter "github.com/drivelane/rental-backend/internal/adapters/providers"
	"github.com/drivelane/rental-backend/internal/api/handlers"
	"github.com/drivelane/rental-backend/internal/application/services"
	"github.com/drivelane/rental-backend/internal/domain/entities"
)

func newUserHandler() *handlers.UserHandler {
	service := services.NewUserService(memory.NewUserRepository(), providersadapter.NewBcryptHashProvider())
	return handlers.NewUserHandler(service)
}

func createUser(t *testing.T, handler *handlers.UserHandler, body string) entities.User {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/users", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.CreateUser(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var user entities.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&user))
	return user
}

func TestUserHandler_CreateUser_OmitsPassword(t *testing.T) {
	handler := newUserHandler()

	req := httptest.NewRequest("POST", "/api/users", strings.NewReader(
		`{"name":"Paulo","email":"paulo@example.com","password":"secret"}`,
	))
	w := httptest.NewRecorder()
	handler.CreateUser(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestUserHandler_Login(t *testing.T) {
	handler := newUserHandler()
	createUser(t, handler, `{"name":"Paulo","email":"paulo@example.com","password":"secret"}`)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(
		`{"email":"paulo@example.com","password":"secret"}`,
	))
	w := httptest.NewRecorder()
	handler.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var user entities.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&user))
	assert.Equal(t, "Paulo", user.Name)
}

func TestUserHandler_Login_BadCredentialsMapTo401(t *testing.T) {
	handler := newUserHandler()
	createUser(t, handler, `{"name":"Paulo","email":"paulo@example.com","password":"secret"}`)

	// Wrong password and unknown email get the same answer
	for _, body := range []string{
		`{"email":"paulo@example.com","password":"wrong"}`,
		`{"email":"nobody@example.com","password":"secret"}`,
	} {
		req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.Login(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "invalid credentials", resp["error"])
	}
}

func TestUserHandler_Login_BadBody(t *testing.T) {
	handler := newUserHandler()

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	handler.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
