package handlers

import (
	"net/http"
	"testing"

	"github.com/anonto42/socialfeed/backend/internal/mocks"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthServer() (*mocks.AuthService, *echo.Echo) {
	svc := new(mocks.AuthService)
	e := newTestServer(0, func(g *echo.Group) {
		NewAuthHandler(svc).RegisterAuthRoutes(g.Group("/auth"))
	})
	return svc, e
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, e := newAuthServer()
		req := models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "s3cretpass"}
		svc.On("Register", mock.Anything, req).
			Return(&models.AuthResponse{Token: "tok", User: &models.User{ID: 1, Username: "alice"}}, nil)

		rec := doRequest(e, http.MethodPost, "/api/v1/auth/register",
			`{"username":"alice","email":"alice@example.com","password":"s3cretpass"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "tok", decodeBody[models.AuthResponse](t, rec).Token)
		assert.NotContains(t, rec.Body.String(), "s3cretpass")
	})

	t.Run("short password", func(t *testing.T) {
		svc, e := newAuthServer()

		rec := doRequest(e, http.MethodPost, "/api/v1/auth/register",
			`{"username":"alice","email":"alice@example.com","password":"short"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody[ErrorResponse](t, rec)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
		assert.Contains(t, body.Message, "password")
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("taken", func(t *testing.T) {
		svc, e := newAuthServer()
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, services.ErrConflict)

		rec := doRequest(e, http.MethodPost, "/api/v1/auth/register",
			`{"username":"alice","email":"alice@example.com","password":"s3cretpass"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	svc, e := newAuthServer()
	svc.On("Login", mock.Anything, models.LoginRequest{Username: "alice", Password: "wrong"}).
		Return(nil, services.ErrInvalidCredentials)

	rec := doRequest(e, http.MethodPost, "/api/v1/auth/login", `{"username":"alice","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeBody[ErrorResponse](t, rec).Code)
}

func TestAuthHandler_FirebaseLogin(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		svc, e := newAuthServer()
		svc.On("FirebaseLogin", mock.Anything, "id-token").Return(nil, services.ErrUnavailable)

		rec := doRequest(e, http.MethodPost, "/api/v1/auth/firebase-login", `{"idToken":"id-token"}`)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		_, e := newAuthServer()

		rec := doRequest(e, http.MethodPost, "/api/v1/auth/firebase-login", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
