package handlers

import (
	"net/http"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// Register creates a local account and returns it with an API token
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// FirebaseLogin handles Firebase ID token verification and issues a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.FirebaseLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
