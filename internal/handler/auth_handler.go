package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"userhub/internal/auth"
	apperrors "userhub/internal/errors"
	"userhub/internal/model"
	"userhub/internal/service"
)

// AuthHandler handles the authentication endpoints.
type AuthHandler struct {
	identity     service.IdentityService
	tokens       *auth.TokenService
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. secureCookie controls the
// Secure flag on the session cookie.
func NewAuthHandler(identity service.IdentityService, tokens *auth.TokenService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		identity:     identity,
		tokens:       tokens,
		secureCookie: secureCookie,
	}
}

// SignUpRequest represents a registration request.
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// SignInRequest represents a login request.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignUp godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/sign-up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.identity.Register(c.Request().Context(), req.Name, req.Email, req.Password, model.Role(req.Role))
	if err != nil {
		return domainError(err)
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		return domainError(err)
	}
	c.SetCookie(auth.SessionCookie(token, h.secureCookie))

	return c.JSON(http.StatusCreated, user)
}

// SignIn godoc
// @Summary Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credentials"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.identity.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and bad password both answer 401 so the endpoint
		// does not leak which addresses are registered.
		if errors.Is(err, apperrors.ErrUserNotFound) {
			err = apperrors.ErrInvalidCredentials
		}
		return domainError(err)
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		return domainError(err)
	}
	c.SetCookie(auth.SessionCookie(token, h.secureCookie))

	return c.JSON(http.StatusOK, user)
}

// SignOut godoc
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/sign-out [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	c.SetCookie(auth.ExpiredSessionCookie(h.secureCookie))
	return c.JSON(http.StatusOK, map[string]string{
		"message": "signed out",
	})
}

// domainError converts a domain error into an echo HTTP error with the
// standard response body.
func domainError(err error) *echo.HTTPError {
	httpErr := apperrors.MapToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
