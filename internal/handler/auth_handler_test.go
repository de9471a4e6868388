package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"userhub/internal/auth"
	apperrors "userhub/internal/errors"
	"userhub/internal/model"
	"userhub/internal/service"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// newTestContext builds an echo context the way the router would: JSON body,
// validator installed, and, when an actor is given, the parsed session token
// the jwt middleware would have set.
func newTestContext(method, target, body string, actor *auth.Actor) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if actor != nil {
		c.Set("user", &jwt.Token{Claims: &auth.Claims{
			UserID: actor.ID,
			Role:   string(actor.Role),
		}})
	}
	return c, rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.SessionCookieName {
			return cookie
		}
	}
	return nil
}

// MockIdentityService is a mock implementation of service.IdentityService.
type MockIdentityService struct {
	mock.Mock
}

var _ service.IdentityService = (*MockIdentityService)(nil)

func (m *MockIdentityService) Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	args := m.Called(ctx, name, email, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockIdentityService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestAuthHandler_SignUp(t *testing.T) {
	identity := new(MockIdentityService)
	identity.On("Register", mock.Anything, "Ann", "ann@example.com", "password123", model.Role("")).
		Return(&model.User{ID: 1, Name: "Ann", Email: "ann@example.com", PasswordHash: "hash", Role: model.RoleUser}, nil)

	h := NewAuthHandler(identity, auth.NewTokenService("test-secret"), false)
	c, rec := newTestContext(http.MethodPost, "/auth/sign-up",
		`{"name":"Ann","email":"ann@example.com","password":"password123"}`, nil)

	assert.NoError(t, h.SignUp(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ann@example.com", body["email"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")

	cookie := sessionCookie(rec)
	assert.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestAuthHandler_SignUp_DuplicateEmail(t *testing.T) {
	identity := new(MockIdentityService)
	identity.On("Register", mock.Anything, "Ann", "taken@example.com", "password123", model.Role("")).
		Return(nil, apperrors.ErrDuplicateEmail)

	h := NewAuthHandler(identity, auth.NewTokenService("test-secret"), false)
	c, _ := newTestContext(http.MethodPost, "/auth/sign-up",
		`{"name":"Ann","email":"taken@example.com","password":"password123"}`, nil)

	err := h.SignUp(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestAuthHandler_SignUp_Validation(t *testing.T) {
	h := NewAuthHandler(new(MockIdentityService), auth.NewTokenService("test-secret"), false)

	// Single-character name and malformed email both fail shape validation.
	c, _ := newTestContext(http.MethodPost, "/auth/sign-up",
		`{"name":"A","email":"not-an-email","password":"x"}`, nil)

	err := h.SignUp(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestAuthHandler_SignIn(t *testing.T) {
	identity := new(MockIdentityService)
	identity.On("Authenticate", mock.Anything, "ann@example.com", "password123").
		Return(&model.User{ID: 1, Email: "ann@example.com", Role: model.RoleUser}, nil)

	h := NewAuthHandler(identity, auth.NewTokenService("test-secret"), false)
	c, rec := newTestContext(http.MethodPost, "/auth/sign-in",
		`{"email":"ann@example.com","password":"password123"}`, nil)

	assert.NoError(t, h.SignIn(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, sessionCookie(rec))
}

func TestAuthHandler_SignIn_Failures(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
	}{
		{"wrong password", apperrors.ErrInvalidCredentials},
		// Unknown email answers the same 401 as a bad password.
		{"unknown email", apperrors.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := new(MockIdentityService)
			identity.On("Authenticate", mock.Anything, "ann@example.com", "badpass1").
				Return(nil, tt.serviceErr)

			h := NewAuthHandler(identity, auth.NewTokenService("test-secret"), false)
			c, rec := newTestContext(http.MethodPost, "/auth/sign-in",
				`{"email":"ann@example.com","password":"badpass1"}`, nil)

			err := h.SignIn(c)
			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok)
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
			assert.Nil(t, sessionCookie(rec))
		})
	}
}

func TestAuthHandler_SignOut(t *testing.T) {
	h := NewAuthHandler(new(MockIdentityService), auth.NewTokenService("test-secret"), false)
	c, rec := newTestContext(http.MethodPost, "/auth/sign-out", "", &auth.Actor{ID: 1, Role: model.RoleUser})

	assert.NoError(t, h.SignOut(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(rec)
	assert.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}
