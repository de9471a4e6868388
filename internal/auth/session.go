package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"userhub/internal/model"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session"

// SessionCookie builds the HTTP-only cookie carrying a signed session token.
// secure is set outside development so the cookie only travels over TLS.
func SessionCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(SessionTokenExpiry),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie clears the session cookie on sign-out.
func ExpiredSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ActorFromContext resolves the authenticated actor placed on the context by
// the session middleware.
func ActorFromContext(c echo.Context) (Actor, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return Actor{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Actor{}, ErrInvalidToken
	}
	return Actor{ID: claims.UserID, Role: model.Role(claims.Role)}, nil
}
