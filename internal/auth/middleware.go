package auth

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "trtlmarket/internal/errors"
	"trtlmarket/internal/model"
)

// Unauthenticated decides what an anonymous or expired request receives.
type Unauthenticated func(c echo.Context) error

// RedirectToLogin sends browsers to the login form.
func RedirectToLogin(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/login")
}

// RespondUnauthorized answers API clients with 401.
func RespondUnauthorized(c echo.Context) error {
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
		Error: "authentication required",
		Code:  "UNAUTHORIZED",
	})
}

// RequireSession validates the session token (cookie or bearer header), rejects revoked
// sessions and loads the user into the request context.
func RequireSession(m *SessionManager, onFail Unauthenticated) echo.MiddlewareFunc {
	validate := echojwt.WithConfig(echojwt.Config{
		SigningKey:  m.Secret(),
		ContextKey:  SessionContextKey,
		TokenLookup: "cookie:" + SessionCookie + ",header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(SessionClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return onFail(c)
		},
	})

	load := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFromContext(c)
			if claims == nil || m.IsRevoked(c.Request().Context(), claims) {
				m.ClearCookie(c)
				return onFail(c)
			}

			user, err := m.Deserialize(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrSessionUserGone) {
					m.ClearCookie(c)
					return onFail(c)
				}
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return validate(load(next))
	}
}

// RequireModerator allows only roles that can moderate.
func RequireModerator(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil || !user.Role.CanModerate() {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: apperrors.ErrForbidden.Error(),
				Code:  "FORBIDDEN",
			})
		}
		return next(c)
	}
}

// ClaimsFromContext returns the validated session claims, or nil.
func ClaimsFromContext(c echo.Context) *SessionClaims {
	token, ok := c.Get(SessionContextKey).(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

// CurrentUser returns the user loaded by RequireSession, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(UserContextKey).(*model.User)
	return user
}
