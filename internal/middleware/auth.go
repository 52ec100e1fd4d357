// Package middleware contains the request-level guards shared by all
// protected routes: bearer-token authentication, role enforcement, rate
// limiting and response caching.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/estatedesk/estate-catalog/internal/auth"
)

// Context keys set by Authenticate for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// Authenticate returns the authorization gate: middleware that rejects any
// request without a valid bearer access token and injects the verified
// identity into the request context.  The 401 message is uniform regardless
// of cause; when prod is false a detail field reports whether the token was
// missing, expired or malformed.
func Authenticate(tokens *auth.Manager, prod bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return unauthorized(c, prod, "missing bearer token")
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := tokens.Validate(raw, auth.KindAccess)
			if err != nil {
				return unauthorized(c, prod, err.Error())
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxEmail, claims.Email)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, prod bool, detail string) error {
	body := echo.Map{"error": "unauthorized"}
	if !prod {
		body["detail"] = detail
	}
	return c.JSON(http.StatusUnauthorized, body)
}

// UserID returns the authenticated user's id from context.  It is only
// meaningful on routes behind Authenticate.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(CtxUserID).(uint64)
	return id, ok
}
