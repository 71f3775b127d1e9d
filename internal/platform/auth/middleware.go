package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

// DoctorIDKey carries the authenticated doctor's id in the request context.
const DoctorIDKey contextKey = "doctor_id"

// RequireAuth rejects requests without a valid bearer token before any
// handler (and therefore any storage write) runs.
func RequireAuth(issuer *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			doctorID, err := issuer.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx := context.WithValue(c.Request().Context(), DoctorIDKey, doctorID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// DoctorIDFromContext retrieves the authenticated doctor id, or 0 when the
// request carries no identity.
func DoctorIDFromContext(ctx context.Context) int64 {
	id, _ := ctx.Value(DoctorIDKey).(int64)
	return id
}
