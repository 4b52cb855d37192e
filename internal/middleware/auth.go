package middleware

import (
	"context"
	"net/http"

	"dukamart/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// JWTCustomClaims carries the caller identity issued by the external auth
// service. Tokens are verified here, never minted.
type JWTCustomClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AttachClaims is the echo-jwt success handler: it copies the verified
// customer ID and role from the token onto the request context.
func AttachClaims(c echo.Context) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return
	}
	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok {
		return
	}

	customerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return
	}

	role := claims.Role
	if role == "" {
		role = common.RoleCustomer
	}

	ctx := context.WithValue(c.Request().Context(), common.CustomerIDKey, customerID)
	ctx = context.WithValue(ctx, common.RoleKey, role)
	c.SetRequest(c.Request().WithContext(ctx))
}

// RequireAdmin guards admin-only routes. Must run after the JWT middleware.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := common.GetRoleFromContext(c.Request().Context())
			if !ok || role != common.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}
