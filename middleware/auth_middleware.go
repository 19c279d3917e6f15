// middleware/auth_middleware.go
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mandisetu/mandisetu_backend/models"
)

// RequireRole checks that the authenticated principal carries one of the
// allowed role claims. Runs after JWTMiddleware.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := ExtractRole(c)

			if role == "" {
				return c.JSON(http.StatusUnauthorized, models.ApiResponse(
					http.StatusUnauthorized, false, "Authentication failed: role not found", nil))
			}

			for _, allowed := range allowedRoles {
				if role == allowed {
					return next(c)
				}
			}

			c.Logger().Warnf("Access denied for role %s on %s", role, c.Request().URL.Path)
			return c.JSON(http.StatusForbidden, models.ApiResponse(
				http.StatusForbidden, false, "Access denied for your role", nil))
		}
	}
}

// RequireWholesaler gates routes to wholesaler principals.
func RequireWholesaler() echo.MiddlewareFunc {
	return RequireRole(string(models.RoleWholesaler))
}

// RequireRetailer gates routes to retailer principals.
func RequireRetailer() echo.MiddlewareFunc {
	return RequireRole(string(models.RoleRetailer))
}

// RequireAdmin gates routes to back-office tokens.
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(RoleAdmin)
}
