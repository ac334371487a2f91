package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"cultivapp/entities"
	"cultivapp/pkg/auth/service"
)

// Auth verifies the bearer token and stores "uid" and "role" on the context.
func Auth(auth service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			claims, err := auth.Verify(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			c.Set("uid", claims.UserID)
			c.Set("role", string(claims.Role))
			return next(c)
		}
	}
}

// AdminOnly rejects requests whose verified role is not ADMIN. Must run
// after Auth.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role != string(entities.RoleAdmin) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "admin role required"})
			}
			return next(c)
		}
	}
}
