package middleware

import (
	"net/http"

	"techstock/internal/model"
	"techstock/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequireOwner rejects requests whose token does not carry the owner role.
// Applied to destructive routes (delete product/import/sale, role changes).
func RequireOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		role, ok := GetRoleFromContext(c)
		if !ok || role != model.RoleOwner {
			log.Warn("Owner-only action denied",
				zap.String("role", role),
				zap.String("path", c.Path()))
			return c.JSON(http.StatusForbidden, echo.Map{
				"error": "this action requires the owner role",
			})
		}

		return next(c)
	}
}
