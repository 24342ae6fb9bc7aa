package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Privilege yang dipakai route billing.
const (
	PrivilegeBilling       = 3
	PrivilegeKelolaFeeRule = 9
)

// RequirePrivilege memeriksa apakah klaim JWT memiliki privilege yang dibutuhkan.
// Harus dipasang setelah JWTMiddleware.
func RequirePrivilege(requiredPriv int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return unauthorized(c, "Missing or invalid JWT claims")
			}
			if !claims.HasPrivilege(requiredPriv) {
				return c.JSON(http.StatusForbidden, echo.Map{
					"status":  http.StatusForbidden,
					"message": "Anda tidak memiliki hak akses",
					"data":    nil,
				})
			}
			return next(c)
		}
	}
}
