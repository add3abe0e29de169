package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"adoptapi/internal/auth"
)

const (
	// UserIDLocalKey holds the authenticated user id.
	UserIDLocalKey = "user_id"
	// RoleLocalKey holds the authenticated user role.
	RoleLocalKey = "role"
)

// TokenParser validates bearer tokens. *auth.TokenIssuer implements it.
type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

// Auth requires a valid "Authorization: Bearer <token>" header and stores the caller's id and role
// in locals. Failures surface as 401 through the app error handler.
func Auth(parser TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		claims, err := parser.Parse(strings.TrimSpace(token))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}
		c.Locals(UserIDLocalKey, claims.UserID)
		c.Locals(RoleLocalKey, claims.Role)
		return c.Next()
	}
}

// Caller returns the id and role stored by Auth.
func Caller(c *fiber.Ctx) (id, role string) {
	id, _ = c.Locals(UserIDLocalKey).(string)
	role, _ = c.Locals(RoleLocalKey).(string)
	return id, role
}
