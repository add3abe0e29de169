package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"adoptapi/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges email and password for a session token. Emails are matched lowercased, as stored.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeDecodeError(c, errInvalidBody)
		}
		res, err := svc.Login(c.UserContext(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeOK(c, fiber.StatusOK, res)
	}
}
