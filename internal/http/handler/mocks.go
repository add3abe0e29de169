package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"adoptapi/internal/service"
)

var errBadQuantity = errors.New("quantity must be a non-negative integer")

// quantity reads :quantity, then ?quantity=, then falls back to def. Values above limit are rejected.
func quantity(c *fiber.Ctx, def, limit int) (int, error) {
	raw := c.Params("quantity")
	if raw == "" {
		raw = c.Query("quantity")
	}
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errBadQuantity
	}
	if n > limit {
		return 0, fmt.Errorf("quantity must not exceed %d", limit)
	}
	return n, nil
}

// MockPets generates pets without storing them.
func MockPets(seed service.SeedService, def, limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := quantity(c, def, limit)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUANTITY", err.Error())
		}
		return writeOK(c, fiber.StatusOK, seed.MockPets(n))
	}
}

// MockUsers generates users without storing them.
func MockUsers(seed service.SeedService, def, limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := quantity(c, def, limit)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUANTITY", err.Error())
		}
		users, err := seed.MockUsers(n)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeOK(c, fiber.StatusOK, users)
	}
}

type generateRequest struct {
	Users *int `json:"users"`
	Pets  *int `json:"pets"`
}

// GenerateData generates and inserts users and pets. Both counts must be present as positive numbers no larger than limit.
func GenerateData(seed service.SeedService, limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req generateRequest
		if err := c.BodyParser(&req); err != nil || req.Users == nil || req.Pets == nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PARAMS", "users and pets must be numbers")
		}
		if *req.Users <= 0 || *req.Pets <= 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PARAMS", "users and pets must be positive numbers")
		}
		if *req.Users > limit || *req.Pets > limit {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUANTITY", fmt.Sprintf("users and pets must not exceed %d", limit))
		}
		res, err := seed.GenerateData(c.UserContext(), *req.Users, *req.Pets)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeOK(c, fiber.StatusCreated, res)
	}
}
