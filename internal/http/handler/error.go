package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"adoptapi/internal/http/middleware"
	"adoptapi/internal/mocking"
	"adoptapi/internal/repository"
	"adoptapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	Success   bool          `json:"success"`
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// okPayload wraps every successful response.
type okPayload struct {
	Success bool `json:"success"`
	Payload any  `json:"payload"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "VALIDATION_ERROR", "CONFLICT", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

func writeOK(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(okPayload{Success: true, Payload: payload})
}

// writeServiceError maps repository and service errors onto the error envelope.
// Only messages built from our own sentinels and typed errors reach the client.
func writeServiceError(c *fiber.Ctx, err error) error {
	var (
		validation *repository.ValidationError
		conflict   *repository.ConflictError
	)
	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "ID_REQUIRED", "id is required")
	case errors.As(err, &validation):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", validation.Error())
	case errors.Is(err, mocking.ErrQuantityTooLarge):
		return writeError(c, fiber.StatusBadRequest, "INVALID_QUANTITY", err.Error())
	case errors.Is(err, service.ErrInvalidParams):
		return writeError(c, fiber.StatusBadRequest, "INVALID_PARAMS", err.Error())
	case errors.Is(err, service.ErrReaderNil):
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	case errors.As(err, &conflict):
		return writeError(c, fiber.StatusConflict, "CONFLICT", conflict.Error())
	case errors.Is(err, repository.ErrDuplicateKey):
		return writeError(c, fiber.StatusConflict, "CONFLICT", repository.ErrDuplicateKey.Error())
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	case errors.Is(err, service.ErrStorageUnavailable):
		return writeError(c, fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "object storage unavailable")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "authentication required")
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", "forbidden")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
