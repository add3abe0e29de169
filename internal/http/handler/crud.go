package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"adoptapi/internal/repository"
	"adoptapi/internal/service"
)

var errInvalidBody = errors.New("invalid request body")

func bindBody[T any](c *fiber.Ctx) (*T, error) {
	rec := new(T)
	if err := c.BodyParser(rec); err != nil {
		return nil, errInvalidBody
	}
	return rec, nil
}

// writeDecodeError keeps field-level validation messages and hides parser details.
func writeDecodeError(c *fiber.Ctx, err error) error {
	if repository.IsValidation(err) {
		return writeServiceError(c, err)
	}
	return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
}

func pathID(c *fiber.Ctx, param string) (string, error) {
	id := strings.TrimSpace(c.Params(param))
	if id == "" {
		return "", service.ErrIDRequired
	}
	return id, nil
}

// ListRecords returns the records matching the query string, used as an exact-match filter.
func ListRecords[T any](repo repository.CRUD[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := repository.Filter{}
		for k, v := range c.Queries() {
			filter[k] = v
		}
		recs, err := repo.GetAll(c.UserContext(), filter)
		if err != nil {
			return writeServiceError(c, err)
		}
		if recs == nil {
			recs = []T{}
		}
		return writeOK(c, fiber.StatusOK, recs)
	}
}

// GetRecord returns the record with the id in param. An unknown id yields a null payload.
func GetRecord[T any](repo repository.CRUD[T], param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, param)
		if err != nil {
			return writeServiceError(c, err)
		}
		return getRecord(c, repo, id)
	}
}

func getRecord[T any](c *fiber.Ctx, repo repository.CRUD[T], id string) error {
	rec, err := repo.GetByID(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeOK(c, fiber.StatusOK, rec)
}

// CreateRecord builds a record from the body with decode and stores it.
func CreateRecord[T any](repo repository.CRUD[T], decode func(c *fiber.Ctx) (*T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := decode(c)
		if err != nil {
			return writeDecodeError(c, err)
		}
		created, err := repo.Create(c.UserContext(), rec)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeOK(c, fiber.StatusCreated, created)
	}
}

// UpdateRecord merges the JSON body into the record with the id in param.
func UpdateRecord[T any](repo repository.CRUD[T], param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, param)
		if err != nil {
			return writeServiceError(c, err)
		}
		var fields repository.Fields
		if err := c.BodyParser(&fields); err != nil || fields == nil {
			return writeDecodeError(c, errInvalidBody)
		}
		res, err := repo.Update(c.UserContext(), id, fields)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeOK(c, fiber.StatusOK, res)
	}
}

// DeleteRecord removes the record with the id in param and returns it, or null.
func DeleteRecord[T any](repo repository.CRUD[T], param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, param)
		if err != nil {
			return writeServiceError(c, err)
		}
		rec, err := repo.Delete(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeOK(c, fiber.StatusOK, rec)
	}
}
