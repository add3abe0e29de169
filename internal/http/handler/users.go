package handler

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"adoptapi/internal/http/middleware"
	"adoptapi/internal/model"
	"adoptapi/internal/repository"
	"adoptapi/internal/service"
)

// userInput carries the plaintext password, which model.User never reads from JSON.
type userInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func decodeUser(c *fiber.Ctx) (*model.User, error) {
	var in userInput
	if err := c.BodyParser(&in); err != nil {
		return nil, errInvalidBody
	}
	return &model.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Age:       in.Age,
		Password:  in.Password,
		Role:      in.Role,
	}, nil
}

// GetUser returns a user to an authenticated caller. Non-admins may only read themselves.
func GetUser(users repository.CRUD[model.User]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "uid")
		if err != nil {
			return writeServiceError(c, err)
		}
		callerID, role := middleware.Caller(c)
		if role != model.RoleAdmin && callerID != id {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "not allowed to read this user")
		}
		return getRecord(c, users, id)
	}
}

// AddUserDocuments appends the multipart "documents" files to a user.
func AddUserDocuments(media service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "uid")
		if err != nil {
			return writeServiceError(c, err)
		}
		form, err := c.MultipartForm()
		if err != nil || len(form.File["documents"]) == 0 {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "at least one document is required")
		}

		headers := form.File["documents"]
		uploads := make([]service.Upload, 0, len(headers))
		closers := make([]io.Closer, 0, len(headers))
		defer func() {
			for _, f := range closers {
				f.Close()
			}
		}()
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			closers = append(closers, f)
			uploads = append(uploads, service.Upload{
				Reader:      f,
				Filename:    fh.Filename,
				ContentType: fh.Header.Get(fiber.HeaderContentType),
				Size:        fh.Size,
			})
		}

		user, err := media.AddUserDocuments(c.UserContext(), id, uploads)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeOK(c, fiber.StatusOK, user)
	}
}
