package handler

import (
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"adoptapi/internal/model"
	"adoptapi/internal/repository"
	"adoptapi/internal/service"
)

// petInput accepts JSON bodies and multipart forms alike.
type petInput struct {
	Name      string `json:"name" form:"name"`
	Specie    string `json:"specie" form:"specie"`
	BirthDate string `json:"birthDate" form:"birthDate"`
	Adopted   bool   `json:"adopted" form:"adopted"`
	Owner     string `json:"owner" form:"owner"`
	Image     string `json:"image" form:"-"`
}

func decodePet(c *fiber.Ctx) (*model.Pet, error) {
	var in petInput
	if err := c.BodyParser(&in); err != nil {
		return nil, errInvalidBody
	}
	pet := &model.Pet{
		Name:    strings.TrimSpace(in.Name),
		Specie:  strings.TrimSpace(in.Specie),
		Adopted: in.Adopted,
		Image:   in.Image,
	}
	if in.BirthDate != "" {
		d, err := parseDate(in.BirthDate)
		if err != nil {
			return nil, &repository.ValidationError{Field: "birthDate", Reason: "must be a date (YYYY-MM-DD or RFC 3339)"}
		}
		pet.BirthDate = &d
	}
	if in.Owner != "" {
		oid, err := repository.ParseID(in.Owner)
		if err != nil {
			return nil, &repository.ValidationError{Field: "owner", Reason: "must be a user id"}
		}
		pet.Owner = &oid
	}
	return pet, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}

// formUpload opens the multipart file in field. The caller closes the returned file.
func formUpload(c *fiber.Ctx, field string) (service.Upload, io.Closer, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return service.Upload{}, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return service.Upload{}, nil, err
	}
	return service.Upload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
	}, f, nil
}

// CreatePetWithImage handles multipart/form-data with name, specie, birthDate and an image file.
func CreatePetWithImage(media service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pet, err := decodePet(c)
		if err != nil {
			return writeDecodeError(c, err)
		}
		upload, f, err := formUpload(c, "image")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "image file is required")
		}
		defer f.Close()

		created, err := media.CreatePetWithImage(c.UserContext(), pet, upload)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeOK(c, fiber.StatusCreated, created)
	}
}

// AttachPetImage replaces the image of an existing pet.
func AttachPetImage(media service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "pid")
		if err != nil {
			return writeServiceError(c, err)
		}
		upload, f, err := formUpload(c, "image")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "image file is required")
		}
		defer f.Close()

		pet, err := media.AttachPetImage(c.UserContext(), id, upload)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeOK(c, fiber.StatusOK, pet)
	}
}

// GetPetImage streams the stored image of a pet.
func GetPetImage(media service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "pid")
		if err != nil {
			return writeServiceError(c, err)
		}
		body, info, err := media.OpenPetImage(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		ct := info.ContentType
		if ct == "" {
			ct = fiber.MIMEOctetStream
		}
		c.Set(fiber.HeaderContentType, ct)
		size := -1
		if info.Size > 0 {
			size = int(info.Size)
		}
		return c.Status(fiber.StatusOK).SendStream(body, size)
	}
}
