package service

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"adoptapi/internal/model"
	"adoptapi/internal/repository"
	"adoptapi/internal/storage"
)

// MediaService stores pet images and user documents in object storage and records their keys.
type MediaService interface {
	// CreatePetWithImage uploads the image, then creates pet with its image key. The upload is removed
	// again when the pet cannot be stored. name, specie and birthDate are required.
	CreatePetWithImage(ctx context.Context, pet *model.Pet, image Upload) (*model.Pet, error)

	// AttachPetImage uploads an image for an existing pet and records its key.
	AttachPetImage(ctx context.Context, petID string, image Upload) (*model.Pet, error)

	// OpenPetImage streams the image of a pet. Callers close the reader.
	OpenPetImage(ctx context.Context, petID string) (io.ReadCloser, storage.ObjectInfo, error)

	// AddUserDocuments uploads files and appends them to the user's documents in upload order.
	AddUserDocuments(ctx context.Context, userID string, files []Upload) (*model.User, error)
}

type mediaService struct {
	store storage.Storage
	pets  repository.CRUD[model.Pet]
	users repository.CRUD[model.User]
}

// NewMediaService constructs a MediaService. store may be nil, in which case every operation
// fails with ErrStorageUnavailable.
func NewMediaService(store storage.Storage, pets repository.CRUD[model.Pet], users repository.CRUD[model.User]) MediaService {
	return &mediaService{store: store, pets: pets, users: users}
}

func (s *mediaService) CreatePetWithImage(ctx context.Context, pet *model.Pet, image Upload) (*model.Pet, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	if pet == nil || pet.Name == "" || pet.Specie == "" || pet.BirthDate == nil {
		return nil, errors.Wrap(ErrInvalidParams, "name, specie and birthDate are required")
	}
	key, err := s.put(ctx, storage.PetImagesPrefix, image)
	if err != nil {
		return nil, err
	}

	rec := *pet
	rec.Image = key
	stored, err := s.pets.Create(ctx, &rec)
	if err != nil {
		return nil, s.rollback(ctx, err, key)
	}
	return stored, nil
}

func (s *mediaService) AttachPetImage(ctx context.Context, petID string, image Upload) (*model.Pet, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	if petID == "" {
		return nil, ErrIDRequired
	}
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrNotFound
	}

	key, err := s.put(ctx, storage.PetImagesPrefix, image)
	if err != nil {
		return nil, err
	}
	if _, err := s.pets.Update(ctx, petID, repository.Fields{"image": key}); err != nil {
		return nil, s.rollback(ctx, err, key)
	}
	pet.Image = key
	return pet, nil
}

func (s *mediaService) OpenPetImage(ctx context.Context, petID string) (io.ReadCloser, storage.ObjectInfo, error) {
	if s.store == nil {
		return nil, storage.ObjectInfo{}, ErrStorageUnavailable
	}
	if petID == "" {
		return nil, storage.ObjectInfo{}, ErrIDRequired
	}
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	if pet == nil || pet.Image == "" {
		return nil, storage.ObjectInfo{}, ErrNotFound
	}
	return s.store.Get(ctx, pet.Image)
}

func (s *mediaService) AddUserDocuments(ctx context.Context, userID string, files []Upload) (*model.User, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	if userID == "" {
		return nil, ErrIDRequired
	}
	if len(files) == 0 {
		return nil, errors.Wrap(ErrInvalidParams, "at least one document is required")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	keys := make([]string, 0, len(files))
	docs := append([]model.UserDocument{}, user.Documents...)
	for _, f := range files {
		key, err := s.put(ctx, storage.UserDocumentsPrefix, f)
		if err != nil {
			return nil, s.rollback(ctx, err, keys...)
		}
		keys = append(keys, key)
		docs = append(docs, model.UserDocument{Name: f.Filename, Reference: key})
	}
	if _, err := s.users.Update(ctx, userID, repository.Fields{"documents": docs}); err != nil {
		return nil, s.rollback(ctx, err, keys...)
	}
	user.Documents = docs
	return user, nil
}

func (s *mediaService) put(ctx context.Context, prefix string, u Upload) (string, error) {
	if u.Reader == nil {
		return "", ErrReaderNil
	}
	ct := u.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	key := storage.NewKey(prefix, u.Filename)
	info, err := s.store.Put(ctx, key, u.Reader, storage.PutOptions{
		Size:         u.Size,
		ContentType:  ct,
		OriginalName: u.Filename,
	})
	if err != nil {
		return "", errors.Wrap(err, "upload to storage")
	}
	return info.Key, nil
}

// rollback removes already uploaded objects after a failed write and returns the error to report.
func (s *mediaService) rollback(ctx context.Context, cause error, keys ...string) error {
	for _, key := range keys {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return fmt.Errorf("db save failed: %w; rollback delete failed: %v", cause, delErr)
		}
	}
	return fmt.Errorf("db save failed: %w", cause)
}
