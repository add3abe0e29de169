package service

import (
	"context"

	"github.com/pkg/errors"

	"adoptapi/internal/model"
	"adoptapi/internal/repository"
)

// Generator produces mock records. *mocking.Generator implements it.
type Generator interface {
	GeneratePets(quantity int) []model.Pet
	GenerateUsers(quantity int) ([]model.User, error)
}

// SeedResult reports what GenerateData inserted.
type SeedResult struct {
	Users []model.User `json:"users"`
	Pets  []model.Pet  `json:"pets"`
}

// SeedService generates mock data and optionally persists it.
type SeedService interface {
	// MockPets generates pets without storing them.
	MockPets(quantity int) []model.Pet
	// MockUsers generates users without storing them.
	MockUsers(quantity int) ([]model.User, error)
	// GenerateData generates users and pets and inserts each batch with CreateMany.
	GenerateData(ctx context.Context, users, pets int) (*SeedResult, error)
}

type seedService struct {
	gen   Generator
	users repository.CRUD[model.User]
	pets  repository.CRUD[model.Pet]
}

// NewSeedService constructs a SeedService.
func NewSeedService(gen Generator, users repository.CRUD[model.User], pets repository.CRUD[model.Pet]) SeedService {
	return &seedService{gen: gen, users: users, pets: pets}
}

func (s *seedService) MockPets(quantity int) []model.Pet {
	return s.gen.GeneratePets(quantity)
}

func (s *seedService) MockUsers(quantity int) ([]model.User, error) {
	return s.gen.GenerateUsers(quantity)
}

func (s *seedService) GenerateData(ctx context.Context, users, pets int) (*SeedResult, error) {
	if users < 0 || pets < 0 {
		return nil, ErrInvalidParams
	}
	genUsers, err := s.gen.GenerateUsers(users)
	if err != nil {
		return nil, errors.Wrap(err, "generate users")
	}
	storedUsers, err := s.users.CreateMany(ctx, genUsers)
	if err != nil {
		return nil, errors.Wrap(err, "insert users")
	}
	storedPets, err := s.pets.CreateMany(ctx, s.gen.GeneratePets(pets))
	if err != nil {
		return nil, errors.Wrap(err, "insert pets")
	}
	return &SeedResult{Users: storedUsers, Pets: storedPets}, nil
}
