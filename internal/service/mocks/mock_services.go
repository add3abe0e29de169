package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"adoptapi/internal/model"
	"adoptapi/internal/service"
	"adoptapi/internal/storage"
)

type MockSeedService struct {
	mock.Mock
}

func (m *MockSeedService) MockPets(quantity int) []model.Pet {
	args := m.Called(quantity)
	return args.Get(0).([]model.Pet)
}

func (m *MockSeedService) MockUsers(quantity int) ([]model.User, error) {
	args := m.Called(quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockSeedService) GenerateData(ctx context.Context, users, pets int) (*service.SeedResult, error) {
	args := m.Called(ctx, users, pets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SeedResult), args.Error(1)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) CreatePetWithImage(ctx context.Context, pet *model.Pet, image service.Upload) (*model.Pet, error) {
	args := m.Called(ctx, pet, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pet), args.Error(1)
}

func (m *MockMediaService) AttachPetImage(ctx context.Context, petID string, image service.Upload) (*model.Pet, error) {
	args := m.Called(ctx, petID, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pet), args.Error(1)
}

func (m *MockMediaService) OpenPetImage(ctx context.Context, petID string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, petID)
	if args.Get(0) == nil {
		return nil, storage.ObjectInfo{}, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockMediaService) AddUserDocuments(ctx context.Context, userID string, files []service.Upload) (*model.User, error) {
	args := m.Called(ctx, userID, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}
