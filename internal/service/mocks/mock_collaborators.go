package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"adoptapi/internal/model"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GeneratePets(quantity int) []model.Pet {
	args := m.Called(quantity)
	return args.Get(0).([]model.Pet)
}

func (m *MockGenerator) GenerateUsers(quantity int) ([]model.User, error) {
	args := m.Called(quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

type MockCredentials struct {
	mock.Mock
}

func (m *MockCredentials) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockCredentials) VerifyPassword(plaintext, hash string) bool {
	args := m.Called(plaintext, hash)
	return args.Bool(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(userID, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}
