package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"adoptapi/internal/model"
	"adoptapi/internal/repository"
	repoMocks "adoptapi/internal/repository/mocks"
	"adoptapi/internal/service"
	svcMocks "adoptapi/internal/service/mocks"
)

func TestSeedService_GenerateData(t *testing.T) {
	ctx := context.Background()
	users := []model.User{{Email: "a@x.io"}, {Email: "b@x.io"}}
	pets := []model.Pet{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	tests := []struct {
		name       string
		users      int
		pets       int
		setupMocks func(g *svcMocks.MockGenerator, u *repoMocks.MockRepository[model.User], p *repoMocks.MockRepository[model.Pet])
		wantErr    error
		wantErrMsg string
	}{
		{
			name:  "happy path",
			users: 1,
			pets:  2,
			setupMocks: func(g *svcMocks.MockGenerator, u *repoMocks.MockRepository[model.User], p *repoMocks.MockRepository[model.Pet]) {
				g.On("GenerateUsers", 1).Return(users, nil)
				g.On("GeneratePets", 2).Return(pets)
				u.On("CreateMany", ctx, users).Return(users, nil)
				p.On("CreateMany", ctx, pets).Return(pets, nil)
			},
		},
		{
			name:       "negative quantity",
			users:      -1,
			pets:       2,
			setupMocks: func(*svcMocks.MockGenerator, *repoMocks.MockRepository[model.User], *repoMocks.MockRepository[model.Pet]) {},
			wantErr:    service.ErrInvalidParams,
		},
		{
			name:  "duplicate email on insert",
			users: 1,
			pets:  2,
			setupMocks: func(g *svcMocks.MockGenerator, u *repoMocks.MockRepository[model.User], p *repoMocks.MockRepository[model.Pet]) {
				g.On("GenerateUsers", 1).Return(users, nil)
				u.On("CreateMany", ctx, users).Return(nil, &repository.ConflictError{Field: "email"})
			},
			wantErr: repository.ErrDuplicateKey,
		},
		{
			name:  "generator failure",
			users: 0,
			pets:  0,
			setupMocks: func(g *svcMocks.MockGenerator, u *repoMocks.MockRepository[model.User], p *repoMocks.MockRepository[model.Pet]) {
				g.On("GenerateUsers", 0).Return(nil, errors.New("hash fail"))
			},
			wantErrMsg: "generate users: hash fail",
		},
		{
			name:  "pet insert failure",
			users: 1,
			pets:  2,
			setupMocks: func(g *svcMocks.MockGenerator, u *repoMocks.MockRepository[model.User], p *repoMocks.MockRepository[model.Pet]) {
				g.On("GenerateUsers", 1).Return(users, nil)
				g.On("GeneratePets", 2).Return(pets)
				u.On("CreateMany", ctx, users).Return(users, nil)
				p.On("CreateMany", ctx, mock.Anything).Return(nil, errors.New("timeout"))
			},
			wantErrMsg: "insert pets: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := new(svcMocks.MockGenerator)
			u := new(repoMocks.MockRepository[model.User])
			p := new(repoMocks.MockRepository[model.Pet])
			tt.setupMocks(g, u, p)

			svc := service.NewSeedService(g, u, p)
			res, err := svc.GenerateData(ctx, tt.users, tt.pets)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
			default:
				assert.NoError(t, err)
				assert.Len(t, res.Users, 2)
				assert.Len(t, res.Pets, 3)
			}

			g.AssertExpectations(t)
			u.AssertExpectations(t)
			p.AssertExpectations(t)
		})
	}
}

func TestSeedService_Mocks(t *testing.T) {
	g := new(svcMocks.MockGenerator)
	g.On("GeneratePets", 2).Return([]model.Pet{{}, {}, {}})
	g.On("GenerateUsers", 0).Return([]model.User{{}}, nil)

	svc := service.NewSeedService(g, nil, nil)

	assert.Len(t, svc.MockPets(2), 3)
	users, err := svc.MockUsers(0)
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	g.AssertExpectations(t)
}
