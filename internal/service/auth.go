package service

import (
	"context"

	"github.com/pkg/errors"

	"adoptapi/internal/model"
)

// Credentials looks users up and checks their passwords. *repository.UsersRepository implements it.
type Credentials interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	VerifyPassword(plaintext, hash string) bool
}

// TokenIssuer signs session tokens. *auth.TokenIssuer implements it.
type TokenIssuer interface {
	Issue(userID, role string) (string, error)
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// AuthService authenticates users.
type AuthService interface {
	// Login checks email and password and returns a signed session token.
	// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authService struct {
	creds  Credentials
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService.
func NewAuthService(creds Credentials, tokens TokenIssuer) AuthService {
	return &authService{creds: creds, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, errors.Wrap(ErrInvalidParams, "email and password are required")
	}
	user, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.creds.VerifyPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, UserID: user.ID.Hex(), Role: user.Role}, nil
}
