package repository

import (
	"context"
	"strings"

	"adoptapi/internal/auth"
	"adoptapi/internal/model"
)

// UsersRepository adds password handling on top of the generic user repository.
// Passwords reaching the store are always hashed and emails are trimmed and lowercased.
type UsersRepository struct {
	*Repository[model.User]
	hasher auth.PasswordHasher
}

// NewUsersRepository builds the users repository over store.
func NewUsersRepository(store Store[model.User], hasher auth.PasswordHasher) *UsersRepository {
	u := &UsersRepository{hasher: hasher}
	u.Repository = New[model.User](store,
		WithBeforeCreate[model.User](u.prepareCreate),
		WithBeforeUpdate[model.User](u.prepareUpdate),
	)
	return u
}

// HashPassword returns a salted bcrypt hash of plaintext.
func (u *UsersRepository) HashPassword(plaintext string) (string, error) {
	return u.hasher.Hash(plaintext)
}

// VerifyPassword reports whether plaintext matches hash.
func (u *UsersRepository) VerifyPassword(plaintext, hash string) bool {
	return u.hasher.Check(plaintext, hash)
}

// FindByEmail returns the user registered with email, or nil.
func (u *UsersRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return u.Repository.store.GetOne(ctx, Filter{"email": email})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *UsersRepository) prepareCreate(_ context.Context, rec *model.User) error {
	rec.Email = normalizeEmail(rec.Email)
	if rec.Password == "" || u.hasher.IsHashed(rec.Password) {
		return nil
	}
	h, err := u.hasher.Hash(rec.Password)
	if err != nil {
		return err
	}
	rec.Password = h
	return nil
}

func (u *UsersRepository) prepareUpdate(_ context.Context, fields Fields) error {
	if email, ok := fields["email"].(string); ok {
		fields["email"] = normalizeEmail(email)
	}
	raw, ok := fields["password"]
	if !ok {
		return nil
	}
	plain, ok := raw.(string)
	if !ok || plain == "" {
		return &ValidationError{Field: "password", Reason: "must be a non-empty string"}
	}
	if u.hasher.IsHashed(plain) {
		return nil
	}
	h, err := u.hasher.Hash(plain)
	if err != nil {
		return err
	}
	fields["password"] = h
	return nil
}
