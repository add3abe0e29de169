// Package mocking generates synthetic pets and users for seeding. It performs no I/O.
package mocking

import (
	"errors"
	"math"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adoptapi/internal/model"
)

// DefaultPassword is the plaintext password of every generated user.
const DefaultPassword = "coder123"

// Hasher hashes generated passwords. *repository.UsersRepository satisfies it.
type Hasher interface {
	HashPassword(plaintext string) (string, error)
}

// DefaultMaxQuantity bounds a single generation call unless WithMaxQuantity says otherwise.
const DefaultMaxQuantity = 10000

// ErrQuantityTooLarge is returned when a generation call asks for more than the configured maximum.
var ErrQuantityTooLarge = errors.New("mocking: quantity exceeds maximum")

// Generator produces mock records from a seedable random source. Safe for concurrent use.
type Generator struct {
	mu     sync.Mutex
	faker  *gofakeit.Faker
	hasher Hasher
	max    int
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxQuantity caps the quantity accepted per call. Non-positive values keep the default.
func WithMaxQuantity(n int) Option {
	return func(g *Generator) {
		if n > 0 && n < math.MaxInt {
			g.max = n
		}
	}
}

// New returns a generator. A zero seed picks a random one.
func New(seed uint64, hasher Hasher, opts ...Option) *Generator {
	g := &Generator{faker: gofakeit.New(seed), hasher: hasher, max: DefaultMaxQuantity}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// MaxQuantity reports the largest quantity a single call accepts.
func (g *Generator) MaxQuantity() int { return g.max }

// GeneratePets returns quantity+1 pets: the loop bound is inclusive. Even indexes are dogs, odd ones cats.
// A quantity above MaxQuantity is capped to it.
func (g *Generator) GeneratePets(quantity int) []model.Pet {
	if quantity < 0 {
		return []model.Pet{}
	}
	if quantity > g.max {
		quantity = g.max
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	pets := make([]model.Pet, 0, quantity+1)
	for i := 0; i <= quantity; i++ {
		pets = append(pets, model.Pet{
			ID:     primitive.NewObjectID(),
			Name:   g.faker.PetName(),
			Specie: g.specie(i),
		})
	}
	return pets
}

// GenerateUsers returns quantity+1 users with hashed DefaultPassword and a random role.
// A quantity above MaxQuantity fails with ErrQuantityTooLarge before any hashing.
func (g *Generator) GenerateUsers(quantity int) ([]model.User, error) {
	if quantity < 0 {
		return []model.User{}, nil
	}
	if quantity > g.max {
		return nil, ErrQuantityTooLarge
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	users := make([]model.User, 0, quantity+1)
	for i := 0; i <= quantity; i++ {
		hash, err := g.hasher.HashPassword(DefaultPassword)
		if err != nil {
			return nil, err
		}
		users = append(users, model.User{
			ID:        primitive.NewObjectID(),
			FirstName: g.faker.FirstName(),
			LastName:  g.faker.LastName(),
			Email:     g.faker.Email(),
			Age:       g.faker.Number(18, 99),
			Password:  hash,
			Role:      g.faker.RandomString([]string{model.RoleUser, model.RoleAdmin}),
			Pets:      []model.PetRef{},
			Documents: []model.UserDocument{},
		})
	}
	return users, nil
}

func (g *Generator) specie(i int) string {
	if i%2 == 0 {
		return g.faker.Dog()
	}
	return g.faker.Cat()
}
