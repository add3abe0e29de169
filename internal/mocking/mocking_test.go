package mocking

import (
	"errors"
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHasher struct {
	calls int
	err   error
}

func (f *fakeHasher) HashPassword(p string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "hashed:" + p, nil
}

func TestGeneratePets_InclusiveBound(t *testing.T) {
	g := New(42, &fakeHasher{})

	for _, n := range []int{0, 1, 2, 10} {
		assert.Len(t, g.GeneratePets(n), n+1)
	}
	assert.Empty(t, g.GeneratePets(-1))
}

func TestGenerate_QuantityLimit(t *testing.T) {
	h := &fakeHasher{}
	g := New(3, h, WithMaxQuantity(5))
	assert.Equal(t, 5, g.MaxQuantity())

	assert.NotPanics(t, func() {
		assert.Len(t, g.GeneratePets(math.MaxInt), 6)
	})
	assert.Len(t, g.GeneratePets(5), 6)

	users, err := g.GenerateUsers(math.MaxInt)
	assert.ErrorIs(t, err, ErrQuantityTooLarge)
	assert.Nil(t, users)
	assert.Zero(t, h.calls)

	users, err = g.GenerateUsers(5)
	require.NoError(t, err)
	assert.Len(t, users, 6)
}

func TestWithMaxQuantity_IgnoresInvalid(t *testing.T) {
	for _, n := range []int{0, -1, math.MaxInt} {
		assert.Equal(t, DefaultMaxQuantity, New(1, &fakeHasher{}, WithMaxQuantity(n)).MaxQuantity())
	}
	assert.NotPanics(t, func() {
		assert.Len(t, New(1, &fakeHasher{}).GeneratePets(math.MaxInt), DefaultMaxQuantity+1)
	})
}

func TestGeneratePets_SpecieParity(t *testing.T) {
	g := New(7, &fakeHasher{})

	pets := g.GeneratePets(2)
	require.Len(t, pets, 3)

	dogs := data.Animal["dog"]
	cats := data.Animal["cat"]
	assert.Contains(t, dogs, pets[0].Specie)
	assert.Contains(t, cats, pets[1].Specie)
	assert.Contains(t, dogs, pets[2].Specie)

	for _, p := range pets {
		assert.False(t, p.ID.IsZero())
		assert.NotEmpty(t, p.Name)
		assert.False(t, p.Adopted)
		assert.Nil(t, p.Owner)
	}
	assert.NotEqual(t, pets[0].ID, pets[1].ID)
}

func TestGenerateUsers(t *testing.T) {
	h := &fakeHasher{}
	g := New(1, h)

	users, err := g.GenerateUsers(4)
	require.NoError(t, err)
	require.Len(t, users, 5)
	assert.Equal(t, 5, h.calls)

	for _, u := range users {
		assert.False(t, u.ID.IsZero())
		assert.NotEmpty(t, u.FirstName)
		assert.NotEmpty(t, u.LastName)
		assert.Contains(t, u.Email, "@")
		assert.GreaterOrEqual(t, u.Age, 18)
		assert.LessOrEqual(t, u.Age, 99)
		assert.Equal(t, "hashed:"+DefaultPassword, u.Password)
		assert.Contains(t, []string{"user", "admin"}, u.Role)
		assert.NotNil(t, u.Pets)
		assert.Empty(t, u.Pets)
	}
}

func TestGenerateUsers_HashError(t *testing.T) {
	g := New(1, &fakeHasher{err: errors.New("no entropy")})

	_, err := g.GenerateUsers(0)
	assert.EqualError(t, err, "no entropy")
}

func TestGenerate_SeedIsDeterministic(t *testing.T) {
	a := New(99, &fakeHasher{}).GeneratePets(3)
	b := New(99, &fakeHasher{}).GeneratePets(3)

	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, a[i].Specie, b[i].Specie)
	}
}
