package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashIsSaltedAndVerifies(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("coder123")
	require.NoError(t, err)
	b, err := h.Hash("coder123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, "coder123", a)
	assert.True(t, h.Check("coder123", a))
	assert.True(t, h.Check("coder123", b))
	assert.False(t, h.Check("wrong", a))
}

func TestBcryptHasher_IsHashed(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("secret")
	require.NoError(t, err)

	assert.True(t, h.IsHashed(hash))
	assert.False(t, h.IsHashed("secret"))
	assert.False(t, h.IsHashed(""))
}

func TestNewBcryptHasher_DefaultCost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, DefaultCost, NewBcryptHasher(-3).cost)
	assert.Equal(t, bcrypt.MaxCost, NewBcryptHasher(99).cost)
}

func TestBcryptHasher_CheckMalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	assert.False(t, h.Check("x", "not-a-hash"))
}
