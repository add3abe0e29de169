package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adoptapi/internal/config"
	"adoptapi/internal/model"
	"adoptapi/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewBackend_Memory(t *testing.T) {
	ctx := context.Background()
	b, err := NewBackend(ctx, &config.AppConfig{StoreBackend: config.BackendMemory}, discardLogger())
	require.NoError(t, err)
	defer b.Close(ctx)

	assert.Equal(t, config.BackendMemory, b.Name)
	assert.NoError(t, b.Ping(ctx))

	pets := repository.New[model.Pet](b.Pets)
	created, err := pets.Create(ctx, &model.Pet{Name: "Rex", Specie: "dog"})
	require.NoError(t, err)

	got, err := pets.GetByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Rex", got.Name)
}

func TestNewBackend_MemoryStoresAreIndependent(t *testing.T) {
	a, b := NewMemoryBackend(), NewMemoryBackend()
	ctx := context.Background()

	_, err := a.Users.Create(ctx, &model.User{FirstName: "A", LastName: "B", Email: "a@b.c", Age: 20, Password: "x"})
	require.NoError(t, err)

	users, err := b.Users.Get(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestNewBackend_Unknown(t *testing.T) {
	_, err := NewBackend(context.Background(), &config.AppConfig{StoreBackend: "cassandra"}, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"cassandra"`)
}

func TestNewBackend_InvalidConfig(t *testing.T) {
	ctx := context.Background()

	_, err := NewBackend(ctx, &config.AppConfig{StoreBackend: config.BackendMongo}, discardLogger())
	assert.ErrorContains(t, err, "uri and database are required")

	_, err = NewBackend(ctx, &config.AppConfig{StoreBackend: config.BackendPostgres}, discardLogger())
	assert.ErrorContains(t, err, "host, port, user, and name are required")
}
