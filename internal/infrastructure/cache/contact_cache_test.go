package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/oksasatya/mycontacts-api/internal/domain/entity"
	"github.com/oksasatya/mycontacts-api/pkg/helpers"
)

func TestContactsKey(t *testing.T) {
	assert.Equal(t, "contacts:owner:alice@example.com", contactsKey("alice@example.com"))
}

func TestContactCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	addr, err := container.PortEndpoint(ctx, "6379/tcp", "")
	require.NoError(t, err)

	rdb, err := helpers.NewRedisClient(ctx, addr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	c := NewContactCache(rdb, time.Minute)

	_, ok, err := c.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	list := []entity.Contact{{ID: "1", FirstName: "John", LastName: "Doe", Phone: "0123456789", OwnerEmail: "alice@example.com"}}
	require.NoError(t, c.Set(ctx, "alice@example.com", list))

	got, ok, err := c.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, list[0].ID, got[0].ID)

	_, ok, err = c.Get(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.False(t, ok, "entries are per owner")

	require.NoError(t, c.Invalidate(ctx, "alice@example.com"))
	_, ok, err = c.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := rdb.TTL(ctx, contactsKey("alice@example.com")).Result()
	require.NoError(t, err)
	assert.True(t, ttl < 0, "invalidated key is gone")
}
