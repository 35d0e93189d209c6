//go:build integration

package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/mida-panama/inventario-quimicos-api/internal/infrastructure/redisstore"
)

func TestStorage(t *testing.T) {
	ctx := context.Background()
	rdC, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	rdb, err := redisstore.NewClient(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	api := redisstore.New(rdb, "rl:api:")
	login := redisstore.New(rdb, "rl:login:")

	got, err := api.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, got, "clave inexistente")

	require.NoError(t, api.Set("10.0.0.1", []byte("3"), time.Minute))
	require.NoError(t, login.Set("10.0.0.1", []byte("1"), time.Minute))

	got, err = api.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), got)

	require.NoError(t, api.Reset())
	got, err = api.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = login.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got, "Reset no toca otros prefijos")

	require.NoError(t, login.Delete("10.0.0.1"))
	got, err = login.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
