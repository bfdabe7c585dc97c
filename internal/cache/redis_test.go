package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Franklp24/gestor-facturas/internal/config"
	"github.com/Franklp24/gestor-facturas/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	expected := []*models.Invoice{
		{ID: 1, ClientName: "ACME", Amount: 100, DueDate: "2024-06-10", Status: "pending"},
	}
	err := cache.Set(ListKey("asc"), expected, ListTTL)
	require.NoError(t, err)

	var actual []*models.Invoice
	found, err := cache.Get(ListKey("asc"), &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGet_Miss(t *testing.T) {
	cache := setupTestCache(t)

	var actual []*models.Invoice
	found, err := cache.Get(ListKey("desc"), &actual)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	require.NoError(t, cache.Set(ListKey("asc"), []int{1}, ListTTL))
	require.NoError(t, cache.Invalidate(ListKey("asc")))

	var actual []int
	found, err := cache.Get(ListKey("asc"), &actual)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListKey(t *testing.T) {
	assert.Equal(t, "invoices:list:asc", ListKey("asc"))
	assert.Equal(t, "invoices:list:desc", ListKey("desc"))
}
