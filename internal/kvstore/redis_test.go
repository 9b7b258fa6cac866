package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/daily-paper/internal/config"
	"github.com/magabrotheeeer/daily-paper/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	store, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return store
}

func TestKey(t *testing.T) {
	assert.Equal(t, "customer_info:uid-1", Key("customer_info", "uid-1"))
	assert.Equal(t, "subscription:uid-1", Key("subscription", "uid-1"))
}

func TestSetAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	expected := models.CustomerInfo{
		FullName:     "Jane Reader",
		Telephone:    "+256700000000",
		Address:      "Kampala Road",
		PlotNumber:   "12",
		StreetNumber: "4",
		UserID:       "uid-1",
		UpdatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	err := store.Set(ctx, Key("customer_info", "uid-1"), expected)
	require.NoError(t, err)

	var actual models.CustomerInfo
	found, err := store.Get(ctx, Key("customer_info", "uid-1"), &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	store := setupTestStore(t)

	var out models.Subscription
	found, err := store.Get(context.Background(), Key("subscription", "nobody"), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetOverwritesWholesale(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	key := Key("subscription", "uid-1")

	paper := "New Vision"
	first := models.Subscription{UserID: "uid-1", Plan: "daily", Newspaper: &paper, Active: true}
	require.NoError(t, store.Set(ctx, key, first))

	second := models.Subscription{UserID: "uid-1", Plan: "monthly", Newspaper: nil, Active: true}
	require.NoError(t, store.Set(ctx, key, second))

	var got models.Subscription
	found, err := store.Get(ctx, key, &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "monthly", got.Plan)
	assert.Nil(t, got.Newspaper)
}
