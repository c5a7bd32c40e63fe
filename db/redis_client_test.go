package db_test

import (
	"context"
	"testing"
	"time"

	"bikeshare-dashboard/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test the Set and Get methods for the RedisClient implementations
func TestRedisClient_SetAndGet(t *testing.T) {
	tests := []struct {
		name   string
		client db.RedisClient
	}{
		{"MockRedisClient", db.NewMockRedisClient(context.Background())},
		// Replace with a real Redis client configuration for integration testing
		// {"GoRedisClient", db.NewGoRedisClient(context.Background(), realRedisClient)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, test.client.Set("test-key", "test-value", 0))

			retrieved, err := test.client.Get("test-key")
			require.NoError(t, err)
			assert.Equal(t, "test-value", retrieved)

			_, err = test.client.Get("missing")
			assert.ErrorIs(t, err, db.ErrKeyNotFound)
		})
	}
}

func TestMockRedisClient_TTL(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	client.SetClock(func() time.Time { return now })

	require.NoError(t, client.Set("k", "v", time.Minute))
	_, err := client.Get("k")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = client.Get("k")
	assert.ErrorIs(t, err, db.ErrKeyNotFound)

	keys, err := client.Keys("*")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMockRedisClient_KeysAndDel(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	require.NoError(t, client.Set("dashboard_v1:1:a", "x", 0))
	require.NoError(t, client.Set("dashboard_v1:2:b", "y", 0))
	require.NoError(t, client.Set("other", "z", 0))

	keys, err := client.Keys("dashboard_v1:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard_v1:1:a", "dashboard_v1:2:b"}, keys)

	require.NoError(t, client.Del(keys...))
	keys, err = client.Keys("*")
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, keys)
}

func TestRedisClient_Ping(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	assert.NoError(t, client.Ping())
	assert.NoError(t, client.Close())
}
