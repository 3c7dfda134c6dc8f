package external

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nosqlkit.app/internal/config"
	"nosqlkit.app/pkg/errors"
)

// setupMockRedis creates a mock Redis server for testing
func setupMockRedis(t *testing.T) (*miniredis.Miniredis, *config.RedisConfig) {
	t.Helper()

	mockRedis := miniredis.RunT(t)

	redisConfig := &config.RedisConfig{
		Addr:         mockRedis.Addr(),
		Password:     "",
		DB:           0,
		DialTimeout:  5,
		ReadTimeout:  3,
		WriteTimeout: 3,
	}

	return mockRedis, redisConfig
}

func TestRedisStoreAdapter_NewRedisStoreAdapter(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.RedisConfig
		expectError bool
		errorType   errors.ErrorType
	}{
		{
			name:        "NilConfig",
			config:      nil,
			expectError: true,
			errorType:   errors.ErrorTypeConfiguration,
		},
		{
			name: "ValidConfig",
			config: func() *config.RedisConfig {
				_, cfg := setupMockRedis(t)
				return cfg
			}(),
			expectError: false,
		},
		{
			name: "InvalidAddress",
			config: &config.RedisConfig{
				Addr:         "invalid:address:port",
				DialTimeout:  5,
				ReadTimeout:  3,
				WriteTimeout: 3,
			},
			expectError: true,
			errorType:   errors.ErrorTypeConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, err := NewRedisStoreAdapter(tt.config)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, adapter)
				var appErr *errors.AppError
				if assert.ErrorAs(t, err, &appErr) {
					assert.Equal(t, tt.errorType, appErr.Type)
				}
				return
			}

			assert.NoError(t, err)
			require.NotNil(t, adapter)
			assert.NoError(t, adapter.Close())
		})
	}
}

func TestRedisStoreAdapter_Contract(t *testing.T) {
	_, redisConfig := setupMockRedis(t)

	adapter, err := NewRedisStoreAdapter(redisConfig)
	require.NoError(t, err)
	defer func() { _ = adapter.Close() }()

	runKeyValueStoreContract(t, adapter)
}

func TestRedisStoreAdapter_WritesNativeRedisTypes(t *testing.T) {
	mockRedis, redisConfig := setupMockRedis(t)

	adapter, err := NewRedisStoreAdapter(redisConfig)
	require.NoError(t, err)
	defer func() { _ = adapter.Close() }()

	ctx := context.Background()
	require.NoError(t, adapter.Set(ctx, "key", []byte("value")))
	_, err = adapter.Incr(ctx, "counter")
	require.NoError(t, err)
	require.NoError(t, adapter.RPushPair(ctx, "m:inputs", "(1)", "m:outputs", "2"))

	got, err := mockRedis.Get("key")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	counter, err := mockRedis.Get("counter")
	require.NoError(t, err)
	assert.Equal(t, "1", counter)

	inputs, err := mockRedis.List("m:inputs")
	require.NoError(t, err)
	assert.Equal(t, []string{"(1)"}, inputs)
}

func TestRedisStoreAdapter_ServerDown(t *testing.T) {
	mockRedis, redisConfig := setupMockRedis(t)

	adapter, err := NewRedisStoreAdapter(redisConfig)
	require.NoError(t, err)
	defer func() { _ = adapter.Close() }()

	mockRedis.Close()
	ctx := context.Background()

	_, _, err = adapter.Get(ctx, "key")
	assert.True(t, errors.IsConnectionError(err))

	err = adapter.Set(ctx, "key", []byte("v"))
	assert.True(t, errors.IsConnectionError(err))

	_, err = adapter.Incr(ctx, "counter")
	assert.True(t, errors.IsConnectionError(err))

	assert.True(t, errors.IsConnectionError(adapter.Ping(ctx)))
}

func TestRedisStoreAdapter_WrongType(t *testing.T) {
	mockRedis, redisConfig := setupMockRedis(t)

	adapter, err := NewRedisStoreAdapter(redisConfig)
	require.NoError(t, err)
	defer func() { _ = adapter.Close() }()

	require.NoError(t, mockRedis.Set("plain", "not-a-number"))

	ctx := context.Background()
	_, err = adapter.Incr(ctx, "plain")
	assert.True(t, errors.IsDecodeError(err))

	require.NoError(t, adapter.RPushPair(ctx, "list", "a", "other", "b"))
	_, _, err = adapter.Get(ctx, "list")
	assert.True(t, errors.IsValidationError(err))
}
