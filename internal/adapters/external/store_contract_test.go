package external

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nosqlkit.app/internal/ports"
	"nosqlkit.app/pkg/errors"
)

// runKeyValueStoreContract checks the behaviour every KeyValueStore must share
func runKeyValueStoreContract(t *testing.T, store ports.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.FlushDB(ctx))

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "greeting", []byte("hello")))

		value, found, err := store.Get(ctx, "greeting")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("hello"), value)
	})

	t.Run("GetMissingKey", func(t *testing.T) {
		value, found, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, value)
	})

	t.Run("EmptyKeyRejected", func(t *testing.T) {
		err := store.Set(ctx, "", []byte("x"))
		assert.True(t, errors.IsValidationError(err))

		_, _, err = store.Get(ctx, "")
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("Incr", func(t *testing.T) {
		for i := int64(1); i <= 3; i++ {
			n, err := store.Incr(ctx, "Cache.Store")
			require.NoError(t, err)
			assert.Equal(t, i, n)
		}

		value, found, err := store.Get(ctx, "Cache.Store")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("3"), value)
	})

	t.Run("RPushPairAndLRange", func(t *testing.T) {
		for _, letter := range []string{"a", "b", "c"} {
			require.NoError(t, store.RPushPair(ctx, "letters", letter, "upper", strings.ToUpper(letter)))
		}

		all, err := store.LRange(ctx, "letters", 0, -1)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, all)

		tail, err := store.LRange(ctx, "letters", -2, -1)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c"}, tail)

		upper, err := store.LRange(ctx, "upper", 0, -1)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, upper)

		none, err := store.LRange(ctx, "no-such-list", 0, -1)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("RPushPairIsAllOrNothing", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "scalar", []byte("1")))

		err := store.RPushPair(ctx, "pending", "in", "scalar", "out")
		assert.True(t, errors.IsValidationError(err))

		err = store.RPushPair(ctx, "scalar", "in", "pending", "out")
		assert.True(t, errors.IsValidationError(err))

		pending, err := store.LRange(ctx, "pending", 0, -1)
		require.NoError(t, err)
		assert.Empty(t, pending)

		value, found, err := store.Get(ctx, "scalar")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("1"), value)
	})

	t.Run("RPushPairKeepsListsAligned", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				v := fmt.Sprintf("%d", i)
				assert.NoError(t, store.RPushPair(ctx, "op:inputs", v, "op:outputs", v))
			}(i)
		}
		wg.Wait()

		inputs, err := store.LRange(ctx, "op:inputs", 0, -1)
		require.NoError(t, err)
		outputs, err := store.LRange(ctx, "op:outputs", 0, -1)
		require.NoError(t, err)

		require.Len(t, inputs, 20)
		assert.Equal(t, inputs, outputs)
	})

	t.Run("FlushDB", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "doomed", []byte("x")))
		require.NoError(t, store.FlushDB(ctx))

		_, found, err := store.Get(ctx, "doomed")
		require.NoError(t, err)
		assert.False(t, found)

		list, err := store.LRange(ctx, "letters", 0, -1)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})
}
