package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nosqlkit.app/internal/core/instrument"
)

func TestObserveCalls(t *testing.T) {
	ctx := context.Background()
	collector := Operations()

	ok := ObserveCalls("Test.Double", func(_ context.Context, in int) (int, error) {
		return in * 2, nil
	})
	for i := 0; i < 3; i++ {
		out, err := ok(ctx, i)
		require.NoError(t, err)
		assert.Equal(t, i*2, out)
	}

	failing := ObserveCalls("Test.Fail", func(_ context.Context, _ int) (int, error) {
		return 0, errors.New("boom")
	})
	_, err := failing(ctx, 1)
	assert.EqualError(t, err, "boom")

	assert.Equal(t, float64(3), testutil.ToFloat64(collector.Calls.WithLabelValues("Test.Double")))
	assert.Equal(t, float64(0), testutil.ToFloat64(collector.Errors.WithLabelValues("Test.Double")))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.Calls.WithLabelValues("Test.Fail")))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.Errors.WithLabelValues("Test.Fail")))
}

func TestWithObserve_ComposesWithChain(t *testing.T) {
	op := instrument.Chain[string, string](
		func(_ context.Context, in string) (string, error) { return in + "!", nil },
		WithObserve[string, string]("Test.Chain"),
	)

	out, err := op(context.Background(), "hi")

	require.NoError(t, err)
	assert.Equal(t, "hi!", out)
	assert.Equal(t, float64(1), testutil.ToFloat64(Operations().Calls.WithLabelValues("Test.Chain")))
}
