// Package instrument records invocation metadata for operations into the
// key-value store they run against.
package instrument

import (
	"context"

	"nosqlkit.app/internal/ports"
)

// Operation is a single-argument call that can be wrapped by interceptors
type Operation[A, R any] func(ctx context.Context, in A) (R, error)

// Middleware wraps an operation with a side effect
type Middleware[A, R any] func(next Operation[A, R]) Operation[A, R]

// InputsKey returns the list key holding rendered inputs of name
func InputsKey(name string) string {
	return name + ":inputs"
}

// OutputsKey returns the list key holding rendered outputs of name
func OutputsKey(name string) string {
	return name + ":outputs"
}

// CountCalls increments the counter stored under name, then delegates to next.
// The counter tracks attempted calls, so it also moves when next fails.
func CountCalls[A, R any](store ports.KeyValueStore, name string, next Operation[A, R]) Operation[A, R] {
	return func(ctx context.Context, in A) (R, error) {
		if _, err := store.Incr(ctx, name); err != nil {
			var zero R
			return zero, err
		}
		return next(ctx, in)
	}
}

// RecordHistory delegates to next and appends the rendered input and output
// to the name:inputs and name:outputs lists in one atomic step.
// A failed call is recorded with an "error: " output and its error is returned unchanged.
func RecordHistory[A, R any](store ports.KeyValueStore, name string, next Operation[A, R]) Operation[A, R] {
	return func(ctx context.Context, in A) (R, error) {
		out, callErr := next(ctx, in)

		rendered := RenderOutput(out, callErr)
		if err := store.RPushPair(ctx, InputsKey(name), RenderInput(in), OutputsKey(name), rendered); err != nil {
			if callErr != nil {
				return out, callErr
			}
			return out, err
		}
		return out, callErr
	}
}

// WithCount is CountCalls as a Middleware
func WithCount[A, R any](store ports.KeyValueStore, name string) Middleware[A, R] {
	return func(next Operation[A, R]) Operation[A, R] {
		return CountCalls(store, name, next)
	}
}

// WithHistory is RecordHistory as a Middleware
func WithHistory[A, R any](store ports.KeyValueStore, name string) Middleware[A, R] {
	return func(next Operation[A, R]) Operation[A, R] {
		return RecordHistory(store, name, next)
	}
}

// Chain wraps op so that the first middleware runs outermost
func Chain[A, R any](op Operation[A, R], middlewares ...Middleware[A, R]) Operation[A, R] {
	for i := len(middlewares) - 1; i >= 0; i-- {
		op = middlewares[i](op)
	}
	return op
}
