package instrument

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"nosqlkit.app/internal/ports"
	"nosqlkit.app/pkg/errors"
)

// Call is one recorded invocation
type Call struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Record is the stored invocation record of an operation
type Record struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
	Calls []Call `json:"calls"`
}

// LoadRecord reads the counter and history lists of name.
// An operation that was never called is a NotFoundError.
func LoadRecord(ctx context.Context, store ports.KeyValueStore, name string) (*Record, error) {
	raw, found, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NewNotFoundError(fmt.Sprintf("operation %s was never called", name))
	}

	count, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return nil, errors.NewDecodeError(fmt.Sprintf("call counter of %s is not an integer", name), err)
	}

	inputs, err := store.LRange(ctx, InputsKey(name), 0, -1)
	if err != nil {
		return nil, err
	}
	outputs, err := store.LRange(ctx, OutputsKey(name), 0, -1)
	if err != nil {
		return nil, err
	}

	n := min(len(inputs), len(outputs))
	calls := make([]Call, n)
	for i := 0; i < n; i++ {
		calls[i] = Call{Input: inputs[i], Output: outputs[i]}
	}

	return &Record{Name: name, Count: count, Calls: calls}, nil
}

// Replay writes a summary line with the call count of name, then one line per recorded call
func Replay(ctx context.Context, store ports.KeyValueStore, name string, w io.Writer) error {
	record, err := LoadRecord(ctx, store, name)
	if err != nil {
		return err
	}
	return record.Print(w)
}

// Print renders the record as a human readable trace
func (r *Record) Print(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s was called %d times:\n", r.Name, r.Count); err != nil {
		return err
	}
	for _, call := range r.Calls {
		if _, err := fmt.Fprintf(w, "%s(%s) -> %s\n", r.Name, call.Input, call.Output); err != nil {
			return err
		}
	}
	return nil
}
