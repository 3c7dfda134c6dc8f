package infrastructure

import (
	"context"
	"sync"

	"nosqlkit.app/internal/ports"
)

type logEntry struct {
	level   string
	message string
	fields  map[string]interface{}
}

type testLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *testLogger) log(level, msg string, fields []ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := logEntry{level: level, message: msg, fields: make(map[string]interface{})}
	for _, f := range fields {
		entry.fields[f.Key] = f.Value
	}
	l.entries = append(l.entries, entry)
}

func (l *testLogger) Debug(msg string, fields ...ports.Field) { l.log("DEBUG", msg, fields) }
func (l *testLogger) Info(msg string, fields ...ports.Field)  { l.log("INFO", msg, fields) }
func (l *testLogger) Warn(msg string, fields ...ports.Field)  { l.log("WARN", msg, fields) }
func (l *testLogger) Error(msg string, fields ...ports.Field) { l.log("ERROR", msg, fields) }

type testCollection struct {
	name     string
	docs     []ports.Document
	insertID string
	err      error
	pingErr  error
}

func (c *testCollection) Name() string { return c.name }

func (c *testCollection) Find(_ context.Context, _ ports.Filter) ([]ports.Document, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.docs, nil
}

func (c *testCollection) InsertOne(_ context.Context, _ ports.Document) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.insertID, nil
}

func (c *testCollection) Ping(_ context.Context) error { return c.pingErr }
