package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"nosqlkit.app/internal/adapters/database"
	"nosqlkit.app/internal/adapters/external"
	"nosqlkit.app/internal/adapters/infrastructure"
	"nosqlkit.app/internal/core/cache"
	"nosqlkit.app/internal/ports"
)

type testServer struct {
	server     *HTTPServerAdapter
	collection ports.DocumentCollection
	cache      *cache.InstrumentedCache
	store      *external.MemoryStoreAdapter
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	collection := database.NewDocumentRepositoryAdapter(db, "school")

	store := external.NewMemoryStoreAdapter()
	c, err := cache.NewCache(context.Background(), store)
	require.NoError(t, err)
	instrumented := cache.NewInstrumentedCache(c, cache.InstrumentedOptions{RecordGets: true})

	health := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		DocumentStoreChecker: infrastructure.NewDocumentStoreHealthChecker(collection, "sqlite"),
		KeyValueStoreChecker: infrastructure.NewKeyValueStoreHealthChecker(store, "memory"),
	})

	server, err := NewHTTPServerAdapter(ServerOptions{
		Config:     ServerConfig{Port: 8080},
		Collection: collection,
		Cache:      instrumented,
		Health:     health,
	})
	require.NoError(t, err)

	return &testServer{server: server, collection: collection, cache: instrumented, store: store}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.server.GetRouter().ServeHTTP(w, req)
	return w
}
