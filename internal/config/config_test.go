package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nosqlkit.app/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "info", config.Log.Level)
		assert.Equal(t, DocumentStoreSQLite, config.Documents.Type)
		assert.Equal(t, "school", config.Documents.Collection)
		assert.Equal(t, "nosqlkit.db", config.Documents.SQLite.Path)
		assert.Equal(t, "mongodb://localhost:27017", config.Documents.Mongo.URI)
		assert.Equal(t, CacheTypeRedis, config.Cache.Type)
		assert.False(t, config.Cache.RecordGets)
		assert.Equal(t, "localhost:6379", config.Cache.Redis.Addr)
		assert.Equal(t, 5, config.Cache.Redis.DialTimeout)
	})

	t.Run("CustomValues", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("DOCUMENT_STORE_TYPE", "mongodb")
		t.Setenv("DOCUMENT_COLLECTION", "schools")
		t.Setenv("MONGO_URI", "mongodb://mongo:27017")
		t.Setenv("MONGO_DATABASE", "catalog")
		t.Setenv("CACHE_TYPE", "memory")
		t.Setenv("CACHE_RECORD_GETS", "true")

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "debug", config.Log.Level)
		assert.Equal(t, DocumentStoreMongo, config.Documents.Type)
		assert.Equal(t, "schools", config.Documents.Collection)
		assert.Equal(t, "mongodb://mongo:27017", config.Documents.Mongo.URI)
		assert.Equal(t, "catalog", config.Documents.Mongo.Database)
		assert.Equal(t, CacheTypeMemory, config.Cache.Type)
		assert.True(t, config.Cache.RecordGets)
	})

	t.Run("InvalidCacheType", func(t *testing.T) {
		t.Setenv("CACHE_TYPE", "memcached")

		config, err := LoadConfig()

		assert.Nil(t, config)
		assert.True(t, errors.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "CACHE_TYPE")
	})

	t.Run("InvalidDocumentStoreType", func(t *testing.T) {
		t.Setenv("DOCUMENT_STORE_TYPE", "couchdb")

		_, err := LoadConfig()

		assert.True(t, errors.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "DOCUMENT_STORE_TYPE")
	})

	t.Run("MalformedPort", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "not-a-port")

		_, err := LoadConfig()

		assert.True(t, errors.IsConfigurationError(err))
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: 8080},
			Log:    LogConfig{Level: "info"},
			Documents: DocumentsConfig{
				Type:       DocumentStorePostgres,
				Collection: "school",
				Postgres: DatabaseConfig{
					Host: "localhost", Port: 5432, User: "postgres", Name: "logs", SSLMode: "disable",
				},
			},
			Cache: CacheConfig{
				Type: CacheTypeRedis,
				Redis: RedisConfig{
					Addr: "localhost:6379", DialTimeout: 5, ReadTimeout: 3, WriteTimeout: 3,
				},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		message string
	}{
		{"Valid", func(c *Config) {}, ""},
		{"PortTooHigh", func(c *Config) { c.Server.Port = 70000 }, "SERVER_PORT"},
		{"BadLogLevel", func(c *Config) { c.Log.Level = "trace" }, "LOG_LEVEL"},
		{"EmptyCollection", func(c *Config) { c.Documents.Collection = " " }, "DOCUMENT_COLLECTION"},
		{"BadSSLMode", func(c *Config) { c.Documents.Postgres.SSLMode = "prefer" }, "DB_SSL_MODE"},
		{"EmptyDBHost", func(c *Config) { c.Documents.Postgres.Host = "" }, "DB_HOST"},
		{"BadMongoURI", func(c *Config) {
			c.Documents.Type = DocumentStoreMongo
			c.Documents.Mongo = MongoConfig{URI: "http://mongo", Database: "logs", ConnectTimeout: 10}
		}, "MONGO_URI"},
		{"EmptySQLitePath", func(c *Config) { c.Documents.Type = DocumentStoreSQLite }, "SQLITE_PATH"},
		{"RedisDBOutOfRange", func(c *Config) { c.Cache.Redis.DB = 16 }, "REDIS_DB"},
		{"RedisZeroTimeout", func(c *Config) { c.Cache.Redis.ReadTimeout = 0 }, "REDIS_READ_TIMEOUT"},
		{"MemoryIgnoresRedis", func(c *Config) {
			c.Cache.Type = CacheTypeMemory
			c.Cache.Redis = RedisConfig{}
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsConfigurationError(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestDocumentStoreTypeFromString(t *testing.T) {
	assert.Equal(t, DocumentStoreSQLite, DocumentStoreTypeFromString("sqlite"))
	assert.Equal(t, DocumentStorePostgres, DocumentStoreTypeFromString("postgresql"))
	assert.Equal(t, DocumentStoreMongo, DocumentStoreTypeFromString("MongoDB"))
	assert.Equal(t, DocumentStoreUnknown, DocumentStoreTypeFromString("dynamodb"))
	assert.Equal(t, "mongodb", DocumentStoreMongo.String())
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "logs", SSLMode: "require"}

	assert.Equal(t, "host=db port=5433 user=u password=p dbname=logs sslmode=require", cfg.GetDSN())
}
