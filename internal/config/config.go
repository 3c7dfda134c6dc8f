package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"nosqlkit.app/pkg/errors"
)

const (
	maxRedisDB    = 15
	maxPortNumber = 65535
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Log       LogConfig       `split_words:"true"`
	Documents DocumentsConfig `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// DocumentStoreType selects the backend of the document collection
type DocumentStoreType int

const (
	DocumentStoreUnknown DocumentStoreType = iota
	DocumentStoreSQLite
	DocumentStorePostgres
	DocumentStoreMongo
)

// String returns the string representation of document store type
func (d DocumentStoreType) String() string {
	switch d {
	case DocumentStoreSQLite:
		return "sqlite"
	case DocumentStorePostgres:
		return "postgres"
	case DocumentStoreMongo:
		return "mongodb"
	default:
		return "unknown"
	}
}

// IsValid checks if the document store type is valid
func (d DocumentStoreType) IsValid() bool {
	return d == DocumentStoreSQLite || d == DocumentStorePostgres || d == DocumentStoreMongo
}

// DocumentStoreTypeFromString converts string to DocumentStoreType enum
func DocumentStoreTypeFromString(s string) DocumentStoreType {
	switch strings.ToLower(s) {
	case "sqlite":
		return DocumentStoreSQLite
	case "postgres", "postgresql":
		return DocumentStorePostgres
	case "mongo", "mongodb":
		return DocumentStoreMongo
	default:
		return DocumentStoreUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (d *DocumentStoreType) UnmarshalText(text []byte) error {
	*d = DocumentStoreTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (d DocumentStoreType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type DocumentsConfig struct {
	Type       DocumentStoreType `envconfig:"DOCUMENT_STORE_TYPE" default:"sqlite"`
	Collection string            `envconfig:"DOCUMENT_COLLECTION" default:"school"`
	SQLite     SQLiteConfig      `split_words:"true"`
	Postgres   DatabaseConfig    `split_words:"true"`
	Mongo      MongoConfig       `split_words:"true"`
}

type SQLiteConfig struct {
	Path string `envconfig:"SQLITE_PATH" default:"nosqlkit.db"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"logs"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type MongoConfig struct {
	URI            string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database       string `envconfig:"MONGO_DATABASE" default:"logs"`
	ConnectTimeout int    `envconfig:"MONGO_CONNECT_TIMEOUT" default:"10"`
}

// CacheType represents the type of key-value store backing the cache
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch s {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type       CacheType   `envconfig:"CACHE_TYPE" default:"redis"`
	RecordGets bool        `envconfig:"CACHE_RECORD_GETS" default:"false"`
	Redis      RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Documents.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (l *LogConfig) Validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	}
	return errors.NewConfigurationError("LOG_LEVEL must be one of: debug, info, warn, error", nil)
}

func (d *DocumentsConfig) Validate() error {
	if strings.TrimSpace(d.Collection) == "" {
		return errors.NewConfigurationError("DOCUMENT_COLLECTION cannot be empty", nil)
	}

	switch d.Type {
	case DocumentStoreSQLite:
		if d.SQLite.Path == "" {
			return errors.NewConfigurationError("SQLITE_PATH cannot be empty when using sqlite", nil)
		}
		return nil
	case DocumentStorePostgres:
		return d.Postgres.Validate()
	case DocumentStoreMongo:
		return d.Mongo.Validate()
	default:
		return errors.NewConfigurationError("DOCUMENT_STORE_TYPE must be one of: sqlite, postgres, mongodb", nil)
	}
}

func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	return d.ValidateSSLMode()
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (m *MongoConfig) Validate() error {
	if !strings.HasPrefix(m.URI, "mongodb://") && !strings.HasPrefix(m.URI, "mongodb+srv://") {
		return errors.NewConfigurationError("MONGO_URI must start with mongodb:// or mongodb+srv://", nil)
	}
	if m.Database == "" {
		return errors.NewConfigurationError("MONGO_DATABASE cannot be empty", nil)
	}
	if m.ConnectTimeout < 1 {
		return errors.NewConfigurationError("MONGO_CONNECT_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}
