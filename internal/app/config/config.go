package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/mongodb"
	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/postgres"
	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/redis"

	"github.com/joho/godotenv"
)

// Configuration is environment-variable driven only. A .env file is
// loaded when present but never required.

// Config holds every typed configuration section of the API.
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	MongoDB     MongoConfig
	Catalog     CatalogConfig
	Security    SecurityConfig
	Logging     LoggingConfig
	CORS        CORSConfig
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Host         string        `env:"SERVER_HOST"`
	Port         int           `env:"SERVER_PORT"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT"`
}

// DatabaseConfig PostgreSQL settings.
type DatabaseConfig struct {
	Host           string        `env:"DB_HOST"`
	Port           int           `env:"DB_PORT"`
	Database       string        `env:"DB_NAME"`
	Username       string        `env:"DB_USERNAME"`
	Password       string        `env:"DB_PASSWORD"`
	MaxConnections int           `env:"DB_MAX_CONNECTIONS"`
	QueryTimeout   time.Duration `env:"DB_QUERY_TIMEOUT"`
	SSLMode        string        `env:"DB_SSL_MODE"`
}

// RedisConfig Redis settings.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     int    `env:"REDIS_PORT"`
	Password string `env:"REDIS_PASSWORD"`
	Database int    `env:"REDIS_DATABASE"`
}

// MongoConfig MongoDB settings (catalog audit trail).
type MongoConfig struct {
	URI            string        `env:"MONGODB_URI"`
	Database       string        `env:"MONGODB_DATABASE"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT"`
	MaxPoolSize    int           `env:"MONGODB_MAX_POOL_SIZE"`
}

// CatalogConfig module catalog settings.
type CatalogConfig struct {
	SeedPath         string        `env:"CATALOG_SEED_PATH"`
	SeedOnStart      bool          `env:"CATALOG_SEED_ON_START"`
	SnapshotCacheTTL time.Duration `env:"CATALOG_SNAPSHOT_CACHE_TTL"`
}

// SecurityConfig admin guard settings for catalog mutations.
//
// AdminEnforce defaults to false, which keeps the historical allow-all
// behavior of the admin guard. When enabled, mutation endpoints require
// an X-Admin-Token matching AdminTokenHash (bcrypt).
type SecurityConfig struct {
	AdminEnforce   bool   `env:"SECURITY_ADMIN_ENFORCE"`
	AdminTokenHash string `env:"SECURITY_ADMIN_TOKEN_HASH"`
}

// LoggingConfig logging settings.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL"`
}

// CORSConfig CORS settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"`
	MaxAge           int      `env:"CORS_MAX_AGE"`
}

// NewConfig loads the configuration from environment variables.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("[CONFIG] No .env file loaded: %v\n", err)
	}

	config := &Config{}

	config.Environment = getEnv("APP_ENV", "development")

	config.Server = ServerConfig{
		Host:         getEnv("SERVER_HOST", "localhost"),
		Port:         getEnvInt("SERVER_PORT", 4100),
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 30) * time.Second,
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 30) * time.Second,
	}

	config.Database = DatabaseConfig{
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           getEnvInt("DB_PORT", 5432),
		Database:       getEnv("DB_NAME", "dental_suite"),
		Username:       getEnv("DB_USERNAME", "postgres"),
		Password:       getEnv("DB_PASSWORD", ""),
		MaxConnections: getEnvInt("DB_MAX_CONNECTIONS", 25),
		QueryTimeout:   getEnvDuration("DB_QUERY_TIMEOUT", 30) * time.Second,
		SSLMode:        getEnv("DB_SSL_MODE", "disable"),
	}

	config.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnvInt("REDIS_PORT", 6379),
		Password: getEnv("REDIS_PASSWORD", ""),
		Database: getEnvInt("REDIS_DATABASE", 0),
	}

	config.MongoDB = MongoConfig{
		URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		Database:       getEnv("MONGODB_DATABASE", "dental_suite"),
		ConnectTimeout: getEnvDuration("MONGODB_CONNECT_TIMEOUT", 10) * time.Second,
		MaxPoolSize:    getEnvInt("MONGODB_MAX_POOL_SIZE", 20),
	}

	config.Catalog = CatalogConfig{
		SeedPath:         getEnv("CATALOG_SEED_PATH", "data/catalog-seed.json"),
		SeedOnStart:      getEnvBool("CATALOG_SEED_ON_START", true),
		SnapshotCacheTTL: getEnvDuration("CATALOG_SNAPSHOT_CACHE_TTL", 60) * time.Second,
	}

	config.Security = SecurityConfig{
		AdminEnforce:   getEnvBool("SECURITY_ADMIN_ENFORCE", false),
		AdminTokenHash: getEnv("SECURITY_ADMIN_TOKEN_HASH", ""),
	}

	config.Logging = LoggingConfig{
		Level: getEnv("LOG_LEVEL", "info"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins:   getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		AllowedMethods:   getEnvSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders:   getEnvSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization", "X-Admin-Token"}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", false),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks settings that cannot be defaulted sensibly.
func (c *Config) validate() error {
	if c.Security.AdminEnforce && c.Security.AdminTokenHash == "" {
		return fmt.Errorf("SECURITY_ADMIN_ENFORCE is set but SECURITY_ADMIN_TOKEN_HASH is empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT: %d", c.Server.Port)
	}
	return nil
}

// GetServer returns the HTTP server section.
func (c *Config) GetServer() ServerConfig {
	return c.Server
}

// NewPostgresConfig maps the app config onto the postgres client config.
func NewPostgresConfig(cfg *Config) *postgres.DatabaseConfig {
	return &postgres.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Database: cfg.Database.Database,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		SSLMode:  cfg.Database.SSLMode,
		MaxConns: cfg.Database.MaxConnections,
	}
}

// NewRedisConfig maps the app config onto the redis client config.
func NewRedisConfig(cfg *Config) *redis.RedisConfig {
	return &redis.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		Database: cfg.Redis.Database,
	}
}

// NewMongoConfig maps the app config onto the mongodb client config.
func NewMongoConfig(cfg *Config) *mongodb.MongoConfig {
	return &mongodb.MongoConfig{
		URI:            cfg.MongoDB.URI,
		Database:       cfg.MongoDB.Database,
		ConnectTimeout: cfg.MongoDB.ConnectTimeout,
		MaxPoolSize:    cfg.MongoDB.MaxPoolSize,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration reads a number of seconds; callers multiply by time.Second.
func getEnvDuration(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return time.Duration(parsed)
		}
	}
	return time.Duration(defaultSeconds)
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
