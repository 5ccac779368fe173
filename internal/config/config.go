package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	ServerPort    string
	Env           string
	LogLevel      string
	StorageDriver string
	SQLitePath    string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string
	RedisURL      string
	RedisTTL      time.Duration
	JWTSecret     string
	TokenTTL      time.Duration
	AuthRequired  bool
	SeedDemoData  bool
	FrontendURL   string
}

func LoadConfig() Config {
	return Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		Env:           getEnv("ENV", "dev"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageSQLite)),
		SQLitePath:    getEnv("SQLITE_PATH", "data/kanbanify.db"),
		DBHost:        getEnv("DB_HOST", "postgres"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPass:        getEnv("DB_PASSWORD", "password"),
		DBName:        getEnv("DB_NAME", "kanbanify"),
		RedisURL:      getEnv("REDIS_URL", "redis:6379"),
		RedisTTL:      getEnvAsDuration("REDIS_TTL", 0),
		JWTSecret:     getEnv("JWT_SECRET", "kanbanify-dev-secret"),
		TokenTTL:      getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
		AuthRequired:  getEnvAsBool("AUTH_REQUIRED", true),
		SeedDemoData:  getEnvAsBool("SEED_DEMO_DATA", true),
		FrontendURL:   getEnv("FRONTEND_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := time.ParseDuration(value); err == nil && v >= 0 {
			return v
		}
	}
	return fallback
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}

// UsesSQL reports whether the configured storage driver needs a gorm connection.
func (c *Config) UsesSQL() bool {
	return c.StorageDriver == StoragePostgres || c.StorageDriver == StorageSQLite
}
