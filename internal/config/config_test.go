package config

import (
	"testing"
	"time"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("REDIS_TTL", "not-a-duration")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("AUTH_REQUIRED", "false")
	t.Setenv("SERVER_PORT", "9090")

	cfg := LoadConfig()

	if cfg.StorageDriver != StorageSQLite {
		t.Fatalf("storage driver = %q, want %q", cfg.StorageDriver, StorageSQLite)
	}
	if cfg.RedisTTL != 0 {
		t.Fatalf("redis ttl = %v, want 0 on parse failure", cfg.RedisTTL)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("token ttl = %v, want 2h", cfg.TokenTTL)
	}
	if cfg.AuthRequired {
		t.Fatal("auth required should be false")
	}
	if cfg.ServerPort != "9090" {
		t.Fatalf("server port = %q", cfg.ServerPort)
	}
	if !cfg.UsesSQL() {
		t.Fatal("sqlite driver should use SQL")
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBUser: "u", DBPass: "p", DBName: "k", DBPort: "5433"}
	want := "host=db user=u password=p dbname=k port=5433 sslmode=disable"
	if got := cfg.PostgresDSN(); got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}
