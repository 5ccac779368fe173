package db

import (
	"os"
	"path/filepath"
	"testing"

	"kanbanify/internal/config"

	"go.uber.org/zap/zaptest"
)

func TestEnsureDirForSQLite(t *testing.T) {
	root := t.TempDir()
	dsn := "file:" + filepath.Join(root, "nested", "kanban.db") + "?cache=shared"

	if err := ensureDirForSQLite(dsn); err != nil {
		t.Fatalf("ensureDirForSQLite: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "nested")); err != nil {
		t.Fatalf("directory not created: %v", err)
	}
	if err := ensureDirForSQLite(":memory:"); err != nil {
		t.Fatalf("memory dsn: %v", err)
	}
}

func TestConnectAndMigrateSQLite(t *testing.T) {
	cfg := &config.Config{
		StorageDriver: config.StorageSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "kanban.db"),
	}
	logger := zaptest.NewLogger(t)

	db, err := Connect(cfg, logger)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := Migrate(db, logger); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if !db.Migrator().HasTable("kv_entries") {
		t.Fatal("kv_entries table missing after migration")
	}
}

func TestConnectRejectsNonSQLDriver(t *testing.T) {
	cfg := &config.Config{StorageDriver: config.StorageMemory}
	if _, err := Connect(cfg, zaptest.NewLogger(t)); err == nil {
		t.Fatal("expected error for memory driver")
	}
}
