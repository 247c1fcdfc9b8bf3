// Package storetest opens a migrated in-memory store for tests.
package storetest

import (
	"testing"

	"campus_market/internal/config"
	"campus_market/internal/database"
	"campus_market/internal/store"
)

func New(t testing.TB) *store.Store {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Type: "sqlite", DSN: ":memory:"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return store.New(db)
}
