package database

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"campus_market/internal/config"
	"campus_market/internal/models"
)

func TestSqliteDSN(t *testing.T) {
	cases := map[string]string{
		"":                       "campus_market.db?_foreign_keys=on",
		"data/app.db":            "data/app.db?_foreign_keys=on",
		"file:x.db?cache=shared": "file:x.db?cache=shared&_foreign_keys=on",
	}
	for in, want := range cases {
		if got := sqliteDSN(in); got != want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGormLogsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	db, err := Open(config.DatabaseConfig{Type: "sqlite", DSN: ":memory:"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer Close(db)
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	logs.TakeAll()

	var u models.User
	if err := db.Where("id = ?", "missing").First(&u).Error; err == nil {
		t.Fatal("expected record not found")
	}
	if n := logs.Len(); n != 0 {
		t.Fatalf("record-not-found produced %d log entries: %v", n, logs.All())
	}

	if err := db.Exec("SELECT * FROM no_such_table").Error; err == nil {
		t.Fatal("expected SQL error")
	}
	entries := logs.All()
	if len(entries) != 1 || entries[0].LoggerName != "gorm" || !strings.Contains(entries[0].Message, "no_such_table") {
		t.Fatalf("SQL error entries = %+v", entries)
	}
}
