package storage

import (
	"database/sql"
	"testing"

	"github.com/sandeepkv93/todocal/internal/model"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	db, err := sql.Open("sqlite3", MemoryDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	if err := repo.Insert(t.Context(), model.Todo{
		ID:          "todo-rt-1",
		Title:       "Roundtrip todo",
		Description: "migration compatibility",
		CreatedAt:   "Jun 1, 2025",
		Tags:        []string{"schema"},
	}); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := repo.Get(t.Context(), "todo-rt-1")
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got.Title != "Roundtrip todo" || len(got.Tags) != 1 {
		t.Fatalf("unexpected todo after roundtrip: %#v", got)
	}
}
