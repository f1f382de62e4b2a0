package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "props.db")

	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if _, ok, err := s.Load(ctx); err != nil || ok {
		t.Fatalf("fresh Load ok=%v err=%v", ok, err)
	}
	if err := s.Save(ctx, "usual"); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "twin"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatal(err)
	}

	s2, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = s2.Close(ctx) })
	name, ok, err := s2.Load(ctx)
	if err != nil || !ok || name != "twin" {
		t.Fatalf("Load=%q,%v,%v want twin", name, ok, err)
	}
}

func TestSQLiteKeepsOtherProperties(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "shared.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s, err := NewSQLite(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO properties (key, value) VALUES ('theme', 'dark');"); err != nil {
		t.Fatal(err)
	}
	for _, n := range []string{"naive", "single", "both"} {
		if err := s.Save(ctx, n); err != nil {
			t.Fatal(err)
		}
	}

	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties;").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("rows=%d want 2 (method + theme)", n)
	}
	// Close on a borrowed handle leaves it usable
	if err := s.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("db closed by store: %v", err)
	}
}
