package store

import (
	"context"
	"testing"
)

func TestLocalLoadEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewLocal()
	t.Cleanup(func() { _ = s.Close(ctx) })

	name, ok, err := s.Load(ctx)
	if err != nil || ok || name != "" {
		t.Fatalf("Load=%q,%v,%v want empty", name, ok, err)
	}
	if !s.SelectedAt().IsZero() {
		t.Fatal("SelectedAt must be zero before Save")
	}
}

func TestLocalSaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewLocal()
	t.Cleanup(func() { _ = s.Close(ctx) })

	for _, n := range []string{"naive", "both"} {
		if err := s.Save(ctx, n); err != nil {
			t.Fatal(err)
		}
	}
	name, ok, err := s.Load(ctx)
	if err != nil || !ok || name != "both" {
		t.Fatalf("Load=%q,%v,%v want both", name, ok, err)
	}
	if s.SelectedAt().IsZero() {
		t.Fatal("SelectedAt not set")
	}
}
