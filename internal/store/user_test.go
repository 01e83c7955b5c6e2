package store_test

import (
	"path/filepath"
	"testing"

	"github.com/seo-optimizer/backend/internal/config"
	"github.com/seo-optimizer/backend/internal/store"
)

func setupUserStore(t *testing.T) *store.UserStore {
	t.Helper()

	db, err := store.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("store.Open err: %v", err)
	}
	return store.NewUserStore(db)
}

func TestFindOrCreateCreatesOnFirstContact(t *testing.T) {
	users := setupUserStore(t)

	u, err := users.FindOrCreate("auth0|new", "new@example.com", "New User")
	if err != nil {
		t.Fatalf("FindOrCreate err: %v", err)
	}
	if u.Auth0ID != "auth0|new" || u.Email != "new@example.com" || u.Name != "New User" {
		t.Fatalf("unexpected user: %+v", u)
	}

	again, err := users.FindOrCreate("auth0|new", "", "")
	if err != nil {
		t.Fatalf("FindOrCreate err: %v", err)
	}
	if again.ID != u.ID {
		t.Fatal("expected the same user row on repeat resolution")
	}
}

func TestFindOrCreateBackfillsChangedClaims(t *testing.T) {
	users := setupUserStore(t)

	u, err := users.FindOrCreate("auth0|claims", "", "")
	if err != nil {
		t.Fatalf("FindOrCreate err: %v", err)
	}
	if u.Email != "" || u.Name != "" {
		t.Fatalf("expected empty claims initially, got %+v", u)
	}

	updated, err := users.FindOrCreate("auth0|claims", "late@example.com", "Late Name")
	if err != nil {
		t.Fatalf("FindOrCreate err: %v", err)
	}
	if updated.Email != "late@example.com" || updated.Name != "Late Name" {
		t.Fatalf("claims not backfilled: %+v", updated)
	}

	// Empty incoming claims never erase stored values.
	kept, err := users.FindOrCreate("auth0|claims", "", "")
	if err != nil {
		t.Fatalf("FindOrCreate err: %v", err)
	}
	if kept.Email != "late@example.com" || kept.Name != "Late Name" {
		t.Fatalf("stored claims lost: %+v", kept)
	}
}
