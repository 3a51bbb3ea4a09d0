package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/promptops/console/internal/platform/errors"
	"github.com/promptops/console/internal/platform/id"
	"github.com/promptops/console/internal/services/admin/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin.db")
	for i := 0; i < 2; i++ {
		store, err := Open(context.Background(), path)
		if err != nil {
			t.Fatalf("open store (run %d): %v", i, err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	}
}

func TestPutUserRoundTrip(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	createdAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	if err := store.PutUser(ctx, storage.User{Username: "bob", Email: "bob@example.com", Role: storage.RoleViewer, CreatedAt: createdAt.Add(time.Hour)}); err != nil {
		t.Fatalf("put bob: %v", err)
	}
	if err := store.PutUser(ctx, storage.User{ID: "u-amy", Username: "amy", Email: "amy@example.com", Role: storage.RoleAdmin, CreatedAt: createdAt}); err != nil {
		t.Fatalf("put amy: %v", err)
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len(users) = %d, want 2", len(users))
	}
	if users[0].ID != "u-amy" || users[0].Role != storage.RoleAdmin || !users[0].CreatedAt.Equal(createdAt) {
		t.Fatalf("users[0] = %+v, want amy first", users[0])
	}
	if !id.Valid(users[1].ID) {
		t.Fatalf("generated id %q is not valid", users[1].ID)
	}
}

func TestPutUserRejectsDuplicatesAndInvalid(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	user := storage.User{Username: "amy", Email: "amy@example.com", Role: storage.RoleAdmin}
	if err := store.PutUser(ctx, user); err != nil {
		t.Fatalf("put user: %v", err)
	}
	if got := apperrors.CodeOf(store.PutUser(ctx, user)); got != apperrors.CodeUserExists {
		t.Fatalf("duplicate code = %s, want %s", got, apperrors.CodeUserExists)
	}
	invalid := storage.User{Username: "cam", Email: "not-an-email", Role: storage.RoleAdmin}
	if got := apperrors.CodeOf(store.PutUser(ctx, invalid)); got != apperrors.CodeUserEmailInvalid {
		t.Fatalf("invalid code = %s, want %s", got, apperrors.CodeUserEmailInvalid)
	}
}

func TestPutPromptRoundTrip(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	fixed := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	prompt := storage.Prompt{Name: "summarize", LatestVersion: "v0.1.2", LatestCommit: "a1b2c3", Owner: "amy"}
	if err := store.PutPrompt(ctx, prompt); err != nil {
		t.Fatalf("put prompt: %v", err)
	}

	prompts, err := store.ListPrompts(ctx)
	if err != nil {
		t.Fatalf("list prompts: %v", err)
	}
	if len(prompts) != 1 {
		t.Fatalf("len(prompts) = %d, want 1", len(prompts))
	}
	got := prompts[0]
	if got.Name != "summarize" || got.LatestVersion != "v0.1.2" || got.LatestCommit != "a1b2c3" || got.Owner != "amy" {
		t.Fatalf("prompt = %+v", got)
	}
	if !got.CreatedAt.Equal(fixed) || !got.UpdatedAt.Equal(fixed) {
		t.Fatalf("timestamps = %v/%v, want %v", got.CreatedAt, got.UpdatedAt, fixed)
	}

	if code := apperrors.CodeOf(store.PutPrompt(ctx, prompt)); code != apperrors.CodePromptExists {
		t.Fatalf("duplicate code = %s, want %s", code, apperrors.CodePromptExists)
	}
	bad := storage.Prompt{Name: "translate", LatestVersion: "1.0"}
	if code := apperrors.CodeOf(store.PutPrompt(ctx, bad)); code != apperrors.CodePromptVersionInvalid {
		t.Fatalf("invalid code = %s, want %s", code, apperrors.CodePromptVersionInvalid)
	}
}

func TestStoreRequiresOpenDB(t *testing.T) {
	var store *Store
	if _, err := store.ListUsers(context.Background()); err == nil {
		t.Fatal("expected error for nil store")
	}
	if err := store.PutPrompt(context.Background(), storage.Prompt{Name: "a", LatestVersion: "v1.0.0"}); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.ListPrompts(ctx); err == nil {
		t.Fatal("expected canceled context error")
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "admin.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestPing(t *testing.T) {
	store := openTempStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	var missing *Store
	if err := missing.Ping(context.Background()); err == nil {
		t.Fatal("expected error for nil store")
	}
}
