package bolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/islandscholars/backend/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "notifications.db"), "notifications")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestListNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"first", "second", "third"} {
		err := store.Add(ctx, &domain.Notification{
			ID:       id,
			UserRole: domain.RoleStudent,
			Title:    id,
		})
		if err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	for i, want := range []string{"third", "second", "first"} {
		if all[i].ID != want {
			t.Fatalf("position %d = %q, want %q", i, all[i].ID, want)
		}
	}
}

func TestMarkReadReportsChange(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, &domain.Notification{ID: "n1", UserRole: domain.RoleStudent, Title: "t"}); err != nil {
		t.Fatal(err)
	}

	changed, err := store.MarkRead(ctx, "n1")
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("first mark should report a change")
	}

	changed, err = store.MarkRead(ctx, "n1")
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Fatal("second mark must be a no-op")
	}

	if _, err := store.MarkRead(ctx, "missing"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("missing id error = %v, want ErrNotificationNotFound", err)
	}
}

func TestMarkManyRead(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := store.Add(ctx, &domain.Notification{ID: id, UserRole: domain.RoleStudent, Title: id}); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.MarkManyRead(ctx, []string{"a", "c"}); err != nil {
		t.Fatal(err)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	read := map[string]bool{}
	for _, n := range all {
		read[n.ID] = n.Read
	}
	if !read["a"] || !read["c"] || read["b"] {
		t.Fatalf("read flags = %v, want a and c read, b unread", read)
	}
}

func TestPruneOnlyReadAndOld(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	old := time.Now().Add(-48 * time.Hour)

	entries := []domain.Notification{
		{ID: "old-read", UserRole: domain.RoleStudent, Title: "t", Timestamp: old, Read: true},
		{ID: "old-unread", UserRole: domain.RoleStudent, Title: "t", Timestamp: old},
		{ID: "new-read", UserRole: domain.RoleStudent, Title: "t", Timestamp: time.Now(), Read: true},
	}
	for i := range entries {
		if err := store.Add(ctx, &entries[i]); err != nil {
			t.Fatal(err)
		}
	}

	pruned, err := store.Prune(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if pruned != 1 {
		t.Fatalf("pruned = %d, want 1", pruned)
	}

	size, err := store.Size(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if size != 2 {
		t.Fatalf("size = %d, want 2", size)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range all {
		if n.ID == "old-read" {
			t.Fatal("old read notification survived the prune")
		}
	}
}

func TestSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notifications.db")
	ctx := context.Background()

	store, err := Open(path, "notifications")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Add(ctx, &domain.Notification{ID: "n1", UserRole: domain.RoleStudent, Title: "t"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path, "notifications")
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	all, err := reopened.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].ID != "n1" {
		t.Fatalf("reopened store lost data: %v", all)
	}
}
