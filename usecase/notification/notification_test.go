package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/islandscholars/backend/domain"
)

// memStore keeps notifications in a slice, newest first, the same contract
// the Bolt store honors.
type memStore struct {
	items []domain.Notification
}

func (m *memStore) Add(ctx context.Context, n *domain.Notification) error {
	m.items = append([]domain.Notification{*n}, m.items...)
	return nil
}

func (m *memStore) List(ctx context.Context) ([]domain.Notification, error) {
	out := make([]domain.Notification, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memStore) MarkRead(ctx context.Context, id string) (bool, error) {
	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		if m.items[i].Read {
			return false, nil
		}
		m.items[i].Read = true
		return true, nil
	}
	return false, domain.ErrNotificationNotFound
}

func (m *memStore) MarkManyRead(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := m.MarkRead(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (m *memStore) Prune(ctx context.Context, olderThan time.Time) (int, error) {
	kept := m.items[:0]
	pruned := 0
	for _, n := range m.items {
		if n.Read && n.Timestamp.Before(olderThan) {
			pruned++
			continue
		}
		kept = append(kept, n)
	}
	m.items = kept
	return pruned, nil
}

func (m *memStore) Size(ctx context.Context) (int, error) {
	return len(m.items), nil
}

func seededStore() *memStore {
	return &memStore{items: []domain.Notification{
		{ID: "n1", UserRole: domain.RoleStudent, UserID: "s1", Title: "Application update"},
		{ID: "n2", UserRole: domain.RoleStudent, UserID: "s2", Title: "Message received"},
		{ID: "n3", UserRole: domain.RoleOrganization, Title: "New applicant"},
	}}
}

func TestVisibleFor(t *testing.T) {
	uc := New(seededStore(), nil)
	s1 := &domain.Session{UserID: "s1", Role: domain.RoleStudent}

	view, err := uc.VisibleFor(context.Background(), s1)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Notifications) != 1 || view.Notifications[0].ID != "n1" {
		t.Fatalf("student s1 sees %d notifications, want only n1", len(view.Notifications))
	}
	if view.UnreadCount != 1 {
		t.Fatalf("unread count = %d, want 1", view.UnreadCount)
	}
}

func TestVisibleForNilSession(t *testing.T) {
	uc := New(seededStore(), nil)

	view, err := uc.VisibleFor(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if view.Notifications == nil {
		t.Fatal("view slice should be initialized, not nil")
	}
	if len(view.Notifications) != 0 || view.UnreadCount != 0 {
		t.Fatal("anonymous caller must see an empty view")
	}
}

func TestMarkReadIdempotent(t *testing.T) {
	uc := New(seededStore(), nil)
	s1 := &domain.Session{UserID: "s1", Role: domain.RoleStudent}

	if err := uc.MarkRead(context.Background(), s1, "n1"); err != nil {
		t.Fatal(err)
	}
	// A second mark of the same id must not drive the count below zero.
	if err := uc.MarkRead(context.Background(), s1, "n1"); err != nil {
		t.Fatal(err)
	}

	view, err := uc.VisibleFor(context.Background(), s1)
	if err != nil {
		t.Fatal(err)
	}
	if view.UnreadCount != 0 {
		t.Fatalf("unread count = %d, want 0", view.UnreadCount)
	}
}

func TestMarkReadInvisibleNotification(t *testing.T) {
	uc := New(seededStore(), nil)
	s1 := &domain.Session{UserID: "s1", Role: domain.RoleStudent}

	// n2 belongs to another student; s1 may not touch it.
	err := uc.MarkRead(context.Background(), s1, "n2")
	if !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("error = %v, want ErrNotificationNotFound", err)
	}

	err = uc.MarkRead(context.Background(), nil, "n1")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("nil session error = %v, want ErrUnauthorized", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	store := seededStore()
	uc := New(store, nil)
	s1 := &domain.Session{UserID: "s1", Role: domain.RoleStudent}

	if err := uc.MarkAllRead(context.Background(), s1); err != nil {
		t.Fatal(err)
	}

	view, err := uc.VisibleFor(context.Background(), s1)
	if err != nil {
		t.Fatal(err)
	}
	if view.UnreadCount != 0 {
		t.Fatalf("unread count = %d, want 0", view.UnreadCount)
	}
	// Other identities' notifications stay untouched.
	for _, n := range store.items {
		if n.ID != "n1" && n.Read {
			t.Errorf("notification %s was read by the wrong identity", n.ID)
		}
	}
}

func TestAddPrepends(t *testing.T) {
	store := seededStore()
	uc := New(store, nil)

	added, err := uc.Add(context.Background(), domain.Notification{
		UserRole: domain.RoleStudent,
		UserID:   "s1",
		Title:    "Fresh news",
	})
	if err != nil {
		t.Fatal(err)
	}
	if added.ID == "" {
		t.Fatal("Add did not assign an id")
	}
	if added.Read {
		t.Fatal("new notifications must start unread")
	}
	if added.Type != domain.NotificationAlert {
		t.Fatalf("default type = %q, want alert", added.Type)
	}
	if added.Timestamp.IsZero() {
		t.Fatal("Add did not stamp a time")
	}
	if store.items[0].ID != added.ID {
		t.Fatal("new notification is not at the head of the list")
	}
}

func TestAddValidation(t *testing.T) {
	uc := New(seededStore(), nil)

	if _, err := uc.Add(context.Background(), domain.Notification{Title: "no role"}); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("missing role error = %v, want ErrInvalidPayload", err)
	}
	if _, err := uc.Add(context.Background(), domain.Notification{UserRole: domain.RoleStudent}); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("missing title error = %v, want ErrInvalidPayload", err)
	}
}
