package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/islandscholars/backend/domain"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	created []*domain.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
	corrupt  map[string]bool
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: make(map[string]*domain.Session),
		corrupt:  make(map[string]bool),
	}
}

func (f *fakeSessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	if f.corrupt[id] {
		delete(f.corrupt, id)
		delete(f.sessions, id)
		return nil, fmt.Errorf("decode session %s: %w", id, domain.ErrSessionCorrupt)
	}
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (f *fakeSessionRepo) Save(ctx context.Context, session *domain.Session) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func newTestUseCase(users *fakeUserRepo, sessions *fakeSessionRepo, cfg Config) *UseCase {
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "test-secret"
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = time.Hour
	}
	return New(users, sessions, cfg, nil)
}

func TestLoginAdminCaseInsensitive(t *testing.T) {
	sessions := newFakeSessionRepo()
	uc := newTestUseCase(&fakeUserRepo{}, sessions, Config{
		AdminHandle: "Overseer",
		AdminSecret: "keep-it-safe",
	})

	result, err := uc.Login(context.Background(), "oVeRsEeR", "keep-it-safe")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if result.User.Role != domain.RoleAdmin {
		t.Fatalf("admin login produced role %q", result.User.Role)
	}
	if result.Token == "" {
		t.Fatal("admin login produced no token")
	}
	if len(sessions.sessions) != 1 {
		t.Fatalf("expected one persisted session, have %d", len(sessions.sessions))
	}
}

func TestLoginAdminHashedSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("keep-it-safe"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	uc := newTestUseCase(&fakeUserRepo{}, newFakeSessionRepo(), Config{
		AdminHandle:     "overseer",
		AdminSecretHash: string(hash),
	})

	if _, err := uc.Login(context.Background(), "overseer", "keep-it-safe"); err != nil {
		t.Fatalf("hashed admin login failed: %v", err)
	}
	if _, err := uc.Login(context.Background(), "overseer", "wrong"); err == nil {
		t.Fatal("wrong admin secret accepted")
	}
}

func TestLoginRejectionMessages(t *testing.T) {
	uc := newTestUseCase(&fakeUserRepo{}, newFakeSessionRepo(), Config{})

	cases := []struct {
		identifier string
		want       error
	}{
		{"plainusername", domain.ErrAccountNotAvailable},
		{"someone@mail", domain.ErrEmailNeedsCom},
		{"someone@mail.org", domain.ErrEmailNeedsCom},
		{"someone@mail.com", domain.ErrAccountNotAvailable},
	}
	for _, tc := range cases {
		_, err := uc.Login(context.Background(), tc.identifier, "whatever")
		if !errors.Is(err, tc.want) {
			t.Errorf("Login(%q) error = %v, want %v", tc.identifier, err, tc.want)
		}
	}
}

func TestLoginKnownUserWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	users := &fakeUserRepo{byEmail: map[string]*domain.User{
		"amina@mail.com": {
			ID:           "u1",
			Email:        "amina@mail.com",
			Role:         domain.RoleStudent,
			PasswordHash: string(hash),
		},
	}}
	uc := newTestUseCase(users, newFakeSessionRepo(), Config{})

	if _, err := uc.Login(context.Background(), "amina@mail.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := uc.Login(context.Background(), "amina@mail.com", "correct-horse"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
}

func TestRegisterClosedCreatesNothing(t *testing.T) {
	users := &fakeUserRepo{}
	sessions := newFakeSessionRepo()
	uc := newTestUseCase(users, sessions, Config{RegistrationOpen: false})

	_, err := uc.Register(context.Background(), RegisterData{
		Name:     "Amina",
		Email:    "amina@mail.com",
		Password: "long-enough",
		Role:     domain.RoleStudent,
	})
	if !errors.Is(err, domain.ErrRegistrationClosed) {
		t.Fatalf("error = %v, want ErrRegistrationClosed", err)
	}
	if len(users.created) != 0 {
		t.Fatal("closed registration created an account")
	}
	if len(sessions.sessions) != 0 {
		t.Fatal("closed registration established a session")
	}
}

func TestRegisterOpen(t *testing.T) {
	users := &fakeUserRepo{byEmail: map[string]*domain.User{}}
	uc := newTestUseCase(users, newFakeSessionRepo(), Config{RegistrationOpen: true})

	result, err := uc.Register(context.Background(), RegisterData{
		Name:     "Amina",
		Email:    "Amina@Mail.com",
		Password: "long-enough",
		Role:     domain.RoleStudent,
	})
	if err != nil {
		t.Fatalf("open registration failed: %v", err)
	}
	if result.User.Email != "amina@mail.com" {
		t.Errorf("email not normalized: %q", result.User.Email)
	}
	if len(users.created) != 1 {
		t.Fatalf("expected one created account, have %d", len(users.created))
	}

	if _, err := uc.Register(context.Background(), RegisterData{
		Name:     "Root",
		Email:    "root@mail.com",
		Password: "long-enough",
		Role:     domain.RoleAdmin,
	}); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("admin self-signup error = %v, want ErrInvalidPayload", err)
	}
}

func TestResumeAndLogout(t *testing.T) {
	sessions := newFakeSessionRepo()
	uc := newTestUseCase(&fakeUserRepo{}, sessions, Config{
		AdminHandle: "overseer",
		AdminSecret: "keep-it-safe",
	})

	result, err := uc.Login(context.Background(), "overseer", "keep-it-safe")
	if err != nil {
		t.Fatal(err)
	}

	resumed, err := uc.Resume(context.Background(), result.Session.ID)
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if resumed.UserID != result.Session.UserID {
		t.Fatalf("resumed wrong identity: %q", resumed.UserID)
	}

	if err := uc.Logout(context.Background(), result.Session.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := uc.Resume(context.Background(), result.Session.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("resume after logout error = %v, want ErrSessionNotFound", err)
	}

	// Logging out with nothing stored is a no-op.
	if err := uc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("empty logout error: %v", err)
	}
}

func TestResumeCorruptSession(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.corrupt["broken"] = true
	uc := newTestUseCase(&fakeUserRepo{}, sessions, Config{})

	if _, err := uc.Resume(context.Background(), "broken"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("corrupt session error = %v, want ErrSessionNotFound", err)
	}
	// The payload is gone; the next attempt behaves like a fresh miss.
	if _, err := uc.Resume(context.Background(), "broken"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("second resume error = %v, want ErrSessionNotFound", err)
	}
}

func TestResumeExpiredSessionDeleted(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.sessions["stale"] = &domain.Session{
		ID:        "stale",
		UserID:    "u1",
		Role:      domain.RoleStudent,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	uc := newTestUseCase(&fakeUserRepo{}, sessions, Config{})

	if _, err := uc.Resume(context.Background(), "stale"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expired resume error = %v, want ErrSessionNotFound", err)
	}
	if _, ok := sessions.sessions["stale"]; ok {
		t.Fatal("expired session left in store")
	}
}
