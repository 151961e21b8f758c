package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/repository"
)

// Config carries the authentication policy. The administrative credential
// comes from deployment configuration and never lives in source.
type Config struct {
	AdminHandle     string
	AdminSecret     string
	AdminSecretHash string
	JWTSecret       string
	JWTIssuer       string
	SessionTTL      time.Duration
	// RegistrationOpen gates account creation. While false, Register
	// rejects every request with domain.ErrRegistrationClosed and never
	// creates an account.
	RegistrationOpen bool
}

// UseCase is the single source of truth for who is logged in.
type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	cfg      Config
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, cfg Config, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

// Result bundles everything a successful login produces.
type Result struct {
	User    *domain.User    `json:"user"`
	Session *domain.Session `json:"session"`
	Token   string          `json:"token"`
}

// RegisterData is the signup payload, mirroring the multi-step registration
// wizard. Role-specific fields are optional and kept opaque here.
type RegisterData struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Phone    string
	Location string
	Bio      string
}

// Login authenticates an identifier/secret pair. The configured admin handle
// is checked first (case-insensitively); otherwise the user table is
// consulted. Either a full session is persisted or nothing changes.
func (uc *UseCase) Login(ctx context.Context, identifier, secret string) (*Result, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || secret == "" {
		return nil, domain.ErrInvalidPayload
	}

	if uc.matchesAdmin(identifier, secret) {
		return uc.establish(ctx, uc.adminIdentity())
	}

	if uc.users != nil {
		user, err := uc.users.GetByEmail(ctx, identifier)
		switch {
		case err == nil:
			if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(secret)) != nil {
				return nil, domain.ErrInvalidCredentials
			}
			return uc.establish(ctx, user)
		case errors.Is(err, domain.ErrUserNotFound):
			// fall through to the shape-based rejection below
		default:
			return nil, err
		}
	}

	return nil, classifyRejection(identifier)
}

// Register creates an account and logs it in. With registration closed it
// always rejects and never creates anything; the presentation layer shipped
// that way until account provisioning was wired up.
func (uc *UseCase) Register(ctx context.Context, data RegisterData) (*Result, error) {
	if !uc.cfg.RegistrationOpen || uc.users == nil {
		return nil, domain.ErrRegistrationClosed
	}

	data.Email = strings.ToLower(strings.TrimSpace(data.Email))
	if data.Name == "" || data.Email == "" || len(data.Password) < 8 {
		return nil, domain.ErrInvalidPayload
	}
	if !data.Role.Valid() || data.Role == domain.RoleAdmin {
		return nil, domain.ErrInvalidPayload
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         data.Name,
		Email:        data.Email,
		Role:         data.Role,
		Phone:        data.Phone,
		Location:     data.Location,
		Bio:          data.Bio,
		PasswordHash: string(hash),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("account registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return uc.establish(ctx, user)
}

// Resume rehydrates the identity for a stored session id, the counterpart of
// reading the saved session at application start. A corrupt stored payload
// has already been discarded by the repository; it is logged and treated as
// absent so the caller fails open to "logged out".
func (uc *UseCase) Resume(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}

	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionCorrupt) {
			uc.logger.Warn("discarded unreadable session payload",
				zap.String("session_id", sessionID),
				zap.Error(err))
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Logout clears the stored session. Calling it with no stored session is a
// no-op.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) establish(ctx context.Context, user *domain.User) (*Result, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.cfg.SessionTTL),
	}

	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := uc.issueToken(session)
	if err != nil {
		// Roll back so a failed login leaves no partial state behind.
		_ = uc.sessions.Delete(ctx, session.ID)
		return nil, err
	}

	uc.logger.Info("session established",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return &Result{User: user, Session: session, Token: token}, nil
}

func (uc *UseCase) issueToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    session.UserID,
		"role":       string(session.Role),
		"session_id": session.ID,
		"iss":        uc.cfg.JWTIssuer,
		"exp":        session.ExpiresAt.Unix(),
		"iat":        session.CreatedAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.cfg.JWTSecret))
}

func (uc *UseCase) matchesAdmin(identifier, secret string) bool {
	if uc.cfg.AdminHandle == "" {
		return false
	}
	if !strings.EqualFold(identifier, uc.cfg.AdminHandle) {
		return false
	}
	if uc.cfg.AdminSecretHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(uc.cfg.AdminSecretHash), []byte(secret)) == nil
	}
	if uc.cfg.AdminSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(uc.cfg.AdminSecret)) == 1
}

func (uc *UseCase) adminIdentity() *domain.User {
	return &domain.User{
		ID:        "admin",
		Name:      "Platform Administrator",
		Email:     strings.ToLower(uc.cfg.AdminHandle),
		Role:      domain.RoleAdmin,
		Verified:  true,
		CreatedAt: time.Now(),
	}
}

// classifyRejection picks the rejection message from the shape of what the
// caller typed: bare usernames and well-formed emails both get "account not
// available", while an email missing ".com" gets the format hint.
func classifyRejection(identifier string) error {
	hasAt := strings.Contains(identifier, "@")
	hasDot := strings.Contains(identifier, ".")

	if !hasAt && !hasDot {
		return domain.ErrAccountNotAvailable
	}
	if hasAt && !strings.Contains(identifier, ".com") {
		return domain.ErrEmailNeedsCom
	}
	return domain.ErrAccountNotAvailable
}
