package middleware

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/islandscholars/backend/domain"
)

// SessionKey is the fasthttp user-value under which the resolved session is
// stored for downstream handlers.
const SessionKey = "session"

// SessionResolver rehydrates a stored session by id. Implemented by the auth
// use case.
type SessionResolver interface {
	Resume(ctx context.Context, sessionID string) (*domain.Session, error)
}

// Authenticate validates the bearer token, confirms the referenced session
// is still live, and attaches the session to the request. API callers get a
// 401 on failure.
func Authenticate(secret string, sessions SessionResolver, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			session := resolveSession(ctx, secret, sessions, logger)
			if session == nil {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			ctx.SetUserValue(SessionKey, session)
			ctx.Request.Header.Set("X-User-ID", session.UserID)
			ctx.Request.Header.Set("X-User-Role", string(session.Role))

			next(ctx)
		}
	}
}

// RequireRoles rejects authenticated callers whose role is not in the
// allow-list with a 403. It must run after Authenticate.
func RequireRoles(allowed ...domain.Role) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			session := SessionFrom(ctx)
			if session == nil {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}
			if len(allowed) > 0 && !roleAllowed(session.Role, allowed) {
				ctx.SetStatusCode(fasthttp.StatusForbidden)
				return
			}
			next(ctx)
		}
	}
}

// SessionFrom returns the session attached by Authenticate, or nil.
func SessionFrom(ctx *fasthttp.RequestCtx) *domain.Session {
	if session, ok := ctx.UserValue(SessionKey).(*domain.Session); ok {
		return session
	}
	return nil
}

func resolveSession(ctx *fasthttp.RequestCtx, secret string, sessions SessionResolver, logger *zap.Logger) *domain.Session {
	tokenString := extractToken(ctx)
	if tokenString == "" {
		return nil
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		logger.Warn("invalid jwt token", zap.Error(err))
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return nil
	}

	session, err := sessions.Resume(ctx, sessionID)
	if err != nil {
		return nil
	}
	return session
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}

func roleAllowed(role domain.Role, allowed []domain.Role) bool {
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}
