package middleware

import (
	"net/url"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/islandscholars/backend/domain"
)

// GuardAction is the outcome of a route-guard evaluation.
type GuardAction int

const (
	// ActionRender lets the requested page through.
	ActionRender GuardAction = iota
	// ActionLoginRedirect sends the caller to the login page, remembering
	// where they were headed.
	ActionLoginRedirect
	// ActionHomeRedirect bounces the caller to their role's own dashboard.
	ActionHomeRedirect
)

// LoginPath is where unauthenticated page requests are sent. The original
// location travels along in the "from" query parameter so login can return
// the user there afterward.
const LoginPath = "/login"

// Decision is what the guard decided for one request.
type Decision struct {
	Action   GuardAction
	Location string
}

// Decide is the route guard: a pure function of the current identity, a role
// allow-list, and the requested location.
//
//  1. No identity: redirect to login, carrying the requested path.
//  2. Allow-list supplied and the identity's role not in it: redirect to
//     that role's fixed home path.
//  3. Otherwise: render.
func Decide(session *domain.Session, allowed []domain.Role, requested string) Decision {
	if session == nil {
		return Decision{
			Action:   ActionLoginRedirect,
			Location: LoginPath + "?from=" + url.QueryEscape(requested),
		}
	}
	if len(allowed) > 0 && !roleAllowed(session.Role, allowed) {
		return Decision{
			Action:   ActionHomeRedirect,
			Location: session.Role.HomePath(),
		}
	}
	return Decision{Action: ActionRender}
}

// Guard wraps a page handler with the route guard. Unlike the API
// middleware, failures redirect rather than answer with a bare status code.
func Guard(secret string, sessions SessionResolver, logger *zap.Logger, allowed ...domain.Role) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			session := resolveSession(ctx, secret, sessions, logger)

			decision := Decide(session, allowed, string(ctx.Path()))
			switch decision.Action {
			case ActionRender:
				ctx.SetUserValue(SessionKey, session)
				next(ctx)
			default:
				ctx.Redirect(decision.Location, fasthttp.StatusSeeOther)
			}
		}
	}
}
