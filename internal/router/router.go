package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/islandscholars/backend/api/handler"
	"github.com/islandscholars/backend/domain"
)

type Handlers struct {
	Auth         *apiHandler.AuthHandler
	Profile      *apiHandler.ProfileHandler
	Notification *apiHandler.NotificationHandler
	Internship   *apiHandler.InternshipHandler
	Application  *apiHandler.ApplicationHandler
	Event        *apiHandler.EventHandler
	University   *apiHandler.UniversityHandler
	Dashboard    *apiHandler.DashboardHandler
	Health       *apiHandler.HealthHandler
}

// Middleware groups the cross-cutting wrappers the route table needs.
type Middleware struct {
	// Authenticate answers 401 for API calls without a live session.
	Authenticate func(fasthttp.RequestHandler) fasthttp.RequestHandler
	// RequireRoles builds a 403 filter for an API allow-list.
	RequireRoles func(...domain.Role) func(fasthttp.RequestHandler) fasthttp.RequestHandler
	// Guard builds the redirecting route guard for page routes.
	Guard func(...domain.Role) func(fasthttp.RequestHandler) fasthttp.RequestHandler
}

func New(h Handlers, mw Middleware) *router.Router {
	r := router.New()

	r.GET("/health", h.Health.Check)

	// Auth
	r.POST("/api/v1/auth/signin", h.Auth.Signin)
	r.POST("/api/v1/auth/signup", h.Auth.Signup)
	r.GET("/api/v1/auth/session", mw.Authenticate(h.Auth.Session))
	r.POST("/api/v1/auth/signout", mw.Authenticate(h.Auth.Signout))

	// Profile
	r.GET("/api/v1/profile", mw.Authenticate(h.Profile.Get))
	r.PUT("/api/v1/profile", mw.Authenticate(h.Profile.Update))

	// Notifications
	r.GET("/api/v1/notifications", mw.Authenticate(h.Notification.List))
	r.POST("/api/v1/notifications", mw.Authenticate(mw.RequireRoles(domain.RoleAdmin)(h.Notification.Create)))
	r.POST("/api/v1/notifications/{id}/read", mw.Authenticate(h.Notification.MarkRead))
	r.POST("/api/v1/notifications/read-all", mw.Authenticate(h.Notification.MarkAllRead))

	// Internships
	r.GET("/api/v1/internships", h.Internship.List)
	r.GET("/api/v1/internships/{id}", h.Internship.Get)
	r.POST("/api/v1/internships", mw.Authenticate(mw.RequireRoles(domain.RoleOrganization, domain.RoleAdmin)(h.Internship.Create)))
	r.POST("/api/v1/internships/{id}/close", mw.Authenticate(h.Internship.Close))

	// Applications
	r.GET("/api/v1/applications", mw.Authenticate(h.Application.List))
	r.POST("/api/v1/applications", mw.Authenticate(mw.RequireRoles(domain.RoleStudent)(h.Application.Create)))
	r.PUT("/api/v1/applications/{id}/status", mw.Authenticate(mw.RequireRoles(domain.RoleOrganization, domain.RoleAdmin)(h.Application.UpdateStatus)))

	// Events
	r.GET("/api/v1/events", h.Event.List)
	r.POST("/api/v1/events", mw.Authenticate(mw.RequireRoles(domain.RoleOrganization, domain.RoleUniversity, domain.RoleAdmin)(h.Event.Create)))
	r.PUT("/api/v1/events/{id}/status", mw.Authenticate(h.Event.UpdateStatus))

	// Universities
	r.GET("/api/v1/universities", h.University.List)
	r.GET("/api/v1/universities/{id}", h.University.Get)

	// Guarded dashboard routes: wrong-role requests bounce to the caller's
	// own dashboard, anonymous ones to the login page.
	r.GET(domain.RoleStudent.HomePath(), mw.Guard(domain.RoleStudent)(h.Dashboard.Show))
	r.GET(domain.RoleOrganization.HomePath(), mw.Guard(domain.RoleOrganization)(h.Dashboard.Show))
	r.GET(domain.RoleUniversity.HomePath(), mw.Guard(domain.RoleUniversity)(h.Dashboard.Show))
	r.GET(domain.RoleAdmin.HomePath(), mw.Guard(domain.RoleAdmin)(h.Dashboard.Show))

	return r
}
