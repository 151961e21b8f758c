package middleware

import (
	"testing"

	"github.com/islandscholars/backend/domain"
)

func TestDecideAnonymousRedirectsToLogin(t *testing.T) {
	decision := Decide(nil, []domain.Role{domain.RoleStudent}, "/student/dashboard")

	if decision.Action != ActionLoginRedirect {
		t.Fatalf("action = %v, want login redirect", decision.Action)
	}
	want := "/login?from=%2Fstudent%2Fdashboard"
	if decision.Location != want {
		t.Fatalf("location = %q, want %q", decision.Location, want)
	}
}

func TestDecideWrongRoleBouncesHome(t *testing.T) {
	org := &domain.Session{UserID: "o1", Role: domain.RoleOrganization}

	decision := Decide(org, []domain.Role{domain.RoleStudent}, "/student/dashboard")

	if decision.Action != ActionHomeRedirect {
		t.Fatalf("action = %v, want home redirect", decision.Action)
	}
	if decision.Location != "/organization/dashboard" {
		t.Fatalf("location = %q, want the caller's own dashboard", decision.Location)
	}
}

func TestDecideAllowedRoleRenders(t *testing.T) {
	student := &domain.Session{UserID: "s1", Role: domain.RoleStudent}

	decision := Decide(student, []domain.Role{domain.RoleStudent}, "/student/dashboard")
	if decision.Action != ActionRender {
		t.Fatalf("action = %v, want render", decision.Action)
	}

	// An empty allow-list only requires authentication.
	decision = Decide(student, nil, "/profile")
	if decision.Action != ActionRender {
		t.Fatalf("empty allow-list action = %v, want render", decision.Action)
	}
}
