package domain

import (
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"student", "organization", "university", "admin"} {
		role, err := ParseRole(raw)
		if err != nil {
			t.Fatalf("ParseRole(%q) returned error: %v", raw, err)
		}
		if string(role) != raw {
			t.Fatalf("ParseRole(%q) = %q", raw, role)
		}
	}

	if _, err := ParseRole("superuser"); err == nil {
		t.Fatal("expected error for unknown role")
	}
	if _, err := ParseRole(""); err == nil {
		t.Fatal("expected error for empty role")
	}
}

func TestRoleHomePath(t *testing.T) {
	cases := map[Role]string{
		RoleStudent:      "/student/dashboard",
		RoleOrganization: "/organization/dashboard",
		RoleUniversity:   "/university/dashboard",
		RoleAdmin:        "/admin/dashboard",
		Role("ghost"):    "/",
	}
	for role, want := range cases {
		if got := role.HomePath(); got != want {
			t.Errorf("HomePath(%q) = %q, want %q", role, got, want)
		}
	}
}

func TestNotificationVisibleTo(t *testing.T) {
	broadcast := Notification{UserRole: RoleStudent}
	targeted := Notification{UserRole: RoleStudent, UserID: "s1"}

	s1 := &Session{UserID: "s1", Role: RoleStudent}
	s2 := &Session{UserID: "s2", Role: RoleStudent}
	org := &Session{UserID: "o1", Role: RoleOrganization}

	if !broadcast.VisibleTo(s1) || !broadcast.VisibleTo(s2) {
		t.Error("role broadcast should reach every member of the role")
	}
	if broadcast.VisibleTo(org) {
		t.Error("broadcast leaked across roles")
	}
	if !targeted.VisibleTo(s1) {
		t.Error("targeted notification not visible to its recipient")
	}
	if targeted.VisibleTo(s2) {
		t.Error("targeted notification leaked to another user of the same role")
	}
	if targeted.VisibleTo(nil) {
		t.Error("nil session must see nothing")
	}
}

func TestSessionIsExpired(t *testing.T) {
	now := time.Now()

	var nilSession *Session
	if !nilSession.IsExpired(now) {
		t.Error("nil session should count as expired")
	}

	live := &Session{ExpiresAt: now.Add(time.Hour)}
	if live.IsExpired(now) {
		t.Error("future expiry reported as expired")
	}

	stale := &Session{ExpiresAt: now.Add(-time.Hour)}
	if !stale.IsExpired(now) {
		t.Error("past expiry not reported as expired")
	}
}
