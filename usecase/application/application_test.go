package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/repository"
)

type fakeApplicationRepo struct {
	byID    map[string]*domain.Application
	created []*domain.Application
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if a, ok := f.byID[id]; ok {
		copy := *a
		return &copy, nil
	}
	return nil, domain.ErrApplicationNotFound
}

func (f *fakeApplicationRepo) List(ctx context.Context, filter repository.ApplicationFilter) ([]domain.Application, error) {
	var out []domain.Application
	for _, a := range f.byID {
		if filter.StudentID != "" && a.StudentID != filter.StudentID {
			continue
		}
		if filter.InternshipID != "" && a.InternshipID != filter.InternshipID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeApplicationRepo) Create(ctx context.Context, application *domain.Application) error {
	for _, a := range f.byID {
		if a.StudentID == application.StudentID && a.InternshipID == application.InternshipID {
			return domain.ErrApplicationDuplicate
		}
	}
	if f.byID == nil {
		f.byID = map[string]*domain.Application{}
	}
	f.byID[application.ID] = application
	f.created = append(f.created, application)
	return nil
}

func (f *fakeApplicationRepo) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	a, ok := f.byID[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	a.Status = status
	return nil
}

type fakeInternshipRepo struct {
	byID map[string]*domain.Internship
}

func (f *fakeInternshipRepo) GetByID(ctx context.Context, id string) (*domain.Internship, error) {
	if i, ok := f.byID[id]; ok {
		return i, nil
	}
	return nil, domain.ErrInternshipNotFound
}

func (f *fakeInternshipRepo) List(ctx context.Context, filter repository.InternshipFilter) ([]domain.Internship, error) {
	var out []domain.Internship
	for _, i := range f.byID {
		out = append(out, *i)
	}
	return out, nil
}

func (f *fakeInternshipRepo) Create(ctx context.Context, internship *domain.Internship) error {
	if f.byID == nil {
		f.byID = map[string]*domain.Internship{}
	}
	f.byID[internship.ID] = internship
	return nil
}

func (f *fakeInternshipRepo) UpdateStatus(ctx context.Context, id string, status domain.InternshipStatus) error {
	i, ok := f.byID[id]
	if !ok {
		return domain.ErrInternshipNotFound
	}
	i.Status = status
	return nil
}

type recordingNotifier struct {
	sent []domain.Notification
}

func (r *recordingNotifier) Add(ctx context.Context, partial domain.Notification) (*domain.Notification, error) {
	r.sent = append(r.sent, partial)
	return &partial, nil
}

func openInternship() *fakeInternshipRepo {
	return &fakeInternshipRepo{byID: map[string]*domain.Internship{
		"i1": {
			ID:             "i1",
			OrganizationID: "o1",
			Title:          "Field Research Intern",
			Status:         domain.InternshipOpen,
			Deadline:       time.Now().Add(24 * time.Hour),
		},
	}}
}

func student() *domain.Session {
	return &domain.Session{UserID: "s1", Role: domain.RoleStudent}
}

func TestApplyNotifiesOrganization(t *testing.T) {
	apps := &fakeApplicationRepo{}
	notifier := &recordingNotifier{}
	uc := New(apps, openInternship(), notifier, nil)

	application, err := uc.Apply(context.Background(), student(), "i1", "I am keen")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if application.Status != domain.ApplicationPending {
		t.Fatalf("status = %q, want pending", application.Status)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("expected one notification, have %d", len(notifier.sent))
	}
	n := notifier.sent[0]
	if n.UserRole != domain.RoleOrganization || n.UserID != "o1" {
		t.Fatalf("notification addressed to %s/%s, want organization/o1", n.UserRole, n.UserID)
	}
	if n.Type != domain.NotificationApplication {
		t.Fatalf("notification type = %q", n.Type)
	}
}

func TestApplyRequiresStudent(t *testing.T) {
	uc := New(&fakeApplicationRepo{}, openInternship(), nil, nil)

	org := &domain.Session{UserID: "o1", Role: domain.RoleOrganization}
	if _, err := uc.Apply(context.Background(), org, "i1", ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("organization apply error = %v, want ErrForbidden", err)
	}
	if _, err := uc.Apply(context.Background(), nil, "i1", ""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("anonymous apply error = %v, want ErrUnauthorized", err)
	}
}

func TestApplyClosedInternship(t *testing.T) {
	internships := openInternship()
	internships.byID["i1"].Status = domain.InternshipClosed
	uc := New(&fakeApplicationRepo{}, internships, nil, nil)

	if _, err := uc.Apply(context.Background(), student(), "i1", ""); !errors.Is(err, domain.ErrInternshipClosed) {
		t.Fatalf("error = %v, want ErrInternshipClosed", err)
	}
}

func TestApplyDuplicate(t *testing.T) {
	uc := New(&fakeApplicationRepo{}, openInternship(), &recordingNotifier{}, nil)

	if _, err := uc.Apply(context.Background(), student(), "i1", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Apply(context.Background(), student(), "i1", ""); !errors.Is(err, domain.ErrApplicationDuplicate) {
		t.Fatalf("second apply error = %v, want ErrApplicationDuplicate", err)
	}
}

func TestListScoping(t *testing.T) {
	apps := &fakeApplicationRepo{byID: map[string]*domain.Application{
		"a1": {ID: "a1", InternshipID: "i1", StudentID: "s1"},
		"a2": {ID: "a2", InternshipID: "i1", StudentID: "s2"},
	}}
	uc := New(apps, openInternship(), nil, nil)

	own, err := uc.List(context.Background(), student(), repository.ApplicationFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(own) != 1 || own[0].StudentID != "s1" {
		t.Fatalf("student list = %v, want only s1's application", own)
	}

	// Organizations must scope to an internship they own.
	org := &domain.Session{UserID: "o1", Role: domain.RoleOrganization}
	if _, err := uc.List(context.Background(), org, repository.ApplicationFilter{}); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("unscoped org list error = %v, want ErrInvalidPayload", err)
	}

	other := &domain.Session{UserID: "o2", Role: domain.RoleOrganization}
	if _, err := uc.List(context.Background(), other, repository.ApplicationFilter{InternshipID: "i1"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign org list error = %v, want ErrForbidden", err)
	}

	admin := &domain.Session{UserID: "admin", Role: domain.RoleAdmin}
	all, err := uc.List(context.Background(), admin, repository.ApplicationFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("admin list = %d entries, want 2", len(all))
	}
}

func TestUpdateStatusNotifiesStudent(t *testing.T) {
	apps := &fakeApplicationRepo{byID: map[string]*domain.Application{
		"a1": {ID: "a1", InternshipID: "i1", StudentID: "s1", Status: domain.ApplicationPending},
	}}
	notifier := &recordingNotifier{}
	uc := New(apps, openInternship(), notifier, nil)

	org := &domain.Session{UserID: "o1", Role: domain.RoleOrganization}
	updated, err := uc.UpdateStatus(context.Background(), org, "a1", domain.ApplicationAccepted)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != domain.ApplicationAccepted {
		t.Fatalf("status = %q, want accepted", updated.Status)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("expected one notification, have %d", len(notifier.sent))
	}
	n := notifier.sent[0]
	if n.UserRole != domain.RoleStudent || n.UserID != "s1" {
		t.Fatalf("notification addressed to %s/%s, want student/s1", n.UserRole, n.UserID)
	}
	if n.Type != domain.NotificationSuccess {
		t.Fatalf("accepted decision should use the success type, got %q", n.Type)
	}

	// Another organization cannot decide on this application.
	other := &domain.Session{UserID: "o2", Role: domain.RoleOrganization}
	if _, err := uc.UpdateStatus(context.Background(), other, "a1", domain.ApplicationRejected); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign org decision error = %v, want ErrForbidden", err)
	}
}
