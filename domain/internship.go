package domain

import "time"

type InternshipStatus string

const (
	InternshipOpen   InternshipStatus = "open"
	InternshipClosed InternshipStatus = "closed"
)

// Internship is a placement offered by an organization.
type Internship struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organization_id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Location       string           `json:"location"`
	Duration       string           `json:"duration,omitempty"`
	Skills         []string         `json:"skills,omitempty"`
	Deadline       time.Time        `json:"deadline"`
	Status         InternshipStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
}

func (i *Internship) AcceptsApplications(reference time.Time) bool {
	if i == nil || i.Status != InternshipOpen {
		return false
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return i.Deadline.IsZero() || i.Deadline.After(reference)
}
