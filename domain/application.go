package domain

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// ParseApplicationStatus validates a status coming from a request.
func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	switch ApplicationStatus(raw) {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return ApplicationStatus(raw), nil
	default:
		return "", NewError(ErrCodeInvalid, "unknown application status")
	}
}

// Application is a student's submission against an internship. One per
// student and internship pair.
type Application struct {
	ID           string            `json:"id"`
	InternshipID string            `json:"internship_id"`
	StudentID    string            `json:"student_id"`
	Status       ApplicationStatus `json:"status"`
	CoverLetter  string            `json:"cover_letter,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
