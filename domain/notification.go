package domain

import "time"

// NotificationType classifies a notification for rendering. The set is
// open-ended: clients fall back to a default rendering for values they do
// not recognize, so no validation happens here.
type NotificationType string

const (
	NotificationApplication    NotificationType = "application"
	NotificationMessage        NotificationType = "message"
	NotificationAlert          NotificationType = "alert"
	NotificationSuccess        NotificationType = "success"
	NotificationRecommendation NotificationType = "recommendation"
)

// Notification targets either every identity of UserRole (UserID empty) or
// one specific identity of that role.
type Notification struct {
	ID        string           `json:"id"`
	UserRole  Role             `json:"user_role"`
	UserID    string           `json:"user_id,omitempty"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
}

// VisibleTo reports whether the notification should be shown to the given
// identity. A nil session sees nothing.
func (n Notification) VisibleTo(s *Session) bool {
	if s == nil {
		return false
	}
	if n.UserRole != s.Role {
		return false
	}
	return n.UserID == "" || n.UserID == s.UserID
}
