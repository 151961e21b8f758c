package transport

type SigninRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

type ProfileUpdateRequest struct {
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
	Phone        string `json:"phone"`
	Location     string `json:"location"`
	Bio          string `json:"bio"`
}

type NotificationCreateRequest struct {
	UserRole string `json:"user_role"`
	UserID   string `json:"user_id,omitempty"`
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

type InternshipCreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Duration    string   `json:"duration,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Deadline    string   `json:"deadline,omitempty"`
}

type ApplicationCreateRequest struct {
	InternshipID string `json:"internship_id"`
	CoverLetter  string `json:"cover_letter,omitempty"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

type EventCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	EventType   string `json:"event_type,omitempty"`
}
