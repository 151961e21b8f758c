package domain

import "time"

type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// Event is a career fair, workshop or similar happening hosted by an
// organization or university.
type Event struct {
	ID          string      `json:"id"`
	OrganizerID string      `json:"organizer_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	Location    string      `json:"location"`
	EventType   string      `json:"event_type,omitempty"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}
