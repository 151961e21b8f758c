package domain

// University is a catalogue entry students pick from during registration.
// Entries are seeded by migration and read-only through the API.
type University struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Description string   `json:"description,omitempty"`
	Website     string   `json:"website,omitempty"`
	Programs    []string `json:"programs,omitempty"`
}
