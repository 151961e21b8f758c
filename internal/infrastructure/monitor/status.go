package monitor

import "time"

type Status struct {
	PostgreSQL        bool      `json:"postgresql"`
	Redis             bool      `json:"redis"`
	NotificationStore bool      `json:"notification_store"`
	NotificationCount int       `json:"notification_count"`
	LastCheck         time.Time `json:"last_check"`
}
