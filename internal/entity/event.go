package entity

import "time"

type EventStatus string

const (
	EventStatusPlanning  EventStatus = "PLANNING"
	EventStatusOngoing   EventStatus = "ONGOING"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusCompleted EventStatus = "COMPLETED"
)

type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type Event struct {
	ID                   string      `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	DateTime             time.Time   `json:"date_time"`
	OrganizerID          string      `json:"organizer_id"`
	Categories           []string    `json:"categories"`
	Location             *Location   `json:"location,omitempty"`
	Status               EventStatus `json:"event_status"`
	IsLocal              bool        `json:"is_local"`
	IsFree               bool        `json:"is_free"`
	GroupID              string      `json:"group_id,omitempty"`
	ParticipantsCount    int         `json:"participants_count"`
	MaxParticipantsCount int         `json:"max_participants_count,omitempty"`
	Price                int         `json:"price,omitempty"`
	ImageURL             string      `json:"image_url,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusCancelled  RegistrationStatus = "cancelled"
)

type Registration struct {
	ID      string             `json:"id"`
	EventID string             `json:"event_id"`
	UserID  string             `json:"user_id"`
	Status  RegistrationStatus `json:"status"`
	User    *User              `json:"user,omitempty"`
}

// EventAdmin grants a user co-management rights on one event.
type EventAdmin struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
}
