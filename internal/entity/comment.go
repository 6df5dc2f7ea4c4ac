package entity

import "time"

// Comment is user feedback on an event, optionally carrying a 1-5 rating.
type Comment struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating,omitempty"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
