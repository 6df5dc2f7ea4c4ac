package entity

import "time"

type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	SecondName    string    `json:"second_name"`
	Interests     []string  `json:"interests"`
	EmailVerified bool      `json:"email_verified"`
	IsAdmin       bool      `json:"is_admin"`
	IsBlocked     bool      `json:"is_blocked"`
	CreatedAt     time.Time `json:"created_at"`
}

// BlacklistEntry is an organizer-scoped ban: the banned user cannot register
// for any of the organizer's events.
type BlacklistEntry struct {
	ID           string `json:"id"`
	OrganizerID  string `json:"organizer_id"`
	BannedUserID string `json:"banned_user_id"`
	BannedUser   *User  `json:"banned_user,omitempty"`
}
