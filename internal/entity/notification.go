package entity

import "time"

// NotificationKind is the closed set of facts a user can be notified about.
type NotificationKind string

const (
	KindEventUpdate           NotificationKind = "event_update"
	KindEventDelete           NotificationKind = "event_delete"
	KindAdminAssigned         NotificationKind = "admin_assigned"
	KindRegistrationCreated   NotificationKind = "registration_created"
	KindRegistrationCancelled NotificationKind = "registration_cancelled"
	KindGroupAdded            NotificationKind = "group_added"
	KindGroupEventCreated     NotificationKind = "group_event_created"
)

// Valid reports whether k is one of the enumerated kinds.
func (k NotificationKind) Valid() bool {
	switch k {
	case KindEventUpdate, KindEventDelete, KindAdminAssigned,
		KindRegistrationCreated, KindRegistrationCancelled,
		KindGroupAdded, KindGroupEventCreated:
		return true
	}
	return false
}

// SubjectRefs are opaque foreign identifiers carried on a notification.
// They are not validated here; callers own referential integrity.
type SubjectRefs struct {
	EventID string `json:"event_id,omitempty"`
	GroupID string `json:"group_id,omitempty"`
}

// Notification is one fact targeted at one recipient. Read transitions only
// false to true; rows are never deleted by this service.
type Notification struct {
	ID          int64            `json:"id"`
	RecipientID string           `json:"recipient_id"`
	Kind        NotificationKind `json:"type"`
	Title       string           `json:"title"`
	Body        string           `json:"content"`
	Read        bool             `json:"read"`
	EventID     string           `json:"event_id,omitempty"`
	GroupID     string           `json:"group_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
