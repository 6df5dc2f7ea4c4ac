package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// LocationJSON stores an event location as a jsonb column.
type LocationJSON struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

func (l LocationJSON) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *LocationJSON) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	raw, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			raw = []byte(s)
		} else {
			return errors.New("unsupported type for LocationJSON")
		}
	}
	return json.Unmarshal(raw, l)
}

type EventModel struct {
	ID                   string         `gorm:"column:id;type:uuid;primaryKey"`
	Title                string         `gorm:"column:title;type:varchar(255);not null"`
	Description          string         `gorm:"column:description;type:text;not null"`
	DateTime             time.Time      `gorm:"column:date_time;not null"`
	OrganizerID          string         `gorm:"column:organizer_id;type:uuid;not null;index"`
	Categories           pq.StringArray `gorm:"column:categories;type:text[]"`
	Location             *LocationJSON  `gorm:"column:location;type:jsonb"`
	Status               string         `gorm:"column:event_status;type:varchar(20);not null;default:'PLANNING'"`
	IsLocal              bool           `gorm:"column:is_local;not null;default:false"`
	IsFree               bool           `gorm:"column:is_free;not null;default:false"`
	GroupID              *string        `gorm:"column:group_id;type:uuid"`
	ParticipantsCount    int            `gorm:"column:participants_count;default:0"`
	MaxParticipantsCount *int           `gorm:"column:max_participants_count"`
	Price                *int           `gorm:"column:price"`
	ImageURL             *string        `gorm:"column:image_url;type:varchar(500)"`
	CreatedAt            time.Time      `gorm:"column:created_at"`
	UpdatedAt            time.Time      `gorm:"column:updated_at"`
}

func (EventModel) TableName() string {
	return "events"
}

func (e *EventModel) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

type RegistrationModel struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey"`
	EventID string `gorm:"column:event_id;type:uuid;not null;index"`
	UserID  string `gorm:"column:user_id;type:uuid;not null;index"`
	Status  string `gorm:"column:status;type:varchar(20);not null;default:'registered'"`

	User *UserModel `gorm:"foreignKey:UserID"`
}

func (RegistrationModel) TableName() string {
	return "event_registrations"
}

func (r *RegistrationModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

type EventAdminModel struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey"`
	EventID string `gorm:"column:event_id;type:uuid;not null;index"`
	UserID  string `gorm:"column:user_id;type:uuid;not null;index"`
}

func (EventAdminModel) TableName() string {
	return "event_admins"
}

func (a *EventAdminModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
