package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type UserModel struct {
	ID                      string         `gorm:"column:id;type:uuid;primaryKey"`
	Email                   string         `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	PasswordHash            string         `gorm:"column:password_hash;type:varchar(255);not null"`
	FirstName               string         `gorm:"column:first_name;type:varchar(255);not null"`
	SecondName              string         `gorm:"column:second_name;type:varchar(255);not null"`
	Interests               pq.StringArray `gorm:"column:interests;type:text[]"`
	EmailVerified           bool           `gorm:"column:email_verified;default:false"`
	IsAdmin                 bool           `gorm:"column:is_admin;default:false"`
	IsBlocked               bool           `gorm:"column:is_blocked;default:false"`
	ConfirmationCode        *string        `gorm:"column:confirmation_code;type:varchar(16)"`
	ConfirmationCodeExpires *time.Time     `gorm:"column:confirmation_code_expires"`
	CreatedAt               time.Time      `gorm:"column:created_at"`
	UpdatedAt               time.Time      `gorm:"column:updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

type BlacklistModel struct {
	ID           string `gorm:"column:id;type:uuid;primaryKey"`
	OrganizerID  string `gorm:"column:organizer_id;type:uuid;not null;index"`
	BannedUserID string `gorm:"column:banned_user_id;type:uuid;not null;index"`

	BannedUser *UserModel `gorm:"foreignKey:BannedUserID"`
}

func (BlacklistModel) TableName() string {
	return "blacklists"
}

func (b *BlacklistModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}
