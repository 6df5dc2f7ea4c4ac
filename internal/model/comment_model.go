package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentModel struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	EventID   string    `gorm:"column:event_id;type:uuid;not null;index"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;index"`
	Content   string    `gorm:"column:content;type:text;not null"`
	Rating    *int      `gorm:"column:rating"`
	CreatedAt time.Time `gorm:"column:created_at"`

	User *UserModel `gorm:"foreignKey:UserID"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
