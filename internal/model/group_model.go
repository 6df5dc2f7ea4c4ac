package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupModel struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	OwnerID   string    `gorm:"column:owner_id;type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Members []GroupMemberModel `gorm:"foreignKey:GroupID"`
}

func (GroupModel) TableName() string {
	return "user_groups"
}

func (g *GroupModel) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}

type GroupMemberModel struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey"`
	GroupID string `gorm:"column:group_id;type:uuid;not null;index"`
	UserID  string `gorm:"column:user_id;type:uuid;not null;index"`

	User *UserModel `gorm:"foreignKey:UserID"`
}

func (GroupMemberModel) TableName() string {
	return "group_members"
}

func (m *GroupMemberModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
