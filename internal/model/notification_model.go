package model

import "time"

// NotificationModel rows are append-only except for the read flag, which only
// ever transitions false to true. The bigserial id doubles as the tiebreak in
// history ordering.
type NotificationModel struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	RecipientID string    `gorm:"column:recipient_id;type:uuid;not null;index"`
	Kind        string    `gorm:"column:kind;type:varchar(40);not null"`
	Title       string    `gorm:"column:title;type:varchar(255);not null"`
	Body        string    `gorm:"column:body;type:text;not null"`
	Read        bool      `gorm:"column:read;not null;default:false"`
	EventID     *string   `gorm:"column:event_id;type:uuid"`
	GroupID     *string   `gorm:"column:group_id;type:uuid"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
