package model

import "time"

type RequestLogModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Method    string    `gorm:"column:method;type:varchar(10);not null"`
	Path      string    `gorm:"column:path;type:varchar(500);not null"`
	Status    int       `gorm:"column:status;not null;index"`
	LatencyMs int64     `gorm:"column:latency_ms"`
	UserAgent string    `gorm:"column:user_agent;type:varchar(500)"`
	IP        string    `gorm:"column:ip;type:varchar(64)"`
	UserID    *string   `gorm:"column:user_id;type:uuid;index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (RequestLogModel) TableName() string {
	return "request_logs"
}
