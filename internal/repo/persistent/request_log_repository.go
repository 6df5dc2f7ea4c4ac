package persistent

import (
	"gatherly/internal/entity"
	"gatherly/internal/model"
	"gatherly/pkg/middleware"

	"gorm.io/gorm"
)

// RequestLogRepository persists HTTP access records and serves the admin
// log view. It satisfies middleware.RequestLogRecorder.
type RequestLogRepository interface {
	RecordRequest(entry middleware.RequestLogEntry) error
	ListPaged(method string, status, limit, offset int) ([]entity.RequestLog, int64, error)
}

type requestLogRepository struct {
	db *gorm.DB
}

func NewRequestLogRepository(db *gorm.DB) RequestLogRepository {
	return &requestLogRepository{db: db}
}

func (r *requestLogRepository) RecordRequest(entry middleware.RequestLogEntry) error {
	m := model.RequestLogModel{
		Method:    entry.Method,
		Path:      entry.Path,
		Status:    entry.Status,
		LatencyMs: entry.LatencyMs,
		UserAgent: entry.UserAgent,
		IP:        entry.IP,
		CreatedAt: entry.OccurredAt,
	}
	if entry.UserID != "" {
		m.UserID = &entry.UserID
	}
	if err := r.db.Create(&m).Error; err != nil {
		return storageErr("record request", err)
	}
	return nil
}

// ListPaged filters by method and status when set; zero values mean no filter.
func (r *requestLogRepository) ListPaged(method string, status, limit, offset int) ([]entity.RequestLog, int64, error) {
	tx := r.db.Model(&model.RequestLogModel{})
	if method != "" {
		tx = tx.Where("method = ?", method)
	}
	if status > 0 {
		tx = tx.Where("status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, storageErr("count request logs", err)
	}

	var models []model.RequestLogModel
	err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, storageErr("list request logs", err)
	}

	logs := make([]entity.RequestLog, len(models))
	for i := range models {
		logs[i] = *ToRequestLogEntity(&models[i])
	}
	return logs, total, nil
}
