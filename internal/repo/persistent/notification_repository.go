package persistent

import (
	"errors"

	"gatherly/internal/entity"
	"gatherly/internal/model"

	"gorm.io/gorm"
)

// NotificationRepository is the durable record of notifications, queryable
// per recipient. Rows are never deleted here; retention is an operational
// concern.
type NotificationRepository interface {
	Create(n *entity.Notification) (*entity.Notification, error)
	ListForRecipient(recipientID string) ([]entity.Notification, error)
	MarkRead(id int64, recipientID string) (*entity.Notification, error)
	MarkAllRead(recipientID string) (int64, error)
	CountUnread(recipientID string) (int64, error)

	// Recipient resolution for fan-out tasks.
	ListEventParticipantIDs(eventID string) ([]string, error)
	ListGroupMemberIDs(groupID string) ([]string, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *entity.Notification) (*entity.Notification, error) {
	m := ToNotificationModel(n)
	m.Read = false
	if err := r.db.Create(m).Error; err != nil {
		return nil, storageErr("create notification", err)
	}
	return ToNotificationEntity(m), nil
}

func (r *notificationRepository) ListForRecipient(recipientID string) ([]entity.Notification, error) {
	var models []model.NotificationModel
	err := r.db.
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, storageErr("list notifications", err)
	}

	notifications := make([]entity.Notification, len(models))
	for i := range models {
		notifications[i] = *ToNotificationEntity(&models[i])
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(id int64, recipientID string) (*entity.Notification, error) {
	var m model.NotificationModel
	err := r.db.Where("id = ? AND recipient_id = ?", id, recipientID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("find notification", err)
	}

	if !m.Read {
		if err := r.db.Model(&m).Update("read", true).Error; err != nil {
			return nil, storageErr("mark notification read", err)
		}
		m.Read = true
	}
	return ToNotificationEntity(&m), nil
}

func (r *notificationRepository) MarkAllRead(recipientID string) (int64, error) {
	res := r.db.Model(&model.NotificationModel{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Update("read", true)
	if res.Error != nil {
		return 0, storageErr("mark all notifications read", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *notificationRepository) CountUnread(recipientID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.NotificationModel{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, storageErr("count unread notifications", err)
	}
	return count, nil
}

func (r *notificationRepository) ListEventParticipantIDs(eventID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.RegistrationModel{}).
		Where("event_id = ? AND status = ?", eventID, string(entity.RegistrationStatusRegistered)).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, storageErr("list event participants", err)
	}
	return ids, nil
}

func (r *notificationRepository) ListGroupMemberIDs(groupID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.GroupMemberModel{}).
		Where("group_id = ?", groupID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, storageErr("list group members", err)
	}
	return ids, nil
}
