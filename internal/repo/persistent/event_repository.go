package persistent

import (
	"errors"

	"gatherly/internal/entity"
	"gatherly/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrEventFull means the event reached its participant cap.
	ErrEventFull = errors.New("event is full")
	// ErrAlreadyRegistered means the user holds an active registration.
	ErrAlreadyRegistered = errors.New("already registered")
)

type EventRepository interface {
	Create(e *entity.Event) (*entity.Event, error)
	GetByID(id string) (*entity.Event, error)
	List(limit, offset int) ([]entity.Event, int64, error)
	ListByStatus(status string, limit, offset int) ([]entity.Event, int64, error)
	Update(id string, fields map[string]interface{}) (*entity.Event, error)
	UpdateStatus(id string, status entity.EventStatus) error
	Delete(id string) error

	Register(eventID, userID string) (*entity.Registration, error)
	CancelRegistration(eventID, userID string) error
	ListParticipants(eventID string) ([]entity.Registration, error)

	AddAdmin(eventID, userID string) error
	RemoveAdmin(eventID, userID string) error
	IsAdmin(eventID, userID string) (bool, error)

	ListOrganizedBy(userID string) ([]entity.Event, error)
	ListAdministeredBy(userID string) ([]entity.Event, error)
	ListRegisteredBy(userID string) ([]entity.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(e *entity.Event) (*entity.Event, error) {
	m := ToEventModel(e)
	if err := r.db.Create(m).Error; err != nil {
		return nil, storageErr("create event", err)
	}
	return ToEventEntity(m), nil
}

func (r *eventRepository) GetByID(id string) (*entity.Event, error) {
	var m model.EventModel
	err := r.db.Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("find event", err)
	}
	return ToEventEntity(&m), nil
}

func (r *eventRepository) List(limit, offset int) ([]entity.Event, int64, error) {
	return r.list(r.db, limit, offset)
}

func (r *eventRepository) ListByStatus(status string, limit, offset int) ([]entity.Event, int64, error) {
	return r.list(r.db.Where("event_status = ?", status), limit, offset)
}

func (r *eventRepository) list(tx *gorm.DB, limit, offset int) ([]entity.Event, int64, error) {
	var total int64
	if err := tx.Model(&model.EventModel{}).Count(&total).Error; err != nil {
		return nil, 0, storageErr("count events", err)
	}

	var models []model.EventModel
	err := tx.Model(&model.EventModel{}).
		Order("date_time ASC").
		Limit(limit).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, storageErr("list events", err)
	}

	events := make([]entity.Event, len(models))
	for i := range models {
		events[i] = *ToEventEntity(&models[i])
	}
	return events, total, nil
}

func (r *eventRepository) Update(id string, fields map[string]interface{}) (*entity.Event, error) {
	res := r.db.Model(&model.EventModel{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, storageErr("update event", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *eventRepository) UpdateStatus(id string, status entity.EventStatus) error {
	res := r.db.Model(&model.EventModel{}).Where("id = ?", id).Update("event_status", string(status))
	if res.Error != nil {
		return storageErr("update event status", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&model.EventModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("event_id = ?", id).Delete(&model.RegistrationModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&model.EventAdminModel{}).Error; err != nil {
			return err
		}
		return tx.Where("event_id = ?", id).Delete(&model.CommentModel{}).Error
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return storageErr("delete event", err)
	}
	return nil
}

// Register creates a registration and bumps the participant counter in one
// transaction. The capacity check runs against a locked event row so two
// concurrent registrations cannot both take the last slot.
func (r *eventRepository) Register(eventID, userID string) (*entity.Registration, error) {
	var reg model.RegistrationModel
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var ev model.EventModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", eventID).First(&ev).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if ev.MaxParticipantsCount != nil && ev.ParticipantsCount >= *ev.MaxParticipantsCount {
			return ErrEventFull
		}

		var existing model.RegistrationModel
		err = tx.Where("event_id = ? AND user_id = ?", eventID, userID).First(&existing).Error
		if err == nil {
			if existing.Status == string(entity.RegistrationStatusRegistered) {
				return ErrAlreadyRegistered
			}
			// Re-registering after a cancellation reuses the row.
			if err := tx.Model(&existing).Update("status", string(entity.RegistrationStatusRegistered)).Error; err != nil {
				return err
			}
			existing.Status = string(entity.RegistrationStatusRegistered)
			reg = existing
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			reg = model.RegistrationModel{
				EventID: eventID,
				UserID:  userID,
				Status:  string(entity.RegistrationStatusRegistered),
			}
			if err := tx.Create(&reg).Error; err != nil {
				return err
			}
		} else {
			return err
		}

		return tx.Model(&model.EventModel{}).Where("id = ?", eventID).
			UpdateColumn("participants_count", gorm.Expr("participants_count + ?", 1)).Error
	})
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrEventFull) || errors.Is(err, ErrAlreadyRegistered) {
		return nil, err
	}
	if err != nil {
		return nil, storageErr("register for event", err)
	}
	return ToRegistrationEntity(&reg), nil
}

func (r *eventRepository) CancelRegistration(eventID, userID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.RegistrationModel{}).
			Where("event_id = ? AND user_id = ? AND status = ?",
				eventID, userID, string(entity.RegistrationStatusRegistered)).
			Update("status", string(entity.RegistrationStatusCancelled))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&model.EventModel{}).
			Where("id = ? AND participants_count > 0", eventID).
			UpdateColumn("participants_count", gorm.Expr("participants_count - ?", 1)).Error
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return storageErr("cancel registration", err)
	}
	return nil
}

func (r *eventRepository) ListParticipants(eventID string) ([]entity.Registration, error) {
	var models []model.RegistrationModel
	err := r.db.Preload("User").
		Where("event_id = ? AND status = ?", eventID, string(entity.RegistrationStatusRegistered)).
		Find(&models).Error
	if err != nil {
		return nil, storageErr("list participants", err)
	}

	regs := make([]entity.Registration, len(models))
	for i := range models {
		regs[i] = *ToRegistrationEntity(&models[i])
	}
	return regs, nil
}

func (r *eventRepository) AddAdmin(eventID, userID string) error {
	var existing model.EventAdminModel
	err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storageErr("find event admin", err)
	}
	m := model.EventAdminModel{EventID: eventID, UserID: userID}
	if err := r.db.Create(&m).Error; err != nil {
		return storageErr("add event admin", err)
	}
	return nil
}

func (r *eventRepository) RemoveAdmin(eventID, userID string) error {
	res := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&model.EventAdminModel{})
	if res.Error != nil {
		return storageErr("remove event admin", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *eventRepository) IsAdmin(eventID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.EventAdminModel{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	if err != nil {
		return false, storageErr("check event admin", err)
	}
	return count > 0, nil
}

func (r *eventRepository) ListOrganizedBy(userID string) ([]entity.Event, error) {
	var models []model.EventModel
	err := r.db.Where("organizer_id = ?", userID).Order("date_time ASC").Find(&models).Error
	if err != nil {
		return nil, storageErr("list organized events", err)
	}
	return toEventEntities(models), nil
}

func (r *eventRepository) ListAdministeredBy(userID string) ([]entity.Event, error) {
	var models []model.EventModel
	err := r.db.
		Joins("JOIN event_admins ON event_admins.event_id = events.id").
		Where("event_admins.user_id = ?", userID).
		Order("events.date_time ASC").
		Find(&models).Error
	if err != nil {
		return nil, storageErr("list administered events", err)
	}
	return toEventEntities(models), nil
}

func (r *eventRepository) ListRegisteredBy(userID string) ([]entity.Event, error) {
	var models []model.EventModel
	err := r.db.
		Joins("JOIN event_registrations ON event_registrations.event_id = events.id").
		Where("event_registrations.user_id = ? AND event_registrations.status = ?",
			userID, string(entity.RegistrationStatusRegistered)).
		Order("events.date_time ASC").
		Find(&models).Error
	if err != nil {
		return nil, storageErr("list registered events", err)
	}
	return toEventEntities(models), nil
}

func toEventEntities(models []model.EventModel) []entity.Event {
	events := make([]entity.Event, len(models))
	for i := range models {
		events[i] = *ToEventEntity(&models[i])
	}
	return events
}
