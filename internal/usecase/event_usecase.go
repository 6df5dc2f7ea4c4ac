package usecase

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"gatherly/internal/entity"
	"gatherly/internal/repo/persistent"
	"gatherly/pkg/logger"
	"gatherly/pkg/queue"

	"github.com/google/uuid"
)

var (
	// ErrForbidden means the actor lacks rights for the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrBlacklisted means the organizer banned this user from their events.
	ErrBlacklisted = errors.New("user is blacklisted by the organizer")
	// ErrEventCancelled rejects registrations for cancelled events.
	ErrEventCancelled = errors.New("event is cancelled")
)

// FanoutPublisher enqueues multi-recipient notification work.
type FanoutPublisher interface {
	PublishFanoutTask(task queue.FanoutTask) error
}

// ImageStore keeps event images in object storage.
type ImageStore interface {
	UploadFile(key string, file multipart.File, contentType string) (string, error)
	DeleteFile(key string) error
	KeyFromURL(url string) string
}

type EventUseCase interface {
	Create(e *entity.Event) (*entity.Event, error)
	GetByID(id string) (*entity.Event, error)
	List(status string, limit, offset int) ([]entity.Event, int64, error)
	Update(eventID, actorID string, fields map[string]interface{}) (*entity.Event, error)
	UploadImage(eventID, actorID string, file multipart.File, filename, contentType string) (*entity.Event, error)
	Delete(eventID, actorID string) error

	Register(eventID, userID string) (*entity.Registration, error)
	CancelRegistration(eventID, userID string) error
	ListParticipants(eventID, actorID string) ([]entity.Registration, error)

	AssignAdmin(eventID, actorID, userID string) error
	RemoveAdmin(eventID, actorID, userID string) error

	ListOrganizedBy(userID string) ([]entity.Event, error)
	ListAdministeredBy(userID string) ([]entity.Event, error)
	ListRegisteredBy(userID string) ([]entity.Event, error)
}

type eventUseCase struct {
	eventRepo     persistent.EventRepository
	userRepo      persistent.UserRepository
	blacklistRepo persistent.BlacklistRepository
	notifier      Notifier
	fanout        FanoutPublisher
	images        ImageStore
	logger        *logger.Logger
}

func NewEventUseCase(
	eventRepo persistent.EventRepository,
	userRepo persistent.UserRepository,
	blacklistRepo persistent.BlacklistRepository,
	notifier Notifier,
	fanout FanoutPublisher,
	images ImageStore,
	log *logger.Logger,
) EventUseCase {
	return &eventUseCase{
		eventRepo:     eventRepo,
		userRepo:      userRepo,
		blacklistRepo: blacklistRepo,
		notifier:      notifier,
		fanout:        fanout,
		images:        images,
		logger:        log,
	}
}

func (uc *eventUseCase) Create(e *entity.Event) (*entity.Event, error) {
	if e.Title == "" || e.Description == "" {
		return nil, fmt.Errorf("title and description are required")
	}
	if e.DateTime.Before(time.Now()) {
		return nil, fmt.Errorf("event date must be in the future")
	}
	e.Status = entity.EventStatusPlanning

	created, err := uc.eventRepo.Create(e)
	if err != nil {
		uc.logger.Error("Failed to create event: %v", err)
		return nil, err
	}

	if created.GroupID != "" {
		uc.publishFanout(queue.FanoutTask{
			Kind:    string(entity.KindGroupEventCreated),
			EventID: created.ID,
			GroupID: created.GroupID,
			Title:   "New group event",
			Body:    fmt.Sprintf("A new event %q was created in your group", created.Title),
			ActorID: created.OrganizerID,
		})
	}
	return created, nil
}

func (uc *eventUseCase) GetByID(id string) (*entity.Event, error) {
	return uc.eventRepo.GetByID(id)
}

func (uc *eventUseCase) List(status string, limit, offset int) ([]entity.Event, int64, error) {
	if status != "" {
		return uc.eventRepo.ListByStatus(status, limit, offset)
	}
	return uc.eventRepo.List(limit, offset)
}

// Update lets the organizer or an event admin change event fields, then
// tells every registered participant about the change.
func (uc *eventUseCase) Update(eventID, actorID string, fields map[string]interface{}) (*entity.Event, error) {
	event, err := uc.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireManager(event, actorID); err != nil {
		return nil, err
	}

	updated, err := uc.eventRepo.Update(eventID, fields)
	if err != nil {
		uc.logger.Error("Failed to update event %s: %v", eventID, err)
		return nil, err
	}

	uc.publishFanout(queue.FanoutTask{
		Kind:    string(entity.KindEventUpdate),
		EventID: updated.ID,
		Title:   "Event updated",
		Body:    fmt.Sprintf("The event %q you registered for was updated", updated.Title),
		ActorID: actorID,
	})
	return updated, nil
}

func (uc *eventUseCase) UploadImage(eventID, actorID string, file multipart.File, filename, contentType string) (*entity.Event, error) {
	event, err := uc.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireManager(event, actorID); err != nil {
		return nil, err
	}

	if uc.images == nil {
		return nil, fmt.Errorf("image storage is not configured")
	}

	key := fmt.Sprintf("events/%s/%s%s", eventID, uuid.New().String(), filepath.Ext(filename))
	imageURL, err := uc.images.UploadFile(key, file, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload event image for %s: %v", eventID, err)
		return nil, fmt.Errorf("failed to upload image")
	}

	updated, err := uc.eventRepo.Update(eventID, map[string]interface{}{"image_url": imageURL})
	if err != nil {
		return nil, err
	}

	// The replaced image is unreachable now; drop the object.
	uc.removeImage(event.ImageURL)
	return updated, nil
}

// Delete removes the event and everything attached to it. Participants are
// notified before the rows go away, while their registrations can still be
// resolved.
func (uc *eventUseCase) Delete(eventID, actorID string) error {
	event, err := uc.eventRepo.GetByID(eventID)
	if err != nil {
		return err
	}
	if event.OrganizerID != actorID {
		return ErrForbidden
	}

	participants, err := uc.eventRepo.ListParticipants(eventID)
	if err != nil {
		uc.logger.Error("Failed to list participants of %s before delete: %v", eventID, err)
		participants = nil
	}

	if err := uc.eventRepo.Delete(eventID); err != nil {
		uc.logger.Error("Failed to delete event %s: %v", eventID, err)
		return err
	}

	for _, reg := range participants {
		if reg.UserID == actorID {
			continue
		}
		uc.notify(&entity.Notification{
			RecipientID: reg.UserID,
			Kind:        entity.KindEventDelete,
			Title:       "Event deleted",
			Body:        fmt.Sprintf("The event %q you registered for was deleted", event.Title),
			EventID:     eventID,
		})
	}

	uc.removeImage(event.ImageURL)
	return nil
}

func (uc *eventUseCase) Register(eventID, userID string) (*entity.Registration, error) {
	event, err := uc.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if event.Status == entity.EventStatusCancelled {
		return nil, ErrEventCancelled
	}

	banned, err := uc.blacklistRepo.IsBanned(event.OrganizerID, userID)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, ErrBlacklisted
	}

	reg, err := uc.eventRepo.Register(eventID, userID)
	if err != nil {
		return nil, err
	}

	uc.notify(&entity.Notification{
		RecipientID: event.OrganizerID,
		Kind:        entity.KindRegistrationCreated,
		Title:       "New registration",
		Body:        fmt.Sprintf("Someone registered for your event %q", event.Title),
		EventID:     eventID,
	})
	return reg, nil
}

func (uc *eventUseCase) CancelRegistration(eventID, userID string) error {
	event, err := uc.eventRepo.GetByID(eventID)
	if err != nil {
		return err
	}

	if err := uc.eventRepo.CancelRegistration(eventID, userID); err != nil {
		return err
	}

	uc.notify(&entity.Notification{
		RecipientID: event.OrganizerID,
		Kind:        entity.KindRegistrationCancelled,
		Title:       "Registration cancelled",
		Body:        fmt.Sprintf("A participant left your event %q", event.Title),
		EventID:     eventID,
	})
	return nil
}

func (uc *eventUseCase) ListParticipants(eventID, actorID string) ([]entity.Registration, error) {
	event, err := uc.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireManager(event, actorID); err != nil {
		return nil, err
	}
	return uc.eventRepo.ListParticipants(eventID)
}

func (uc *eventUseCase) AssignAdmin(eventID, actorID, userID string) error {
	event, err := uc.eventRepo.GetByID(eventID)
	if err != nil {
		return err
	}
	if event.OrganizerID != actorID {
		return ErrForbidden
	}
	if _, err := uc.userRepo.GetByID(userID); err != nil {
		return err
	}

	if err := uc.eventRepo.AddAdmin(eventID, userID); err != nil {
		return err
	}

	uc.notify(&entity.Notification{
		RecipientID: userID,
		Kind:        entity.KindAdminAssigned,
		Title:       "You are now an event admin",
		Body:        fmt.Sprintf("You were made an admin of the event %q", event.Title),
		EventID:     eventID,
	})
	return nil
}

func (uc *eventUseCase) RemoveAdmin(eventID, actorID, userID string) error {
	event, err := uc.eventRepo.GetByID(eventID)
	if err != nil {
		return err
	}
	if event.OrganizerID != actorID {
		return ErrForbidden
	}
	return uc.eventRepo.RemoveAdmin(eventID, userID)
}

func (uc *eventUseCase) ListOrganizedBy(userID string) ([]entity.Event, error) {
	return uc.eventRepo.ListOrganizedBy(userID)
}

func (uc *eventUseCase) ListAdministeredBy(userID string) ([]entity.Event, error) {
	return uc.eventRepo.ListAdministeredBy(userID)
}

func (uc *eventUseCase) ListRegisteredBy(userID string) ([]entity.Event, error) {
	return uc.eventRepo.ListRegisteredBy(userID)
}

func (uc *eventUseCase) requireManager(event *entity.Event, actorID string) error {
	if event.OrganizerID == actorID {
		return nil
	}
	isAdmin, err := uc.eventRepo.IsAdmin(event.ID, actorID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrForbidden
	}
	return nil
}

// notify sends a single-recipient notification. Delivery problems are
// logged, never surfaced; the domain action already succeeded.
func (uc *eventUseCase) notify(n *entity.Notification) {
	if _, err := uc.notifier.Notify(n); err != nil {
		uc.logger.Error("Failed to notify user %s (%s): %v", n.RecipientID, n.Kind, err)
	}
}

// removeImage drops the object behind a replaced or deleted event image.
// Best-effort: a leaked object is logged, the domain action already
// succeeded.
func (uc *eventUseCase) removeImage(imageURL string) {
	if uc.images == nil || imageURL == "" {
		return
	}
	key := uc.images.KeyFromURL(imageURL)
	if key == "" {
		return
	}
	if err := uc.images.DeleteFile(key); err != nil {
		uc.logger.Error("Failed to delete image object %s: %v", key, err)
	}
}

func (uc *eventUseCase) publishFanout(task queue.FanoutTask) {
	if uc.fanout == nil {
		return
	}
	if err := uc.fanout.PublishFanoutTask(task); err != nil {
		uc.logger.Error("Failed to publish fanout task kind=%s: %v", task.Kind, err)
	}
}
