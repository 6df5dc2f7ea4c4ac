package usecase

import (
	"fmt"

	"gatherly/internal/entity"
	"gatherly/internal/repo/persistent"
	"gatherly/pkg/logger"
	"gatherly/pkg/queue"
)

// AdminUseCase backs the moderation panel. All operations assume the caller
// already passed the admin role check at the transport layer.
type AdminUseCase interface {
	ListUsers(limit, offset int) ([]entity.User, int64, error)
	BlockUser(userID string) error
	ListEvents(status string, limit, offset int) ([]entity.Event, int64, error)
	CancelEvent(eventID string) error
	ListComments(eventID string, limit, offset int) ([]entity.Comment, int64, error)
	DeleteComment(commentID string) error
	ListRequestLogs(method string, status, limit, offset int) ([]entity.RequestLog, int64, error)
}

type adminUseCase struct {
	userRepo       persistent.UserRepository
	eventRepo      persistent.EventRepository
	commentRepo    persistent.CommentRepository
	requestLogRepo persistent.RequestLogRepository
	fanout         FanoutPublisher
	logger         *logger.Logger
}

func NewAdminUseCase(
	userRepo persistent.UserRepository,
	eventRepo persistent.EventRepository,
	commentRepo persistent.CommentRepository,
	requestLogRepo persistent.RequestLogRepository,
	fanout FanoutPublisher,
	log *logger.Logger,
) AdminUseCase {
	return &adminUseCase{
		userRepo:       userRepo,
		eventRepo:      eventRepo,
		commentRepo:    commentRepo,
		requestLogRepo: requestLogRepo,
		fanout:         fanout,
		logger:         log,
	}
}

func (uc *adminUseCase) ListUsers(limit, offset int) ([]entity.User, int64, error) {
	return uc.userRepo.ListPaged(limit, offset)
}

func (uc *adminUseCase) BlockUser(userID string) error {
	if err := uc.userRepo.Block(userID); err != nil {
		return err
	}
	uc.logger.Info("User %s blocked by moderation", userID)
	return nil
}

func (uc *adminUseCase) ListEvents(status string, limit, offset int) ([]entity.Event, int64, error) {
	if status != "" {
		return uc.eventRepo.ListByStatus(status, limit, offset)
	}
	return uc.eventRepo.List(limit, offset)
}

// CancelEvent marks the event cancelled and tells every registered
// participant. Rows stay in place so the recipient set can still be
// resolved when the fan-out task runs.
func (uc *adminUseCase) CancelEvent(eventID string) error {
	event, err := uc.eventRepo.GetByID(eventID)
	if err != nil {
		return err
	}
	if event.Status == entity.EventStatusCancelled {
		return nil
	}

	if err := uc.eventRepo.UpdateStatus(eventID, entity.EventStatusCancelled); err != nil {
		return err
	}

	if uc.fanout != nil {
		task := queue.FanoutTask{
			Kind:    string(entity.KindEventDelete),
			EventID: eventID,
			Title:   "Event cancelled",
			Body:    fmt.Sprintf("The event %q was cancelled by moderation", event.Title),
		}
		if err := uc.fanout.PublishFanoutTask(task); err != nil {
			uc.logger.Error("Failed to publish cancel fanout for event %s: %v", eventID, err)
		}
	}

	uc.logger.Info("Event %s cancelled by moderation", eventID)
	return nil
}

func (uc *adminUseCase) ListComments(eventID string, limit, offset int) ([]entity.Comment, int64, error) {
	return uc.commentRepo.ListPaged(eventID, limit, offset)
}

func (uc *adminUseCase) DeleteComment(commentID string) error {
	return uc.commentRepo.Delete(commentID)
}

func (uc *adminUseCase) ListRequestLogs(method string, status, limit, offset int) ([]entity.RequestLog, int64, error) {
	return uc.requestLogRepo.ListPaged(method, status, limit, offset)
}
