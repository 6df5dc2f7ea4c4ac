package usecase

import (
	"fmt"

	"gatherly/internal/entity"
	"gatherly/internal/repo/persistent"
	"gatherly/pkg/logger"
)

type CommentUseCase interface {
	Create(eventID, userID, content string, rating int) (*entity.Comment, error)
	ListForEvent(eventID string) ([]entity.Comment, error)
	Delete(commentID, actorID string) error
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	eventRepo   persistent.EventRepository
	logger      *logger.Logger
}

func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	eventRepo persistent.EventRepository,
	log *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		eventRepo:   eventRepo,
		logger:      log,
	}
}

func (uc *commentUseCase) Create(eventID, userID, content string, rating int) (*entity.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("comment content is required")
	}
	if rating < 0 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	if _, err := uc.eventRepo.GetByID(eventID); err != nil {
		return nil, err
	}

	return uc.commentRepo.Create(&entity.Comment{
		EventID: eventID,
		UserID:  userID,
		Content: content,
		Rating:  rating,
	})
}

func (uc *commentUseCase) ListForEvent(eventID string) ([]entity.Comment, error) {
	return uc.commentRepo.ListForEvent(eventID)
}

// Delete allows the author or the event organizer to remove a comment.
func (uc *commentUseCase) Delete(commentID, actorID string) error {
	comment, err := uc.commentRepo.GetByID(commentID)
	if err != nil {
		return err
	}
	if comment.UserID != actorID {
		event, err := uc.eventRepo.GetByID(comment.EventID)
		if err != nil {
			return err
		}
		if event.OrganizerID != actorID {
			return ErrForbidden
		}
	}
	return uc.commentRepo.Delete(commentID)
}
