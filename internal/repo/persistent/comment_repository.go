package persistent

import (
	"errors"

	"gatherly/internal/entity"
	"gatherly/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(c *entity.Comment) (*entity.Comment, error)
	GetByID(id string) (*entity.Comment, error)
	ListForEvent(eventID string) ([]entity.Comment, error)
	ListPaged(eventID string, limit, offset int) ([]entity.Comment, int64, error)
	Delete(id string) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(c *entity.Comment) (*entity.Comment, error) {
	m := model.CommentModel{
		EventID: c.EventID,
		UserID:  c.UserID,
		Content: c.Content,
	}
	if c.Rating > 0 {
		m.Rating = &c.Rating
	}
	if err := r.db.Create(&m).Error; err != nil {
		return nil, storageErr("create comment", err)
	}
	return r.GetByID(m.ID)
}

func (r *commentRepository) GetByID(id string) (*entity.Comment, error) {
	var m model.CommentModel
	err := r.db.Preload("User").Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("find comment", err)
	}
	return ToCommentEntity(&m), nil
}

func (r *commentRepository) ListForEvent(eventID string) ([]entity.Comment, error) {
	var models []model.CommentModel
	err := r.db.Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, storageErr("list comments", err)
	}
	return toCommentEntities(models), nil
}

// ListPaged is the admin view. An empty eventID lists across all events.
func (r *commentRepository) ListPaged(eventID string, limit, offset int) ([]entity.Comment, int64, error) {
	tx := r.db.Model(&model.CommentModel{})
	if eventID != "" {
		tx = tx.Where("event_id = ?", eventID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, storageErr("count comments", err)
	}

	var models []model.CommentModel
	err := tx.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, storageErr("list comments", err)
	}
	return toCommentEntities(models), total, nil
}

func (r *commentRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&model.CommentModel{})
	if res.Error != nil {
		return storageErr("delete comment", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func toCommentEntities(models []model.CommentModel) []entity.Comment {
	comments := make([]entity.Comment, len(models))
	for i := range models {
		comments[i] = *ToCommentEntity(&models[i])
	}
	return comments
}
