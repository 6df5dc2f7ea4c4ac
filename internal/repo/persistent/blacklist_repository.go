package persistent

import (
	"errors"

	"gatherly/internal/entity"
	"gatherly/internal/model"

	"gorm.io/gorm"
)

// ErrAlreadyBlacklisted means the organizer already banned this user.
var ErrAlreadyBlacklisted = errors.New("user already blacklisted")

type BlacklistRepository interface {
	List(organizerID string) ([]entity.BlacklistEntry, error)
	Add(organizerID, bannedUserID string) (*entity.BlacklistEntry, error)
	Remove(organizerID, bannedUserID string) error
	IsBanned(organizerID, userID string) (bool, error)
}

type blacklistRepository struct {
	db *gorm.DB
}

func NewBlacklistRepository(db *gorm.DB) BlacklistRepository {
	return &blacklistRepository{db: db}
}

func (r *blacklistRepository) List(organizerID string) ([]entity.BlacklistEntry, error) {
	var models []model.BlacklistModel
	err := r.db.Preload("BannedUser").
		Where("organizer_id = ?", organizerID).
		Find(&models).Error
	if err != nil {
		return nil, storageErr("list blacklist", err)
	}

	entries := make([]entity.BlacklistEntry, len(models))
	for i := range models {
		entries[i] = *ToBlacklistEntity(&models[i])
	}
	return entries, nil
}

func (r *blacklistRepository) Add(organizerID, bannedUserID string) (*entity.BlacklistEntry, error) {
	var existing model.BlacklistModel
	err := r.db.Where("organizer_id = ? AND banned_user_id = ?", organizerID, bannedUserID).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyBlacklisted
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageErr("find blacklist entry", err)
	}

	m := model.BlacklistModel{OrganizerID: organizerID, BannedUserID: bannedUserID}
	if err := r.db.Create(&m).Error; err != nil {
		return nil, storageErr("add blacklist entry", err)
	}
	return ToBlacklistEntity(&m), nil
}

func (r *blacklistRepository) Remove(organizerID, bannedUserID string) error {
	res := r.db.Where("organizer_id = ? AND banned_user_id = ?", organizerID, bannedUserID).
		Delete(&model.BlacklistModel{})
	if res.Error != nil {
		return storageErr("remove blacklist entry", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *blacklistRepository) IsBanned(organizerID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.BlacklistModel{}).
		Where("organizer_id = ? AND banned_user_id = ?", organizerID, userID).
		Count(&count).Error
	if err != nil {
		return false, storageErr("check blacklist", err)
	}
	return count > 0, nil
}
