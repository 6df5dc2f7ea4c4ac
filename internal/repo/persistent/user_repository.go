package persistent

import (
	"errors"
	"time"

	"gatherly/internal/entity"
	"gatherly/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(m *model.UserModel) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetCredentials(email string) (*model.UserModel, error)
	UpdateProfile(id string, fields map[string]interface{}) (*entity.User, error)
	ConfirmEmail(email, code string) error
	PurgeExpiredUnconfirmed(now time.Time) (int64, error)
	ListPaged(limit, offset int) ([]entity.User, int64, error)
	Block(id string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(m *model.UserModel) error {
	if err := r.db.Create(m).Error; err != nil {
		return storageErr("create user", err)
	}
	return nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var m model.UserModel
	err := r.db.Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("find user", err)
	}
	return ToUserEntity(&m), nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	var m model.UserModel
	err := r.db.Where("email = ?", email).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("find user by email", err)
	}
	return ToUserEntity(&m), nil
}

// GetCredentials returns the raw model including the password hash and
// confirmation state. Only the auth use case should call this.
func (r *userRepository) GetCredentials(email string) (*model.UserModel, error) {
	var m model.UserModel
	err := r.db.Where("email = ?", email).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("find user credentials", err)
	}
	return &m, nil
}

func (r *userRepository) UpdateProfile(id string, fields map[string]interface{}) (*entity.User, error) {
	res := r.db.Model(&model.UserModel{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, storageErr("update user", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *userRepository) ConfirmEmail(email, code string) error {
	var m model.UserModel
	err := r.db.Where("email = ? AND confirmation_code = ?", email, code).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return storageErr("find confirmation", err)
	}
	if m.ConfirmationCodeExpires != nil && m.ConfirmationCodeExpires.Before(time.Now()) {
		return ErrNotFound
	}

	updates := map[string]interface{}{
		"email_verified":            true,
		"confirmation_code":         nil,
		"confirmation_code_expires": nil,
	}
	if err := r.db.Model(&m).Updates(updates).Error; err != nil {
		return storageErr("confirm email", err)
	}
	return nil
}

// PurgeExpiredUnconfirmed drops accounts whose confirmation window lapsed so
// the email can be registered again.
func (r *userRepository) PurgeExpiredUnconfirmed(now time.Time) (int64, error) {
	res := r.db.
		Where("email_verified = ? AND confirmation_code_expires < ?", false, now).
		Delete(&model.UserModel{})
	if res.Error != nil {
		return 0, storageErr("purge unconfirmed users", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *userRepository) ListPaged(limit, offset int) ([]entity.User, int64, error) {
	var total int64
	if err := r.db.Model(&model.UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, storageErr("count users", err)
	}

	var models []model.UserModel
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, storageErr("list users", err)
	}

	users := make([]entity.User, len(models))
	for i := range models {
		users[i] = *ToUserEntity(&models[i])
	}
	return users, total, nil
}

func (r *userRepository) Block(id string) error {
	res := r.db.Model(&model.UserModel{}).Where("id = ?", id).Update("is_blocked", true)
	if res.Error != nil {
		return storageErr("block user", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
