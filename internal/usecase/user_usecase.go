package usecase

import (
	"gatherly/internal/entity"
	"gatherly/internal/repo/persistent"
	"gatherly/pkg/logger"

	"github.com/lib/pq"
)

type UpdateProfileInput struct {
	FirstName  *string
	SecondName *string
	Interests  []string
}

type UserUseCase interface {
	GetByID(id string) (*entity.User, error)
	UpdateProfile(id string, input UpdateProfileInput) (*entity.User, error)
}

type userUseCase struct {
	userRepo persistent.UserRepository
	logger   *logger.Logger
}

func NewUserUseCase(userRepo persistent.UserRepository, log *logger.Logger) UserUseCase {
	return &userUseCase{userRepo: userRepo, logger: log}
}

func (uc *userUseCase) GetByID(id string) (*entity.User, error) {
	return uc.userRepo.GetByID(id)
}

func (uc *userUseCase) UpdateProfile(id string, input UpdateProfileInput) (*entity.User, error) {
	fields := map[string]interface{}{}
	if input.FirstName != nil {
		fields["first_name"] = *input.FirstName
	}
	if input.SecondName != nil {
		fields["second_name"] = *input.SecondName
	}
	if input.Interests != nil {
		fields["interests"] = pq.StringArray(input.Interests)
	}
	if len(fields) == 0 {
		return uc.userRepo.GetByID(id)
	}
	return uc.userRepo.UpdateProfile(id, fields)
}
