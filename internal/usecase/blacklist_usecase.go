package usecase

import (
	"fmt"

	"gatherly/internal/entity"
	"gatherly/internal/repo/persistent"
	"gatherly/pkg/logger"
)

// BlacklistUseCase manages an organizer's personal ban list. Banned users
// cannot register for that organizer's events.
type BlacklistUseCase interface {
	List(organizerID string) ([]entity.BlacklistEntry, error)
	AddByEmail(organizerID, email string) (*entity.BlacklistEntry, error)
	Remove(organizerID, bannedUserID string) error
}

type blacklistUseCase struct {
	blacklistRepo persistent.BlacklistRepository
	userRepo      persistent.UserRepository
	logger        *logger.Logger
}

func NewBlacklistUseCase(
	blacklistRepo persistent.BlacklistRepository,
	userRepo persistent.UserRepository,
	log *logger.Logger,
) BlacklistUseCase {
	return &blacklistUseCase{
		blacklistRepo: blacklistRepo,
		userRepo:      userRepo,
		logger:        log,
	}
}

func (uc *blacklistUseCase) List(organizerID string) ([]entity.BlacklistEntry, error) {
	return uc.blacklistRepo.List(organizerID)
}

func (uc *blacklistUseCase) AddByEmail(organizerID, email string) (*entity.BlacklistEntry, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user.ID == organizerID {
		return nil, fmt.Errorf("cannot blacklist yourself")
	}
	return uc.blacklistRepo.Add(organizerID, user.ID)
}

func (uc *blacklistUseCase) Remove(organizerID, bannedUserID string) error {
	return uc.blacklistRepo.Remove(organizerID, bannedUserID)
}
