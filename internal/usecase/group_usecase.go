package usecase

import (
	"errors"
	"fmt"

	"gatherly/internal/entity"
	"gatherly/internal/repo/persistent"
	"gatherly/pkg/logger"
)

type GroupUseCase interface {
	Create(name, ownerID string) (*entity.Group, error)
	GetByID(groupID, actorID string) (*entity.Group, error)
	ListForUser(userID string) ([]entity.Group, error)
	Rename(groupID, actorID, name string) (*entity.Group, error)
	Delete(groupID, actorID string) error

	AddMemberByEmail(groupID, actorID, email string) (*entity.Group, error)
	RemoveMember(groupID, actorID, userID string) error
	Leave(groupID, userID string) error
}

type groupUseCase struct {
	groupRepo persistent.GroupRepository
	userRepo  persistent.UserRepository
	notifier  Notifier
	logger    *logger.Logger
}

func NewGroupUseCase(
	groupRepo persistent.GroupRepository,
	userRepo persistent.UserRepository,
	notifier Notifier,
	log *logger.Logger,
) GroupUseCase {
	return &groupUseCase{
		groupRepo: groupRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		logger:    log,
	}
}

func (uc *groupUseCase) Create(name, ownerID string) (*entity.Group, error) {
	if name == "" {
		return nil, fmt.Errorf("group name is required")
	}
	return uc.groupRepo.Create(&entity.Group{Name: name, OwnerID: ownerID})
}

// GetByID is restricted to members; groups are not public.
func (uc *groupUseCase) GetByID(groupID, actorID string) (*entity.Group, error) {
	isMember, err := uc.groupRepo.IsMember(groupID, actorID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrForbidden
	}
	return uc.groupRepo.GetByID(groupID)
}

func (uc *groupUseCase) ListForUser(userID string) ([]entity.Group, error) {
	return uc.groupRepo.ListMemberOf(userID)
}

func (uc *groupUseCase) Rename(groupID, actorID, name string) (*entity.Group, error) {
	if err := uc.requireOwner(groupID, actorID); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("group name is required")
	}
	return uc.groupRepo.Rename(groupID, name)
}

func (uc *groupUseCase) Delete(groupID, actorID string) error {
	if err := uc.requireOwner(groupID, actorID); err != nil {
		return err
	}
	return uc.groupRepo.Delete(groupID)
}

// AddMemberByEmail adds a registered user to the group and tells them about
// it. Only the owner can add members.
func (uc *groupUseCase) AddMemberByEmail(groupID, actorID, email string) (*entity.Group, error) {
	group, err := uc.groupRepo.GetByID(groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != actorID {
		return nil, ErrForbidden
	}

	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	if err := uc.groupRepo.AddMember(groupID, user.ID); err != nil {
		if errors.Is(err, persistent.ErrAlreadyMember) {
			return nil, err
		}
		uc.logger.Error("Failed to add member %s to group %s: %v", user.ID, groupID, err)
		return nil, err
	}

	if _, err := uc.notifier.Notify(&entity.Notification{
		RecipientID: user.ID,
		Kind:        entity.KindGroupAdded,
		Title:       "Added to a group",
		Body:        fmt.Sprintf("You were added to the group %q", group.Name),
		GroupID:     groupID,
	}); err != nil {
		uc.logger.Error("Failed to notify user %s about group add: %v", user.ID, err)
	}

	return uc.groupRepo.GetByID(groupID)
}

func (uc *groupUseCase) RemoveMember(groupID, actorID, userID string) error {
	group, err := uc.groupRepo.GetByID(groupID)
	if err != nil {
		return err
	}
	if group.OwnerID != actorID {
		return ErrForbidden
	}
	if userID == group.OwnerID {
		return fmt.Errorf("owner cannot be removed from the group")
	}
	return uc.groupRepo.RemoveMember(groupID, userID)
}

func (uc *groupUseCase) Leave(groupID, userID string) error {
	group, err := uc.groupRepo.GetByID(groupID)
	if err != nil {
		return err
	}
	if group.OwnerID == userID {
		return fmt.Errorf("owner cannot leave the group, delete it instead")
	}
	return uc.groupRepo.RemoveMember(groupID, userID)
}

func (uc *groupUseCase) requireOwner(groupID, actorID string) error {
	group, err := uc.groupRepo.GetByID(groupID)
	if err != nil {
		return err
	}
	if group.OwnerID != actorID {
		return ErrForbidden
	}
	return nil
}
