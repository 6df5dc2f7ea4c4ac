package persistent

import (
	"errors"

	"gatherly/internal/entity"
	"gatherly/internal/model"

	"gorm.io/gorm"
)

// ErrAlreadyMember means the user already belongs to the group.
var ErrAlreadyMember = errors.New("already a group member")

type GroupRepository interface {
	Create(g *entity.Group) (*entity.Group, error)
	GetByID(id string) (*entity.Group, error)
	ListOwnedBy(userID string) ([]entity.Group, error)
	ListMemberOf(userID string) ([]entity.Group, error)
	Rename(id, name string) (*entity.Group, error)
	Delete(id string) error

	AddMember(groupID, userID string) error
	RemoveMember(groupID, userID string) error
	IsMember(groupID, userID string) (bool, error)
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(g *entity.Group) (*entity.Group, error) {
	m := model.GroupModel{ID: g.ID, Name: g.Name, OwnerID: g.OwnerID}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		// The owner is always a member.
		member := model.GroupMemberModel{GroupID: m.ID, UserID: g.OwnerID}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, storageErr("create group", err)
	}
	return r.GetByID(m.ID)
}

func (r *groupRepository) GetByID(id string) (*entity.Group, error) {
	var m model.GroupModel
	err := r.db.Preload("Members.User").Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("find group", err)
	}
	return ToGroupEntity(&m), nil
}

func (r *groupRepository) ListOwnedBy(userID string) ([]entity.Group, error) {
	var models []model.GroupModel
	err := r.db.Preload("Members.User").
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, storageErr("list owned groups", err)
	}
	return toGroupEntities(models), nil
}

func (r *groupRepository) ListMemberOf(userID string) ([]entity.Group, error) {
	var models []model.GroupModel
	err := r.db.Preload("Members.User").
		Joins("JOIN group_members ON group_members.group_id = user_groups.id").
		Where("group_members.user_id = ?", userID).
		Order("user_groups.created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, storageErr("list member groups", err)
	}
	return toGroupEntities(models), nil
}

func (r *groupRepository) Rename(id, name string) (*entity.Group, error) {
	res := r.db.Model(&model.GroupModel{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return nil, storageErr("rename group", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *groupRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&model.GroupModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("group_id = ?", id).Delete(&model.GroupMemberModel{}).Error
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return storageErr("delete group", err)
	}
	return nil
}

func (r *groupRepository) AddMember(groupID, userID string) error {
	var existing model.GroupMemberModel
	err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&existing).Error
	if err == nil {
		return ErrAlreadyMember
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storageErr("find group member", err)
	}
	m := model.GroupMemberModel{GroupID: groupID, UserID: userID}
	if err := r.db.Create(&m).Error; err != nil {
		return storageErr("add group member", err)
	}
	return nil
}

func (r *groupRepository) RemoveMember(groupID, userID string) error {
	res := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&model.GroupMemberModel{})
	if res.Error != nil {
		return storageErr("remove group member", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *groupRepository) IsMember(groupID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.GroupMemberModel{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	if err != nil {
		return false, storageErr("check group member", err)
	}
	return count > 0, nil
}

func toGroupEntities(models []model.GroupModel) []entity.Group {
	groups := make([]entity.Group, len(models))
	for i := range models {
		groups[i] = *ToGroupEntity(&models[i])
	}
	return groups
}
