package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type GroupRepository struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

func (r *GroupRepository) Create(g *model.Group) error {
	return r.DB.Create(g).Error
}

func (r *GroupRepository) FindByID(id uint) (*model.Group, error) {
	var g model.Group
	err := r.DB.First(&g, id).Error
	return &g, err
}

func (r *GroupRepository) FindByIDWithMembers(id uint) (*model.Group, error) {
	var g model.Group
	err := r.DB.Preload("Members.User").First(&g, id).Error
	return &g, err
}

func (r *GroupRepository) List(page, limit int) ([]model.Group, int64, error) {
	var gs []model.Group
	var total int64
	query := r.DB.Model(&model.Group{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("name asc").Offset(offset).Limit(limit).Find(&gs).Error
	return gs, total, err
}

func (r *GroupRepository) Update(g *model.Group) error {
	return r.DB.Save(g).Error
}

func (r *GroupRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Group{}, id).Error
}

// Membership. Writes go to group_members; group_users is a legacy join
// that is only ever read.

func (r *GroupRepository) AddMember(groupID, userID uint) error {
	var existing model.GroupMember
	err := r.DB.Where("group_id = ? AND user_id = ?", groupID, userID).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.DB.Create(&model.GroupMember{GroupID: groupID, UserID: userID}).Error
}

func (r *GroupRepository) RemoveMember(groupID, userID uint) error {
	return r.DB.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.GroupMember{}).Error
}

// GroupIDsForUser collects the groups a user belongs to through either
// join table.
func (r *GroupRepository) GroupIDsForUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.GroupMember{}).Where("user_id = ?", userID).
		Distinct().Pluck("group_id", &ids).Error
	if err != nil {
		return nil, err
	}

	var legacy []uint
	err = r.DB.Model(&model.GroupUser{}).Where("user_id = ?", userID).
		Distinct().Pluck("group_id", &legacy).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	for _, id := range legacy {
		if !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	return ids, nil
}

// Group courses

func (r *GroupRepository) AttachCourse(groupID, courseID uint) error {
	var existing model.GroupCourse
	err := r.DB.Where("group_id = ? AND course_id = ?", groupID, courseID).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.DB.Create(&model.GroupCourse{GroupID: groupID, CourseID: courseID}).Error
}

func (r *GroupRepository) DetachCourse(groupID, courseID uint) error {
	return r.DB.Where("group_id = ? AND course_id = ?", groupID, courseID).
		Delete(&model.GroupCourse{}).Error
}

func (r *GroupRepository) CourseIDsForGroups(groupIDs []uint) ([]uint, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.DB.Model(&model.GroupCourse{}).Where("group_id IN ?", groupIDs).
		Distinct().Pluck("course_id", &ids).Error
	return ids, err
}
