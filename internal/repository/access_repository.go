package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AccessRepository struct {
	DB *gorm.DB
}

func NewAccessRepository(db *gorm.DB) *AccessRepository {
	return &AccessRepository{DB: db}
}

func (r *AccessRepository) Create(a *model.CourseAccess) error {
	return r.DB.Create(a).Error
}

func (r *AccessRepository) FindByID(id uint) (*model.CourseAccess, error) {
	var a model.CourseAccess
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *AccessRepository) ListByCourse(courseID uint) ([]model.CourseAccess, error) {
	var as []model.CourseAccess
	err := r.DB.Where("course_id = ?", courseID).Find(&as).Error
	return as, err
}

// GrantsFor returns every grant touching the user directly or through any
// of the given groups.
func (r *AccessRepository) GrantsFor(userID uint, groupIDs []uint) ([]model.CourseAccess, error) {
	var as []model.CourseAccess
	query := r.DB.Where("user_id = ?", userID)
	if len(groupIDs) > 0 {
		query = query.Or("group_id IN ?", groupIDs)
	}
	err := r.DB.Where(query).Find(&as).Error
	return as, err
}

func (r *AccessRepository) Delete(id uint) error {
	return r.DB.Delete(&model.CourseAccess{}, id).Error
}
