package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(l *model.Lesson) error {
	return r.DB.Create(l).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var l model.Lesson
	err := r.DB.First(&l, id).Error
	return &l, err
}

func (r *LessonRepository) ListByModule(moduleID uint) ([]model.Lesson, error) {
	var ls []model.Lesson
	err := r.DB.Where("module_id = ?", moduleID).Order("position asc").Find(&ls).Error
	return ls, err
}

func (r *LessonRepository) Update(l *model.Lesson) error {
	return r.DB.Save(l).Error
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Lesson{}, id).Error
}

func (r *LessonRepository) NextPosition(moduleID uint) (int, error) {
	var max *int
	err := r.DB.Model(&model.Lesson{}).Where("module_id = ?", moduleID).
		Select("MAX(position)").Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max + 1, nil
}

// CourseID walks up to the owning course.
func (r *LessonRepository) CourseID(lessonID uint) (uint, error) {
	var courseID uint
	err := r.DB.Model(&model.Lesson{}).
		Select("modules.course_id").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("lessons.id = ?", lessonID).
		Scan(&courseID).Error
	return courseID, err
}
