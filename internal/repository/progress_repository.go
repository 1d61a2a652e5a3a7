package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserAndLesson(userID, lessonID uint) (*model.LessonProgress, error) {
	var p model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) Save(p *model.LessonProgress) error {
	return r.DB.Save(p).Error
}

func (r *ProgressRepository) ListByUser(userID uint) ([]model.LessonProgress, error) {
	var ps []model.LessonProgress
	err := r.DB.Where("user_id = ?", userID).Find(&ps).Error
	return ps, err
}

// CountCompletedInCourse counts the user's completed lessons inside one
// course, via the module join.
func (r *ProgressRepository) CountCompletedInCourse(userID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("lesson_progress.user_id = ? AND modules.course_id = ? AND lesson_progress.status = ?",
			userID, courseID, model.ProgressCompleted).
		Count(&count).Error
	return count, err
}
