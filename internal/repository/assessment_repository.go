package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *AssessmentRepository) FindByIDWithQuestions(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position asc")
	}).First(&a, id).Error
	return &a, err
}

func (r *AssessmentRepository) ListByModule(moduleID uint) ([]model.Assessment, error) {
	var as []model.Assessment
	err := r.DB.Where("module_id = ?", moduleID).Order("created_at asc").Find(&as).Error
	return as, err
}

func (r *AssessmentRepository) Update(a *model.Assessment) error {
	return r.DB.Save(a).Error
}

func (r *AssessmentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Assessment{}, id).Error
}

// Questions

func (r *AssessmentRepository) CreateQuestion(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *AssessmentRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *AssessmentRepository) ListQuestions(assessmentID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("assessment_id = ?", assessmentID).
		Order("position asc, created_at asc").Find(&qs).Error
	return qs, err
}

func (r *AssessmentRepository) UpdateQuestion(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *AssessmentRepository) DeleteQuestion(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

// Attempts

func (r *AssessmentRepository) CreateAttempt(a *model.AssessmentAttempt) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindAttemptByID(id uint) (*model.AssessmentAttempt, error) {
	var a model.AssessmentAttempt
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *AssessmentRepository) FindOpenAttempt(userID, assessmentID uint) (*model.AssessmentAttempt, error) {
	var a model.AssessmentAttempt
	err := r.DB.Where("user_id = ? AND assessment_id = ? AND status = ?",
		userID, assessmentID, model.AttemptInProgress).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssessmentRepository) ListAttempts(assessmentID uint, page, limit int) ([]model.AssessmentAttempt, int64, error) {
	var as []model.AssessmentAttempt
	var total int64
	query := r.DB.Model(&model.AssessmentAttempt{}).Where("assessment_id = ?", assessmentID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("User").Order("started_at desc").
		Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}

func (r *AssessmentRepository) ListAttemptsByUser(userID uint) ([]model.AssessmentAttempt, error) {
	var as []model.AssessmentAttempt
	err := r.DB.Where("user_id = ?", userID).Order("started_at desc").Find(&as).Error
	return as, err
}

func (r *AssessmentRepository) UpdateAttempt(a *model.AssessmentAttempt) error {
	return r.DB.Save(a).Error
}
