package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(c *model.Comment) error {
	return r.DB.Create(c).Error
}

func (r *CommentRepository) FindByID(id uint) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.First(&c, id).Error
	return &c, err
}

// ListByLesson returns top-level comments with one level of replies
// preloaded; deeper levels are fetched on demand.
func (r *CommentRepository) ListByLesson(lessonID uint, page, limit int) ([]model.Comment, int64, error) {
	var cs []model.Comment
	var total int64
	query := r.DB.Model(&model.Comment{}).
		Where("lesson_id = ? AND parent_id IS NULL", lessonID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("User").Preload("Replies.User").
		Order("created_at desc").Offset(offset).Limit(limit).Find(&cs).Error
	return cs, total, err
}

func (r *CommentRepository) ListReplies(parentID uint) ([]model.Comment, error) {
	var cs []model.Comment
	err := r.DB.Preload("User").Where("parent_id = ?", parentID).
		Order("created_at asc").Find(&cs).Error
	return cs, err
}

// Delete removes the comment; replies go with it through the cascade.
func (r *CommentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Comment{}, id).Error
}
