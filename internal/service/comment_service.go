package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CommentService struct {
	Repo       *repository.CommentRepository
	LessonRepo *repository.LessonRepository
}

func NewCommentService(repo *repository.CommentRepository, lessonRepo *repository.LessonRepository) *CommentService {
	return &CommentService{Repo: repo, LessonRepo: lessonRepo}
}

type CommentRequest struct {
	Text     string `json:"text" binding:"required"`
	ParentID *uint  `json:"parentId"`
}

func (s *CommentService) Post(userID, lessonID uint, req CommentRequest) (*model.Comment, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.Repo.FindByID(*req.ParentID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, util.ErrParentCommentGone
			}
			return nil, err
		}
		if parent.LessonID != lessonID {
			return nil, util.ErrParentCommentGone
		}
	}

	c := &model.Comment{
		LessonID: lessonID,
		UserID:   userID,
		Text:     req.Text,
		ParentID: req.ParentID,
	}
	if err := s.Repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) ListForLesson(lessonID uint, page, limit int) ([]model.Comment, int64, error) {
	return s.Repo.ListByLesson(lessonID, page, limit)
}

func (s *CommentService) ListReplies(parentID uint) ([]model.Comment, error) {
	return s.Repo.ListReplies(parentID)
}

// Delete removes a comment if the caller authored it or is an admin.
// Replies are taken down with it.
func (s *CommentService) Delete(user *model.User, commentID uint) error {
	c, err := s.Repo.FindByID(commentID)
	if err != nil {
		return err
	}
	if c.UserID != user.ID && user.Role != model.RoleAdmin {
		return util.ErrPermissionDenied
	}
	return s.Repo.Delete(commentID)
}
