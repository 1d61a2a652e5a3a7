package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type GroupService struct {
	GroupRepo  *repository.GroupRepository
	UserRepo   *repository.UserRepository
	CourseRepo *repository.CourseRepository
}

func NewGroupService(
	groupRepo *repository.GroupRepository,
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
) *GroupService {
	return &GroupService{
		GroupRepo:  groupRepo,
		UserRepo:   userRepo,
		CourseRepo: courseRepo,
	}
}

type GroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *GroupService) CreateGroup(req GroupRequest) (*model.Group, error) {
	g := &model.Group{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.GroupRepo.Create(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GroupService) GetGroup(id uint) (*model.Group, error) {
	return s.GroupRepo.FindByIDWithMembers(id)
}

func (s *GroupService) ListGroups(page, limit int) ([]model.Group, int64, error) {
	return s.GroupRepo.List(page, limit)
}

func (s *GroupService) UpdateGroup(id uint, req GroupRequest) (*model.Group, error) {
	g, err := s.GroupRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	g.Name = req.Name
	g.Description = req.Description
	if err := s.GroupRepo.Update(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GroupService) DeleteGroup(id uint) error {
	return s.GroupRepo.Delete(id)
}

func (s *GroupService) AddMember(groupID, userID uint) error {
	if _, err := s.GroupRepo.FindByID(groupID); err != nil {
		return err
	}
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return util.ErrUserNotFound
	}
	return s.GroupRepo.AddMember(groupID, userID)
}

func (s *GroupService) RemoveMember(groupID, userID uint) error {
	return s.GroupRepo.RemoveMember(groupID, userID)
}

func (s *GroupService) AttachCourse(groupID, courseID uint) error {
	if _, err := s.GroupRepo.FindByID(groupID); err != nil {
		return err
	}
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return util.ErrCourseNotFound
	}
	return s.GroupRepo.AttachCourse(groupID, courseID)
}

func (s *GroupService) DetachCourse(groupID, courseID uint) error {
	return s.GroupRepo.DetachCourse(groupID, courseID)
}
