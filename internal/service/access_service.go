package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type AccessService struct {
	AccessRepo *repository.AccessRepository
	GroupRepo  *repository.GroupRepository
	CourseRepo *repository.CourseRepository
}

func NewAccessService(
	accessRepo *repository.AccessRepository,
	groupRepo *repository.GroupRepository,
	courseRepo *repository.CourseRepository,
) *AccessService {
	return &AccessService{
		AccessRepo: accessRepo,
		GroupRepo:  groupRepo,
		CourseRepo: courseRepo,
	}
}

type GrantRequest struct {
	CourseID uint   `json:"courseId" binding:"required"`
	UserID   *uint  `json:"userId"`
	GroupID  *uint  `json:"groupId"`
	Level    string `json:"level"`
}

// Grant creates a CourseAccess row targeting exactly one of user or
// group. The table itself would take anything; the guard lives here.
func (s *AccessService) Grant(req GrantRequest) (*model.CourseAccess, error) {
	if req.UserID == nil && req.GroupID == nil {
		return nil, util.ErrAccessTargetMissing
	}
	if req.UserID != nil && req.GroupID != nil {
		return nil, util.ErrAccessTargetBoth
	}
	if _, err := s.CourseRepo.FindByID(req.CourseID); err != nil {
		return nil, util.ErrCourseNotFound
	}

	level := model.AccessLevel(req.Level)
	if level == "" {
		level = model.AccessView
	}

	grant := &model.CourseAccess{
		CourseID: req.CourseID,
		UserID:   req.UserID,
		GroupID:  req.GroupID,
		Level:    level,
	}
	if err := s.AccessRepo.Create(grant); err != nil {
		return nil, err
	}
	return grant, nil
}

func (s *AccessService) Revoke(id uint) error {
	return s.AccessRepo.Delete(id)
}

func (s *AccessService) ListForCourse(courseID uint) ([]model.CourseAccess, error) {
	return s.AccessRepo.ListByCourse(courseID)
}

// CanView resolves effective view access for a user on a course:
// published courses are visible to everyone, instructors see their own
// courses, and otherwise a direct grant, a grant to one of the user's
// groups, or a group-course link is needed.
func (s *AccessService) CanView(user *model.User, course *model.Course) (bool, error) {
	if user.Role == model.RoleAdmin {
		return true, nil
	}
	if course.Status == model.CoursePublished {
		return true, nil
	}
	if course.InstructorID != nil && *course.InstructorID == user.ID {
		return true, nil
	}

	level, err := s.grantedLevel(user.ID, course.ID)
	if err != nil {
		return false, err
	}
	if level != "" {
		return true, nil
	}

	return s.linkedThroughGroup(user.ID, course.ID)
}

// CanEdit resolves effective edit access: admins always, the instructor
// on their own course, and holders of an edit grant (direct or via
// group).
func (s *AccessService) CanEdit(user *model.User, course *model.Course) (bool, error) {
	if user.Role == model.RoleAdmin {
		return true, nil
	}
	if course.InstructorID != nil && *course.InstructorID == user.ID {
		return true, nil
	}

	level, err := s.grantedLevel(user.ID, course.ID)
	if err != nil {
		return false, err
	}
	return level == model.AccessEdit, nil
}

// grantedLevel returns the strongest level granted to the user for the
// course, directly or through group membership. Empty means no grant.
func (s *AccessService) grantedLevel(userID, courseID uint) (model.AccessLevel, error) {
	groupIDs, err := s.GroupRepo.GroupIDsForUser(userID)
	if err != nil {
		return "", err
	}

	grants, err := s.AccessRepo.GrantsFor(userID, groupIDs)
	if err != nil {
		return "", err
	}

	var level model.AccessLevel
	for _, g := range grants {
		if g.CourseID != courseID {
			continue
		}
		if g.Level == model.AccessEdit {
			return model.AccessEdit, nil
		}
		level = g.Level
	}
	return level, nil
}

func (s *AccessService) linkedThroughGroup(userID, courseID uint) (bool, error) {
	groupIDs, err := s.GroupRepo.GroupIDsForUser(userID)
	if err != nil {
		return false, err
	}
	courseIDs, err := s.GroupRepo.CourseIDsForGroups(groupIDs)
	if err != nil {
		return false, err
	}
	for _, id := range courseIDs {
		if id == courseID {
			return true, nil
		}
	}
	return false, nil
}

// AccessibleCourseIDs lists every course the user can see beyond the
// published catalog: granted directly, granted via group, or linked to
// one of the user's groups.
func (s *AccessService) AccessibleCourseIDs(userID uint) ([]uint, error) {
	groupIDs, err := s.GroupRepo.GroupIDsForUser(userID)
	if err != nil {
		return nil, err
	}

	grants, err := s.AccessRepo.GrantsFor(userID, groupIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	var ids []uint
	for _, g := range grants {
		if !seen[g.CourseID] {
			ids = append(ids, g.CourseID)
			seen[g.CourseID] = true
		}
	}

	linked, err := s.GroupRepo.CourseIDsForGroups(groupIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range linked {
		if !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	return ids, nil
}
