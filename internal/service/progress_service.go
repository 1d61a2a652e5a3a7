package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo   *repository.ProgressRepository
	EnrollmentRepo *repository.EnrollmentRepository
	LessonRepo     *repository.LessonRepository
	CourseRepo     *repository.CourseRepository
	Certificates   *CertificateService
	Activity       *ActivityService
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	certificates *CertificateService,
	activity *ActivityService,
) *ProgressService {
	return &ProgressService{
		ProgressRepo:   progressRepo,
		EnrollmentRepo: enrollmentRepo,
		LessonRepo:     lessonRepo,
		CourseRepo:     courseRepo,
		Certificates:   certificates,
		Activity:       activity,
	}
}

// Touch marks a lesson as accessed, creating the progress row on first
// contact and moving not_started to in_progress.
func (s *ProgressService) Touch(userID, lessonID uint) (*model.LessonProgress, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		return nil, err
	}

	now := time.Now()
	p, err := s.ProgressRepo.FindByUserAndLesson(userID, lessonID)
	if err == gorm.ErrRecordNotFound {
		p = &model.LessonProgress{
			UserID:   userID,
			LessonID: lessonID,
			Status:   model.ProgressInProgress,
		}
	} else if err != nil {
		return nil, err
	} else if p.Status == model.ProgressNotStarted {
		p.Status = model.ProgressInProgress
	}

	p.LastAccessedAt = &now
	if err := s.ProgressRepo.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Complete marks a lesson done and recomputes the owning enrollment's
// percentage. Finishing the last lesson completes the enrollment and
// issues a certificate.
func (s *ProgressService) Complete(userID, lessonID uint) (*model.LessonProgress, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		return nil, err
	}

	now := time.Now()
	p, err := s.ProgressRepo.FindByUserAndLesson(userID, lessonID)
	if err == gorm.ErrRecordNotFound {
		p = &model.LessonProgress{
			UserID:   userID,
			LessonID: lessonID,
		}
	} else if err != nil {
		return nil, err
	}

	p.Status = model.ProgressCompleted
	p.LastAccessedAt = &now
	p.CompletedAt = &now
	if err := s.ProgressRepo.Save(p); err != nil {
		return nil, err
	}

	if err := s.refreshEnrollment(userID, lessonID); err != nil {
		logger.Log.Error("failed to refresh enrollment progress",
			zap.Uint("userId", userID), zap.Uint("lessonId", lessonID), zap.Error(err))
	}

	return p, nil
}

func (s *ProgressService) refreshEnrollment(userID, lessonID uint) error {
	courseID, err := s.LessonRepo.CourseID(lessonID)
	if err != nil || courseID == 0 {
		return err
	}

	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil // progress without enrollment is allowed, nothing to aggregate
		}
		return err
	}

	total, err := s.CourseRepo.CountLessons(courseID)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	completed, err := s.ProgressRepo.CountCompletedInCourse(userID, courseID)
	if err != nil {
		return err
	}

	percent := int(completed * 100 / total)
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	enrollment.Progress = percent

	if percent == 100 && enrollment.CompletedAt == nil {
		now := time.Now()
		enrollment.CompletedAt = &now

		if _, err := s.Certificates.Issue(userID, courseID); err != nil {
			logger.Log.Error("failed to issue certificate",
				zap.Uint("userId", userID), zap.Uint("courseId", courseID), zap.Error(err))
		}
		s.Activity.Log(userID, "course.completed", "course", &courseID, nil)
	}

	return s.EnrollmentRepo.Update(enrollment)
}

type CourseProgress struct {
	CourseID    uint                   `json:"courseId"`
	Progress    int                    `json:"progress"`
	CompletedAt *time.Time             `json:"completedAt,omitempty"`
	Lessons     []model.LessonProgress `json:"lessons"`
}

func (s *ProgressService) ForCourse(userID, courseID uint) (*CourseProgress, error) {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	all, err := s.ProgressRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	course, err := s.CourseRepo.FindByIDWithContent(courseID)
	if err != nil {
		return nil, err
	}

	lessonIDs := make(map[uint]bool)
	for _, m := range course.Modules {
		for _, l := range m.Lessons {
			lessonIDs[l.ID] = true
		}
	}

	var lessons []model.LessonProgress
	for _, p := range all {
		if lessonIDs[p.LessonID] {
			lessons = append(lessons, p)
		}
	}

	return &CourseProgress{
		CourseID:    courseID,
		Progress:    enrollment.Progress,
		CompletedAt: enrollment.CompletedAt,
		Lessons:     lessons,
	}, nil
}
