package service

import (
	"context"
	"fmt"
	"io"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	ModuleRepo *repository.ModuleRepository
	LessonRepo *repository.LessonRepository
	Storage    *StorageService
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	storage *StorageService,
) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		ModuleRepo: moduleRepo,
		LessonRepo: lessonRepo,
		Storage:    storage,
	}
}

type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    int    `json:"duration"`
	Difficulty  string `json:"difficulty"`
}

func (s *CourseService) CreateCourse(req CourseRequest, instructorID *uint) (*model.Course, error) {
	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Duration:     req.Duration,
		Difficulty:   model.Difficulty(req.Difficulty),
		InstructorID: instructorID,
		Status:       model.CourseDraft,
	}
	if req.Difficulty == "" {
		course.Difficulty = model.DifficultyBeginner
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	return s.CourseRepo.FindByIDWithContent(id)
}

func (s *CourseService) ListCourses(filter repository.CourseFilter, page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.List(filter, page, limit)
}

func (s *CourseService) UpdateCourse(id uint, req CourseRequest) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Category = req.Category
	course.Duration = req.Duration
	if req.Difficulty != "" {
		course.Difficulty = model.Difficulty(req.Difficulty)
	}
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) SetStatus(id uint, status model.CourseStatus) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	course.Status = status
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) DeleteCourse(id uint) error {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.CourseRepo.Delete(id); err != nil {
		return err
	}

	// best effort, the thumbnail object name is derived from the stored URL
	if course.Thumbnail != "" && s.Storage != nil {
		objectName := fmt.Sprintf("courses/%d/thumbnail%s", id, filepath.Ext(course.Thumbnail))
		if err := s.Storage.Delete(context.Background(), objectName); err != nil {
			logger.Log.Warn("thumbnail cleanup failed",
				zap.Uint("courseId", id), zap.Error(err))
		}
	}
	return nil
}

func (s *CourseService) UploadThumbnail(ctx context.Context, courseID uint, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("courses/%d/thumbnail%s", courseID, filepath.Ext(filename))
	url, err := s.Storage.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return "", err
	}

	course.Thumbnail = url
	if err := s.CourseRepo.Update(course); err != nil {
		return "", err
	}
	return url, nil
}

// Modules

type ModuleRequest struct {
	Title    string `json:"title" binding:"required"`
	Position *int   `json:"position"`
}

func (s *CourseService) AddModule(courseID uint, req ModuleRequest) (*model.Module, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, err
	}

	position := 0
	if req.Position != nil {
		position = *req.Position
	} else {
		next, err := s.ModuleRepo.NextPosition(courseID)
		if err != nil {
			return nil, err
		}
		position = next
	}

	m := &model.Module{
		CourseID: courseID,
		Title:    req.Title,
		Position: position,
	}
	if err := s.ModuleRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CourseService) UpdateModule(id uint, req ModuleRequest) (*model.Module, error) {
	m, err := s.ModuleRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	m.Title = req.Title
	if req.Position != nil {
		m.Position = *req.Position
	}
	if err := s.ModuleRepo.Update(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CourseService) DeleteModule(id uint) error {
	return s.ModuleRepo.Delete(id)
}

// Lessons

type LessonRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	VideoURL string `json:"videoUrl"`
	Duration int    `json:"duration"`
	Position *int   `json:"position"`
}

func (s *CourseService) ListModuleLessons(moduleID uint) ([]model.Lesson, error) {
	if _, err := s.ModuleRepo.FindByID(moduleID); err != nil {
		return nil, err
	}
	return s.LessonRepo.ListByModule(moduleID)
}

func (s *CourseService) AddLesson(moduleID uint, req LessonRequest) (*model.Lesson, error) {
	if _, err := s.ModuleRepo.FindByID(moduleID); err != nil {
		return nil, err
	}

	position := 0
	if req.Position != nil {
		position = *req.Position
	} else {
		next, err := s.LessonRepo.NextPosition(moduleID)
		if err != nil {
			return nil, err
		}
		position = next
	}

	l := &model.Lesson{
		ModuleID: moduleID,
		Title:    req.Title,
		Content:  req.Content,
		VideoURL: req.VideoURL,
		Duration: req.Duration,
		Position: position,
	}
	if err := s.LessonRepo.Create(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *CourseService) UpdateLesson(id uint, req LessonRequest) (*model.Lesson, error) {
	l, err := s.LessonRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	l.Title = req.Title
	l.Content = req.Content
	if req.VideoURL != "" {
		l.VideoURL = req.VideoURL
	}
	if req.Duration > 0 {
		l.Duration = req.Duration
	}
	if req.Position != nil {
		l.Position = *req.Position
	}
	if err := s.LessonRepo.Update(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *CourseService) DeleteLesson(id uint) error {
	return s.LessonRepo.Delete(id)
}

// UploadLessonVideo stages the upload to a temp file so the duration can
// be probed before the video is pushed to storage.
func (s *CourseService) UploadLessonVideo(ctx context.Context, lessonID uint, filename string, reader io.Reader, contentType string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, e := range util.AllowedVideoExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, util.ErrUnsupportedVideoFormat
	}

	tmp, err := os.CreateTemp("", "lesson-video-*"+ext)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	info, err := util.GetVideoInfo(tmp.Name())
	if err == nil && info.Duration > 0 {
		lesson.Duration = int(info.Duration)
	}

	objectName := fmt.Sprintf("lessons/%d/%d%s", lessonID, time.Now().UnixNano(), filepath.Ext(filename))
	url, err := s.Storage.UploadFile(ctx, objectName, tmp.Name(), contentType)
	if err != nil {
		return nil, err
	}

	lesson.VideoURL = url
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}

	if courseID, err := s.LessonRepo.CourseID(lessonID); err == nil {
		if course, err := s.CourseRepo.FindByID(courseID); err == nil && course.Thumbnail == "" {
			s.generateCourseThumbnail(ctx, course, tmp.Name())
		}
	}

	return lesson, nil
}

// generateCourseThumbnail grabs a frame from the first uploaded video of a
// course that has no thumbnail yet. Best effort, failures only log.
func (s *CourseService) generateCourseThumbnail(ctx context.Context, course *model.Course, videoPath string) {
	framePath := filepath.Join(os.TempDir(), fmt.Sprintf("course-thumb-%d.jpg", course.ID))
	defer os.Remove(framePath)

	if err := util.GenerateThumbnail(videoPath, framePath, "00:00:01"); err != nil {
		logger.Log.Warn("thumbnail generation failed",
			zap.Uint("courseId", course.ID), zap.Error(err))
		return
	}

	objectName := fmt.Sprintf("courses/%d/thumbnail.jpg", course.ID)
	url, err := s.Storage.UploadFile(ctx, objectName, framePath, "image/jpeg")
	if err != nil {
		logger.Log.Warn("thumbnail upload failed",
			zap.Uint("courseId", course.ID), zap.Error(err))
		return
	}

	course.Thumbnail = url
	if err := s.CourseRepo.Update(course); err != nil {
		logger.Log.Warn("thumbnail save failed",
			zap.Uint("courseId", course.ID), zap.Error(err))
	}
}
