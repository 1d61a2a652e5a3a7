package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCourseService(t *testing.T) (*CourseService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewModuleRepository(db),
		repository.NewLessonRepository(db),
		nil, // uploads are not exercised here
	)
	return svc, db
}

func TestCreateCourseDefaults(t *testing.T) {
	svc, _ := newCourseService(t)

	course, err := svc.CreateCourse(CourseRequest{Title: "Fresh"}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.CourseDraft, course.Status, "new courses start as drafts")
	assert.Equal(t, model.DifficultyBeginner, course.Difficulty)
}

func TestModulePositionsAutoIncrement(t *testing.T) {
	svc, _ := newCourseService(t)
	course, err := svc.CreateCourse(CourseRequest{Title: "C"}, nil)
	require.NoError(t, err)

	m1, err := svc.AddModule(course.ID, ModuleRequest{Title: "First"})
	require.NoError(t, err)
	m2, err := svc.AddModule(course.ID, ModuleRequest{Title: "Second"})
	require.NoError(t, err)
	assert.Equal(t, m1.Position+1, m2.Position)

	// an explicit position wins
	explicit := 42
	m3, err := svc.AddModule(course.ID, ModuleRequest{Title: "Third", Position: &explicit})
	require.NoError(t, err)
	assert.Equal(t, 42, m3.Position)
}

func TestLessonPositionsAutoIncrement(t *testing.T) {
	svc, _ := newCourseService(t)
	course, err := svc.CreateCourse(CourseRequest{Title: "C"}, nil)
	require.NoError(t, err)
	mod, err := svc.AddModule(course.ID, ModuleRequest{Title: "M"})
	require.NoError(t, err)

	l1, err := svc.AddLesson(mod.ID, LessonRequest{Title: "A"})
	require.NoError(t, err)
	l2, err := svc.AddLesson(mod.ID, LessonRequest{Title: "B"})
	require.NoError(t, err)
	assert.Equal(t, l1.Position+1, l2.Position)
}

func TestSetStatusTransitions(t *testing.T) {
	svc, _ := newCourseService(t)
	course, err := svc.CreateCourse(CourseRequest{Title: "C"}, nil)
	require.NoError(t, err)

	published, err := svc.SetStatus(course.ID, model.CoursePublished)
	require.NoError(t, err)
	assert.Equal(t, model.CoursePublished, published.Status)

	archived, err := svc.SetStatus(course.ID, model.CourseArchived)
	require.NoError(t, err)
	assert.Equal(t, model.CourseArchived, archived.Status)
}

func TestAddModuleToMissingCourse(t *testing.T) {
	svc, _ := newCourseService(t)
	_, err := svc.AddModule(999, ModuleRequest{Title: "M"})
	assert.Error(t, err)
}
