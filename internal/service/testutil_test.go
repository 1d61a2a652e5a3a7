package service

import (
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/database"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("service_test_%d", atomic.AddInt64(&testDBSeq, 1))
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// testEnv wires the full service graph against one test database.
type testEnv struct {
	db *gorm.DB

	users       *repository.UserRepository
	courses     *repository.CourseRepository
	modules     *repository.ModuleRepository
	lessons     *repository.LessonRepository
	enrollments *repository.EnrollmentRepository
	groups      *repository.GroupRepository

	activity    *ActivityService
	enrollment  *EnrollmentService
	assessment  *AssessmentService
	access      *AccessService
	group       *GroupService
	certificate *CertificateService
	progress    *ProgressService
	comment     *CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	env := &testEnv{
		db:          db,
		users:       repository.NewUserRepository(db),
		courses:     repository.NewCourseRepository(db),
		modules:     repository.NewModuleRepository(db),
		lessons:     repository.NewLessonRepository(db),
		enrollments: repository.NewEnrollmentRepository(db),
		groups:      repository.NewGroupRepository(db),
	}

	env.activity = NewActivityService(repository.NewActivityRepository(db))
	env.enrollment = NewEnrollmentService(env.enrollments, env.courses, env.activity)
	env.assessment = NewAssessmentService(repository.NewAssessmentRepository(db), env.activity)
	env.access = NewAccessService(repository.NewAccessRepository(db), env.groups, env.courses)
	env.group = NewGroupService(env.groups, env.users, env.courses)
	env.certificate = NewCertificateService(repository.NewCertificateRepository(db), env.courses, env.users)
	env.progress = NewProgressService(repository.NewProgressRepository(db), env.enrollments, env.lessons, env.courses, env.certificate, env.activity)
	env.comment = NewCommentService(repository.NewCommentRepository(db), env.lessons)

	return env
}

func (e *testEnv) user(t *testing.T, username string, role model.UserRole) *model.User {
	t.Helper()
	u := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, e.users.Create(u))
	return u
}

func (e *testEnv) course(t *testing.T, title string, status model.CourseStatus) *model.Course {
	t.Helper()
	c := &model.Course{Title: title, Status: status}
	require.NoError(t, e.courses.Create(c))
	return c
}

// courseWithLessons builds a published course with one module holding n
// lessons, returning the lesson ids in order.
func (e *testEnv) courseWithLessons(t *testing.T, title string, n int) (*model.Course, []uint) {
	t.Helper()
	c := e.course(t, title, model.CoursePublished)
	m := &model.Module{CourseID: c.ID, Title: "Module 1", Position: 0}
	require.NoError(t, e.modules.Create(m))

	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		l := &model.Lesson{ModuleID: m.ID, Title: fmt.Sprintf("Lesson %d", i+1), Position: i}
		require.NoError(t, e.lessons.Create(l))
		ids = append(ids, l.ID)
	}
	return c, ids
}
