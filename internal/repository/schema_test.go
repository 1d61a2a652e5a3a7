package repository

import (
	"lms_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserUniqueConstraints(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "alice")

	dupUsername := &model.User{Username: "alice", Email: "other@example.com", Password: "x"}
	assert.Error(t, db.Create(dupUsername).Error)

	dupEmail := &model.User{Username: "alice2", Email: "alice@example.com", Password: "x"}
	assert.Error(t, db.Create(dupEmail).Error)
}

func TestCourseDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "bob")
	course := createCourse(t, db, "Go Basics", model.CoursePublished)
	mod := createModule(t, db, course.ID, "Intro", 1)
	lesson := createLesson(t, db, mod.ID, "Hello", 1)

	require.NoError(t, db.Create(&model.Enrollment{
		UserID: user.ID, CourseID: course.ID, EnrolledAt: time.Now(),
	}).Error)

	assessment := &model.Assessment{ModuleID: &mod.ID, Title: "Quiz"}
	require.NoError(t, db.Create(assessment).Error)
	require.NoError(t, db.Create(&model.Question{
		AssessmentID: assessment.ID, Text: "1+1?",
		QuestionType: model.QuestionMultipleChoice, CorrectAnswer: "2", Points: 1,
	}).Error)
	require.NoError(t, db.Create(&model.AssessmentAttempt{
		UserID: user.ID, AssessmentID: assessment.ID, StartedAt: time.Now(),
	}).Error)

	require.NoError(t, db.Create(&model.LessonProgress{
		UserID: user.ID, LessonID: lesson.ID, Status: model.ProgressInProgress,
	}).Error)
	require.NoError(t, db.Create(&model.Comment{
		LessonID: lesson.ID, UserID: user.ID, Text: "nice",
	}).Error)

	require.NoError(t, NewCourseRepository(db).Delete(course.ID))

	for _, probe := range []struct {
		name  string
		model interface{}
	}{
		{"modules", &model.Module{}},
		{"lessons", &model.Lesson{}},
		{"enrollments", &model.Enrollment{}},
		{"assessments", &model.Assessment{}},
		{"questions", &model.Question{}},
		{"attempts", &model.AssessmentAttempt{}},
		{"progress", &model.LessonProgress{}},
		{"comments", &model.Comment{}},
	} {
		var count int64
		require.NoError(t, db.Model(probe.model).Count(&count).Error)
		assert.Zero(t, count, "expected %s to be cascade-deleted", probe.name)
	}

	// the user is untouched
	var users int64
	require.NoError(t, db.Model(&model.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestCommentParentForeignKey(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "carol")
	course := createCourse(t, db, "C", model.CoursePublished)
	mod := createModule(t, db, course.ID, "M", 1)
	lesson := createLesson(t, db, mod.ID, "L", 1)

	missing := uint(9999)
	err := db.Create(&model.Comment{
		LessonID: lesson.ID, UserID: user.ID, Text: "orphan", ParentID: &missing,
	}).Error
	assert.Error(t, err, "dangling parent_id must be rejected")
}

func TestCommentReplyCascade(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "dave")
	course := createCourse(t, db, "C", model.CoursePublished)
	mod := createModule(t, db, course.ID, "M", 1)
	lesson := createLesson(t, db, mod.ID, "L", 1)

	repo := NewCommentRepository(db)
	parent := &model.Comment{LessonID: lesson.ID, UserID: user.ID, Text: "root"}
	require.NoError(t, repo.Create(parent))
	reply := &model.Comment{LessonID: lesson.ID, UserID: user.ID, Text: "re", ParentID: &parent.ID}
	require.NoError(t, repo.Create(reply))

	require.NoError(t, repo.Delete(parent.ID))

	_, err := repo.FindByID(reply.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCertificatePublicIDUnique(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "erin")
	course := createCourse(t, db, "C", model.CoursePublished)

	repo := NewCertificateRepository(db)
	require.NoError(t, repo.Create(&model.Certificate{
		UserID: user.ID, CourseID: course.ID, CertificateID: "cert-1", IssuedAt: time.Now(),
	}))
	assert.Error(t, repo.Create(&model.Certificate{
		UserID: user.ID, CourseID: course.ID, CertificateID: "cert-1", IssuedAt: time.Now(),
	}))
}

// The course_access DDL allows a row with neither target set; the guard
// lives in the service layer, not the schema.
func TestCourseAccessPermissiveDDL(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "C", model.CourseDraft)

	err := db.Create(&model.CourseAccess{CourseID: course.ID, Level: model.AccessView}).Error
	assert.NoError(t, err)
}

func TestGroupDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "frank")
	course := createCourse(t, db, "C", model.CoursePublished)

	repo := NewGroupRepository(db)
	group := &model.Group{Name: "Team"}
	require.NoError(t, repo.Create(group))
	require.NoError(t, repo.AddMember(group.ID, user.ID))
	require.NoError(t, repo.AttachCourse(group.ID, course.ID))
	require.NoError(t, db.Create(&model.CourseAccess{
		CourseID: course.ID, GroupID: &group.ID, Level: model.AccessView,
	}).Error)

	require.NoError(t, repo.Delete(group.ID))

	var members, links, grants int64
	require.NoError(t, db.Model(&model.GroupMember{}).Count(&members).Error)
	require.NoError(t, db.Model(&model.GroupCourse{}).Count(&links).Error)
	require.NoError(t, db.Model(&model.CourseAccess{}).Count(&grants).Error)
	assert.Zero(t, members)
	assert.Zero(t, links)
	assert.Zero(t, grants)
}

func TestEnumValidationHooks(t *testing.T) {
	db := newTestDB(t)

	err := db.Create(&model.User{Username: "x", Email: "x@example.com", Password: "x", Role: "superuser"}).Error
	assert.Error(t, err)

	err = db.Create(&model.Course{Title: "C", Difficulty: "impossible"}).Error
	assert.Error(t, err)

	err = db.Create(&model.CourseAccess{CourseID: 1, Level: "owner"}).Error
	assert.Error(t, err)
}
