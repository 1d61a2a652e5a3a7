package service

import (
	"lms_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTouchCreatesInProgressRow(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "learner", model.RoleEmployee)
	_, lessons := env.courseWithLessons(t, "Course", 2)

	p, err := env.progress.Touch(user.ID, lessons[0])
	require.NoError(t, err)
	assert.Equal(t, model.ProgressInProgress, p.Status)
	assert.NotNil(t, p.LastAccessedAt)
	assert.Nil(t, p.CompletedAt)

	// touching again keeps the same row
	again, err := env.progress.Touch(user.ID, lessons[0])
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)
}

func TestCompleteAggregatesEnrollmentProgress(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "learner", model.RoleEmployee)
	course, lessons := env.courseWithLessons(t, "Course", 4)

	_, err := env.enrollment.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	_, err = env.progress.Complete(user.ID, lessons[0])
	require.NoError(t, err)

	e, err := env.enrollments.FindByUserAndCourse(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, e.Progress)
	assert.Nil(t, e.CompletedAt)

	_, err = env.progress.Complete(user.ID, lessons[1])
	require.NoError(t, err)
	e, err = env.enrollments.FindByUserAndCourse(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, e.Progress)
}

func TestCompletingAllLessonsIssuesCertificate(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "learner", model.RoleEmployee)
	course, lessons := env.courseWithLessons(t, "Course", 2)

	_, err := env.enrollment.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	for _, id := range lessons {
		_, err = env.progress.Complete(user.ID, id)
		require.NoError(t, err)
	}

	e, err := env.enrollments.FindByUserAndCourse(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, e.Progress)
	require.NotNil(t, e.CompletedAt)

	certs, err := env.certificate.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, certs, 1)
	assert.Equal(t, course.ID, certs[0].CourseID)
	assert.NotEmpty(t, certs[0].CertificateID)

	// completing again must not mint a second certificate
	_, err = env.progress.Complete(user.ID, lessons[0])
	require.NoError(t, err)
	certs, err = env.certificate.ListForUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, certs, 1)
}

func TestCompleteWithoutEnrollmentStillRecordsProgress(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "learner", model.RoleEmployee)
	_, lessons := env.courseWithLessons(t, "Course", 1)

	p, err := env.progress.Complete(user.ID, lessons[0])
	require.NoError(t, err)
	assert.Equal(t, model.ProgressCompleted, p.Status)
	assert.NotNil(t, p.CompletedAt)

	certs, err := env.certificate.ListForUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, certs)
}

func TestForCourseSummarizesLessons(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "learner", model.RoleEmployee)
	course, lessons := env.courseWithLessons(t, "Course", 3)
	otherCourse, otherLessons := env.courseWithLessons(t, "Other", 1)

	_, err := env.enrollment.Enroll(user.ID, course.ID)
	require.NoError(t, err)
	_, err = env.enrollment.Enroll(user.ID, otherCourse.ID)
	require.NoError(t, err)

	_, err = env.progress.Complete(user.ID, lessons[0])
	require.NoError(t, err)
	_, err = env.progress.Touch(user.ID, lessons[1])
	require.NoError(t, err)
	_, err = env.progress.Complete(user.ID, otherLessons[0])
	require.NoError(t, err)

	summary, err := env.progress.ForCourse(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, summary.CourseID)
	assert.Equal(t, 33, summary.Progress)
	assert.Len(t, summary.Lessons, 2, "other course's progress must not leak in")
}

func TestForCourseRequiresEnrollment(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "learner", model.RoleEmployee)
	course, _ := env.courseWithLessons(t, "Course", 1)

	_, err := env.progress.ForCourse(user.ID, course.ID)
	assert.Error(t, err)
}
