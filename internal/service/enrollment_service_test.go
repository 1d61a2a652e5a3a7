package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollOnlyInPublishedCourses(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "student", model.RoleEmployee)
	draft := env.course(t, "Draft", model.CourseDraft)
	archived := env.course(t, "Old", model.CourseArchived)
	published := env.course(t, "Live", model.CoursePublished)

	_, err := env.enrollment.Enroll(user.ID, draft.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotPublished)

	_, err = env.enrollment.Enroll(user.ID, archived.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotPublished)

	e, err := env.enrollment.Enroll(user.ID, published.ID)
	require.NoError(t, err)
	assert.Zero(t, e.Progress)
	assert.False(t, e.EnrolledAt.IsZero())
}

func TestEnrollTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "student", model.RoleEmployee)
	course := env.course(t, "Live", model.CoursePublished)

	first, err := env.enrollment.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	again, err := env.enrollment.Enroll(user.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
	require.NotNil(t, again)
	assert.Equal(t, first.ID, again.ID, "the existing enrollment is returned")
}

func TestEnrollMissingCourse(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "student", model.RoleEmployee)

	_, err := env.enrollment.Enroll(user.ID, 12345)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestDropEnrollment(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "student", model.RoleEmployee)
	course := env.course(t, "Live", model.CoursePublished)

	_, err := env.enrollment.Enroll(user.ID, course.ID)
	require.NoError(t, err)
	require.NoError(t, env.enrollment.Drop(user.ID, course.ID))

	err = env.enrollment.Drop(user.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	es, err := env.enrollment.ListForUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, es)
}
