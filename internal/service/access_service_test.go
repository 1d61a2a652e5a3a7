package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrantRequiresExactlyOneTarget(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "kim", model.RoleEmployee)
	course := env.course(t, "Secret", model.CourseDraft)

	group, err := env.group.CreateGroup(GroupRequest{Name: "G"})
	require.NoError(t, err)

	_, err = env.access.Grant(GrantRequest{CourseID: course.ID})
	assert.ErrorIs(t, err, util.ErrAccessTargetMissing)

	_, err = env.access.Grant(GrantRequest{CourseID: course.ID, UserID: &user.ID, GroupID: &group.ID})
	assert.ErrorIs(t, err, util.ErrAccessTargetBoth)

	grant, err := env.access.Grant(GrantRequest{CourseID: course.ID, UserID: &user.ID})
	require.NoError(t, err)
	assert.Equal(t, model.AccessView, grant.Level, "level defaults to view")
}

func TestCanViewResolution(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "admin", model.RoleAdmin)
	viewer := env.user(t, "viewer", model.RoleEmployee)
	outsider := env.user(t, "outsider", model.RoleEmployee)
	instructor := env.user(t, "teach", model.RoleContributor)

	published := env.course(t, "Open", model.CoursePublished)
	draft := env.course(t, "Draft", model.CourseDraft)
	draft.InstructorID = &instructor.ID
	require.NoError(t, env.courses.Update(draft))

	// everyone sees published courses
	ok, err := env.access.CanView(outsider, published)
	require.NoError(t, err)
	assert.True(t, ok)

	// drafts: admin and instructor yes, others no
	ok, err = env.access.CanView(admin, draft)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.access.CanView(instructor, draft)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.access.CanView(outsider, draft)
	require.NoError(t, err)
	assert.False(t, ok)

	// a direct grant opens the draft
	_, err = env.access.Grant(GrantRequest{CourseID: draft.ID, UserID: &viewer.ID})
	require.NoError(t, err)
	ok, err = env.access.CanView(viewer, draft)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanViewThroughGroup(t *testing.T) {
	env := newTestEnv(t)
	member := env.user(t, "member", model.RoleEmployee)
	draft := env.course(t, "Draft", model.CourseDraft)

	group, err := env.group.CreateGroup(GroupRequest{Name: "Cohort"})
	require.NoError(t, err)
	require.NoError(t, env.group.AddMember(group.ID, member.ID))

	ok, err := env.access.CanView(member, draft)
	require.NoError(t, err)
	assert.False(t, ok)

	// linking the course to the group is enough for view
	require.NoError(t, env.group.AttachCourse(group.ID, draft.ID))
	ok, err = env.access.CanView(member, draft)
	require.NoError(t, err)
	assert.True(t, ok)

	// but not for edit
	ok, err = env.access.CanEdit(member, draft)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanEditResolution(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "admin", model.RoleAdmin)
	editor := env.user(t, "editor", model.RoleEmployee)
	viewer := env.user(t, "viewer", model.RoleEmployee)
	course := env.course(t, "C", model.CoursePublished)

	ok, err := env.access.CanEdit(admin, course)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = env.access.Grant(GrantRequest{CourseID: course.ID, UserID: &editor.ID, Level: "edit"})
	require.NoError(t, err)
	_, err = env.access.Grant(GrantRequest{CourseID: course.ID, UserID: &viewer.ID, Level: "view"})
	require.NoError(t, err)

	ok, err = env.access.CanEdit(editor, course)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.access.CanEdit(viewer, course)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanEditThroughGroupGrant(t *testing.T) {
	env := newTestEnv(t)
	member := env.user(t, "member", model.RoleEmployee)
	course := env.course(t, "C", model.CourseDraft)

	group, err := env.group.CreateGroup(GroupRequest{Name: "Editors"})
	require.NoError(t, err)
	require.NoError(t, env.group.AddMember(group.ID, member.ID))

	_, err = env.access.Grant(GrantRequest{CourseID: course.ID, GroupID: &group.ID, Level: "edit"})
	require.NoError(t, err)

	ok, err := env.access.CanEdit(member, course)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAccessibleCourseIDs(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "user", model.RoleEmployee)
	granted := env.course(t, "Granted", model.CourseDraft)
	linked := env.course(t, "Linked", model.CourseDraft)
	both := env.course(t, "Both", model.CourseDraft)
	env.course(t, "Unrelated", model.CourseDraft)

	group, err := env.group.CreateGroup(GroupRequest{Name: "G"})
	require.NoError(t, err)
	require.NoError(t, env.group.AddMember(group.ID, user.ID))

	_, err = env.access.Grant(GrantRequest{CourseID: granted.ID, UserID: &user.ID})
	require.NoError(t, err)
	_, err = env.access.Grant(GrantRequest{CourseID: both.ID, GroupID: &group.ID})
	require.NoError(t, err)
	require.NoError(t, env.group.AttachCourse(group.ID, linked.ID))
	require.NoError(t, env.group.AttachCourse(group.ID, both.ID))

	ids, err := env.access.AccessibleCourseIDs(user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{granted.ID, linked.ID, both.ID}, ids)
}
