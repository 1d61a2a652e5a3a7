package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCommentAndReply(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "poster", model.RoleEmployee)
	_, lessons := env.courseWithLessons(t, "Course", 1)

	parent, err := env.comment.Post(user.ID, lessons[0], CommentRequest{Text: "first"})
	require.NoError(t, err)

	reply, err := env.comment.Post(user.ID, lessons[0], CommentRequest{Text: "re", ParentID: &parent.ID})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, *reply.ParentID)

	replies, err := env.comment.ListReplies(parent.ID)
	require.NoError(t, err)
	assert.Len(t, replies, 1)
}

func TestReplyToMissingParentRejected(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "poster", model.RoleEmployee)
	_, lessons := env.courseWithLessons(t, "Course", 1)

	missing := uint(4242)
	_, err := env.comment.Post(user.ID, lessons[0], CommentRequest{Text: "re", ParentID: &missing})
	assert.ErrorIs(t, err, util.ErrParentCommentGone)
}

func TestReplyMustStayOnSameLesson(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "poster", model.RoleEmployee)
	_, lessons := env.courseWithLessons(t, "Course", 2)

	parent, err := env.comment.Post(user.ID, lessons[0], CommentRequest{Text: "first"})
	require.NoError(t, err)

	_, err = env.comment.Post(user.ID, lessons[1], CommentRequest{Text: "re", ParentID: &parent.ID})
	assert.ErrorIs(t, err, util.ErrParentCommentGone)
}

func TestDeleteCommentPermissions(t *testing.T) {
	env := newTestEnv(t)
	author := env.user(t, "author", model.RoleEmployee)
	other := env.user(t, "other", model.RoleEmployee)
	admin := env.user(t, "admin", model.RoleAdmin)
	_, lessons := env.courseWithLessons(t, "Course", 1)

	c1, err := env.comment.Post(author.ID, lessons[0], CommentRequest{Text: "one"})
	require.NoError(t, err)
	c2, err := env.comment.Post(author.ID, lessons[0], CommentRequest{Text: "two"})
	require.NoError(t, err)

	err = env.comment.Delete(other, c1.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	require.NoError(t, env.comment.Delete(author, c1.ID))
	require.NoError(t, env.comment.Delete(admin, c2.ID))

	list, _, err := env.comment.ListForLesson(lessons[0], 1, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}
