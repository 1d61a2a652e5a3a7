package repository

import (
	"lms_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMemberIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewGroupRepository(db)
	user := createUser(t, db, "gina")
	group := &model.Group{Name: "QA"}
	require.NoError(t, repo.Create(group))

	require.NoError(t, repo.AddMember(group.ID, user.ID))
	require.NoError(t, repo.AddMember(group.ID, user.ID))

	var count int64
	require.NoError(t, db.Model(&model.GroupMember{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// Membership is read from both join tables; rows that only exist in the
// legacy group_users table still count.
func TestGroupIDsForUserMergesLegacyRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewGroupRepository(db)
	user := createUser(t, db, "hank")

	g1 := &model.Group{Name: "One"}
	g2 := &model.Group{Name: "Two"}
	g3 := &model.Group{Name: "Both"}
	require.NoError(t, repo.Create(g1))
	require.NoError(t, repo.Create(g2))
	require.NoError(t, repo.Create(g3))

	require.NoError(t, repo.AddMember(g1.ID, user.ID))
	require.NoError(t, db.Create(&model.GroupUser{GroupID: g2.ID, UserID: user.ID}).Error)
	require.NoError(t, repo.AddMember(g3.ID, user.ID))
	require.NoError(t, db.Create(&model.GroupUser{GroupID: g3.ID, UserID: user.ID}).Error)

	ids, err := repo.GroupIDsForUser(user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{g1.ID, g2.ID, g3.ID}, ids)
}

func TestAttachCourseIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewGroupRepository(db)
	course := createCourse(t, db, "C", model.CoursePublished)
	group := &model.Group{Name: "Eng"}
	require.NoError(t, repo.Create(group))

	require.NoError(t, repo.AttachCourse(group.ID, course.ID))
	require.NoError(t, repo.AttachCourse(group.ID, course.ID))

	ids, err := repo.CourseIDsForGroups([]uint{group.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{course.ID}, ids)

	require.NoError(t, repo.DetachCourse(group.ID, course.ID))
	ids, err = repo.CourseIDsForGroups([]uint{group.ID})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGrantsForMatchesUserAndGroups(t *testing.T) {
	db := newTestDB(t)
	groupRepo := NewGroupRepository(db)
	accessRepo := NewAccessRepository(db)
	user := createUser(t, db, "iris")
	other := createUser(t, db, "jack")
	course := createCourse(t, db, "Secret", model.CourseDraft)

	group := &model.Group{Name: "Readers"}
	require.NoError(t, groupRepo.Create(group))
	require.NoError(t, groupRepo.AddMember(group.ID, user.ID))

	require.NoError(t, accessRepo.Create(&model.CourseAccess{
		CourseID: course.ID, UserID: &user.ID, Level: model.AccessView,
	}))
	require.NoError(t, accessRepo.Create(&model.CourseAccess{
		CourseID: course.ID, GroupID: &group.ID, Level: model.AccessEdit,
	}))
	require.NoError(t, accessRepo.Create(&model.CourseAccess{
		CourseID: course.ID, UserID: &other.ID, Level: model.AccessEdit,
	}))

	grants, err := accessRepo.GrantsFor(user.ID, []uint{group.ID})
	require.NoError(t, err)
	assert.Len(t, grants, 2)
}
