package controller

import (
	"encoding/json"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCourseController(t *testing.T) (*CourseController, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)

	courseSvc := service.NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewModuleRepository(db),
		repository.NewLessonRepository(db),
		nil,
	)
	accessSvc := service.NewAccessService(
		repository.NewAccessRepository(db),
		repository.NewGroupRepository(db),
		repository.NewCourseRepository(db),
	)
	activitySvc := service.NewActivityService(repository.NewActivityRepository(db))

	return NewCourseController(courseSvc, accessSvc, activitySvc), db
}

func listCourses(t *testing.T, c *CourseController, claims *util.Claims, query string) []model.Course {
	t.Helper()

	router := newTestRouter()
	router.GET("/courses", withClaims(claims), c.ListCourses)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/courses"+query, nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data struct {
			List []model.Course `json:"list"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Data.List
}

func TestListCoursesDefaultsToPublished(t *testing.T) {
	c, db := newCourseController(t)
	seedCourse(t, db, "Live", model.CoursePublished)
	seedCourse(t, db, "WIP", model.CourseDraft)

	courses := listCourses(t, c, nil, "")
	require.Len(t, courses, 1)
	assert.Equal(t, "Live", courses[0].Title)
}

func TestListCoursesAdminSeesDrafts(t *testing.T) {
	c, db := newCourseController(t)
	seedCourse(t, db, "Live", model.CoursePublished)
	seedCourse(t, db, "WIP", model.CourseDraft)

	// the status filter only opens up for admin tokens
	drafts := listCourses(t, c, adminClaims(), "?status=draft")
	require.Len(t, drafts, 1)
	assert.Equal(t, "WIP", drafts[0].Title)

	all := listCourses(t, c, adminClaims(), "")
	assert.Len(t, all, 2)
}

func TestListCoursesStatusQueryIgnoredForLearners(t *testing.T) {
	c, db := newCourseController(t)
	seedCourse(t, db, "WIP", model.CourseDraft)

	learner := &util.Claims{UserID: 2, Role: model.RoleEmployee, Username: "emp"}
	courses := listCourses(t, c, learner, "?status=draft")
	assert.Empty(t, courses)
}

func seedCourse(t *testing.T, db *gorm.DB, title string, status model.CourseStatus) *model.Course {
	t.Helper()
	course := &model.Course{Title: title, Status: status}
	require.NoError(t, db.Create(course).Error)
	return course
}
