package repository

import (
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/pkg/database"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a named in-memory sqlite database with foreign keys
// enforced, so cascade and constraint behavior can be exercised.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("repo_test_%d", atomic.AddInt64(&testDBSeq, 1))
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Name:     username,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createCourse(t *testing.T, db *gorm.DB, title string, status model.CourseStatus) *model.Course {
	t.Helper()
	c := &model.Course{Title: title, Status: status}
	require.NoError(t, db.Create(c).Error)
	return c
}

func createModule(t *testing.T, db *gorm.DB, courseID uint, title string, position int) *model.Module {
	t.Helper()
	m := &model.Module{CourseID: courseID, Title: title, Position: position}
	require.NoError(t, db.Create(m).Error)
	return m
}

func createLesson(t *testing.T, db *gorm.DB, moduleID uint, title string, position int) *model.Lesson {
	t.Helper()
	l := &model.Lesson{ModuleID: moduleID, Title: title, Position: position}
	require.NoError(t, db.Create(l).Error)
	return l
}
