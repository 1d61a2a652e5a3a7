package database

import (
	"fmt"
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release mode migrates only when asked to via --migrate
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
		seedCategories(db)
	}

	return db, nil
}

// Migrate creates or updates every table of the schema. Ordering matters:
// parents before children so the cascade constraints can be created.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Course{},
		&model.Module{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.Assessment{},
		&model.Question{},
		&model.AssessmentAttempt{},
		&model.Group{},
		&model.GroupMember{},
		&model.GroupUser{},
		&model.GroupCourse{},
		&model.CourseAccess{},
		&model.LessonProgress{},
		&model.ActivityLog{},
		&model.Certificate{},
		&model.Session{},
		&model.Comment{},
	)
}

func seedCategories(db *gorm.DB) {
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []string{
		"Onboarding",
		"Compliance",
		"Engineering",
		"Product",
		"Leadership",
	}
	for _, name := range defaults {
		db.Create(&model.Category{Name: name})
	}
}
