package model

import "gorm.io/gorm"

type AccessLevel string

const (
	AccessView AccessLevel = "view"
	AccessEdit AccessLevel = "edit"
)

// CourseAccess grants view or edit on a course to a user or a group.
// Both targets are nullable and the DDL does not force exactly one to be
// set; the access service rejects malformed grants before they get here.
// swagger:model CourseAccess
type CourseAccess struct {
	BaseModel
	CourseID uint        `gorm:"index;not null" json:"courseId"`
	UserID   *uint       `gorm:"index" json:"userId,omitempty"`
	GroupID  *uint       `gorm:"index" json:"groupId,omitempty"`
	Level    AccessLevel `gorm:"size:10;default:'view'" json:"level"`
}

func (CourseAccess) TableName() string {
	return "course_access"
}

func (a *CourseAccess) BeforeSave(tx *gorm.DB) error {
	if a.Level == "" {
		a.Level = AccessView
	}
	return validateEnum("level", string(a.Level), string(AccessView), string(AccessEdit))
}
