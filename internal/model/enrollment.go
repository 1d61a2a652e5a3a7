package model

import "time"

// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID      uint       `gorm:"index;not null" json:"userId"`
	User        *User      `json:"user,omitempty"`
	CourseID    uint       `gorm:"index;not null" json:"courseId"`
	Course      *Course    `json:"course,omitempty"`
	EnrolledAt  time.Time  `json:"enrolledAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Progress    int        `gorm:"default:0" json:"progress"` // 0-100, not constrained in DDL
}

func (Enrollment) TableName() string {
	return "enrollments"
}
