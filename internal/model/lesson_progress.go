package model

import (
	"time"

	"gorm.io/gorm"
)

type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// swagger:model LessonProgress
type LessonProgress struct {
	BaseModel
	UserID         uint           `gorm:"index;not null" json:"userId"`
	LessonID       uint           `gorm:"index;not null" json:"lessonId"`
	Status         ProgressStatus `gorm:"size:20;default:'not_started'" json:"status"`
	LastAccessedAt *time.Time     `json:"lastAccessedAt,omitempty"`
	CompletedAt    *time.Time     `json:"completedAt,omitempty"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

func (p *LessonProgress) BeforeSave(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = ProgressNotStarted
	}
	return validateEnum("status", string(p.Status),
		string(ProgressNotStarted), string(ProgressInProgress), string(ProgressCompleted))
}
