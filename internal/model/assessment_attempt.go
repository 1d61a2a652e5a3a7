package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
	AttemptFailed     AttemptStatus = "failed"
	AttemptPassed     AttemptStatus = "passed"
)

// swagger:model AssessmentAttempt
type AssessmentAttempt struct {
	BaseModel
	UserID       uint           `gorm:"index;not null" json:"userId"`
	User         *User          `json:"user,omitempty"`
	AssessmentID uint           `gorm:"index;not null" json:"assessmentId"`
	StartedAt    time.Time      `json:"startedAt"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
	Score        *int           `json:"score,omitempty"`
	Answers      datatypes.JSON `json:"answers,omitempty"`
	Status       AttemptStatus  `gorm:"size:20;default:'in_progress'" json:"status"`
}

func (AssessmentAttempt) TableName() string {
	return "assessment_attempts"
}

func (a *AssessmentAttempt) BeforeSave(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = AttemptInProgress
	}
	return validateEnum("status", string(a.Status),
		string(AttemptInProgress), string(AttemptCompleted),
		string(AttemptFailed), string(AttemptPassed))
}

// QuestionAnswer is one entry of an attempt's answers blob.
type QuestionAnswer struct {
	QuestionID uint   `json:"questionId"`
	Answer     string `json:"answer"`
}
