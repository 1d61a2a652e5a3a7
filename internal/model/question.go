package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionShortAnswer    QuestionType = "short_answer"
)

// swagger:model Question
type Question struct {
	BaseModel
	AssessmentID  uint           `gorm:"index;not null" json:"assessmentId"`
	Text          string         `gorm:"type:text;not null" json:"text"`
	QuestionType  QuestionType   `gorm:"size:20;not null" json:"questionType"`
	Options       datatypes.JSON `json:"options,omitempty"`
	CorrectAnswer string         `gorm:"type:text" json:"-"`
	Explanation   string         `gorm:"type:text" json:"explanation"`
	Points        int            `gorm:"default:1" json:"points"`
	Position      int            `gorm:"default:0" json:"position"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) BeforeSave(tx *gorm.DB) error {
	return validateEnum("questionType", string(q.QuestionType),
		string(QuestionMultipleChoice), string(QuestionTrueFalse), string(QuestionShortAnswer))
}
