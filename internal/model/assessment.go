package model

// swagger:model Assessment
type Assessment struct {
	BaseModel
	ModuleID     *uint  `gorm:"index" json:"moduleId,omitempty"`
	Title        string `gorm:"size:255;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	TimeLimit    int    `gorm:"default:0" json:"timeLimit"` // minutes, 0 means unlimited
	PassingScore *int   `json:"passingScore,omitempty"`

	Questions []Question          `gorm:"constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Attempts  []AssessmentAttempt `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Assessment) TableName() string {
	return "assessments"
}
