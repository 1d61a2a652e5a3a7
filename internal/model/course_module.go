package model

// swagger:model Module
type Module struct {
	BaseModel
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Position int    `gorm:"default:0" json:"position"`

	Lessons     []Lesson     `gorm:"constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
	Assessments []Assessment `gorm:"constraint:OnDelete:CASCADE" json:"assessments,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}
