package model

// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID uint   `gorm:"index;not null" json:"moduleId"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	VideoURL string `gorm:"size:255" json:"videoUrl"`
	Duration int    `gorm:"default:0" json:"duration"` // seconds
	Position int    `gorm:"default:0" json:"position"`

	Progress []LessonProgress `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Lesson) TableName() string {
	return "lessons"
}
