package model

// Comment threads are a self-referencing tree. Depth is unbounded and
// nothing beyond referential integrity prevents cycles.
// swagger:model Comment
type Comment struct {
	BaseModel
	LessonID uint   `gorm:"index;not null" json:"lessonId"`
	UserID   uint   `gorm:"index;not null" json:"userId"`
	User     *User  `json:"user,omitempty"`
	Text     string `gorm:"type:text;not null" json:"text"`
	ParentID *uint  `gorm:"index" json:"parentId,omitempty"`

	Replies []Comment `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
