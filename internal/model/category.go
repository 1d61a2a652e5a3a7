package model

// Category is a standalone lookup table. Course.Category stays a free
// string, so nothing references this by foreign key.
// swagger:model Category
type Category struct {
	BaseModel
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}
