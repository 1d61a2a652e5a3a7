package model

import "gorm.io/gorm"

type UserRole string

const (
	RoleEmployee    UserRole = "employee"
	RoleContributor UserRole = "contributor"
	RoleAdmin       UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Username       string   `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email          string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password       string   `gorm:"size:255;not null" json:"-"`
	Name           string   `gorm:"size:100" json:"name"`
	ProfilePicture string   `gorm:"size:255" json:"profilePicture"`
	Role           UserRole `gorm:"size:20;default:'employee'" json:"role"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleEmployee
	}
	return validateEnum("role", string(u.Role),
		string(RoleEmployee), string(RoleContributor), string(RoleAdmin))
}
