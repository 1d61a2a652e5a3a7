package model

// swagger:model Group
type Group struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Members      []GroupMember  `gorm:"constraint:OnDelete:CASCADE" json:"members,omitempty"`
	GroupUsers   []GroupUser    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Access       []CourseAccess `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	GroupCourses []GroupCourse  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupMember is the authoritative join between users and groups.
type GroupMember struct {
	BaseModel
	GroupID uint  `gorm:"index;not null" json:"groupId"`
	UserID  uint  `gorm:"index;not null" json:"userId"`
	User    *User `json:"user,omitempty"`
}

func (GroupMember) TableName() string {
	return "group_members"
}

// GroupUser duplicates GroupMember. The table shipped alongside it and
// still holds rows, so it stays migrated and readable; new memberships
// are written to group_members only.
type GroupUser struct {
	BaseModel
	GroupID uint `gorm:"index;not null" json:"groupId"`
	UserID  uint `gorm:"index;not null" json:"userId"`
}

func (GroupUser) TableName() string {
	return "group_users"
}

// GroupCourse links a group to a course.
type GroupCourse struct {
	BaseModel
	GroupID  uint `gorm:"index;not null" json:"groupId"`
	CourseID uint `gorm:"index;not null" json:"courseId"`
}

func (GroupCourse) TableName() string {
	return "group_courses"
}
