package model

import "gorm.io/gorm"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
	CourseArchived  CourseStatus = "archived"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title        string       `gorm:"size:255;not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	Category     string       `gorm:"size:100" json:"category"`
	Thumbnail    string       `gorm:"size:255" json:"thumbnail"`
	Duration     int          `gorm:"default:0" json:"duration"` // minutes
	Difficulty   Difficulty   `gorm:"size:20;default:'beginner'" json:"difficulty"`
	InstructorID *uint        `gorm:"index" json:"instructorId,omitempty"`
	Instructor   *User        `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Status       CourseStatus `gorm:"size:20;default:'draft'" json:"status"`

	Modules      []Module       `gorm:"constraint:OnDelete:CASCADE" json:"modules,omitempty"`
	Enrollments  []Enrollment   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Access       []CourseAccess `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Certificates []Certificate  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	GroupCourses []GroupCourse  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) BeforeSave(tx *gorm.DB) error {
	if c.Difficulty == "" {
		c.Difficulty = DifficultyBeginner
	}
	if c.Status == "" {
		c.Status = CourseDraft
	}
	if err := validateEnum("difficulty", string(c.Difficulty),
		string(DifficultyBeginner), string(DifficultyIntermediate), string(DifficultyAdvanced)); err != nil {
		return err
	}
	return validateEnum("status", string(c.Status),
		string(CourseDraft), string(CoursePublished), string(CourseArchived))
}
