package model

import "time"

// swagger:model Certificate
type Certificate struct {
	BaseModel
	UserID        uint      `gorm:"index;not null" json:"userId"`
	CourseID      uint      `gorm:"index;not null" json:"courseId"`
	CertificateID string    `gorm:"size:64;uniqueIndex;not null" json:"certificateId"`
	IssuedAt      time.Time `json:"issuedAt"`
	URL           string    `gorm:"size:255" json:"url,omitempty"`
}

func (Certificate) TableName() string {
	return "certificates"
}
