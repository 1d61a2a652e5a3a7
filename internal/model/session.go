package model

import (
	"time"

	"gorm.io/datatypes"
)

// Session is the persistent row behind the web session middleware, not
// domain data.
type Session struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	Data      datatypes.JSON `json:"data"`
	ExpiresAt time.Time      `gorm:"index" json:"expiresAt"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (Session) TableName() string {
	return "sessions"
}
