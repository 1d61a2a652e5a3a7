package model

import "gorm.io/datatypes"

// ActivityLog is an append-only audit trail. Rows are never updated or
// deleted by the application.
// swagger:model ActivityLog
type ActivityLog struct {
	BaseModel
	UserID       uint           `gorm:"index;not null" json:"userId"`
	Action       string         `gorm:"size:100;not null" json:"action"`
	ResourceType string         `gorm:"size:50" json:"resourceType,omitempty"`
	ResourceID   *uint          `json:"resourceId,omitempty"`
	Metadata     datatypes.JSON `json:"metadata,omitempty"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
