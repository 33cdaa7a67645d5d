package models

import (
	"gorm.io/datatypes"
)

// PlatformAuditLog a record of a platform owner action
type PlatformAuditLog struct {
	BaseModel
	ActorEmail string         `json:"actor_email" gorm:"not null;size:120;index"`
	Action     string         `json:"action" gorm:"not null;size:60;index"`
	TargetType *string        `json:"target_type" gorm:"size:40"`
	TargetID   *uint          `json:"target_id"`
	Detail     *string        `json:"detail" gorm:"size:500"`
	Metadata   datatypes.JSON `json:"metadata"`
	IPAddress  *string        `json:"ip_address" gorm:"size:45"`
}

// TableName table name
func (l *PlatformAuditLog) TableName() string {
	return "platform_audit_logs"
}
