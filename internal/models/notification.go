package models

import (
	"gorm.io/datatypes"
)

// Notification categories
const (
	NotificationCategoryBilling = "billing"
	NotificationCategorySystem  = "system"
	NotificationCategoryTenant  = "tenant"
)

// PlatformNotification an event surfaced on the platform console
type PlatformNotification struct {
	BaseModel
	Category  string         `json:"category" gorm:"not null;size:30;index"`
	EventType string         `json:"event_type" gorm:"not null;size:60"`
	Title     string         `json:"title" gorm:"not null;size:200"`
	Message   string         `json:"message" gorm:"not null;size:500"`
	CompanyID *uint          `json:"company_id" gorm:"index"`
	Payload   datatypes.JSON `json:"payload"`
	IsRead    bool           `json:"is_read" gorm:"not null;default:false;index"`
}

// TableName table name
func (n *PlatformNotification) TableName() string {
	return "platform_notifications"
}

// TenantNotification an event surfaced inside a tenant workspace
type TenantNotification struct {
	BaseModel
	CompanyID uint           `json:"company_id" gorm:"not null;index"`
	Category  string         `json:"category" gorm:"not null;size:30"`
	EventType string         `json:"event_type" gorm:"not null;size:60"`
	Title     string         `json:"title" gorm:"not null;size:200"`
	Message   string         `json:"message" gorm:"not null;size:500"`
	Payload   datatypes.JSON `json:"payload"`
	IsRead    bool           `json:"is_read" gorm:"not null;default:false;index"`

	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

// TableName table name
func (n *TenantNotification) TableName() string {
	return "tenant_notifications"
}
