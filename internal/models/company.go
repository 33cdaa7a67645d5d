package models

import (
	"time"
)

// Company is the tenant root. Every business row carries its ID and all
// uniqueness constraints are scoped to it.
type Company struct {
	BaseModel
	Name    string  `json:"name" gorm:"not null;size:120"`
	Email   *string `json:"email" gorm:"size:120"`
	Phone   *string `json:"phone" gorm:"size:60"`
	Address *string `json:"address" gorm:"size:200"`

	Status      string     `json:"status" gorm:"default:'trial';size:20;index"`
	IsSuspended bool       `json:"is_suspended" gorm:"default:false;index"`
	SuspendedAt *time.Time `json:"suspended_at"`
	TrialEndsAt *time.Time `json:"trial_ends_at"`

	// invoice branding and numbering
	BrandColor          *string `json:"brand_color" gorm:"size:20;default:'#5b8cff'"`
	InvoiceFooter       *string `json:"invoice_footer" gorm:"size:500"`
	PaymentInstructions *string `json:"payment_instructions" gorm:"size:500"`
	InvoiceNumberPrefix string  `json:"invoice_number_prefix" gorm:"size:20;default:'INV'"`
	InvoiceNextNumber   int     `json:"invoice_next_number" gorm:"not null;default:1;check:invoice_next_number >= 1"`

	UserCount int64 `json:"user_count,omitempty" gorm:"-"`
}

// TableName table name
func (c *Company) TableName() string {
	return "companies"
}

// Company subscription status constants
const (
	CompanyStatusTrial     = "trial"
	CompanyStatusActive    = "active"
	CompanyStatusCancelled = "cancelled"
)
