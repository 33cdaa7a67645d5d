package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense an operating cost outside of stock purchases
type Expense struct {
	BaseModel
	CompanyID   uint            `json:"company_id" gorm:"not null;index"`
	Description string          `json:"description" gorm:"not null;size:200"`
	Category    *string         `json:"category" gorm:"size:60"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null;check:amount > 0"`
	IncurredAt  time.Time       `json:"incurred_at" gorm:"not null;index"`

	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

// TableName table name
func (e *Expense) TableName() string {
	return "expenses"
}
