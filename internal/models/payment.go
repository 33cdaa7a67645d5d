package models

import (
	"github.com/shopspring/decimal"
)

// Payment records money received against a sale or an invoice.
type Payment struct {
	BaseModel
	CompanyID uint  `json:"company_id" gorm:"not null;index"`
	SaleID    *uint `json:"sale_id" gorm:"index"`
	InvoiceID *uint `json:"invoice_id" gorm:"index"`

	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null;check:amount > 0"`
	Method    string          `json:"method" gorm:"not null;size:50;default:'cash'"`
	Reference *string         `json:"reference" gorm:"size:120"`

	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Sale    *Sale    `json:"sale,omitempty" gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	Invoice *Invoice `json:"invoice,omitempty" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName table name
func (p *Payment) TableName() string {
	return "payments"
}

// Payment method constants
const (
	PaymentMethodCash         = "cash"
	PaymentMethodMobileMoney  = "mobile_money"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCard         = "card"
)
