package models

import (
	"github.com/shopspring/decimal"
)

// Sale one POS line sale. Prices are snapshotted at sale time so later
// product edits never rewrite history.
type Sale struct {
	BaseModel
	CompanyID uint `json:"company_id" gorm:"not null;index"`
	ProductID uint `json:"product_id" gorm:"not null;index"`

	Quantity  int             `json:"quantity" gorm:"not null;check:quantity > 0"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null;check:unit_price >= 0"`
	LineTotal decimal.Decimal `json:"line_total" gorm:"type:decimal(12,2);not null;check:line_total >= 0"`

	BuyingPrice decimal.Decimal `json:"buying_price" gorm:"type:decimal(12,4);not null;default:0"`
	LineProfit  decimal.Decimal `json:"line_profit" gorm:"type:decimal(12,2);not null;default:0"`

	PaymentStatus string `json:"payment_status" gorm:"not null;size:20;default:'unpaid';index"`

	Company  *Company  `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Product  *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:SaleID"`
}

// TableName table name
func (s *Sale) TableName() string {
	return "sales"
}

// Payment status constants, shared with invoices
const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// TotalPaid sums recorded payments.
func (s *Sale) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// BalanceDue remaining amount owed.
func (s *Sale) BalanceDue() decimal.Decimal {
	return s.LineTotal.Sub(s.TotalPaid())
}

// UpdatePaymentStatus recomputes payment_status from loaded payments.
func (s *Sale) UpdatePaymentStatus() {
	paid := s.TotalPaid()
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		s.PaymentStatus = PaymentStatusUnpaid
	case paid.LessThan(s.LineTotal):
		s.PaymentStatus = PaymentStatusPartial
	default:
		s.PaymentStatus = PaymentStatusPaid
	}
}
