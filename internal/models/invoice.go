package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses
const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusUnpaid  = "unpaid"
	InvoiceStatusPartial = "partial"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusVoid    = "void"
)

// Discount types
const (
	DiscountTypePercent = "percent"
	DiscountTypeFixed   = "fixed"
)

// Invoice a customer invoice, numbered per company from the company's
// prefix and counter. Amounts are snapshots computed at save time.
type Invoice struct {
	BaseModel
	CompanyID     uint    `json:"company_id" gorm:"not null;uniqueIndex:uq_company_invoice_number"`
	CustomerID    *uint   `json:"customer_id"`
	SaleID        *uint   `json:"sale_id"`
	InvoiceNumber string  `json:"invoice_number" gorm:"not null;size:40;uniqueIndex:uq_company_invoice_number"`
	Status        string  `json:"status" gorm:"not null;default:'draft';size:20;index"`
	Currency      string  `json:"currency" gorm:"not null;default:'USD';size:10"`
	CustomerName  string  `json:"customer_name" gorm:"not null;size:120"`
	CustomerEmail *string `json:"customer_email" gorm:"size:120"`

	Subtotal       decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	TaxRate        decimal.Decimal `json:"tax_rate" gorm:"type:decimal(6,3);not null;default:0"`
	TaxAmount      decimal.Decimal `json:"tax_amount" gorm:"type:decimal(12,2);not null;default:0"`
	DiscountType   string          `json:"discount_type" gorm:"not null;default:'percent';size:10"`
	DiscountValue  decimal.Decimal `json:"discount_value" gorm:"type:decimal(12,2);not null;default:0"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount    decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	AmountPaid     decimal.Decimal `json:"amount_paid" gorm:"type:decimal(12,2);not null;default:0"`

	PaymentMethod *string    `json:"payment_method" gorm:"size:30"`
	IssueDate     time.Time  `json:"issue_date" gorm:"not null"`
	DueDate       *time.Time `json:"due_date"`
	PaidAt        *time.Time `json:"paid_at"`
	Notes         *string    `json:"notes" gorm:"size:500"`

	Company   *Company          `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Customer  *Customer         `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	LineItems []InvoiceLineItem `json:"line_items,omitempty" gorm:"foreignKey:InvoiceID"`
	Payments  []Payment         `json:"payments,omitempty" gorm:"foreignKey:InvoiceID"`
}

// TableName table name
func (i *Invoice) TableName() string {
	return "invoices"
}

// BalanceDue outstanding amount
func (i *Invoice) BalanceDue() decimal.Decimal {
	return i.TotalAmount.Sub(i.AmountPaid)
}

// RefreshStatus recomputes status from amount paid. Void and draft
// invoices are left alone.
func (i *Invoice) RefreshStatus() {
	if i.Status == InvoiceStatusVoid || i.Status == InvoiceStatusDraft {
		return
	}
	switch {
	case i.AmountPaid.GreaterThanOrEqual(i.TotalAmount) && i.TotalAmount.GreaterThan(decimal.Zero):
		i.Status = InvoiceStatusPaid
	case i.AmountPaid.GreaterThan(decimal.Zero):
		i.Status = InvoiceStatusPartial
	default:
		i.Status = InvoiceStatusUnpaid
	}
}

// InvoiceLineItem one billed row on an invoice
type InvoiceLineItem struct {
	BaseModel
	InvoiceID   uint            `json:"invoice_id" gorm:"not null;index"`
	Description string          `json:"description" gorm:"not null;size:200"`
	Quantity    decimal.Decimal `json:"quantity" gorm:"type:decimal(12,2);not null;check:quantity > 0"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null;check:unit_price >= 0"`
	LineTotal   decimal.Decimal `json:"line_total" gorm:"type:decimal(12,2);not null"`
	SortOrder   int             `json:"sort_order" gorm:"not null;default:0"`
}

// TableName table name
func (l *InvoiceLineItem) TableName() string {
	return "invoice_line_items"
}
