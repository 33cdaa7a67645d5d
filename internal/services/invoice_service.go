package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService() *InvoiceService {
	return &InvoiceService{
		db: database.GetDB(),
	}
}

// InvoiceLineInput one requested invoice line
type InvoiceLineInput struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// InvoiceInput create and update fields
type InvoiceInput struct {
	CustomerID    *uint              `json:"customer_id"`
	CustomerName  string             `json:"customer_name"`
	CustomerEmail *string            `json:"customer_email"`
	Currency      string             `json:"currency"`
	TaxRate       decimal.Decimal    `json:"tax_rate"`
	DiscountType  string             `json:"discount_type" binding:"omitempty,discount_type"`
	DiscountValue decimal.Decimal    `json:"discount_value"`
	IssueDate     *time.Time         `json:"issue_date"`
	DueDate       *time.Time         `json:"due_date"`
	Notes         *string            `json:"notes"`
	Draft         bool               `json:"draft"`
	Lines         []InvoiceLineInput `json:"lines" binding:"required"`
}

// Create builds an invoice, computes its totals and assigns the next
// number from the workspace counter under a row lock.
func (s *InvoiceService) Create(companyID uint, input InvoiceInput) (*models.Invoice, error) {
	if len(input.Lines) == 0 {
		return nil, fmt.Errorf("an invoice needs at least one line")
	}

	customerName := strings.TrimSpace(input.CustomerName)

	var invoice *models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if input.CustomerID != nil {
			var customer models.Customer
			if err := tx.Where("company_id = ?", companyID).
				First(&customer, *input.CustomerID).Error; err != nil {
				return fmt.Errorf("customer not found")
			}
			if customerName == "" {
				customerName = customer.Name
			}
			if input.CustomerEmail == nil {
				input.CustomerEmail = customer.Email
			}
		}
		if customerName == "" {
			return fmt.Errorf("customer name is required")
		}

		lines, subtotal, err := buildLines(input.Lines)
		if err != nil {
			return err
		}

		amounts, err := computeTotals(subtotal, input.TaxRate, input.DiscountType, input.DiscountValue)
		if err != nil {
			return err
		}

		number, err := nextInvoiceNumber(tx, companyID)
		if err != nil {
			return err
		}

		status := models.InvoiceStatusUnpaid
		if input.Draft {
			status = models.InvoiceStatusDraft
		}
		currency := strings.ToUpper(strings.TrimSpace(input.Currency))
		if currency == "" {
			currency = "USD"
		}
		issueDate := time.Now()
		if input.IssueDate != nil {
			issueDate = *input.IssueDate
		}

		invoice = &models.Invoice{
			CompanyID:      companyID,
			CustomerID:     input.CustomerID,
			InvoiceNumber:  number,
			Status:         status,
			Currency:       currency,
			CustomerName:   customerName,
			CustomerEmail:  input.CustomerEmail,
			Subtotal:       subtotal,
			TaxRate:        amounts.taxRate,
			TaxAmount:      amounts.tax,
			DiscountType:   amounts.discountType,
			DiscountValue:  amounts.discountValue,
			DiscountAmount: amounts.discount,
			TotalAmount:    amounts.total,
			AmountPaid:     decimal.Zero,
			IssueDate:      issueDate,
			DueDate:        input.DueDate,
			Notes:          input.Notes,
			LineItems:      lines,
		}
		return tx.Create(invoice).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(companyID, invoice.ID)
}

// CreateFromSale writes a one-line invoice for a recorded sale
func (s *InvoiceService) CreateFromSale(companyID, saleID uint, customerName string, customerEmail *string) (*models.Invoice, error) {
	var sale models.Sale
	if err := s.db.Preload("Product").
		Where("company_id = ?", companyID).First(&sale, saleID).Error; err != nil {
		return nil, fmt.Errorf("sale not found")
	}

	var existing int64
	s.db.Model(&models.Invoice{}).Where("sale_id = ?", saleID).Count(&existing)
	if existing > 0 {
		return nil, fmt.Errorf("sale already has an invoice")
	}

	description := "Sale"
	if sale.Product != nil {
		description = sale.Product.Name
	}

	invoice, err := s.Create(companyID, InvoiceInput{
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		Lines: []InvoiceLineInput{{
			Description: description,
			Quantity:    decimal.NewFromInt(int64(sale.Quantity)),
			UnitPrice:   sale.UnitPrice,
		}},
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Invoice{}).Where("id = ?", invoice.ID).
		Update("sale_id", saleID).Error; err != nil {
		return nil, err
	}
	invoice.SaleID = &saleID
	return invoice, nil
}

// GetByID loads an invoice with lines, payments and company
func (s *InvoiceService) GetByID(companyID, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Preload("LineItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order, id")
	}).Preload("Payments").Preload("Company").
		Where("company_id = ?", companyID).First(&invoice, id).Error
	if err != nil {
		return nil, fmt.Errorf("invoice not found")
	}
	return &invoice, nil
}

// List pages invoices with optional status filter and number or
// customer search
func (s *InvoiceService) List(companyID uint, params pagination.PageParams, status, search string) ([]models.Invoice, int64, error) {
	query := s.db.Model(&models.Invoice{}).Where("company_id = ?", companyID)

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(invoice_number) LIKE ? OR LOWER(customer_name) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []models.Invoice
	err := query.Order("id DESC").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&invoices).Error
	return invoices, total, err
}

// Update recomputes a draft or untouched unpaid invoice from new input
func (s *InvoiceService) Update(companyID, id uint, input InvoiceInput) (*models.Invoice, error) {
	if len(input.Lines) == 0 {
		return nil, fmt.Errorf("an invoice needs at least one line")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ?", companyID).First(&invoice, id).Error; err != nil {
			return fmt.Errorf("invoice not found")
		}

		if invoice.Status != models.InvoiceStatusDraft && invoice.Status != models.InvoiceStatusUnpaid {
			return fmt.Errorf("only draft or unpaid invoices can be edited")
		}
		if invoice.AmountPaid.GreaterThan(decimal.Zero) {
			return fmt.Errorf("invoice has payments and cannot be edited")
		}

		lines, subtotal, err := buildLines(input.Lines)
		if err != nil {
			return err
		}
		amounts, err := computeTotals(subtotal, input.TaxRate, input.DiscountType, input.DiscountValue)
		if err != nil {
			return err
		}

		if name := strings.TrimSpace(input.CustomerName); name != "" {
			invoice.CustomerName = name
		}
		if input.CustomerEmail != nil {
			invoice.CustomerEmail = input.CustomerEmail
		}
		if input.Notes != nil {
			invoice.Notes = input.Notes
		}
		if input.IssueDate != nil {
			invoice.IssueDate = *input.IssueDate
		}
		invoice.DueDate = input.DueDate
		invoice.Subtotal = subtotal
		invoice.TaxRate = amounts.taxRate
		invoice.TaxAmount = amounts.tax
		invoice.DiscountType = amounts.discountType
		invoice.DiscountValue = amounts.discountValue
		invoice.DiscountAmount = amounts.discount
		invoice.TotalAmount = amounts.total

		if err := tx.Where("invoice_id = ?", invoice.ID).
			Delete(&models.InvoiceLineItem{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].InvoiceID = invoice.ID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}

		return tx.Save(&invoice).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(companyID, id)
}

// Issue moves a draft invoice to unpaid
func (s *InvoiceService) Issue(companyID, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.Where("company_id = ?", companyID).First(&invoice, id).Error; err != nil {
		return nil, fmt.Errorf("invoice not found")
	}
	if invoice.Status != models.InvoiceStatusDraft {
		return nil, fmt.Errorf("only draft invoices can be issued")
	}

	invoice.Status = models.InvoiceStatusUnpaid
	if err := s.db.Save(&invoice).Error; err != nil {
		return nil, err
	}
	return s.GetByID(companyID, id)
}

// RecordPayment takes a payment against an invoice, capped at the
// balance due, and refreshes the status
func (s *InvoiceService) RecordPayment(companyID, invoiceID uint, amount decimal.Decimal, method string, reference *string) (*models.Invoice, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("payment amount must be positive")
	}
	if method == "" {
		method = models.PaymentMethodCash
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ?", companyID).First(&invoice, invoiceID).Error; err != nil {
			return fmt.Errorf("invoice not found")
		}

		if invoice.Status == models.InvoiceStatusVoid {
			return fmt.Errorf("invoice is void")
		}
		if invoice.Status == models.InvoiceStatusDraft {
			return fmt.Errorf("issue the invoice before recording payments")
		}

		balance := invoice.BalanceDue()
		if !balance.GreaterThan(decimal.Zero) {
			return fmt.Errorf("invoice is already fully paid")
		}
		if amount.GreaterThan(balance) {
			amount = balance
		}

		payment := models.Payment{
			CompanyID: companyID,
			InvoiceID: &invoice.ID,
			Amount:    amount.Round(2),
			Method:    method,
			Reference: reference,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		invoice.AmountPaid = invoice.AmountPaid.Add(payment.Amount)
		invoice.PaymentMethod = &payment.Method
		invoice.RefreshStatus()
		if invoice.Status == models.InvoiceStatusPaid {
			now := time.Now()
			invoice.PaidAt = &now
		}
		return tx.Save(&invoice).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(companyID, invoiceID)
}

// Void cancels an invoice that has not been paid in full
func (s *InvoiceService) Void(companyID, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.Where("company_id = ?", companyID).First(&invoice, id).Error; err != nil {
		return nil, fmt.Errorf("invoice not found")
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return nil, fmt.Errorf("paid invoices cannot be voided")
	}
	if invoice.Status == models.InvoiceStatusVoid {
		return nil, fmt.Errorf("invoice is already void")
	}

	invoice.Status = models.InvoiceStatusVoid
	if err := s.db.Save(&invoice).Error; err != nil {
		return nil, err
	}
	return s.GetByID(companyID, id)
}

// nextInvoiceNumber reads and bumps the workspace counter while
// holding the company row lock, so two invoices never share a number
func nextInvoiceNumber(tx *gorm.DB, companyID uint) (string, error) {
	var company models.Company
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&company, companyID).Error; err != nil {
		return "", fmt.Errorf("workspace not found")
	}

	number := fmt.Sprintf("%s-%d", company.InvoiceNumberPrefix, company.InvoiceNextNumber)
	if err := tx.Model(&models.Company{}).Where("id = ?", companyID).
		Update("invoice_next_number", gorm.Expr("invoice_next_number + 1")).Error; err != nil {
		return "", err
	}
	return number, nil
}

func buildLines(inputs []InvoiceLineInput) ([]models.InvoiceLineItem, decimal.Decimal, error) {
	lines := make([]models.InvoiceLineItem, 0, len(inputs))
	subtotal := decimal.Zero

	for i, in := range inputs {
		description := strings.TrimSpace(in.Description)
		if description == "" {
			return nil, decimal.Zero, fmt.Errorf("line %d: description is required", i+1)
		}
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, decimal.Zero, fmt.Errorf("line %d: quantity must be positive", i+1)
		}
		if in.UnitPrice.IsNegative() {
			return nil, decimal.Zero, fmt.Errorf("line %d: unit price cannot be negative", i+1)
		}

		lineTotal := in.Quantity.Mul(in.UnitPrice).Round(2)
		subtotal = subtotal.Add(lineTotal)
		lines = append(lines, models.InvoiceLineItem{
			Description: description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice.Round(2),
			LineTotal:   lineTotal,
			SortOrder:   i,
		})
	}

	return lines, subtotal, nil
}

type invoiceAmounts struct {
	taxRate       decimal.Decimal
	tax           decimal.Decimal
	discountType  string
	discountValue decimal.Decimal
	discount      decimal.Decimal
	total         decimal.Decimal
}

// computeTotals applies the discount to the subtotal first, then taxes
// the discounted base. Fixed discounts are capped at the subtotal so
// totals never go negative.
func computeTotals(subtotal, taxRate decimal.Decimal, discountType string, discountValue decimal.Decimal) (invoiceAmounts, error) {
	amounts := invoiceAmounts{
		taxRate:       taxRate,
		discountType:  discountType,
		discountValue: discountValue,
	}

	if amounts.discountType == "" {
		amounts.discountType = models.DiscountTypePercent
	}
	if amounts.discountType != models.DiscountTypePercent && amounts.discountType != models.DiscountTypeFixed {
		return amounts, fmt.Errorf("discount type must be percent or fixed")
	}
	if discountValue.IsNegative() {
		return amounts, fmt.Errorf("discount cannot be negative")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(100)) {
		return amounts, fmt.Errorf("tax rate must be between 0 and 100")
	}

	hundred := decimal.NewFromInt(100)

	switch amounts.discountType {
	case models.DiscountTypePercent:
		if discountValue.GreaterThan(hundred) {
			return amounts, fmt.Errorf("percent discount cannot exceed 100")
		}
		amounts.discount = subtotal.Mul(discountValue).Div(hundred).Round(2)
	case models.DiscountTypeFixed:
		amounts.discount = discountValue.Round(2)
		if amounts.discount.GreaterThan(subtotal) {
			amounts.discount = subtotal
		}
	}

	base := subtotal.Sub(amounts.discount)
	amounts.tax = base.Mul(taxRate).Div(hundred).Round(2)
	amounts.total = base.Add(amounts.tax).Round(2)

	return amounts, nil
}
