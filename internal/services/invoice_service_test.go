package services

import (
	"testing"

	"github.com/Pincessis17/MerchFlow/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoLines(t *testing.T) []InvoiceLineInput {
	t.Helper()
	return []InvoiceLineInput{
		{Description: "Consulting", Quantity: mustDecimal(t, "2"), UnitPrice: mustDecimal(t, "40.00")},
		{Description: "Materials", Quantity: mustDecimal(t, "1"), UnitPrice: mustDecimal(t, "20.00")},
	}
}

func TestInvoicePercentDiscountAndTax(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewInvoiceService()
	invoice, err := service.Create(company.ID, InvoiceInput{
		CustomerName:  "Jane Doe",
		TaxRate:       mustDecimal(t, "10"),
		DiscountType:  models.DiscountTypePercent,
		DiscountValue: mustDecimal(t, "10"),
		Lines:         twoLines(t),
	})
	require.NoError(t, err)

	// subtotal 100, 10% off = 90, 10% tax on 90 = 9, total 99
	assert.True(t, invoice.Subtotal.Equal(mustDecimal(t, "100.00")))
	assert.True(t, invoice.DiscountAmount.Equal(mustDecimal(t, "10.00")))
	assert.True(t, invoice.TaxAmount.Equal(mustDecimal(t, "9.00")))
	assert.True(t, invoice.TotalAmount.Equal(mustDecimal(t, "99.00")))
	assert.Equal(t, models.InvoiceStatusUnpaid, invoice.Status)
	require.Len(t, invoice.LineItems, 2)
}

func TestInvoiceFixedDiscountCappedAtSubtotal(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewInvoiceService()
	invoice, err := service.Create(company.ID, InvoiceInput{
		CustomerName:  "Jane Doe",
		TaxRate:       mustDecimal(t, "5"),
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: mustDecimal(t, "500.00"),
		Lines:         twoLines(t),
	})
	require.NoError(t, err)

	assert.True(t, invoice.DiscountAmount.Equal(mustDecimal(t, "100.00")))
	assert.True(t, invoice.TaxAmount.IsZero())
	assert.True(t, invoice.TotalAmount.IsZero())
}

func TestInvoiceNumbersAreSequentialPerCompany(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	other := createTestCompany(t, db, "Rival Pharmacy")

	service := NewInvoiceService()
	first, err := service.Create(company.ID, InvoiceInput{CustomerName: "A", Lines: twoLines(t)})
	require.NoError(t, err)
	second, err := service.Create(company.ID, InvoiceInput{CustomerName: "B", Lines: twoLines(t)})
	require.NoError(t, err)
	foreign, err := service.Create(other.ID, InvoiceInput{CustomerName: "C", Lines: twoLines(t)})
	require.NoError(t, err)

	assert.Equal(t, "INV-1", first.InvoiceNumber)
	assert.Equal(t, "INV-2", second.InvoiceNumber)
	assert.Equal(t, "INV-1", foreign.InvoiceNumber)
}

func TestInvoicePaymentLifecycle(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewInvoiceService()
	invoice, err := service.Create(company.ID, InvoiceInput{CustomerName: "Jane Doe", Lines: twoLines(t)})
	require.NoError(t, err)

	invoice, err = service.RecordPayment(company.ID, invoice.ID, mustDecimal(t, "30.00"), models.PaymentMethodCash, nil)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPartial, invoice.Status)
	assert.True(t, invoice.BalanceDue().Equal(mustDecimal(t, "70.00")))

	// overpayment is capped at the balance
	invoice, err = service.RecordPayment(company.ID, invoice.ID, mustDecimal(t, "500.00"), models.PaymentMethodCard, nil)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, invoice.Status)
	assert.True(t, invoice.AmountPaid.Equal(mustDecimal(t, "100.00")))
	require.NotNil(t, invoice.PaidAt)

	_, err = service.RecordPayment(company.ID, invoice.ID, decimal.NewFromInt(1), models.PaymentMethodCash, nil)
	assert.Error(t, err)
}

func TestInvoiceDraftMustBeIssuedFirst(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewInvoiceService()
	invoice, err := service.Create(company.ID, InvoiceInput{
		CustomerName: "Jane Doe",
		Draft:        true,
		Lines:        twoLines(t),
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusDraft, invoice.Status)

	_, err = service.RecordPayment(company.ID, invoice.ID, decimal.NewFromInt(10), models.PaymentMethodCash, nil)
	require.Error(t, err)

	invoice, err = service.Issue(company.ID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusUnpaid, invoice.Status)

	// issuing twice is rejected
	_, err = service.Issue(company.ID, invoice.ID)
	assert.Error(t, err)
}

func TestInvoiceVoidRules(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewInvoiceService()
	invoice, err := service.Create(company.ID, InvoiceInput{CustomerName: "Jane Doe", Lines: twoLines(t)})
	require.NoError(t, err)

	invoice, err = service.Void(company.ID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusVoid, invoice.Status)

	_, err = service.RecordPayment(company.ID, invoice.ID, decimal.NewFromInt(10), models.PaymentMethodCash, nil)
	assert.Error(t, err)
	_, err = service.Void(company.ID, invoice.ID)
	assert.Error(t, err)

	paid, err := service.Create(company.ID, InvoiceInput{CustomerName: "Jane Doe", Lines: twoLines(t)})
	require.NoError(t, err)
	_, err = service.RecordPayment(company.ID, paid.ID, mustDecimal(t, "100.00"), models.PaymentMethodCash, nil)
	require.NoError(t, err)
	_, err = service.Void(company.ID, paid.ID)
	assert.Error(t, err)
}

func TestInvoiceUpdateRules(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewInvoiceService()
	invoice, err := service.Create(company.ID, InvoiceInput{CustomerName: "Jane Doe", Lines: twoLines(t)})
	require.NoError(t, err)

	updated, err := service.Update(company.ID, invoice.ID, InvoiceInput{
		CustomerName: "Jane Doe",
		Lines: []InvoiceLineInput{
			{Description: "Consulting", Quantity: mustDecimal(t, "1"), UnitPrice: mustDecimal(t, "55.00")},
		},
	})
	require.NoError(t, err)
	assert.True(t, updated.TotalAmount.Equal(mustDecimal(t, "55.00")))
	require.Len(t, updated.LineItems, 1)
	assert.Equal(t, invoice.InvoiceNumber, updated.InvoiceNumber)

	_, err = service.RecordPayment(company.ID, invoice.ID, decimal.NewFromInt(5), models.PaymentMethodCash, nil)
	require.NoError(t, err)

	_, err = service.Update(company.ID, invoice.ID, InvoiceInput{CustomerName: "Jane Doe", Lines: twoLines(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payments")
}

func TestInvoiceCreateFromSale(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	product := createTestProduct(t, db, company.ID, "ASP-100", "Aspirin", 10, "1.00", "2.50")

	saleService := NewSaleService()
	sale, err := saleService.Create(company.ID, product.ID, 4)
	require.NoError(t, err)

	service := NewInvoiceService()
	invoice, err := service.CreateFromSale(company.ID, sale.ID, "Walk-in", nil)
	require.NoError(t, err)

	require.NotNil(t, invoice.SaleID)
	assert.Equal(t, sale.ID, *invoice.SaleID)
	assert.True(t, invoice.TotalAmount.Equal(mustDecimal(t, "10.00")))
	require.Len(t, invoice.LineItems, 1)
	assert.Equal(t, "Aspirin", invoice.LineItems[0].Description)

	_, err = service.CreateFromSale(company.ID, sale.ID, "Walk-in", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already has an invoice")
}
