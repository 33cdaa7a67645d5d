package services

import (
	"testing"

	"github.com/Pincessis17/MerchFlow/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleCreateDecrementsStock(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	product := createTestProduct(t, db, company.ID, "ASP-100", "Aspirin", 10, "1.00", "2.50")

	service := NewSaleService()
	sale, err := service.Create(company.ID, product.ID, 4)
	require.NoError(t, err)

	assert.Equal(t, 4, sale.Quantity)
	assert.True(t, sale.UnitPrice.Equal(mustDecimal(t, "2.50")))
	assert.True(t, sale.BuyingPrice.Equal(mustDecimal(t, "1.00")))
	assert.True(t, sale.LineTotal.Equal(mustDecimal(t, "10.00")))
	assert.True(t, sale.LineProfit.Equal(mustDecimal(t, "6.00")))
	assert.Equal(t, models.PaymentStatusUnpaid, sale.PaymentStatus)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 6, reloaded.Quantity)
}

func TestSaleCreateInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	product := createTestProduct(t, db, company.ID, "ASP-100", "Aspirin", 3, "1.00", "2.50")

	service := NewSaleService()
	_, err := service.Create(company.ID, product.ID, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only 3 in stock")

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 3, reloaded.Quantity)
}

func TestSaleCreateRejectsOtherCompanyProduct(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	other := createTestCompany(t, db, "Rival Pharmacy")
	product := createTestProduct(t, db, other.ID, "ASP-100", "Aspirin", 10, "1.00", "2.50")

	service := NewSaleService()
	_, err := service.Create(company.ID, product.ID, 1)
	assert.Error(t, err)
}

func TestSalePaymentCappedAndStatusProgresses(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	product := createTestProduct(t, db, company.ID, "ASP-100", "Aspirin", 10, "1.00", "2.50")

	service := NewSaleService()
	sale, err := service.Create(company.ID, product.ID, 4) // total 10.00
	require.NoError(t, err)

	sale, err = service.RecordPayment(company.ID, sale.ID, mustDecimal(t, "4.00"), models.PaymentMethodCash, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPartial, sale.PaymentStatus)
	assert.True(t, sale.BalanceDue().Equal(mustDecimal(t, "6.00")))

	// overpayment is capped at the outstanding balance
	sale, err = service.RecordPayment(company.ID, sale.ID, mustDecimal(t, "100.00"), models.PaymentMethodCard, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, sale.PaymentStatus)
	require.Len(t, sale.Payments, 2)
	assert.True(t, sale.Payments[1].Amount.Equal(mustDecimal(t, "6.00")))

	_, err = service.RecordPayment(company.ID, sale.ID, mustDecimal(t, "1.00"), models.PaymentMethodCash, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fully paid")
}

func TestSaleDeleteRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	product := createTestProduct(t, db, company.ID, "ASP-100", "Aspirin", 10, "1.00", "2.50")

	service := NewSaleService()
	sale, err := service.Create(company.ID, product.ID, 4)
	require.NoError(t, err)

	require.NoError(t, service.Delete(company.ID, sale.ID))

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 10, reloaded.Quantity)
}

func TestSaleDeleteBlockedByPayments(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	product := createTestProduct(t, db, company.ID, "ASP-100", "Aspirin", 10, "1.00", "2.50")

	service := NewSaleService()
	sale, err := service.Create(company.ID, product.ID, 2)
	require.NoError(t, err)

	_, err = service.RecordPayment(company.ID, sale.ID, decimal.NewFromInt(1), models.PaymentMethodCash, nil)
	require.NoError(t, err)

	err = service.Delete(company.ID, sale.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payments")
}
