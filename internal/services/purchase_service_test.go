package services

import (
	"testing"

	"github.com/Pincessis17/MerchFlow/internal/models"

	"gorm.io/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSupplier(t *testing.T, db *gorm.DB, companyID uint, name string) *models.Supplier {
	t.Helper()
	supplier := &models.Supplier{CompanyID: companyID, Name: name}
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func TestPurchaseMovingAverageCost(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	supplier := createTestSupplier(t, db, company.ID, "MediWholesale")
	product := createTestProduct(t, db, company.ID, "ASP-100", "Aspirin", 10, "1.00", "2.50")

	service := NewPurchaseService()
	purchase, err := service.Create(company.ID, supplier.ID, product.ID, 10, mustDecimal(t, "2.00"))
	require.NoError(t, err)

	// (10*1.00 + 10*2.00) / 20 = 1.50
	assert.True(t, purchase.LineTotal.Equal(mustDecimal(t, "20.00")))

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 20, reloaded.Quantity)
	assert.True(t, reloaded.BuyingPrice.Equal(mustDecimal(t, "1.50")),
		"got %s", reloaded.BuyingPrice)
}

func TestPurchaseAverageRoundsToFourPlaces(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	supplier := createTestSupplier(t, db, company.ID, "MediWholesale")
	product := createTestProduct(t, db, company.ID, "ASP-100", "Aspirin", 1, "1.00", "2.50")

	service := NewPurchaseService()
	// (1*1.00 + 2*2.00) / 3 = 1.6667 after rounding
	_, err := service.Create(company.ID, supplier.ID, product.ID, 2, mustDecimal(t, "2.00"))
	require.NoError(t, err)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.True(t, reloaded.BuyingPrice.Equal(mustDecimal(t, "1.6667")),
		"got %s", reloaded.BuyingPrice)
}

func TestPurchaseFirstIntakeSetsCost(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	supplier := createTestSupplier(t, db, company.ID, "MediWholesale")
	product := createTestProduct(t, db, company.ID, "NEW-1", "New Item", 0, "0", "5.00")

	service := NewPurchaseService()
	_, err := service.Create(company.ID, supplier.ID, product.ID, 8, mustDecimal(t, "3.25"))
	require.NoError(t, err)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 8, reloaded.Quantity)
	assert.True(t, reloaded.BuyingPrice.Equal(mustDecimal(t, "3.25")))
}

func TestPurchaseRejectsForeignSupplier(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	other := createTestCompany(t, db, "Rival Pharmacy")
	supplier := createTestSupplier(t, db, other.ID, "MediWholesale")
	product := createTestProduct(t, db, company.ID, "ASP-100", "Aspirin", 10, "1.00", "2.50")

	service := NewPurchaseService()
	_, err := service.Create(company.ID, supplier.ID, product.ID, 1, mustDecimal(t, "1.00"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "supplier not found")
}

func TestPurchaseRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	supplier := createTestSupplier(t, db, company.ID, "MediWholesale")
	product := createTestProduct(t, db, company.ID, "ASP-100", "Aspirin", 10, "1.00", "2.50")

	service := NewPurchaseService()
	_, err := service.Create(company.ID, supplier.ID, product.ID, 0, mustDecimal(t, "1.00"))
	assert.Error(t, err)

	_, err = service.Create(company.ID, supplier.ID, product.ID, 1, mustDecimal(t, "-1.00"))
	assert.Error(t, err)
}
