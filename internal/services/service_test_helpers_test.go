package services

import (
	"testing"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database, migrates every model
// and installs it as the shared connection.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.FeatureAccess{},
		&models.Product{},
		&models.Sale{},
		&models.Payment{},
		&models.Supplier{},
		&models.Purchase{},
		&models.Expense{},
		&models.Customer{},
		&models.Invoice{},
		&models.InvoiceLineItem{},
		&models.SubscriptionPlan{},
		&models.TenantSubscription{},
		&models.PlatformNotification{},
		&models.TenantNotification{},
		&models.PlatformAuditLog{},
		&models.LoginAttempt{},
	))

	database.SetDB(db)
	return db
}

// createTestCompany seeds a workspace
func createTestCompany(t *testing.T, db *gorm.DB, name string) *models.Company {
	t.Helper()

	brand := "#5b8cff"
	company := &models.Company{
		Name:                name,
		Status:              models.CompanyStatusTrial,
		BrandColor:          &brand,
		InvoiceNumberPrefix: "INV",
		InvoiceNextNumber:   1,
	}
	require.NoError(t, db.Create(company).Error)
	return company
}

// createTestProduct seeds a product with stock
func createTestProduct(t *testing.T, db *gorm.DB, companyID uint, code, name string, qty int, buying, price string) *models.Product {
	t.Helper()

	product := &models.Product{
		CompanyID:   companyID,
		Code:        code,
		Name:        name,
		Quantity:    qty,
		BuyingPrice: mustDecimal(t, buying),
		Price:       mustDecimal(t, price),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
