package database

import (
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/pkg/logger"
)

// Migrate runs schema migration for every model
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := DB.AutoMigrate(
		// tenancy
		&models.Company{},
		&models.User{},
		&models.FeatureAccess{},
		// inventory and sales
		&models.Product{},
		&models.Sale{},
		&models.Payment{},
		&models.Supplier{},
		&models.Purchase{},
		&models.Expense{},
		// invoicing
		&models.Customer{},
		&models.Invoice{},
		&models.InvoiceLineItem{},
		// platform billing
		&models.SubscriptionPlan{},
		&models.TenantSubscription{},
		// platform operations
		&models.PlatformNotification{},
		&models.TenantNotification{},
		&models.PlatformAuditLog{},
		&models.LoginAttempt{},
	)

	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")

	return nil
}
