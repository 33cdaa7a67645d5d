package main

import (
	"fmt"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/pkg/logger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// seedData initializes the default subscription plans
func seedData() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	db := database.GetDB()

	if err := createDefaultPlans(db); err != nil {
		return fmt.Errorf("failed to create default plans: %v", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

// createDefaultPlans seeds the starter price points once
func createDefaultPlans(db *gorm.DB) error {
	var count int64
	db.Model(&models.SubscriptionPlan{}).Count(&count)
	if count > 0 {
		logger.GetLogger().Info("Subscription plans already exist, skipping seed")
		return nil
	}

	basicDesc := "Inventory, sales and invoicing for a single shop"
	proDesc := "Everything in Basic plus suppliers, purchases and financial reports"

	plans := []models.SubscriptionPlan{
		{
			Code:         "basic",
			Name:         "Basic",
			Description:  &basicDesc,
			MonthlyPrice: decimal.NewFromInt(15),
			YearlyPrice:  decimal.NewFromInt(150),
			IsActive:     true,
		},
		{
			Code:         "pro",
			Name:         "Pro",
			Description:  &proDesc,
			MonthlyPrice: decimal.NewFromInt(35),
			YearlyPrice:  decimal.NewFromInt(350),
			IsActive:     true,
		},
	}

	return db.Create(&plans).Error
}
