package services

import (
	"testing"
	"time"

	"github.com/Pincessis17/MerchFlow/internal/models"

	"gorm.io/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPlan(t *testing.T, db *gorm.DB, code string, monthly, yearly string) *models.SubscriptionPlan {
	t.Helper()
	plan := &models.SubscriptionPlan{
		Code:         code,
		Name:         code,
		MonthlyPrice: mustDecimal(t, monthly),
		YearlyPrice:  mustDecimal(t, yearly),
		IsActive:     true,
	}
	require.NoError(t, db.Create(plan).Error)
	return plan
}

func createTestSubscription(t *testing.T, db *gorm.DB, companyID, planID uint, cycle, amount, status string) *models.TenantSubscription {
	t.Helper()
	sub := &models.TenantSubscription{
		CompanyID:    companyID,
		PlanID:       planID,
		BillingCycle: cycle,
		Amount:       mustDecimal(t, amount),
		Status:       status,
		StartedAt:    time.Now().AddDate(0, -2, 0),
	}
	if status == models.SubscriptionStatusCancelled {
		now := time.Now().AddDate(0, 0, -10)
		sub.CancelledAt = &now
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func TestPlatformOverviewMetrics(t *testing.T) {
	db := setupTestDB(t)
	plan := createTestPlan(t, db, "basic", "15.00", "150.00")

	monthlyTenant := createTestCompany(t, db, "Monthly Shop")
	require.NoError(t, db.Model(monthlyTenant).Update("status", models.CompanyStatusActive).Error)
	yearlyTenant := createTestCompany(t, db, "Yearly Shop")
	require.NoError(t, db.Model(yearlyTenant).Update("status", models.CompanyStatusActive).Error)
	churned := createTestCompany(t, db, "Gone Shop")
	require.NoError(t, db.Model(churned).Update("status", models.CompanyStatusCancelled).Error)

	createTestSubscription(t, db, monthlyTenant.ID, plan.ID, models.BillingCycleMonthly, "15.00", models.SubscriptionStatusActive)
	createTestSubscription(t, db, yearlyTenant.ID, plan.ID, models.BillingCycleYearly, "120.00", models.SubscriptionStatusActive)
	createTestSubscription(t, db, churned.ID, plan.ID, models.BillingCycleMonthly, "15.00", models.SubscriptionStatusCancelled)

	service := NewPlatformService()
	overview, err := service.Overview()
	require.NoError(t, err)

	assert.Equal(t, int64(3), overview.TotalTenants)
	assert.Equal(t, int64(2), overview.ActiveTenants)
	assert.Equal(t, int64(1), overview.CancelledTenants)

	// 15.00 monthly plus 120.00/12 yearly
	assert.True(t, overview.MRR.Equal(mustDecimal(t, "25.00")), "MRR %s", overview.MRR)
	assert.True(t, overview.ARPU.Equal(mustDecimal(t, "12.50")), "ARPU %s", overview.ARPU)
	// one cancellation against three subscribers at the start of the month
	assert.True(t, overview.ChurnRate.Equal(mustDecimal(t, "33.33")), "churn %s", overview.ChurnRate)
}

func TestOverviewCountsExpiringTrials(t *testing.T) {
	db := setupTestDB(t)

	soon := createTestCompany(t, db, "Trial Ending")
	endsSoon := time.Now().AddDate(0, 0, 3)
	require.NoError(t, db.Model(soon).Update("trial_ends_at", endsSoon).Error)

	later := createTestCompany(t, db, "Trial Fresh")
	endsLater := time.Now().AddDate(0, 0, 20)
	require.NoError(t, db.Model(later).Update("trial_ends_at", endsLater).Error)

	service := NewPlatformService()
	overview, err := service.Overview()
	require.NoError(t, err)
	assert.Equal(t, int64(1), overview.ExpiringTrials)
}

func TestMarkPaymentFailedMovesSubscriptionPastDue(t *testing.T) {
	db := setupTestDB(t)
	plan := createTestPlan(t, db, "basic", "15.00", "150.00")
	company := createTestCompany(t, db, "Corner Pharmacy")
	sub := createTestSubscription(t, db, company.ID, plan.ID, models.BillingCycleMonthly, "15.00", models.SubscriptionStatusActive)

	service := NewPlatformService()
	updated, err := service.MarkPaymentFailed(company.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, updated.ID)
	assert.Equal(t, models.SubscriptionStatusPastDue, updated.Status)

	var count int64
	db.Model(&models.PlatformNotification{}).
		Where("event_type = ?", "billing.payment_failed").Count(&count)
	assert.Equal(t, int64(1), count)

	// a second failure finds no active subscription to flag
	_, err = service.MarkPaymentFailed(company.ID)
	assert.Error(t, err)

	// cancelling still sweeps up the past due subscription
	_, err = service.Cancel(company.ID)
	require.NoError(t, err)
	var reloaded models.TenantSubscription
	require.NoError(t, db.First(&reloaded, sub.ID).Error)
	assert.Equal(t, models.SubscriptionStatusCancelled, reloaded.Status)
}

func TestSuspendUnsuspendTransitions(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewPlatformService()
	suspended, err := service.Suspend(company.ID)
	require.NoError(t, err)
	assert.True(t, suspended.IsSuspended)
	require.NotNil(t, suspended.SuspendedAt)

	_, err = service.Suspend(company.ID)
	assert.Error(t, err)

	restored, err := service.Unsuspend(company.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsSuspended)
	assert.Nil(t, restored.SuspendedAt)

	_, err = service.Unsuspend(company.ID)
	assert.Error(t, err)
}

func TestCancelEndsActiveSubscription(t *testing.T) {
	db := setupTestDB(t)
	plan := createTestPlan(t, db, "basic", "15.00", "150.00")
	company := createTestCompany(t, db, "Corner Pharmacy")
	sub := createTestSubscription(t, db, company.ID, plan.ID, models.BillingCycleMonthly, "15.00", models.SubscriptionStatusActive)

	service := NewPlatformService()
	cancelled, err := service.Cancel(company.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CompanyStatusCancelled, cancelled.Status)

	var reloaded models.TenantSubscription
	require.NoError(t, db.First(&reloaded, sub.ID).Error)
	assert.Equal(t, models.SubscriptionStatusCancelled, reloaded.Status)
	assert.NotNil(t, reloaded.CancelledAt)

	_, err = service.Cancel(company.ID)
	assert.Error(t, err)

	activated, err := service.Activate(company.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CompanyStatusActive, activated.Status)
}

func TestChangeSubscriptionReplacesPrevious(t *testing.T) {
	db := setupTestDB(t)
	basic := createTestPlan(t, db, "basic", "15.00", "150.00")
	pro := createTestPlan(t, db, "pro", "35.00", "350.00")
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewPlatformService()
	first, err := service.ChangeSubscription(company.ID, basic.ID, models.BillingCycleMonthly)
	require.NoError(t, err)
	assert.True(t, first.Amount.Equal(mustDecimal(t, "15.00")))

	second, err := service.ChangeSubscription(company.ID, pro.ID, models.BillingCycleYearly)
	require.NoError(t, err)
	assert.True(t, second.Amount.Equal(mustDecimal(t, "350.00")))
	require.NotNil(t, second.RenewsAt)

	var old models.TenantSubscription
	require.NoError(t, db.First(&old, first.ID).Error)
	assert.Equal(t, models.SubscriptionStatusCancelled, old.Status)

	var reloaded models.Company
	require.NoError(t, db.First(&reloaded, company.ID).Error)
	assert.Equal(t, models.CompanyStatusActive, reloaded.Status)

	_, err = service.ChangeSubscription(company.ID, pro.ID, "weekly")
	assert.Error(t, err)
}

func TestTogglePlanFlipsAvailability(t *testing.T) {
	db := setupTestDB(t)
	plan := createTestPlan(t, db, "basic", "15.00", "150.00")

	service := NewPlatformService()
	toggled, err := service.TogglePlan(plan.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	// disabled plans cannot take new subscribers
	company := createTestCompany(t, db, "Corner Pharmacy")
	_, err = service.ChangeSubscription(company.ID, plan.ID, models.BillingCycleMonthly)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")

	restored, err := service.TogglePlan(plan.ID)
	require.NoError(t, err)
	assert.True(t, restored.IsActive)

	_, err = service.TogglePlan(9999)
	assert.Error(t, err)
}

func TestCreatePlanRejectsDuplicateCode(t *testing.T) {
	db := setupTestDB(t)
	createTestPlan(t, db, "basic", "15.00", "150.00")

	service := NewPlatformService()
	_, err := service.CreatePlan(PlanInput{Code: "Basic", Name: "Basic"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestSendRenewalRemindersPicksUpcomingWindow(t *testing.T) {
	db := setupTestDB(t)
	plan := createTestPlan(t, db, "basic", "15.00", "150.00")

	soonTenant := createTestCompany(t, db, "Renewing Soon")
	laterTenant := createTestCompany(t, db, "Renewing Later")

	soon := createTestSubscription(t, db, soonTenant.ID, plan.ID, models.BillingCycleMonthly, "15.00", models.SubscriptionStatusActive)
	renewsSoon := time.Now().AddDate(0, 0, 3)
	require.NoError(t, db.Model(soon).Update("renews_at", renewsSoon).Error)

	later := createTestSubscription(t, db, laterTenant.ID, plan.ID, models.BillingCycleMonthly, "15.00", models.SubscriptionStatusActive)
	renewsLater := time.Now().AddDate(0, 0, 30)
	require.NoError(t, db.Model(later).Update("renews_at", renewsLater).Error)

	service := NewPlatformService()
	sent, err := service.SendRenewalReminders()
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	var count int64
	db.Model(&models.PlatformNotification{}).
		Where("event_type = ?", "billing.renewal_reminder").Count(&count)
	assert.Equal(t, int64(1), count)
}
