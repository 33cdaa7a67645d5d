package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/pkg/analytics"
	"github.com/Pincessis17/MerchFlow/pkg/config"
	"github.com/Pincessis17/MerchFlow/pkg/logger"
	"github.com/Pincessis17/MerchFlow/pkg/mailer"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PlatformService struct {
	db              *gorm.DB
	mailer          *mailer.Mailer
	analyticsClient *analytics.Client
	notifications   *NotificationService
}

func NewPlatformService() *PlatformService {
	return &PlatformService{
		db:              database.GetDB(),
		mailer:          mailer.NewMailer(config.GetConfig()),
		analyticsClient: analytics.NewClient(config.GetConfig()),
		notifications:   NewNotificationService(),
	}
}

// PlatformOverview the console home screen numbers
type PlatformOverview struct {
	TotalTenants     int64           `json:"total_tenants"`
	TrialTenants     int64           `json:"trial_tenants"`
	ActiveTenants    int64           `json:"active_tenants"`
	CancelledTenants int64           `json:"cancelled_tenants"`
	SuspendedTenants int64           `json:"suspended_tenants"`
	TotalUsers       int64           `json:"total_users"`
	NewTenants30d    int64           `json:"new_tenants_30d"`
	ExpiringTrials   int64           `json:"expiring_trials"`
	MRR              decimal.Decimal `json:"mrr"`
	ARPU             decimal.Decimal `json:"arpu"`
	ChurnRate        decimal.Decimal `json:"churn_rate"`
}

// Overview assembles platform-wide metrics. MRR sums the monthly value
// of active subscriptions, ARPU divides MRR across paying tenants, and
// churn compares last month's cancellations against the tenants that
// started the month subscribed.
func (s *PlatformService) Overview() (*PlatformOverview, error) {
	overview := &PlatformOverview{
		MRR:       decimal.Zero,
		ARPU:      decimal.Zero,
		ChurnRate: decimal.Zero,
	}

	counts := []struct {
		status string
		dest   *int64
	}{
		{models.CompanyStatusTrial, &overview.TrialTenants},
		{models.CompanyStatusActive, &overview.ActiveTenants},
		{models.CompanyStatusCancelled, &overview.CancelledTenants},
	}
	for _, c := range counts {
		if err := s.db.Model(&models.Company{}).
			Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	if err := s.db.Model(&models.Company{}).Count(&overview.TotalTenants).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Company{}).
		Where("is_suspended = ?", true).Count(&overview.SuspendedTenants).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Count(&overview.TotalUsers).Error; err != nil {
		return nil, err
	}

	monthAgo := time.Now().AddDate(0, -1, 0)
	if err := s.db.Model(&models.Company{}).
		Where("created_at >= ?", monthAgo).Count(&overview.NewTenants30d).Error; err != nil {
		return nil, err
	}

	trialCutoff := time.Now().AddDate(0, 0, 7)
	if err := s.db.Model(&models.Company{}).
		Where("status = ? AND trial_ends_at IS NOT NULL AND trial_ends_at <= ?",
			models.CompanyStatusTrial, trialCutoff).
		Count(&overview.ExpiringTrials).Error; err != nil {
		return nil, err
	}

	var subs []models.TenantSubscription
	if err := s.db.Where("status = ?", models.SubscriptionStatusActive).Find(&subs).Error; err != nil {
		return nil, err
	}
	for _, sub := range subs {
		overview.MRR = overview.MRR.Add(sub.MonthlyValue())
	}
	if len(subs) > 0 {
		overview.ARPU = overview.MRR.Div(decimal.NewFromInt(int64(len(subs)))).Round(2)
	}

	var cancelled30d int64
	if err := s.db.Model(&models.TenantSubscription{}).
		Where("status = ? AND cancelled_at >= ?", models.SubscriptionStatusCancelled, monthAgo).
		Count(&cancelled30d).Error; err != nil {
		return nil, err
	}
	base := int64(len(subs)) + cancelled30d
	if base > 0 {
		overview.ChurnRate = decimal.NewFromInt(cancelled30d).
			Div(decimal.NewFromInt(base)).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return overview, nil
}

// ListTenants pages companies with their user counts
func (s *PlatformService) ListTenants(params pagination.PageParams, search, status string) ([]models.Company, int64, error) {
	query := s.db.Model(&models.Company{})

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []models.Company
	err := query.Order("id DESC").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&companies).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range companies {
		var count int64
		s.db.Model(&models.User{}).Where("company_id = ?", companies[i].ID).Count(&count)
		companies[i].UserCount = count
	}

	return companies, total, nil
}

// TenantDetail a company with its users and current subscription
type TenantDetail struct {
	Company      *models.Company            `json:"company"`
	Users        []models.User              `json:"users"`
	Subscription *models.TenantSubscription `json:"subscription"`
}

// GetTenant loads one company for the console detail view
func (s *PlatformService) GetTenant(companyID uint) (*TenantDetail, error) {
	var company models.Company
	if err := s.db.First(&company, companyID).Error; err != nil {
		return nil, fmt.Errorf("tenant not found")
	}

	detail := &TenantDetail{Company: &company}

	if err := s.db.Where("company_id = ?", companyID).Order("id").Find(&detail.Users).Error; err != nil {
		return nil, err
	}

	var sub models.TenantSubscription
	err := s.db.Preload("Plan").
		Where("company_id = ? AND status = ?", companyID, models.SubscriptionStatusActive).
		Order("id DESC").First(&sub).Error
	if err == nil {
		detail.Subscription = &sub
	}

	return detail, nil
}

// Suspend blocks a tenant's access without touching its data
func (s *PlatformService) Suspend(companyID uint) (*models.Company, error) {
	var company models.Company
	if err := s.db.First(&company, companyID).Error; err != nil {
		return nil, fmt.Errorf("tenant not found")
	}
	if company.IsSuspended {
		return nil, fmt.Errorf("tenant is already suspended")
	}

	now := time.Now()
	company.IsSuspended = true
	company.SuspendedAt = &now
	if err := s.db.Save(&company).Error; err != nil {
		return nil, err
	}

	s.notifyTenantEvent(&company, "tenant.suspended", "Workspace suspended",
		fmt.Sprintf("%s was suspended", company.Name))
	return &company, nil
}

// Unsuspend restores access for a suspended tenant
func (s *PlatformService) Unsuspend(companyID uint) (*models.Company, error) {
	var company models.Company
	if err := s.db.First(&company, companyID).Error; err != nil {
		return nil, fmt.Errorf("tenant not found")
	}
	if !company.IsSuspended {
		return nil, fmt.Errorf("tenant is not suspended")
	}

	company.IsSuspended = false
	company.SuspendedAt = nil
	if err := s.db.Save(&company).Error; err != nil {
		return nil, err
	}

	s.notifyTenantEvent(&company, "tenant.unsuspended", "Workspace restored",
		fmt.Sprintf("%s was unsuspended", company.Name))
	return &company, nil
}

// Cancel ends a tenant's subscription and marks the workspace
// cancelled
func (s *PlatformService) Cancel(companyID uint) (*models.Company, error) {
	var company models.Company
	if err := s.db.First(&company, companyID).Error; err != nil {
		return nil, fmt.Errorf("tenant not found")
	}
	if company.Status == models.CompanyStatusCancelled {
		return nil, fmt.Errorf("tenant is already cancelled")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&models.TenantSubscription{}).
			Where("company_id = ? AND status IN ?", companyID,
				[]string{models.SubscriptionStatusActive, models.SubscriptionStatusPastDue}).
			Updates(map[string]interface{}{
				"status":       models.SubscriptionStatusCancelled,
				"cancelled_at": now,
			}).Error; err != nil {
			return err
		}

		company.Status = models.CompanyStatusCancelled
		return tx.Save(&company).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifyTenantEvent(&company, "tenant.cancelled", "Workspace cancelled",
		fmt.Sprintf("%s was cancelled", company.Name))
	return &company, nil
}

// Activate moves a trial or cancelled tenant to active
func (s *PlatformService) Activate(companyID uint) (*models.Company, error) {
	var company models.Company
	if err := s.db.First(&company, companyID).Error; err != nil {
		return nil, fmt.Errorf("tenant not found")
	}
	if company.Status == models.CompanyStatusActive {
		return nil, fmt.Errorf("tenant is already active")
	}

	company.Status = models.CompanyStatusActive
	if err := s.db.Save(&company).Error; err != nil {
		return nil, err
	}

	s.notifyTenantEvent(&company, "tenant.activated", "Workspace activated",
		fmt.Sprintf("%s is now active", company.Name))
	return &company, nil
}

// MarkPaymentFailed moves a tenant's active subscription to past due
// and raises a billing notification. Access is not cut off; that stays
// a deliberate suspend or cancel.
func (s *PlatformService) MarkPaymentFailed(companyID uint) (*models.TenantSubscription, error) {
	var company models.Company
	if err := s.db.First(&company, companyID).Error; err != nil {
		return nil, fmt.Errorf("tenant not found")
	}

	var sub models.TenantSubscription
	err := s.db.Where("company_id = ? AND status = ?", companyID, models.SubscriptionStatusActive).
		Order("id DESC").First(&sub).Error
	if err != nil {
		return nil, fmt.Errorf("tenant has no active subscription")
	}

	sub.Status = models.SubscriptionStatusPastDue
	if err := s.db.Save(&sub).Error; err != nil {
		return nil, err
	}

	subID := sub.ID
	if err := s.notifications.NotifyPlatform(models.NotificationCategoryBilling, "billing.payment_failed",
		"Payment failed",
		fmt.Sprintf("Payment failed for %s", company.Name),
		&companyID, map[string]interface{}{"subscription_id": subID}); err != nil {
		logger.GetLogger().Warnf("Failed to record payment failure notification: %v", err)
	}

	s.analyticsClient.SendEvent("billing.payment_failed", map[string]interface{}{
		"company_id":      companyID,
		"subscription_id": subID,
	})

	if company.Email != nil && *company.Email != "" {
		body := fmt.Sprintf(
			"Hello %s,\n\nWe could not collect your latest subscription payment. Please update your payment details to keep your workspace active.",
			company.Name)
		s.mailer.Send(*company.Email, "Payment failed", body)
	}

	return &sub, nil
}

// PlanInput subscription plan fields
type PlanInput struct {
	Code         string          `json:"code" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Description  *string         `json:"description"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	YearlyPrice  decimal.Decimal `json:"yearly_price"`
	IsActive     *bool           `json:"is_active"`
}

// ListPlans all plans, active first
func (s *PlatformService) ListPlans() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := s.db.Order("is_active DESC, monthly_price").Find(&plans).Error
	return plans, err
}

// CreatePlan adds a price point
func (s *PlatformService) CreatePlan(input PlanInput) (*models.SubscriptionPlan, error) {
	code := strings.ToLower(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, fmt.Errorf("plan code is required")
	}
	if input.MonthlyPrice.IsNegative() || input.YearlyPrice.IsNegative() {
		return nil, fmt.Errorf("prices cannot be negative")
	}

	var count int64
	s.db.Model(&models.SubscriptionPlan{}).Where("code = ?", code).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("a plan with code %s already exists", code)
	}

	plan := &models.SubscriptionPlan{
		Code:         code,
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		MonthlyPrice: input.MonthlyPrice.Round(2),
		YearlyPrice:  input.YearlyPrice.Round(2),
		IsActive:     true,
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}
	if err := s.db.Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

// UpdatePlan edits a price point. Existing subscriptions keep the
// amount they signed up with.
func (s *PlatformService) UpdatePlan(id uint, input PlanInput) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := s.db.First(&plan, id).Error; err != nil {
		return nil, fmt.Errorf("plan not found")
	}
	if input.MonthlyPrice.IsNegative() || input.YearlyPrice.IsNegative() {
		return nil, fmt.Errorf("prices cannot be negative")
	}

	plan.Name = strings.TrimSpace(input.Name)
	plan.Description = input.Description
	plan.MonthlyPrice = input.MonthlyPrice.Round(2)
	plan.YearlyPrice = input.YearlyPrice.Round(2)
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := s.db.Save(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// TogglePlan flips a plan's availability. Disabled plans stay listed
// and existing subscriptions keep running on them.
func (s *PlatformService) TogglePlan(id uint) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := s.db.First(&plan, id).Error; err != nil {
		return nil, fmt.Errorf("plan not found")
	}

	plan.IsActive = !plan.IsActive
	if err := s.db.Save(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// ChangeSubscription puts a tenant on a plan, cancelling any previous
// subscription, and activates the workspace
func (s *PlatformService) ChangeSubscription(companyID, planID uint, billingCycle string) (*models.TenantSubscription, error) {
	if billingCycle != models.BillingCycleMonthly && billingCycle != models.BillingCycleYearly {
		return nil, fmt.Errorf("billing cycle must be monthly or yearly")
	}

	var (
		sub     models.TenantSubscription
		company models.Company
		plan    models.SubscriptionPlan
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&company, companyID).Error; err != nil {
			return fmt.Errorf("tenant not found")
		}

		if err := tx.First(&plan, planID).Error; err != nil {
			return fmt.Errorf("plan not found")
		}
		if !plan.IsActive {
			return fmt.Errorf("plan is not available")
		}

		now := time.Now()
		if err := tx.Model(&models.TenantSubscription{}).
			Where("company_id = ? AND status IN ?", companyID,
				[]string{models.SubscriptionStatusActive, models.SubscriptionStatusPastDue}).
			Updates(map[string]interface{}{
				"status":       models.SubscriptionStatusCancelled,
				"cancelled_at": now,
			}).Error; err != nil {
			return err
		}

		amount := plan.MonthlyPrice
		renewsAt := now.AddDate(0, 1, 0)
		if billingCycle == models.BillingCycleYearly {
			amount = plan.YearlyPrice
			renewsAt = now.AddDate(1, 0, 0)
		}

		sub = models.TenantSubscription{
			CompanyID:    companyID,
			PlanID:       planID,
			BillingCycle: billingCycle,
			Amount:       amount,
			Status:       models.SubscriptionStatusActive,
			StartedAt:    now,
			RenewsAt:     &renewsAt,
		}
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}

		company.Status = models.CompanyStatusActive
		return tx.Save(&company).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifyTenantEvent(&company, "tenant.subscription_changed", "Subscription updated",
		fmt.Sprintf("%s moved to the %s plan, billed %s", company.Name, plan.Name, billingCycle))
	return &sub, nil
}

// SubscribersCSV exports every tenant with its subscription state
func (s *PlatformService) SubscribersCSV() ([]byte, error) {
	var companies []models.Company
	if err := s.db.Order("id").Find(&companies).Error; err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	_ = writer.Write([]string{"company_id", "name", "email", "status", "suspended", "plan", "billing_cycle", "amount", "renews_at", "signed_up"})

	for _, company := range companies {
		planName, cycle, amount, renews := "", "", "", ""
		var sub models.TenantSubscription
		err := s.db.Preload("Plan").
			Where("company_id = ? AND status = ?", company.ID, models.SubscriptionStatusActive).
			Order("id DESC").First(&sub).Error
		if err == nil {
			if sub.Plan != nil {
				planName = sub.Plan.Name
			}
			cycle = sub.BillingCycle
			amount = sub.Amount.StringFixed(2)
			if sub.RenewsAt != nil {
				renews = sub.RenewsAt.Format("2006-01-02")
			}
		}

		email := ""
		if company.Email != nil {
			email = *company.Email
		}
		_ = writer.Write([]string{
			fmt.Sprintf("%d", company.ID),
			company.Name,
			email,
			company.Status,
			fmt.Sprintf("%t", company.IsSuspended),
			planName,
			cycle,
			amount,
			renews,
			company.CreatedAt.Format("2006-01-02"),
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SendRenewalReminders emails tenants whose subscription renews within
// the configured window and records a platform notification. Returns
// how many reminders went out.
func (s *PlatformService) SendRenewalReminders() (int, error) {
	cfg := config.GetConfig()
	cutoff := time.Now().AddDate(0, 0, cfg.Platform.RenewalReminderDays)

	var subs []models.TenantSubscription
	err := s.db.Preload("Company").Preload("Plan").
		Where("status = ? AND renews_at IS NOT NULL AND renews_at <= ? AND renews_at > ?",
			models.SubscriptionStatusActive, cutoff, time.Now()).
		Find(&subs).Error
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, sub := range subs {
		if sub.Company == nil {
			continue
		}

		renewDate := sub.RenewsAt.Format("January 2, 2006")
		if sub.Company.Email != nil && *sub.Company.Email != "" {
			body := fmt.Sprintf(
				"Hello %s,\n\nYour %s subscription renews on %s for %s %s.\n\nThank you for using MerchFlow.",
				sub.Company.Name, sub.BillingCycle, renewDate, sub.Amount.StringFixed(2), "USD")
			if !s.mailer.Send(*sub.Company.Email, "Your subscription renews soon", body) {
				logger.GetLogger().Warnf("Renewal reminder email not sent for company %d", sub.CompanyID)
			}
		}

		companyID := sub.CompanyID
		if err := s.notifications.NotifyPlatform(models.NotificationCategoryBilling, "billing.renewal_reminder",
			"Renewal reminder sent",
			fmt.Sprintf("%s renews on %s", sub.Company.Name, renewDate),
			&companyID, map[string]interface{}{
				"subscription_id": sub.ID,
				"renews_at":       sub.RenewsAt,
			}); err != nil {
			logger.GetLogger().Warnf("Failed to record renewal notification: %v", err)
		}
		sent++
	}

	return sent, nil
}

// notifyTenantEvent records a platform notification for a lifecycle
// change and emails the tenant, both best effort
func (s *PlatformService) notifyTenantEvent(company *models.Company, eventType, title, message string) {
	companyID := company.ID
	if err := s.notifications.NotifyPlatform(models.NotificationCategoryTenant, eventType, title, message,
		&companyID, nil); err != nil {
		logger.GetLogger().Warnf("Failed to record %s notification: %v", eventType, err)
	}

	s.analyticsClient.SendEvent(eventType, map[string]interface{}{
		"company_id": companyID,
	})

	if company.Email != nil && *company.Email != "" {
		body := fmt.Sprintf("Hello %s,\n\n%s.", company.Name, message)
		s.mailer.Send(*company.Email, title, body)
	}
}
