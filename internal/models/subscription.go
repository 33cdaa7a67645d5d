package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Billing cycles
const (
	BillingCycleMonthly = "monthly"
	BillingCycleYearly  = "yearly"
)

// Subscription statuses
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusPastDue   = "past_due"
	SubscriptionStatusCancelled = "cancelled"
)

// SubscriptionPlan a platform-level price point tenants subscribe to
type SubscriptionPlan struct {
	BaseModel
	Code         string          `json:"code" gorm:"not null;uniqueIndex;size:40"`
	Name         string          `json:"name" gorm:"not null;size:80"`
	Description  *string         `json:"description" gorm:"size:255"`
	MonthlyPrice decimal.Decimal `json:"monthly_price" gorm:"type:decimal(12,2);not null;check:monthly_price >= 0"`
	YearlyPrice  decimal.Decimal `json:"yearly_price" gorm:"type:decimal(12,2);not null;check:yearly_price >= 0"`
	IsActive     bool            `json:"is_active" gorm:"not null;default:true"`
}

// TableName table name
func (p *SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// TenantSubscription a company's current subscription. A company has at
// most one active subscription; changing plans cancels the old row.
type TenantSubscription struct {
	BaseModel
	CompanyID    uint            `json:"company_id" gorm:"not null;index"`
	PlanID       uint            `json:"plan_id" gorm:"not null"`
	BillingCycle string          `json:"billing_cycle" gorm:"not null;default:'monthly';size:10"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Status       string          `json:"status" gorm:"not null;default:'active';size:20;index"`
	StartedAt    time.Time       `json:"started_at" gorm:"not null"`
	RenewsAt     *time.Time      `json:"renews_at"`
	CancelledAt  *time.Time      `json:"cancelled_at"`

	Company *Company          `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Plan    *SubscriptionPlan `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
}

// TableName table name
func (s *TenantSubscription) TableName() string {
	return "tenant_subscriptions"
}

// MonthlyValue the subscription's contribution to MRR. Yearly amounts
// are spread across twelve months.
func (s *TenantSubscription) MonthlyValue() decimal.Decimal {
	if s.BillingCycle == BillingCycleYearly {
		return s.Amount.Div(decimal.NewFromInt(12)).Round(2)
	}
	return s.Amount
}
