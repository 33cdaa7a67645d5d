package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Pincessis17/MerchFlow/internal/services"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"
	"github.com/Pincessis17/MerchFlow/pkg/response"

	"github.com/gin-gonic/gin"
)

// PlatformHandler the owner console
type PlatformHandler struct {
	service      *services.PlatformService
	auditService *services.AuditService
}

func NewPlatformHandler(service *services.PlatformService, auditService *services.AuditService) *PlatformHandler {
	return &PlatformHandler{
		service:      service,
		auditService: auditService,
	}
}

// ChangeSubscriptionRequest put a tenant on a plan
type ChangeSubscriptionRequest struct {
	PlanID       uint   `json:"plan_id" binding:"required"`
	BillingCycle string `json:"billing_cycle" binding:"required,billing_cycle"`
}

func (h *PlatformHandler) audit(c *gin.Context, action, targetType string, targetID uint, detail string) {
	id := targetID
	h.auditService.Log(c.GetString("email"), action, targetType, &id, detail, c.ClientIP(), nil)
}

// Overview platform-wide metrics
func (h *PlatformHandler) Overview(c *gin.Context) {
	overview, err := h.service.Overview()
	if err != nil {
		response.ServerError(c, "failed to build overview")
		return
	}
	response.Success(c, overview)
}

// ListTenants pages companies
func (h *PlatformHandler) ListTenants(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	companies, total, err := h.service.ListTenants(*params, c.Query("search"), c.Query("status"))
	if err != nil {
		response.ServerError(c, "failed to list tenants")
		return
	}

	response.SuccessWithPage(c, companies, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetTenant one company with users and subscription
func (h *PlatformHandler) GetTenant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	detail, err := h.service.GetTenant(uint(id))
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, detail)
}

// Suspend blocks a tenant
func (h *PlatformHandler) Suspend(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	company, err := h.service.Suspend(uint(id))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.audit(c, "tenant.suspend", "company", company.ID, company.Name)
	response.SuccessWithMessage(c, "tenant suspended", company)
}

// Unsuspend restores a tenant
func (h *PlatformHandler) Unsuspend(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	company, err := h.service.Unsuspend(uint(id))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.audit(c, "tenant.unsuspend", "company", company.ID, company.Name)
	response.SuccessWithMessage(c, "tenant unsuspended", company)
}

// Cancel ends a tenant's subscription and access
func (h *PlatformHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	company, err := h.service.Cancel(uint(id))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.audit(c, "tenant.cancel", "company", company.ID, company.Name)
	response.SuccessWithMessage(c, "tenant cancelled", company)
}

// Activate moves a tenant to active
func (h *PlatformHandler) Activate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	company, err := h.service.Activate(uint(id))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.audit(c, "tenant.activate", "company", company.ID, company.Name)
	response.SuccessWithMessage(c, "tenant activated", company)
}

// MarkPaymentFailed flags a tenant's subscription as past due
func (h *PlatformHandler) MarkPaymentFailed(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	sub, err := h.service.MarkPaymentFailed(uint(id))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.audit(c, "tenant.payment_failed", "company", uint(id), fmt.Sprintf("subscription %d past due", sub.ID))
	response.SuccessWithMessage(c, "payment failure recorded", sub)
}

// ListPlans all subscription plans
func (h *PlatformHandler) ListPlans(c *gin.Context) {
	plans, err := h.service.ListPlans()
	if err != nil {
		response.ServerError(c, "failed to list plans")
		return
	}
	response.Success(c, plans)
}

// CreatePlan adds a price point
func (h *PlatformHandler) CreatePlan(c *gin.Context) {
	var input services.PlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "plan code and name are required")
		return
	}

	plan, err := h.service.CreatePlan(input)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.audit(c, "plan.create", "plan", plan.ID, plan.Code)
	response.SuccessWithMessage(c, "plan created", plan)
}

// UpdatePlan edits a price point
func (h *PlatformHandler) UpdatePlan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	var input services.PlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "plan code and name are required")
		return
	}

	plan, err := h.service.UpdatePlan(uint(id), input)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.audit(c, "plan.update", "plan", plan.ID, plan.Code)
	response.SuccessWithMessage(c, "plan updated", plan)
}

// TogglePlan flips a plan's availability
func (h *PlatformHandler) TogglePlan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	plan, err := h.service.TogglePlan(uint(id))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.audit(c, "plan.toggle", "plan", plan.ID, plan.Code)
	response.SuccessWithMessage(c, "plan updated", plan)
}

// ChangeSubscription puts a tenant on a plan
func (h *PlatformHandler) ChangeSubscription(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	var req ChangeSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "plan id and billing cycle (monthly or yearly) are required")
		return
	}

	sub, err := h.service.ChangeSubscription(uint(id), req.PlanID, req.BillingCycle)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.audit(c, "subscription.change", "company", uint(id),
		fmt.Sprintf("plan %d, %s", req.PlanID, req.BillingCycle))
	response.SuccessWithMessage(c, "subscription changed", sub)
}

// SubscribersCSV streams every tenant's subscription state as CSV
func (h *PlatformHandler) SubscribersCSV(c *gin.Context) {
	csvBytes, err := h.service.SubscribersCSV()
	if err != nil {
		response.ServerError(c, "failed to export subscribers")
		return
	}

	h.audit(c, "subscribers.export", "", 0, "")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=subscribers-%s.csv", time.Now().Format("20060102")))
	c.Data(http.StatusOK, "text/csv", csvBytes)
}

// SendRenewalReminders triggers the reminder sweep now
func (h *PlatformHandler) SendRenewalReminders(c *gin.Context) {
	sent, err := h.service.SendRenewalReminders()
	if err != nil {
		response.ServerError(c, "reminder sweep failed")
		return
	}

	h.audit(c, "billing.remind", "", 0, fmt.Sprintf("%d reminders sent", sent))
	response.SuccessWithMessage(c, "reminders sent", gin.H{"sent": sent})
}

// AuditLogs pages platform owner actions
func (h *PlatformHandler) AuditLogs(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	entries, total, err := h.auditService.List(*params, c.Query("actor"), c.Query("action"))
	if err != nil {
		response.ServerError(c, "failed to list audit logs")
		return
	}

	response.SuccessWithPage(c, entries, pagination.NewPageInfo(params.Page, params.PageSize, total))
}
