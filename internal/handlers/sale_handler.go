package handlers

import (
	"strconv"
	"time"

	"github.com/Pincessis17/MerchFlow/internal/services"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"
	"github.com/Pincessis17/MerchFlow/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type SaleHandler struct {
	service *services.SaleService
}

func NewSaleHandler(service *services.SaleService) *SaleHandler {
	return &SaleHandler{
		service: service,
	}
}

// CreateSaleRequest a new sale line
type CreateSaleRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// PaymentRequest a payment against a sale or invoice
type PaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method"`
	Reference *string         `json:"reference"`
}

// parseDateRange reads from/to query dates, defaulting to the last 30
// days. The upper bound is exclusive by one day so "to" is inclusive.
func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 1)

	if v := c.Query("from"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, now.Location())
		if err != nil {
			return from, to, false
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, now.Location())
		if err != nil {
			return from, to, false
		}
		to = parsed.AddDate(0, 0, 1)
	}

	return from, to, true
}

// List pages sales with date and payment status filters
func (h *SaleHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "from must be YYYY-MM-DD")
			return
		}
		from = &parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "to must be YYYY-MM-DD")
			return
		}
		end := parsed.AddDate(0, 0, 1)
		to = &end
	}

	sales, total, err := h.service.List(c.GetUint("company_id"), *params, from, to, c.Query("payment_status"))
	if err != nil {
		response.ServerError(c, "failed to list sales")
		return
	}

	response.SuccessWithPage(c, sales, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID returns one sale with its payments
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	sale, err := h.service.GetByID(c.GetUint("company_id"), uint(id))
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, sale)
}

// Create records a sale
func (h *SaleHandler) Create(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "product id and a positive quantity are required")
		return
	}

	sale, err := h.service.Create(c.GetUint("company_id"), req.ProductID, req.Quantity)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "sale recorded", sale)
}

// RecordPayment takes a payment against a sale
func (h *SaleHandler) RecordPayment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "a payment amount is required")
		return
	}

	sale, err := h.service.RecordPayment(c.GetUint("company_id"), uint(id), req.Amount, req.Method, req.Reference)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "payment recorded", sale)
}

// Delete removes an unpaid sale and restores its stock
func (h *SaleHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	if err := h.service.Delete(c.GetUint("company_id"), uint(id)); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "sale deleted", nil)
}
