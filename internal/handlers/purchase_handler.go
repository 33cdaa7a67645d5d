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

type PurchaseHandler struct {
	service *services.PurchaseService
}

func NewPurchaseHandler(service *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		service: service,
	}
}

// CreatePurchaseRequest a stock intake line
type CreatePurchaseRequest struct {
	SupplierID uint            `json:"supplier_id" binding:"required"`
	ProductID  uint            `json:"product_id" binding:"required"`
	Quantity   int             `json:"quantity" binding:"required,gt=0"`
	UnitCost   decimal.Decimal `json:"unit_cost" binding:"required"`
}

// List pages purchases with date and supplier filters
func (h *PurchaseHandler) List(c *gin.Context) {
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

	var supplierID uint
	if v := c.Query("supplier_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid supplier_id")
			return
		}
		supplierID = uint(parsed)
	}

	purchases, total, err := h.service.List(c.GetUint("company_id"), *params, from, to, supplierID)
	if err != nil {
		response.ServerError(c, "failed to list purchases")
		return
	}

	response.SuccessWithPage(c, purchases, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID returns one purchase
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	purchase, err := h.service.GetByID(c.GetUint("company_id"), uint(id))
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, purchase)
}

// Create records a stock intake
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "supplier, product, a positive quantity and a unit cost are required")
		return
	}

	purchase, err := h.service.Create(c.GetUint("company_id"), req.SupplierID, req.ProductID, req.Quantity, req.UnitCost)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "purchase recorded", purchase)
}
