package handlers

import (
	"strconv"

	"github.com/Pincessis17/MerchFlow/internal/services"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"
	"github.com/Pincessis17/MerchFlow/pkg/response"

	"github.com/gin-gonic/gin"
)

type SupplierHandler struct {
	service *services.SupplierService
}

func NewSupplierHandler(service *services.SupplierService) *SupplierHandler {
	return &SupplierHandler{
		service: service,
	}
}

// List pages suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	suppliers, total, err := h.service.List(c.GetUint("company_id"), *params, c.Query("search"))
	if err != nil {
		response.ServerError(c, "failed to list suppliers")
		return
	}

	response.SuccessWithPage(c, suppliers, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID returns one supplier
func (h *SupplierHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	supplier, err := h.service.GetByID(c.GetUint("company_id"), uint(id))
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, supplier)
}

// Create adds a supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var input services.SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "supplier name is required")
		return
	}

	supplier, err := h.service.Create(c.GetUint("company_id"), input)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "supplier created", supplier)
}

// Update edits a supplier
func (h *SupplierHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	var input services.SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "supplier name is required")
		return
	}

	supplier, err := h.service.Update(c.GetUint("company_id"), uint(id), input)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "supplier updated", supplier)
}

// Delete removes a supplier
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	if err := h.service.Delete(c.GetUint("company_id"), uint(id)); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "supplier deleted", nil)
}
