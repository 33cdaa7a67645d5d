package handlers

import (
	"strconv"

	"github.com/Pincessis17/MerchFlow/internal/services"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"
	"github.com/Pincessis17/MerchFlow/pkg/response"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	service *services.CustomerService
}

func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		service: service,
	}
}

// List pages customers
func (h *CustomerHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	customers, total, err := h.service.List(c.GetUint("company_id"), *params, c.Query("search"))
	if err != nil {
		response.ServerError(c, "failed to list customers")
		return
	}

	response.SuccessWithPage(c, customers, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID returns one customer
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	customer, err := h.service.GetByID(c.GetUint("company_id"), uint(id))
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, customer)
}

// Create adds a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var input services.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "customer name is required")
		return
	}

	customer, err := h.service.Create(c.GetUint("company_id"), input)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "customer created", customer)
}

// Update edits a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	var input services.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "customer name is required")
		return
	}

	customer, err := h.service.Update(c.GetUint("company_id"), uint(id), input)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "customer updated", customer)
}

// Delete removes a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	if err := h.service.Delete(c.GetUint("company_id"), uint(id)); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "customer deleted", nil)
}
