package handlers

import (
	"strconv"
	"time"

	"github.com/Pincessis17/MerchFlow/internal/services"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"
	"github.com/Pincessis17/MerchFlow/pkg/response"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	service *services.ExpenseService
}

func NewExpenseHandler(service *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		service: service,
	}
}

// List pages expenses with date and category filters
func (h *ExpenseHandler) List(c *gin.Context) {
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

	expenses, total, err := h.service.List(c.GetUint("company_id"), *params, from, to, c.Query("category"))
	if err != nil {
		response.ServerError(c, "failed to list expenses")
		return
	}

	response.SuccessWithPage(c, expenses, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID returns one expense
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	expense, err := h.service.GetByID(c.GetUint("company_id"), uint(id))
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, expense)
}

// Create records an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var input services.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "a description and amount are required")
		return
	}

	expense, err := h.service.Create(c.GetUint("company_id"), input)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "expense recorded", expense)
}

// Update edits an expense
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	var input services.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "a description and amount are required")
		return
	}

	expense, err := h.service.Update(c.GetUint("company_id"), uint(id), input)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "expense updated", expense)
}

// Delete removes an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	if err := h.service.Delete(c.GetUint("company_id"), uint(id)); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "expense deleted", nil)
}
