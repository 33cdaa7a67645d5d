package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Pincessis17/MerchFlow/internal/services"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"
	"github.com/Pincessis17/MerchFlow/pkg/response"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	service       *services.InvoiceService
	reportService *services.ReportService
}

func NewInvoiceHandler(service *services.InvoiceService, reportService *services.ReportService) *InvoiceHandler {
	return &InvoiceHandler{
		service:       service,
		reportService: reportService,
	}
}

// CreateFromSaleRequest invoice a recorded sale
type CreateFromSaleRequest struct {
	SaleID        uint    `json:"sale_id" binding:"required"`
	CustomerName  string  `json:"customer_name" binding:"required"`
	CustomerEmail *string `json:"customer_email"`
}

// List pages invoices with status filter and search
func (h *InvoiceHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	invoices, total, err := h.service.List(c.GetUint("company_id"), *params, c.Query("status"), c.Query("search"))
	if err != nil {
		response.ServerError(c, "failed to list invoices")
		return
	}

	response.SuccessWithPage(c, invoices, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID returns one invoice with lines and payments
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	invoice, err := h.service.GetByID(c.GetUint("company_id"), uint(id))
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, invoice)
}

// Create builds an invoice from line items
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input services.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "at least one invoice line is required")
		return
	}

	invoice, err := h.service.Create(c.GetUint("company_id"), input)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "invoice created", invoice)
}

// CreateFromSale writes a one-line invoice for a sale
func (h *InvoiceHandler) CreateFromSale(c *gin.Context) {
	var req CreateFromSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "sale id and customer name are required")
		return
	}

	invoice, err := h.service.CreateFromSale(c.GetUint("company_id"), req.SaleID, req.CustomerName, req.CustomerEmail)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "invoice created", invoice)
}

// Update recomputes a draft or untouched invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	var input services.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "at least one invoice line is required")
		return
	}

	invoice, err := h.service.Update(c.GetUint("company_id"), uint(id), input)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "invoice updated", invoice)
}

// Issue moves a draft invoice to unpaid
func (h *InvoiceHandler) Issue(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	invoice, err := h.service.Issue(c.GetUint("company_id"), uint(id))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "invoice issued", invoice)
}

// RecordPayment takes a payment against an invoice
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
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

	invoice, err := h.service.RecordPayment(c.GetUint("company_id"), uint(id), req.Amount, req.Method, req.Reference)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "payment recorded", invoice)
}

// Void cancels an invoice
func (h *InvoiceHandler) Void(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	invoice, err := h.service.Void(c.GetUint("company_id"), uint(id))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "invoice voided", invoice)
}

// PDF streams the invoice as a PDF download
func (h *InvoiceHandler) PDF(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	pdfBytes, err := h.reportService.InvoicePDF(c.GetUint("company_id"), uint(id))
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
