package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Pincessis17/MerchFlow/internal/services"
	"github.com/Pincessis17/MerchFlow/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// SalesReport returns the aggregated report as JSON
func (h *ReportHandler) SalesReport(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		response.BadRequest(c, "dates must be YYYY-MM-DD")
		return
	}

	data, err := h.service.SalesReport(c.GetUint("company_id"), from, to)
	if err != nil {
		response.ServerError(c, "failed to build report")
		return
	}

	response.Success(c, data)
}

// SalesReportPDF streams the report as a PDF download
func (h *ReportHandler) SalesReportPDF(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		response.BadRequest(c, "dates must be YYYY-MM-DD")
		return
	}

	pdfBytes, err := h.service.SalesReportPDF(c.GetUint("company_id"), from, to)
	if err != nil {
		response.ServerError(c, "failed to build report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sales-report-%s.pdf", time.Now().Format("20060102")))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// SalesCSV streams raw sale lines as a CSV download
func (h *ReportHandler) SalesCSV(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		response.BadRequest(c, "dates must be YYYY-MM-DD")
		return
	}

	csvBytes, err := h.service.SalesCSV(c.GetUint("company_id"), from, to)
	if err != nil {
		response.ServerError(c, "failed to export sales")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sales-%s.csv", time.Now().Format("20060102")))
	c.Data(http.StatusOK, "text/csv", csvBytes)
}

// FinancialStatement returns revenue, COGS and profit as JSON
func (h *ReportHandler) FinancialStatement(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		response.BadRequest(c, "dates must be YYYY-MM-DD")
		return
	}

	data, err := h.service.FinancialStatement(c.GetUint("company_id"), from, to)
	if err != nil {
		response.ServerError(c, "failed to build statement")
		return
	}

	response.Success(c, data)
}

// FinancialStatementPDF streams the statement as a PDF download
func (h *ReportHandler) FinancialStatementPDF(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		response.BadRequest(c, "dates must be YYYY-MM-DD")
		return
	}

	pdfBytes, err := h.service.FinancialStatementPDF(c.GetUint("company_id"), from, to)
	if err != nil {
		response.ServerError(c, "failed to build statement")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=financial-statement-%s.pdf", time.Now().Format("20060102")))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
