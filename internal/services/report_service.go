package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/pkg/pdfgen"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService() *ReportService {
	return &ReportService{
		db: database.GetDB(),
	}
}

// SalesReport aggregates a date range into the report structure, which
// feeds both the JSON response and the PDF.
func (s *ReportService) SalesReport(companyID uint, from, to time.Time) (*pdfgen.SalesReportData, error) {
	var company models.Company
	if err := s.db.First(&company, companyID).Error; err != nil {
		return nil, fmt.Errorf("workspace not found")
	}

	data := &pdfgen.SalesReportData{
		CompanyName: company.Name,
		StartDate:   from,
		EndDate:     to,
	}

	var totals struct {
		Count  int64
		Items  int64
		Amount decimal.Decimal
	}
	err := s.db.Model(&models.Sale{}).
		Select("COUNT(*) AS count, COALESCE(SUM(quantity), 0) AS items, COALESCE(SUM(line_total), 0) AS amount").
		Where("company_id = ? AND created_at >= ? AND created_at < ?", companyID, from, to).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	data.TotalSalesCount = totals.Count
	data.TotalItemsSold = totals.Items
	data.TotalAmount = totals.Amount

	type productRow struct {
		Name string
		Qty  int64
	}
	var topProducts []productRow
	err = s.db.Model(&models.Sale{}).
		Select("products.name AS name, SUM(sales.quantity) AS qty").
		Joins("JOIN products ON products.id = sales.product_id").
		Where("sales.company_id = ? AND sales.created_at >= ? AND sales.created_at < ?", companyID, from, to).
		Group("products.name").Order("qty DESC").Limit(10).
		Scan(&topProducts).Error
	if err != nil {
		return nil, err
	}
	for _, row := range topProducts {
		data.TopProducts = append(data.TopProducts, pdfgen.TopProductRow{Name: row.Name, Qty: row.Qty})
	}

	type aggRow struct {
		Label  string
		Amount decimal.Decimal
		Items  int64
	}
	var byDay []aggRow
	err = s.db.Model(&models.Sale{}).
		Select("DATE(created_at) AS label, COALESCE(SUM(line_total), 0) AS amount, COALESCE(SUM(quantity), 0) AS items").
		Where("company_id = ? AND created_at >= ? AND created_at < ?", companyID, from, to).
		Group("DATE(created_at)").Order("label").
		Scan(&byDay).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byDay {
		data.SalesByDay = append(data.SalesByDay, pdfgen.ReportRow(row))
	}

	var byCategory []aggRow
	err = s.db.Model(&models.Sale{}).
		Select("COALESCE(products.category, 'Uncategorized') AS label, COALESCE(SUM(sales.line_total), 0) AS amount, COALESCE(SUM(sales.quantity), 0) AS items").
		Joins("JOIN products ON products.id = sales.product_id").
		Where("sales.company_id = ? AND sales.created_at >= ? AND sales.created_at < ?", companyID, from, to).
		Group("products.category").Order("amount DESC").
		Scan(&byCategory).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byCategory {
		data.SalesByCategory = append(data.SalesByCategory, pdfgen.ReportRow(row))
	}

	return data, nil
}

// SalesReportPDF renders the report as a PDF
func (s *ReportService) SalesReportPDF(companyID uint, from, to time.Time) ([]byte, error) {
	data, err := s.SalesReport(companyID, from, to)
	if err != nil {
		return nil, err
	}
	return pdfgen.BuildSalesReport(data)
}

// FinancialStatement builds revenue, COGS and profit figures with the
// underlying sale lines for a date range
func (s *ReportService) FinancialStatement(companyID uint, from, to time.Time) (*pdfgen.StatementData, error) {
	var company models.Company
	if err := s.db.First(&company, companyID).Error; err != nil {
		return nil, fmt.Errorf("workspace not found")
	}

	data := &pdfgen.StatementData{
		CompanyName: company.Name,
		StartDate:   from,
		EndDate:     to,
	}

	var sales []models.Sale
	err := s.db.Preload("Product").
		Where("company_id = ? AND created_at >= ? AND created_at < ?", companyID, from, to).
		Order("created_at").Find(&sales).Error
	if err != nil {
		return nil, err
	}

	for _, sale := range sales {
		productName := ""
		if sale.Product != nil {
			productName = sale.Product.Name
		}
		cogs := sale.BuyingPrice.Mul(decimal.NewFromInt(int64(sale.Quantity))).Round(2)
		data.TotalRevenue = data.TotalRevenue.Add(sale.LineTotal)
		data.TotalCOGS = data.TotalCOGS.Add(cogs)
		data.TotalProfit = data.TotalProfit.Add(sale.LineProfit)
		data.Lines = append(data.Lines, pdfgen.StatementLine{
			CreatedAt:   sale.CreatedAt,
			ProductName: productName,
			Quantity:    sale.Quantity,
			LineTotal:   sale.LineTotal,
			LineProfit:  sale.LineProfit,
		})
	}

	var purchases struct{ Value decimal.Decimal }
	err = s.db.Model(&models.Purchase{}).
		Select("COALESCE(SUM(line_total), 0) AS value").
		Where("company_id = ? AND created_at >= ? AND created_at < ?", companyID, from, to).
		Scan(&purchases).Error
	if err != nil {
		return nil, err
	}
	data.TotalPurchases = purchases.Value

	return data, nil
}

// FinancialStatementPDF renders the statement as a PDF
func (s *ReportService) FinancialStatementPDF(companyID uint, from, to time.Time) ([]byte, error) {
	data, err := s.FinancialStatement(companyID, from, to)
	if err != nil {
		return nil, err
	}
	return pdfgen.BuildFinancialStatement(data)
}

// SalesCSV exports raw sale lines for a date range
func (s *ReportService) SalesCSV(companyID uint, from, to time.Time) ([]byte, error) {
	var sales []models.Sale
	err := s.db.Preload("Product").
		Where("company_id = ? AND created_at >= ? AND created_at < ?", companyID, from, to).
		Order("created_at").Find(&sales).Error
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	_ = writer.Write([]string{"date", "product", "code", "quantity", "unit_price", "line_total", "line_profit", "payment_status"})

	for _, sale := range sales {
		name, code := "", ""
		if sale.Product != nil {
			name = sale.Product.Name
			code = sale.Product.Code
		}
		_ = writer.Write([]string{
			sale.CreatedAt.Format("2006-01-02 15:04:05"),
			name,
			code,
			fmt.Sprintf("%d", sale.Quantity),
			sale.UnitPrice.StringFixed(2),
			sale.LineTotal.StringFixed(2),
			sale.LineProfit.StringFixed(2),
			sale.PaymentStatus,
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// InvoicePDF renders a single invoice as a PDF
func (s *ReportService) InvoicePDF(companyID, invoiceID uint) ([]byte, error) {
	var invoice models.Invoice
	err := s.db.Preload("LineItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order, id")
	}).Preload("Company").
		Where("company_id = ?", companyID).First(&invoice, invoiceID).Error
	if err != nil {
		return nil, fmt.Errorf("invoice not found")
	}

	data := &pdfgen.InvoiceData{
		InvoiceNumber:  invoice.InvoiceNumber,
		CustomerName:   invoice.CustomerName,
		IssueDate:      invoice.IssueDate,
		DueDate:        invoice.DueDate,
		Currency:       invoice.Currency,
		Subtotal:       invoice.Subtotal,
		DiscountAmount: invoice.DiscountAmount,
		TaxRate:        invoice.TaxRate,
		TaxAmount:      invoice.TaxAmount,
		TotalAmount:    invoice.TotalAmount,
		AmountPaid:     invoice.AmountPaid,
	}
	if invoice.CustomerEmail != nil {
		data.CustomerEmail = *invoice.CustomerEmail
	}
	if invoice.Company != nil {
		data.CompanyName = invoice.Company.Name
		if invoice.Company.Address != nil {
			data.CompanyAddress = *invoice.Company.Address
		}
		if invoice.Company.InvoiceFooter != nil {
			data.FooterText = *invoice.Company.InvoiceFooter
		}
		if invoice.Company.PaymentInstructions != nil {
			data.PaymentInstructions = *invoice.Company.PaymentInstructions
		}
	}
	for _, line := range invoice.LineItems {
		data.Lines = append(data.Lines, pdfgen.InvoiceLine{
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		})
	}

	return pdfgen.BuildInvoice(data)
}
