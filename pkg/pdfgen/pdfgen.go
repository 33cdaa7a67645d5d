package pdfgen

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// ReportRow one aggregate line in a report table
type ReportRow struct {
	Label  string
	Amount decimal.Decimal
	Items  int64
}

// TopProductRow top-seller line
type TopProductRow struct {
	Name string
	Qty  int64
}

// SalesReportData everything the sales report PDF renders
type SalesReportData struct {
	CompanyName     string
	StartDate       time.Time
	EndDate         time.Time
	TotalSalesCount int64
	TotalItemsSold  int64
	TotalAmount     decimal.Decimal
	TopProducts     []TopProductRow
	SalesByDay      []ReportRow
	SalesByCategory []ReportRow
}

// StatementLine one sale line on the financial statement
type StatementLine struct {
	CreatedAt   time.Time
	ProductName string
	Quantity    int
	LineTotal   decimal.Decimal
	LineProfit  decimal.Decimal
}

// StatementData everything the financial statement PDF renders
type StatementData struct {
	CompanyName    string
	StartDate      time.Time
	EndDate        time.Time
	TotalRevenue   decimal.Decimal
	TotalCOGS      decimal.Decimal
	TotalProfit    decimal.Decimal
	TotalPurchases decimal.Decimal
	Lines          []StatementLine
}

// InvoiceLine one line item on the invoice PDF
type InvoiceLine struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// InvoiceData everything the invoice PDF renders
type InvoiceData struct {
	CompanyName         string
	CompanyAddress      string
	InvoiceNumber       string
	CustomerName        string
	CustomerEmail       string
	BillingAddress      string
	IssueDate           time.Time
	DueDate             *time.Time
	Currency            string
	Lines               []InvoiceLine
	Subtotal            decimal.Decimal
	DiscountAmount      decimal.Decimal
	TaxRate             decimal.Decimal
	TaxAmount           decimal.Decimal
	TotalAmount         decimal.Decimal
	AmountPaid          decimal.Decimal
	FooterText          string
	PaymentInstructions string
}

const (
	pageMargin = 12.0
	lineHeight = 6.0
)

func newDoc(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(title, false)
	pdf.AddPage()
	return pdf
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func tableHeader(pdf *gofpdf.Fpdf, widths []float64, labels []string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, label := range labels {
		pdf.CellFormat(widths[i], lineHeight, label, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
}

func tableRow(pdf *gofpdf.Fpdf, widths []float64, cells []string) {
	for i, cell := range cells {
		pdf.CellFormat(widths[i], lineHeight, cell, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// BuildSalesReport renders the date-ranged sales report.
func BuildSalesReport(data *SalesReportData) ([]byte, error) {
	pdf := newDoc("Sales Report")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Sales Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if data.CompanyName != "" {
		pdf.CellFormat(0, 6, data.CompanyName, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s to %s",
		data.StartDate.Format("2006-01-02"), data.EndDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	heading(pdf, "Summary")
	widths := []float64{110, 76}
	tableHeader(pdf, widths, []string{"Metric", "Value"})
	tableRow(pdf, widths, []string{"Total number of sales", fmt.Sprintf("%d", data.TotalSalesCount)})
	tableRow(pdf, widths, []string{"Total items sold", fmt.Sprintf("%d", data.TotalItemsSold)})
	tableRow(pdf, widths, []string{"Total amount", money(data.TotalAmount)})
	pdf.Ln(4)

	heading(pdf, "Top Products (by quantity)")
	if len(data.TopProducts) > 0 {
		widths = []float64{146, 40}
		tableHeader(pdf, widths, []string{"Product", "Qty Sold"})
		for _, row := range data.TopProducts {
			tableRow(pdf, widths, []string{row.Name, fmt.Sprintf("%d", row.Qty)})
		}
	} else {
		pdf.CellFormat(0, 6, "No sales in this period.", "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	heading(pdf, "Sales by Day")
	if len(data.SalesByDay) > 0 {
		widths = []float64{62, 62, 62}
		tableHeader(pdf, widths, []string{"Date", "Total Amount", "Items Sold"})
		for _, row := range data.SalesByDay {
			tableRow(pdf, widths, []string{row.Label, money(row.Amount), fmt.Sprintf("%d", row.Items)})
		}
	} else {
		pdf.CellFormat(0, 6, "No sales in this period.", "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	heading(pdf, "Sales by Category")
	if len(data.SalesByCategory) > 0 {
		widths = []float64{62, 62, 62}
		tableHeader(pdf, widths, []string{"Category", "Total Amount", "Items Sold"})
		for _, row := range data.SalesByCategory {
			tableRow(pdf, widths, []string{row.Label, money(row.Amount), fmt.Sprintf("%d", row.Items)})
		}
	} else {
		pdf.CellFormat(0, 6, "No sales in this period.", "", 1, "L", false, 0, "")
	}

	return output(pdf)
}

// BuildFinancialStatement renders the financial statement.
func BuildFinancialStatement(data *StatementData) ([]byte, error) {
	pdf := newDoc("Financial Statement")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Financial Statement", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if data.CompanyName != "" {
		pdf.CellFormat(0, 6, data.CompanyName, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s to %s",
		data.StartDate.Format("2006-01-02"), data.EndDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	heading(pdf, "Totals")
	widths := []float64{110, 76}
	tableHeader(pdf, widths, []string{"Metric", "Amount"})
	tableRow(pdf, widths, []string{"Total Revenue", money(data.TotalRevenue)})
	tableRow(pdf, widths, []string{"Total COGS", money(data.TotalCOGS)})
	tableRow(pdf, widths, []string{"Total Profit", money(data.TotalProfit)})
	tableRow(pdf, widths, []string{"Total Purchases", money(data.TotalPurchases)})
	pdf.Ln(4)

	heading(pdf, "Sales Lines")
	if len(data.Lines) > 0 {
		widths = []float64{36, 80, 20, 25, 25}
		tableHeader(pdf, widths, []string{"Date", "Product", "Qty", "Total", "Profit"})
		for _, line := range data.Lines {
			tableRow(pdf, widths, []string{
				line.CreatedAt.Format("2006-01-02 15:04"),
				truncate(line.ProductName, 42),
				fmt.Sprintf("%d", line.Quantity),
				money(line.LineTotal),
				money(line.LineProfit),
			})
		}
	} else {
		pdf.CellFormat(0, 6, "No sales in this period.", "", 1, "L", false, 0, "")
	}

	return output(pdf)
}

// BuildInvoice renders a customer invoice.
func BuildInvoice(data *InvoiceData) ([]byte, error) {
	pdf := newDoc("Invoice " + data.InvoiceNumber)

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, data.CompanyName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if data.CompanyAddress != "" {
		pdf.CellFormat(0, 5, data.CompanyAddress, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Invoice No: "+data.InvoiceNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Issue Date: "+data.IssueDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	if data.DueDate != nil {
		pdf.CellFormat(0, 6, "Due Date: "+data.DueDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	heading(pdf, "Bill To")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, data.CustomerName, "", 1, "L", false, 0, "")
	if data.CustomerEmail != "" {
		pdf.CellFormat(0, 5, data.CustomerEmail, "", 1, "L", false, 0, "")
	}
	if data.BillingAddress != "" {
		pdf.CellFormat(0, 5, data.BillingAddress, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	widths := []float64{96, 25, 30, 35}
	tableHeader(pdf, widths, []string{"Description", "Qty", "Unit Price", "Line Total"})
	for _, line := range data.Lines {
		tableRow(pdf, widths, []string{
			truncate(line.Description, 52),
			line.Quantity.String(),
			money(line.UnitPrice),
			money(line.LineTotal),
		})
	}
	pdf.Ln(3)

	totals := [][2]string{
		{"Subtotal", money(data.Subtotal)},
		{"Discount", "-" + money(data.DiscountAmount)},
		{fmt.Sprintf("Tax (%s%%)", data.TaxRate.String()), money(data.TaxAmount)},
		{"Total (" + data.Currency + ")", money(data.TotalAmount)},
		{"Amount Paid", money(data.AmountPaid)},
		{"Balance Due", money(data.TotalAmount.Sub(data.AmountPaid))},
	}
	pdf.SetFont("Helvetica", "", 10)
	for i, row := range totals {
		if i == 3 {
			pdf.SetFont("Helvetica", "B", 10)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(121, lineHeight, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, lineHeight, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(35, lineHeight, row[1], "", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "", 9)
	if data.PaymentInstructions != "" {
		pdf.MultiCell(0, 5, "Payment: "+data.PaymentInstructions, "", "L", false)
	}
	if data.FooterText != "" {
		pdf.MultiCell(0, 5, data.FooterText, "", "L", false)
	}

	return output(pdf)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
