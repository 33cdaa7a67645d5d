package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	importBatchSize = 200
	importMaxErrors = 50
)

// column synonyms accepted in upload headers, all compared lowercase
var importColumns = map[string][]string{
	"code":     {"sku", "code", "product_code", "item_code"},
	"name":     {"name", "product_name", "item_name"},
	"quantity": {"stock_qty", "quantity", "qty", "stock"},
	"buying":   {"cost_price", "buying_price", "purchase_price", "unit_cost", "cost"},
	"price":    {"selling_price", "price", "unit_price"},
	"category": {"category"},
	"unit":     {"unit"},
	"expiry":   {"expiry_date", "expiry", "expires"},
}

type ImportService struct {
	db *gorm.DB
}

func NewImportService() *ImportService {
	return &ImportService{
		db: database.GetDB(),
	}
}

// ImportResult what happened to each row of an upload
type ImportResult struct {
	Added   int      `json:"added"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

type importRow struct {
	line    int
	code    string
	name    string
	qty     int
	buying  decimal.Decimal
	price   decimal.Decimal
	unit    *string
	categ   *string
	expiry  *string
	hasCode bool
}

// ImportProducts reads a CSV upload and upserts products in batches.
// Existing products are matched by code, or by exact name when the row
// has no code. Negative quantities and prices are clamped to zero.
func (s *ImportService) ImportProducts(companyID uint, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("file is empty or not a valid CSV")
	}

	indexes := resolveColumns(header)
	if _, ok := indexes["name"]; !ok {
		return nil, fmt.Errorf("no product name column found, expected one of: name, product_name, item_name")
	}

	result := &ImportResult{Errors: []string{}}
	batch := make([]importRow, 0, importBatchSize)
	line := 1

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.applyBatch(companyID, batch, result); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Skipped++
			addError(result, line, "unreadable row")
			continue
		}

		row, rowErr := parseRow(record, indexes, line)
		if rowErr != "" {
			result.Skipped++
			addError(result, line, rowErr)
			continue
		}

		batch = append(batch, row)
		if len(batch) >= importBatchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return result, nil
}

// applyBatch upserts one batch inside a transaction
func (s *ImportService) applyBatch(companyID uint, rows []importRow, result *ImportResult) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			var existing models.Product
			query := tx.Where("company_id = ?", companyID)
			if row.hasCode {
				query = query.Where("code = ?", row.code)
			} else {
				query = query.Where("name = ?", row.name)
			}

			err := query.First(&existing).Error
			if err == nil {
				existing.Name = row.name
				existing.Quantity = row.qty
				existing.BuyingPrice = row.buying
				existing.Price = row.price
				if row.unit != nil {
					existing.Unit = row.unit
				}
				if row.categ != nil {
					existing.Category = row.categ
				}
				if row.expiry != nil {
					existing.ExpiryDate = row.expiry
				}
				if err := tx.Save(&existing).Error; err != nil {
					result.Skipped++
					addError(result, row.line, "failed to update")
					continue
				}
				result.Updated++
				continue
			}
			if err != gorm.ErrRecordNotFound {
				return err
			}

			code := row.code
			if !row.hasCode {
				code = CodeFromName(row.name)
				var count int64
				tx.Model(&models.Product{}).
					Where("company_id = ? AND code = ?", companyID, code).Count(&count)
				for i := 2; count > 0; i++ {
					code = fmt.Sprintf("%s-%d", CodeFromName(row.name), i)
					tx.Model(&models.Product{}).
						Where("company_id = ? AND code = ?", companyID, code).Count(&count)
				}
			}

			product := models.Product{
				CompanyID:   companyID,
				Code:        code,
				Name:        row.name,
				Unit:        row.unit,
				Category:    row.categ,
				BuyingPrice: row.buying,
				Price:       row.price,
				Quantity:    row.qty,
				ExpiryDate:  row.expiry,
			}
			if err := tx.Create(&product).Error; err != nil {
				result.Skipped++
				addError(result, row.line, "failed to insert")
				continue
			}
			result.Added++
		}
		return nil
	})
}

// resolveColumns maps logical fields to column positions
func resolveColumns(header []string) map[string]int {
	indexes := make(map[string]int)
	for pos, raw := range header {
		col := strings.ToLower(strings.TrimSpace(raw))
		col = strings.ReplaceAll(col, " ", "_")
		for field, synonyms := range importColumns {
			if _, taken := indexes[field]; taken {
				continue
			}
			for _, synonym := range synonyms {
				if col == synonym {
					indexes[field] = pos
					break
				}
			}
		}
	}
	return indexes
}

func parseRow(record []string, indexes map[string]int, line int) (importRow, string) {
	get := func(field string) string {
		pos, ok := indexes[field]
		if !ok || pos >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[pos])
	}

	row := importRow{line: line}

	row.name = get("name")
	if row.name == "" {
		return row, "missing product name"
	}

	// codes are stored uppercase so "asp-100" and "ASP-100" are one SKU
	row.code = strings.ToUpper(get("code"))
	row.hasCode = row.code != ""

	// lenient numeric parsing, blanks and junk become zero
	row.qty = clampInt(parseInt(get("quantity")))
	row.buying = clampDecimal(parseDecimal(get("buying"))).Round(4)
	row.price = clampDecimal(parseDecimal(get("price"))).Round(2)

	if v := get("unit"); v != "" {
		row.unit = &v
	}
	if v := get("category"); v != "" {
		row.categ = &v
	}
	if v := get("expiry"); v != "" {
		row.expiry = &v
	}

	return row, ""
}

func addError(result *ImportResult, line int, msg string) {
	if len(result.Errors) < importMaxErrors {
		result.Errors = append(result.Errors, fmt.Sprintf("line %d: %s", line, msg))
	}
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	return decimal.Zero
}

func clampInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func clampDecimal(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
