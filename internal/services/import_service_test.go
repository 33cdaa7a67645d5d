package services

import (
	"strings"
	"testing"

	"github.com/Pincessis17/MerchFlow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportAddsAndUpdates(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	createTestProduct(t, db, company.ID, "ASP-100", "Aspirin", 5, "1.00", "2.00")

	csvData := strings.Join([]string{
		"sku,name,quantity,cost_price,selling_price,category",
		"ASP-100,Aspirin,20,1.10,2.20,Painkillers",
		"PAR-500,Paracetamol,30,0.50,1.00,Painkillers",
	}, "\n")

	service := NewImportService()
	result, err := service.ImportProducts(company.ID, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)

	var updated models.Product
	require.NoError(t, db.Where("company_id = ? AND code = ?", company.ID, "ASP-100").First(&updated).Error)
	assert.Equal(t, 20, updated.Quantity)
	assert.True(t, updated.Price.Equal(mustDecimal(t, "2.20")))
}

func TestImportUppercasesCodes(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	createTestProduct(t, db, company.ID, "ASP-100", "Aspirin", 5, "1.00", "2.00")

	// lowercase codes match the same SKU instead of adding a duplicate
	csvData := strings.Join([]string{
		"sku,name,quantity,cost_price,selling_price",
		"asp-100,Aspirin,8,1.00,2.00",
		"par-500,Paracetamol,30,0.50,1.00",
	}, "\n")

	service := NewImportService()
	result, err := service.ImportProducts(company.ID, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Updated)

	var count int64
	db.Model(&models.Product{}).Where("company_id = ?", company.ID).Count(&count)
	assert.Equal(t, int64(2), count)

	var added models.Product
	require.NoError(t, db.Where("company_id = ? AND code = ?", company.ID, "PAR-500").First(&added).Error)
	assert.Equal(t, "Paracetamol", added.Name)
}

func TestImportHeaderSynonyms(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	// alternate header spellings resolve to the same fields
	csvData := strings.Join([]string{
		"item_code,product_name,stock,unit_cost,unit_price",
		"VIT-C,Vitamin C,12,0.80,1.50",
	}, "\n")

	service := NewImportService()
	result, err := service.ImportProducts(company.ID, strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)

	var product models.Product
	require.NoError(t, db.Where("company_id = ? AND code = ?", company.ID, "VIT-C").First(&product).Error)
	assert.Equal(t, "Vitamin C", product.Name)
	assert.Equal(t, 12, product.Quantity)
	assert.True(t, product.BuyingPrice.Equal(mustDecimal(t, "0.80")))
}

func TestImportClampsNegativesAndSkipsNameless(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	csvData := strings.Join([]string{
		"code,name,qty,cost,price",
		"NEG-1,Negative Stock,-5,-1.00,2.00",
		"NON-1,,10,1.00,2.00",
	}, "\n")

	service := NewImportService()
	result, err := service.ImportProducts(company.ID, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "line 3")

	var product models.Product
	require.NoError(t, db.Where("company_id = ? AND code = ?", company.ID, "NEG-1").First(&product).Error)
	assert.Equal(t, 0, product.Quantity)
	assert.True(t, product.BuyingPrice.IsZero())
}

func TestImportGeneratesCodeWhenMissing(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	csvData := strings.Join([]string{
		"name,quantity,price",
		"Cough Syrup,4,3.50",
	}, "\n")

	service := NewImportService()
	result, err := service.ImportProducts(company.ID, strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)

	var product models.Product
	require.NoError(t, db.Where("company_id = ? AND name = ?", company.ID, "Cough Syrup").First(&product).Error)
	assert.Equal(t, "COUGH-SYRUP", product.Code)
}

func TestImportMatchesByNameWithoutCode(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	createTestProduct(t, db, company.ID, "CS-1", "Cough Syrup", 4, "2.00", "3.50")

	// no code column, existing product matched by exact name
	csvData := strings.Join([]string{
		"name,quantity,price",
		"Cough Syrup,9,3.75",
	}, "\n")

	service := NewImportService()
	result, err := service.ImportProducts(company.ID, strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 1, result.Updated)

	var product models.Product
	require.NoError(t, db.Where("company_id = ? AND code = ?", company.ID, "CS-1").First(&product).Error)
	assert.Equal(t, 9, product.Quantity)
}

func TestImportRequiresNameColumn(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewImportService()
	_, err := service.ImportProducts(company.ID, strings.NewReader("sku,qty\nA,1"))
	assert.Error(t, err)
}
