package services

import (
	"testing"

	"github.com/Pincessis17/MerchFlow/pkg/pagination"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreateGeneratesCode(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	service := NewProductService()

	product, err := service.Create(company.ID, ProductInput{
		Name:  "Paracetamol 500mg",
		Price: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "PARACETAMOL-500MG", product.Code)

	// same name gets a numeric suffix
	second, err := service.Create(company.ID, ProductInput{
		Name:  "Paracetamol 500mg",
		Price: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "PARACETAMOL-500MG-2", second.Code)

	third, err := service.Create(company.ID, ProductInput{
		Name:  "Paracetamol 500mg",
		Price: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "PARACETAMOL-500MG-3", third.Code)
}

func TestProductCreateRejectsDuplicateCode(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	service := NewProductService()

	_, err := service.Create(company.ID, ProductInput{Code: "ASP-100", Name: "Aspirin"})
	require.NoError(t, err)

	_, err = service.Create(company.ID, ProductInput{Code: "ASP-100", Name: "Aspirin Forte"})
	assert.Error(t, err)
}

func TestProductCodeUniquePerCompanyOnly(t *testing.T) {
	db := setupTestDB(t)
	first := createTestCompany(t, db, "Shop A")
	second := createTestCompany(t, db, "Shop B")
	service := NewProductService()

	_, err := service.Create(first.ID, ProductInput{Code: "ASP-100", Name: "Aspirin"})
	require.NoError(t, err)

	// the same code is fine in another workspace
	_, err = service.Create(second.ID, ProductInput{Code: "ASP-100", Name: "Aspirin"})
	assert.NoError(t, err)
}

func TestProductDeleteBlockedBySales(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	product := createTestProduct(t, db, company.ID, "ASP-100", "Aspirin", 10, "1.00", "2.00")

	saleService := NewSaleService()
	_, err := saleService.Create(company.ID, product.ID, 1)
	require.NoError(t, err)

	productService := NewProductService()
	err = productService.Delete(company.ID, product.ID)
	assert.Error(t, err)
}

func TestProductListSearchAndPaging(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	createTestProduct(t, db, company.ID, "ASP-100", "Aspirin", 10, "1.00", "2.00")
	createTestProduct(t, db, company.ID, "PAR-500", "Paracetamol", 10, "1.00", "2.00")
	createTestProduct(t, db, company.ID, "IBU-200", "Ibuprofen", 10, "1.00", "2.00")

	service := NewProductService()
	params := pagination.PageParams{Page: 1, PageSize: 2}

	products, total, err := service.List(company.ID, params, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, products, 2)

	products, total, err = service.List(company.ID, params, "para", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "Paracetamol", products[0].Name)
}

func TestProductLowStock(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	createTestProduct(t, db, company.ID, "ASP-100", "Aspirin", 2, "1.00", "2.00")
	createTestProduct(t, db, company.ID, "PAR-500", "Paracetamol", 50, "1.00", "2.00")

	service := NewProductService()
	low, err := service.LowStock(company.ID, 5)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Aspirin", low[0].Name)
}
