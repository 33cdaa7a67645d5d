package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardMetrics(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	other := createTestCompany(t, db, "Rival Pharmacy")

	aspirin := createTestProduct(t, db, company.ID, "ASP-100", "Aspirin", 10, "1.00", "2.50")
	createTestProduct(t, db, company.ID, "LOW-1", "Nearly Out", 2, "0.50", "1.00")
	foreign := createTestProduct(t, db, other.ID, "ASP-100", "Aspirin", 50, "1.00", "2.50")

	saleService := NewSaleService()
	sale, err := saleService.Create(company.ID, aspirin.ID, 4) // 10.00 revenue, 6.00 profit
	require.NoError(t, err)
	_, err = saleService.Create(other.ID, foreign.ID, 20)
	require.NoError(t, err)

	service := NewDashboardService()
	metrics, err := service.Metrics(company.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), metrics.TodaySalesCount)
	assert.True(t, metrics.TodayRevenue.Equal(mustDecimal(t, "10.00")), "revenue %s", metrics.TodayRevenue)
	assert.True(t, metrics.TodayProfit.Equal(mustDecimal(t, "6.00")))
	assert.Equal(t, int64(2), metrics.ProductCount)

	// 6 aspirin left at 1.00 plus 2 at 0.50
	assert.True(t, metrics.StockValue.Equal(mustDecimal(t, "7.00")), "stock %s", metrics.StockValue)
	assert.True(t, metrics.UnpaidSalesTotal.Equal(mustDecimal(t, "10.00")))

	assert.Equal(t, int64(1), metrics.LowStockCount)
	require.Len(t, metrics.LowStock, 1)
	assert.Equal(t, "LOW-1", metrics.LowStock[0].Code)
	require.Len(t, metrics.RecentSales, 1)
	assert.Equal(t, sale.ID, metrics.RecentSales[0].ID)

	require.Len(t, metrics.TopSellers, 1)
	assert.Equal(t, "Aspirin", metrics.TopSellers[0].Name)
	assert.Equal(t, int64(4), metrics.TopSellers[0].Qty)
	assert.True(t, metrics.TopSellers[0].Revenue.Equal(mustDecimal(t, "10.00")))

	_, err = saleService.RecordPayment(company.ID, sale.ID, mustDecimal(t, "10.00"), "cash", nil)
	require.NoError(t, err)

	metrics, err = service.Metrics(company.ID)
	require.NoError(t, err)
	assert.True(t, metrics.UnpaidSalesTotal.IsZero())
}
