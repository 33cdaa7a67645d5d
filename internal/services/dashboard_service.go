package services

import (
	"time"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/pkg/config"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService() *DashboardService {
	return &DashboardService{
		db: database.GetDB(),
	}
}

// TopSellerRow one product on the dashboard top sellers list
type TopSellerRow struct {
	Name    string          `json:"name"`
	Qty     int64           `json:"qty"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardMetrics the workspace home screen numbers
type DashboardMetrics struct {
	TodaySalesCount  int64           `json:"today_sales_count"`
	TodayRevenue     decimal.Decimal `json:"today_revenue"`
	TodayProfit      decimal.Decimal `json:"today_profit"`
	MonthRevenue     decimal.Decimal `json:"month_revenue"`
	MonthProfit      decimal.Decimal `json:"month_profit"`
	ProductCount     int64           `json:"product_count"`
	StockValue       decimal.Decimal `json:"stock_value"`
	UnpaidSalesTotal decimal.Decimal `json:"unpaid_sales_total"`
	LowStockCount    int64           `json:"low_stock_count"`
	LowStock         []models.Product `json:"low_stock"`
	TopSellers       []TopSellerRow   `json:"top_sellers"`
	RecentSales      []models.Sale    `json:"recent_sales"`
}

// Metrics assembles the dashboard for a workspace
func (s *DashboardService) Metrics(companyID uint) (*DashboardMetrics, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	metrics := &DashboardMetrics{}

	type sum struct {
		Count   int64
		Revenue decimal.Decimal
		Profit  decimal.Decimal
	}

	var today sum
	err := s.db.Model(&models.Sale{}).
		Select("COUNT(*) AS count, COALESCE(SUM(line_total), 0) AS revenue, COALESCE(SUM(line_profit), 0) AS profit").
		Where("company_id = ? AND created_at >= ?", companyID, dayStart).
		Scan(&today).Error
	if err != nil {
		return nil, err
	}
	metrics.TodaySalesCount = today.Count
	metrics.TodayRevenue = today.Revenue
	metrics.TodayProfit = today.Profit

	var month sum
	err = s.db.Model(&models.Sale{}).
		Select("COUNT(*) AS count, COALESCE(SUM(line_total), 0) AS revenue, COALESCE(SUM(line_profit), 0) AS profit").
		Where("company_id = ? AND created_at >= ?", companyID, monthStart).
		Scan(&month).Error
	if err != nil {
		return nil, err
	}
	metrics.MonthRevenue = month.Revenue
	metrics.MonthProfit = month.Profit

	if err := s.db.Model(&models.Product{}).
		Where("company_id = ?", companyID).Count(&metrics.ProductCount).Error; err != nil {
		return nil, err
	}

	var stockValue struct{ Value decimal.Decimal }
	err = s.db.Model(&models.Product{}).
		Select("COALESCE(SUM(buying_price * quantity), 0) AS value").
		Where("company_id = ?", companyID).
		Scan(&stockValue).Error
	if err != nil {
		return nil, err
	}
	metrics.StockValue = stockValue.Value.Round(2)

	var unpaid struct{ Value decimal.Decimal }
	err = s.db.Model(&models.Sale{}).
		Select("COALESCE(SUM(line_total), 0) AS value").
		Where("company_id = ? AND payment_status <> ?", companyID, models.PaymentStatusPaid).
		Scan(&unpaid).Error
	if err != nil {
		return nil, err
	}
	metrics.UnpaidSalesTotal = unpaid.Value

	threshold := config.GetConfig().Platform.LowStockThreshold
	if err := s.db.Where("company_id = ? AND quantity <= ?", companyID, threshold).
		Order("quantity, name").Limit(10).Find(&metrics.LowStock).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Product{}).
		Where("company_id = ? AND quantity <= ?", companyID, threshold).
		Count(&metrics.LowStockCount).Error; err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Sale{}).
		Select("products.name AS name, SUM(sales.quantity) AS qty, COALESCE(SUM(sales.line_total), 0) AS revenue").
		Joins("JOIN products ON products.id = sales.product_id").
		Where("sales.company_id = ? AND sales.created_at >= ?", companyID, monthStart).
		Group("products.name").Order("revenue DESC").Limit(5).
		Scan(&metrics.TopSellers).Error
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Product").
		Where("company_id = ?", companyID).
		Order("id DESC").Limit(10).Find(&metrics.RecentSales).Error; err != nil {
		return nil, err
	}

	return metrics, nil
}
