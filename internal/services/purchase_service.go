package services

import (
	"fmt"
	"time"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseService struct {
	db *gorm.DB
}

func NewPurchaseService() *PurchaseService {
	return &PurchaseService{
		db: database.GetDB(),
	}
}

// Create records a stock intake. The product's stock goes up and its
// buying price becomes the moving average of old and new stock,
// rounded to four decimal places.
func (s *PurchaseService) Create(companyID, supplierID, productID uint, quantity int, unitCost decimal.Decimal) (*models.Purchase, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, fmt.Errorf("unit cost cannot be negative")
	}

	var purchase *models.Purchase
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var supplier models.Supplier
		if err := tx.Where("company_id = ?", companyID).First(&supplier, supplierID).Error; err != nil {
			return fmt.Errorf("supplier not found")
		}

		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ?", companyID).
			First(&product, productID).Error; err != nil {
			return fmt.Errorf("product not found")
		}

		oldQty := decimal.NewFromInt(int64(product.Quantity))
		newQty := decimal.NewFromInt(int64(quantity))
		totalQty := oldQty.Add(newQty)

		oldValue := product.BuyingPrice.Mul(oldQty)
		newValue := unitCost.Mul(newQty)
		product.BuyingPrice = oldValue.Add(newValue).Div(totalQty).Round(4)
		product.Quantity += quantity

		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		purchase = &models.Purchase{
			CompanyID:  companyID,
			SupplierID: supplierID,
			ProductID:  productID,
			Quantity:   quantity,
			UnitCost:   unitCost.Round(4),
			LineTotal:  unitCost.Mul(newQty).Round(2),
		}
		return tx.Create(purchase).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(companyID, purchase.ID)
}

// GetByID loads a purchase with supplier and product
func (s *PurchaseService) GetByID(companyID, id uint) (*models.Purchase, error) {
	var purchase models.Purchase
	err := s.db.Preload("Supplier").Preload("Product").
		Where("company_id = ?", companyID).First(&purchase, id).Error
	if err != nil {
		return nil, fmt.Errorf("purchase not found")
	}
	return &purchase, nil
}

// List pages purchases with optional date range and supplier filter
func (s *PurchaseService) List(companyID uint, params pagination.PageParams, from, to *time.Time, supplierID uint) ([]models.Purchase, int64, error) {
	query := s.db.Model(&models.Purchase{}).Where("company_id = ?", companyID)

	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at < ?", *to)
	}
	if supplierID != 0 {
		query = query.Where("supplier_id = ?", supplierID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var purchases []models.Purchase
	err := query.Preload("Supplier").Preload("Product").Order("id DESC").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&purchases).Error
	return purchases, total, err
}
