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

type SaleService struct {
	db *gorm.DB
}

func NewSaleService() *SaleService {
	return &SaleService{
		db: database.GetDB(),
	}
}

// Create records a sale, decrementing stock under a row lock. Unit
// price and cost are snapshotted from the product at sale time.
func (s *SaleService) Create(companyID, productID uint, quantity int) (*models.Sale, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	var sale *models.Sale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ?", companyID).
			First(&product, productID).Error; err != nil {
			return fmt.Errorf("product not found")
		}

		if product.Quantity < quantity {
			return fmt.Errorf("only %d in stock for %s", product.Quantity, product.Name)
		}

		product.Quantity -= quantity
		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		qty := decimal.NewFromInt(int64(quantity))
		lineTotal := product.Price.Mul(qty).Round(2)
		lineProfit := product.Price.Sub(product.BuyingPrice).Mul(qty).Round(2)

		sale = &models.Sale{
			CompanyID:     companyID,
			ProductID:     productID,
			Quantity:      quantity,
			UnitPrice:     product.Price,
			BuyingPrice:   product.BuyingPrice,
			LineTotal:     lineTotal,
			LineProfit:    lineProfit,
			PaymentStatus: models.PaymentStatusUnpaid,
		}
		return tx.Create(sale).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(companyID, sale.ID)
}

// GetByID loads a sale with product and payments
func (s *SaleService) GetByID(companyID, id uint) (*models.Sale, error) {
	var sale models.Sale
	err := s.db.Preload("Product").Preload("Payments").
		Where("company_id = ?", companyID).First(&sale, id).Error
	if err != nil {
		return nil, fmt.Errorf("sale not found")
	}
	return &sale, nil
}

// List pages sales with optional date range and payment status filter
func (s *SaleService) List(companyID uint, params pagination.PageParams, from, to *time.Time, paymentStatus string) ([]models.Sale, int64, error) {
	query := s.db.Model(&models.Sale{}).Where("company_id = ?", companyID)

	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at < ?", *to)
	}
	if paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sales []models.Sale
	err := query.Preload("Product").Order("id DESC").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&sales).Error
	return sales, total, err
}

// RecordPayment takes a payment against a sale, capped at the balance
// due, and refreshes the payment status.
func (s *SaleService) RecordPayment(companyID, saleID uint, amount decimal.Decimal, method string, reference *string) (*models.Sale, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("payment amount must be positive")
	}
	if method == "" {
		method = models.PaymentMethodCash
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Payments").
			Where("company_id = ?", companyID).First(&sale, saleID).Error; err != nil {
			return fmt.Errorf("sale not found")
		}

		balance := sale.BalanceDue()
		if !balance.GreaterThan(decimal.Zero) {
			return fmt.Errorf("sale is already fully paid")
		}
		if amount.GreaterThan(balance) {
			amount = balance
		}

		payment := models.Payment{
			CompanyID: companyID,
			SaleID:    &sale.ID,
			Amount:    amount.Round(2),
			Method:    method,
			Reference: reference,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		sale.Payments = append(sale.Payments, payment)
		sale.UpdatePaymentStatus()
		return tx.Model(&models.Sale{}).Where("id = ?", sale.ID).
			Update("payment_status", sale.PaymentStatus).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(companyID, saleID)
}

// Delete removes an unpaid sale and restores the stock it consumed
func (s *SaleService) Delete(companyID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.Preload("Payments").
			Where("company_id = ?", companyID).First(&sale, id).Error; err != nil {
			return fmt.Errorf("sale not found")
		}

		if len(sale.Payments) > 0 {
			return fmt.Errorf("sale has payments and cannot be deleted")
		}

		if err := tx.Model(&models.Product{}).
			Where("id = ?", sale.ProductID).
			Update("quantity", gorm.Expr("quantity + ?", sale.Quantity)).Error; err != nil {
			return err
		}

		return tx.Delete(&sale).Error
	})
}
