package services

import (
	"fmt"
	"strings"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductService struct {
	db *gorm.DB
}

func NewProductService() *ProductService {
	return &ProductService{
		db: database.GetDB(),
	}
}

// ProductInput create and update fields
type ProductInput struct {
	Code        string          `json:"code"`
	Name        string          `json:"name" binding:"required"`
	Unit        *string         `json:"unit"`
	Category    *string         `json:"category"`
	BuyingPrice decimal.Decimal `json:"buying_price"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	ExpiryDate  *string         `json:"expiry_date"`
}

// List pages a workspace's products with optional search and category
// filter
func (s *ProductService) List(companyID uint, params pagination.PageParams, search, category string) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Where("company_id = ?", companyID)

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", like, like)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := query.Order("name").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&products).Error
	return products, total, err
}

// GetByID loads a product scoped to a workspace
func (s *ProductService) GetByID(companyID, id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.Where("company_id = ?", companyID).First(&product, id).Error
	if err != nil {
		return nil, fmt.Errorf("product not found")
	}
	return &product, nil
}

// Create adds a product. A missing code is generated from the name,
// and clashes get a numeric suffix.
func (s *ProductService) Create(companyID uint, input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if input.Price.IsNegative() || input.BuyingPrice.IsNegative() {
		return nil, fmt.Errorf("prices cannot be negative")
	}
	if input.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	code := strings.TrimSpace(input.Code)
	if code == "" {
		var err error
		code, err = s.nextAvailableCode(companyID, CodeFromName(name))
		if err != nil {
			return nil, err
		}
	} else {
		var count int64
		s.db.Model(&models.Product{}).Where("company_id = ? AND code = ?", companyID, code).Count(&count)
		if count > 0 {
			return nil, fmt.Errorf("a product with code %s already exists", code)
		}
	}

	product := &models.Product{
		CompanyID:   companyID,
		Code:        code,
		Name:        name,
		Unit:        input.Unit,
		Category:    input.Category,
		BuyingPrice: input.BuyingPrice.Round(4),
		Price:       input.Price.Round(2),
		Quantity:    input.Quantity,
		ExpiryDate:  input.ExpiryDate,
	}
	if err := s.db.Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update replaces a product's editable fields
func (s *ProductService) Update(companyID, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if input.Price.IsNegative() || input.BuyingPrice.IsNegative() {
		return nil, fmt.Errorf("prices cannot be negative")
	}
	if input.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	code := strings.TrimSpace(input.Code)
	if code != "" && code != product.Code {
		var count int64
		s.db.Model(&models.Product{}).
			Where("company_id = ? AND code = ? AND id <> ?", companyID, code, id).
			Count(&count)
		if count > 0 {
			return nil, fmt.Errorf("a product with code %s already exists", code)
		}
		product.Code = code
	}

	product.Name = name
	product.Unit = input.Unit
	product.Category = input.Category
	product.BuyingPrice = input.BuyingPrice.Round(4)
	product.Price = input.Price.Round(2)
	product.Quantity = input.Quantity
	product.ExpiryDate = input.ExpiryDate

	if err := s.db.Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product unless sales reference it
func (s *ProductService) Delete(companyID, id uint) error {
	product, err := s.GetByID(companyID, id)
	if err != nil {
		return err
	}

	var count int64
	s.db.Model(&models.Sale{}).Where("product_id = ?", id).Count(&count)
	if count > 0 {
		return fmt.Errorf("product has recorded sales and cannot be deleted")
	}

	return s.db.Delete(product).Error
}

// LowStock products at or below the threshold
func (s *ProductService) LowStock(companyID uint, threshold int) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Where("company_id = ? AND quantity <= ?", companyID, threshold).
		Order("quantity, name").Find(&products).Error
	return products, err
}

// Categories distinct category names in use
func (s *ProductService) Categories(companyID uint) ([]string, error) {
	var categories []string
	err := s.db.Model(&models.Product{}).
		Where("company_id = ? AND category IS NOT NULL AND category <> ''", companyID).
		Distinct("category").Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

// nextAvailableCode appends -2, -3 and so on until the code is free
func (s *ProductService) nextAvailableCode(companyID uint, base string) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		var count int64
		if err := s.db.Model(&models.Product{}).
			Where("company_id = ? AND code = ?", companyID, candidate).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		if i > 500 {
			return "", fmt.Errorf("could not generate a unique product code")
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// CodeFromName derives a product code from a display name
func CodeFromName(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToUpper(name) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
		if b.Len() >= 20 {
			break
		}
	}
	code := strings.Trim(b.String(), "-")
	if code == "" {
		code = "ITEM"
	}
	return code
}
