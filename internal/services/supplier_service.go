package services

import (
	"fmt"
	"strings"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"

	"gorm.io/gorm"
)

type SupplierService struct {
	db *gorm.DB
}

func NewSupplierService() *SupplierService {
	return &SupplierService{
		db: database.GetDB(),
	}
}

// SupplierInput create and update fields
type SupplierInput struct {
	Name  string  `json:"name" binding:"required"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// List pages a workspace's suppliers
func (s *SupplierService) List(companyID uint, params pagination.PageParams, search string) ([]models.Supplier, int64, error) {
	query := s.db.Model(&models.Supplier{}).Where("company_id = ?", companyID)
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var suppliers []models.Supplier
	err := query.Order("name").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&suppliers).Error
	return suppliers, total, err
}

// GetByID loads a supplier scoped to a workspace
func (s *SupplierService) GetByID(companyID, id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	err := s.db.Where("company_id = ?", companyID).First(&supplier, id).Error
	if err != nil {
		return nil, fmt.Errorf("supplier not found")
	}
	return &supplier, nil
}

// Create adds a supplier
func (s *SupplierService) Create(companyID uint, input SupplierInput) (*models.Supplier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("supplier name is required")
	}

	supplier := &models.Supplier{
		CompanyID: companyID,
		Name:      name,
		Phone:     input.Phone,
		Email:     input.Email,
	}
	if err := s.db.Create(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

// Update edits a supplier
func (s *SupplierService) Update(companyID, id uint, input SupplierInput) (*models.Supplier, error) {
	supplier, err := s.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("supplier name is required")
	}

	supplier.Name = name
	supplier.Phone = input.Phone
	supplier.Email = input.Email

	if err := s.db.Save(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete removes a supplier unless purchases reference it
func (s *SupplierService) Delete(companyID, id uint) error {
	supplier, err := s.GetByID(companyID, id)
	if err != nil {
		return err
	}

	var count int64
	s.db.Model(&models.Purchase{}).Where("supplier_id = ?", id).Count(&count)
	if count > 0 {
		return fmt.Errorf("supplier has recorded purchases and cannot be deleted")
	}

	return s.db.Delete(supplier).Error
}
