package services

import (
	"fmt"
	"strings"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"

	"gorm.io/gorm"
)

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService() *CustomerService {
	return &CustomerService{
		db: database.GetDB(),
	}
}

// CustomerInput create and update fields
type CustomerInput struct {
	Name    string  `json:"name" binding:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// List pages a workspace's customers
func (s *CustomerService) List(companyID uint, params pagination.PageParams, search string) ([]models.Customer, int64, error) {
	query := s.db.Model(&models.Customer{}).Where("company_id = ?", companyID)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []models.Customer
	err := query.Order("name").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&customers).Error
	return customers, total, err
}

// GetByID loads a customer scoped to a workspace
func (s *CustomerService) GetByID(companyID, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.Where("company_id = ?", companyID).First(&customer, id).Error
	if err != nil {
		return nil, fmt.Errorf("customer not found")
	}
	return &customer, nil
}

// Create adds a customer
func (s *CustomerService) Create(companyID uint, input CustomerInput) (*models.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("customer name is required")
	}

	customer := &models.Customer{
		CompanyID: companyID,
		Name:      name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
	}
	if err := s.db.Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// Update edits a customer
func (s *CustomerService) Update(companyID, id uint, input CustomerInput) (*models.Customer, error) {
	customer, err := s.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("customer name is required")
	}

	customer.Name = name
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address

	if err := s.db.Save(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer unless invoices reference it
func (s *CustomerService) Delete(companyID, id uint) error {
	customer, err := s.GetByID(companyID, id)
	if err != nil {
		return err
	}

	var count int64
	s.db.Model(&models.Invoice{}).Where("customer_id = ?", id).Count(&count)
	if count > 0 {
		return fmt.Errorf("customer has invoices and cannot be deleted")
	}

	return s.db.Delete(customer).Error
}
