package services

import (
	"fmt"
	"strings"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"

	"gorm.io/gorm"
)

type CompanyService struct {
	db *gorm.DB
}

func NewCompanyService() *CompanyService {
	return &CompanyService{
		db: database.GetDB(),
	}
}

// GetByID loads a workspace
func (s *CompanyService) GetByID(id uint) (*models.Company, error) {
	var company models.Company
	err := s.db.First(&company, id).Error
	return &company, err
}

// UpdateSettingsInput workspace branding and invoice defaults
type UpdateSettingsInput struct {
	Name                *string `json:"name"`
	Email               *string `json:"email"`
	Phone               *string `json:"phone"`
	Address             *string `json:"address"`
	BrandColor          *string `json:"brand_color"`
	InvoiceFooter       *string `json:"invoice_footer"`
	PaymentInstructions *string `json:"payment_instructions"`
	InvoiceNumberPrefix *string `json:"invoice_number_prefix"`
}

// UpdateSettings applies the provided settings fields
func (s *CompanyService) UpdateSettings(companyID uint, input UpdateSettingsInput) (*models.Company, error) {
	var company models.Company
	if err := s.db.First(&company, companyID).Error; err != nil {
		return nil, fmt.Errorf("workspace not found")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("business name cannot be empty")
		}
		company.Name = name
	}
	if input.Email != nil {
		company.Email = input.Email
	}
	if input.Phone != nil {
		company.Phone = input.Phone
	}
	if input.Address != nil {
		company.Address = input.Address
	}
	if input.BrandColor != nil {
		color := strings.TrimSpace(*input.BrandColor)
		if !strings.HasPrefix(color, "#") || (len(color) != 4 && len(color) != 7) {
			return nil, fmt.Errorf("brand color must be a hex value like #5b8cff")
		}
		company.BrandColor = &color
	}
	if input.InvoiceFooter != nil {
		company.InvoiceFooter = input.InvoiceFooter
	}
	if input.PaymentInstructions != nil {
		company.PaymentInstructions = input.PaymentInstructions
	}
	if input.InvoiceNumberPrefix != nil {
		prefix := strings.TrimSpace(*input.InvoiceNumberPrefix)
		if prefix == "" || len(prefix) > 10 {
			return nil, fmt.Errorf("invoice prefix must be 1 to 10 characters")
		}
		company.InvoiceNumberPrefix = prefix
	}

	if err := s.db.Save(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}
