package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseService struct {
	db *gorm.DB
}

func NewExpenseService() *ExpenseService {
	return &ExpenseService{
		db: database.GetDB(),
	}
}

// ExpenseInput create and update fields
type ExpenseInput struct {
	Description string          `json:"description" binding:"required"`
	Category    *string         `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	IncurredAt  *time.Time      `json:"incurred_at"`
}

// List pages expenses with optional date range and category filter
func (s *ExpenseService) List(companyID uint, params pagination.PageParams, from, to *time.Time, category string) ([]models.Expense, int64, error) {
	query := s.db.Model(&models.Expense{}).Where("company_id = ?", companyID)

	if from != nil {
		query = query.Where("incurred_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("incurred_at < ?", *to)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var expenses []models.Expense
	err := query.Order("incurred_at DESC, id DESC").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&expenses).Error
	return expenses, total, err
}

// GetByID loads an expense scoped to a workspace
func (s *ExpenseService) GetByID(companyID, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.Where("company_id = ?", companyID).First(&expense, id).Error
	if err != nil {
		return nil, fmt.Errorf("expense not found")
	}
	return &expense, nil
}

// Create records an expense, defaulting the date to now
func (s *ExpenseService) Create(companyID uint, input ExpenseInput) (*models.Expense, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if !input.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("amount must be positive")
	}

	incurredAt := time.Now()
	if input.IncurredAt != nil {
		incurredAt = *input.IncurredAt
	}

	expense := &models.Expense{
		CompanyID:   companyID,
		Description: description,
		Category:    input.Category,
		Amount:      input.Amount.Round(2),
		IncurredAt:  incurredAt,
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

// Update edits an expense
func (s *ExpenseService) Update(companyID, id uint, input ExpenseInput) (*models.Expense, error) {
	expense, err := s.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if !input.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("amount must be positive")
	}

	expense.Description = description
	expense.Category = input.Category
	expense.Amount = input.Amount.Round(2)
	if input.IncurredAt != nil {
		expense.IncurredAt = *input.IncurredAt
	}

	if err := s.db.Save(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(companyID, id uint) error {
	expense, err := s.GetByID(companyID, id)
	if err != nil {
		return err
	}
	return s.db.Delete(expense).Error
}
