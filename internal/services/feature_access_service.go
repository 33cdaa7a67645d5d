package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"

	"gorm.io/gorm"
)

type FeatureAccessService struct {
	db *gorm.DB
}

func NewFeatureAccessService() *FeatureAccessService {
	return &FeatureAccessService{
		db: database.GetDB(),
	}
}

// HasFeature reports whether the feature is enabled for an email in a
// workspace
func (s *FeatureAccessService) HasFeature(companyID uint, email, feature string) (bool, error) {
	var count int64
	err := s.db.Model(&models.FeatureAccess{}).
		Where("company_id = ? AND email = ? AND feature = ? AND is_enabled = ?",
			companyID, strings.ToLower(email), feature, true).
		Count(&count).Error
	return count > 0, err
}

// ListByCompany all feature grants in a workspace
func (s *FeatureAccessService) ListByCompany(companyID uint) ([]models.FeatureAccess, error) {
	var grants []models.FeatureAccess
	err := s.db.Where("company_id = ?", companyID).Order("email, feature").Find(&grants).Error
	return grants, err
}

// Grant enables a feature for an email, reviving a revoked grant if
// one exists
func (s *FeatureAccessService) Grant(companyID uint, email, feature, grantedBy string) (*models.FeatureAccess, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if !models.AllowedFeatures[feature] {
		return nil, fmt.Errorf("unknown feature: %s", feature)
	}

	var grant models.FeatureAccess
	err := s.db.Where("company_id = ? AND email = ? AND feature = ?", companyID, email, feature).
		First(&grant).Error
	if err == nil {
		if grant.IsEnabled {
			return nil, fmt.Errorf("feature already granted")
		}
		grant.IsEnabled = true
		grant.GrantedBy = &grantedBy
		if err := s.db.Save(&grant).Error; err != nil {
			return nil, err
		}
		return &grant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	grant = models.FeatureAccess{
		CompanyID: companyID,
		Email:     email,
		Feature:   feature,
		IsEnabled: true,
		GrantedBy: &grantedBy,
	}
	if err := s.db.Create(&grant).Error; err != nil {
		return nil, err
	}
	return &grant, nil
}

// Revoke disables a feature grant
func (s *FeatureAccessService) Revoke(companyID uint, email, feature string) error {
	result := s.db.Model(&models.FeatureAccess{}).
		Where("company_id = ? AND email = ? AND feature = ?", companyID, strings.ToLower(email), feature).
		Update("is_enabled", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("grant not found")
	}
	return nil
}
