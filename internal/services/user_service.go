package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService() *UserService {
	return &UserService{
		db: database.GetDB(),
	}
}

// GetByID loads a user by primary key
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	return &user, err
}

// GetWithCompany loads a user with its company preloaded
func (s *UserService) GetWithCompany(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Company").First(&user, id).Error
	return &user, err
}

// GetByEmail finds the user a login email resolves to
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Company").
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Order("id").First(&user).Error
	return &user, err
}

// ListByCompany returns every user in a workspace
func (s *UserService) ListByCompany(companyID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.Where("company_id = ?", companyID).Order("id").Find(&users).Error
	return users, err
}

// Create adds a user to a workspace. Emails are unique per workspace.
func (s *UserService) Create(companyID uint, name, email, password, role string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	if role == "" {
		role = models.UserRoleStaff
	}
	if role != models.UserRoleStaff && role != models.UserRoleAdmin && role != models.UserRoleAccountant {
		return nil, fmt.Errorf("invalid role")
	}

	var count int64
	s.db.Model(&models.User{}).Where("company_id = ? AND email = ?", companyID, email).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("a user with this email already exists")
	}

	user := &models.User{
		CompanyID: companyID,
		Name:      name,
		Email:     email,
		Role:      role,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateRole changes a user's role inside a workspace
func (s *UserService) UpdateRole(companyID, userID uint, role string) (*models.User, error) {
	if role != models.UserRoleStaff && role != models.UserRoleAdmin && role != models.UserRoleAccountant {
		return nil, fmt.Errorf("invalid role")
	}

	var user models.User
	if err := s.db.Where("company_id = ?", companyID).First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}

	user.Role = role
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword verifies the old password before setting a new one
func (s *UserService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return fmt.Errorf("user not found")
	}

	if !user.CheckPassword(oldPassword) {
		return fmt.Errorf("current password is incorrect")
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	return s.db.Save(&user).Error
}

// TouchLastLogin stamps the login time
func (s *UserService) TouchLastLogin(userID uint) error {
	now := time.Now()
	return s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("last_login_at", &now).Error
}

// Delete removes a user from a workspace. The last admin cannot be
// removed.
func (s *UserService) Delete(companyID, userID uint) error {
	var user models.User
	if err := s.db.Where("company_id = ?", companyID).First(&user, userID).Error; err != nil {
		return fmt.Errorf("user not found")
	}

	if user.Role == models.UserRoleAdmin {
		var admins int64
		s.db.Model(&models.User{}).
			Where("company_id = ? AND role = ?", companyID, models.UserRoleAdmin).
			Count(&admins)
		if admins <= 1 {
			return fmt.Errorf("cannot remove the last admin")
		}
	}

	return s.db.Delete(&user).Error
}
