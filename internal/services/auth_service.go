package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/pkg/analytics"
	"github.com/Pincessis17/MerchFlow/pkg/config"
	"github.com/Pincessis17/MerchFlow/pkg/jwt"
	"github.com/Pincessis17/MerchFlow/pkg/logger"

	"gorm.io/gorm"
)

type AuthService struct {
	db              *gorm.DB
	users           *UserService
	jwtManager      *jwt.JWTManager
	analyticsClient *analytics.Client
	notifications   *NotificationService
}

func NewAuthService() *AuthService {
	return &AuthService{
		db:              database.GetDB(),
		users:           NewUserService(),
		jwtManager:      jwt.GetJWTManager(),
		analyticsClient: analytics.NewClient(config.GetConfig()),
		notifications:   NewNotificationService(),
	}
}

// LoginResult a successful login
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      *models.User `json:"user"`
}

// Login checks credentials, records the attempt and issues a token
func (s *AuthService) Login(email, password, ip, userAgent string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		s.recordAttempt(email, ip, userAgent, nil, false, "unknown email")
		return nil, fmt.Errorf("invalid email or password")
	}

	if !user.CheckPassword(password) {
		s.recordAttempt(email, ip, userAgent, &user.CompanyID, false, "wrong password")
		return nil, fmt.Errorf("invalid email or password")
	}

	if user.Company != nil {
		if user.Company.IsSuspended {
			s.recordAttempt(email, ip, userAgent, &user.CompanyID, false, "company suspended")
			return nil, fmt.Errorf("this workspace has been suspended, contact support")
		}
		if user.Company.Status == models.CompanyStatusCancelled {
			s.recordAttempt(email, ip, userAgent, &user.CompanyID, false, "company cancelled")
			return nil, fmt.Errorf("this workspace has been cancelled")
		}
	}

	cfg := config.GetConfig()
	isOwner := cfg.IsPlatformOwner(user.Email)

	token, err := s.jwtManager.GenerateToken(user.ID, user.CompanyID, user.Email, user.Name, user.Role, isOwner)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token")
	}

	s.recordAttempt(email, ip, userAgent, &user.CompanyID, true, "")
	if err := s.users.TouchLastLogin(user.ID); err != nil {
		logger.GetLogger().Warnf("Failed to update last login: %v", err)
	}

	s.analyticsClient.SendEvent("login", map[string]interface{}{
		"company_id": user.CompanyID,
		"role":       user.Role,
	})

	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(s.jwtManager.GetTokenDuration().Seconds()),
		User:      user,
	}, nil
}

// Register creates a new workspace with its first admin user
func (s *AuthService) Register(companyName, name, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return nil, fmt.Errorf("business name is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	cfg := config.GetConfig()
	trialEnd := time.Now().AddDate(0, 0, cfg.Platform.TrialDays)

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		company := models.Company{
			Name:        companyName,
			Email:       &email,
			Status:      models.CompanyStatusTrial,
			TrialEndsAt: &trialEnd,
		}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		var count int64
		tx.Model(&models.User{}).Where("company_id = ? AND email = ?", company.ID, email).Count(&count)
		if count > 0 {
			return fmt.Errorf("a user with this email already exists")
		}

		user = models.User{
			CompanyID: company.ID,
			Name:      name,
			Email:     email,
			Role:      models.UserRoleAdmin,
		}
		if err := user.SetPassword(password); err != nil {
			return err
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		user.Company = &company
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.CompanyID, user.Email, user.Name, user.Role, cfg.IsPlatformOwner(user.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token")
	}

	s.analyticsClient.SendEvent("sign_up", map[string]interface{}{
		"company_id": user.CompanyID,
	})

	if err := s.notifications.NotifyPlatform(models.NotificationCategoryTenant, "tenant.signup",
		"New workspace signup",
		fmt.Sprintf("%s signed up for a trial", companyName),
		&user.CompanyID, map[string]interface{}{"email": email}); err != nil {
		logger.GetLogger().Warnf("Failed to record signup notification: %v", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(s.jwtManager.GetTokenDuration().Seconds()),
		User:      &user,
	}, nil
}

// Elevate re-confirms the password and opens a timed elevation window
// for sensitive platform console actions.
func (s *AuthService) Elevate(userID uint, password string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return fmt.Errorf("user not found")
	}

	if !user.CheckPassword(password) {
		return fmt.Errorf("password is incorrect")
	}

	cfg := config.GetConfig()
	key := fmt.Sprintf("%s:platform:elevated:%d", cfg.Redis.Prefix, userID)
	ttl := time.Duration(cfg.Platform.ElevatedWindowSeconds) * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := database.GetRedis().Set(ctx, key, time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to open elevated session")
	}
	return nil
}

func (s *AuthService) recordAttempt(email, ip, userAgent string, companyID *uint, success bool, reason string) {
	attempt := models.LoginAttempt{
		Email:     email,
		CompanyID: companyID,
		Success:   success,
	}
	if ip != "" {
		attempt.IPAddress = &ip
	}
	if userAgent != "" {
		attempt.UserAgent = &userAgent
	}
	if reason != "" {
		attempt.Reason = &reason
	}
	if !success {
		var failures int64
		s.db.Model(&models.LoginAttempt{}).
			Where("email = ? AND success = ? AND created_at >= ?",
				email, false, time.Now().Add(-time.Hour)).
			Count(&failures)
		attempt.AbuseScore = int(failures) + 1
	}
	if err := s.db.Create(&attempt).Error; err != nil {
		logger.GetLogger().Warnf("Failed to record login attempt: %v", err)
	}
}
