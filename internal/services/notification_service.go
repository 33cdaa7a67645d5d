package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/pkg/config"
	"github.com/Pincessis17/MerchFlow/pkg/events"
	"github.com/Pincessis17/MerchFlow/pkg/logger"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationService struct {
	db  *gorm.DB
	bus *events.Bus
}

func NewNotificationService() *NotificationService {
	cfg := config.GetConfig()
	return &NotificationService{
		db:  database.GetDB(),
		bus: events.NewBus(database.GetRedis(), cfg.Redis.Prefix),
	}
}

// NotifyPlatform stores a platform console notification and publishes
// it on the live channel. Publish failures only log, the row is the
// source of truth.
func (s *NotificationService) NotifyPlatform(category, eventType, title, message string, companyID *uint, payload map[string]interface{}) error {
	notification := models.PlatformNotification{
		Category:  category,
		EventType: eventType,
		Title:     title,
		Message:   message,
		CompanyID: companyID,
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		notification.Payload = datatypes.JSON(raw)
	}

	if err := s.db.Create(&notification).Error; err != nil {
		return err
	}

	msg := events.NotificationMessage{
		ID:        notification.ID,
		Category:  category,
		EventType: eventType,
		Title:     title,
		Message:   message,
		Payload:   payload,
		Created:   notification.CreatedAt.Unix(),
	}
	if companyID != nil {
		msg.CompanyID = *companyID
	}
	if err := s.bus.PublishPlatformNotification(&msg); err != nil {
		logger.GetLogger().Warnf("Failed to publish notification %d: %v", notification.ID, err)
	}

	return nil
}

// NotifyTenant stores an in-workspace notification
func (s *NotificationService) NotifyTenant(companyID uint, category, eventType, title, message string, payload map[string]interface{}) error {
	notification := models.TenantNotification{
		CompanyID: companyID,
		Category:  category,
		EventType: eventType,
		Title:     title,
		Message:   message,
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		notification.Payload = datatypes.JSON(raw)
	}
	return s.db.Create(&notification).Error
}

// ListPlatform pages platform notifications, optionally unread only
func (s *NotificationService) ListPlatform(params pagination.PageParams, unreadOnly bool) ([]models.PlatformNotification, int64, error) {
	query := s.db.Model(&models.PlatformNotification{})
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.PlatformNotification
	err := query.Order("id DESC").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&notifications).Error
	return notifications, total, err
}

// UnreadPlatformCount unread platform notifications
func (s *NotificationService) UnreadPlatformCount() (int64, error) {
	var count int64
	err := s.db.Model(&models.PlatformNotification{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

// MarkPlatformRead marks one platform notification read
func (s *NotificationService) MarkPlatformRead(id uint) error {
	result := s.db.Model(&models.PlatformNotification{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

// MarkAllPlatformRead marks every platform notification read
func (s *NotificationService) MarkAllPlatformRead() (int64, error) {
	result := s.db.Model(&models.PlatformNotification{}).Where("is_read = ?", false).Update("is_read", true)
	return result.RowsAffected, result.Error
}

// ListTenant pages a workspace's notifications
func (s *NotificationService) ListTenant(companyID uint, params pagination.PageParams, unreadOnly bool) ([]models.TenantNotification, int64, error) {
	query := s.db.Model(&models.TenantNotification{}).Where("company_id = ?", companyID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.TenantNotification
	err := query.Order("id DESC").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&notifications).Error
	return notifications, total, err
}

// MarkTenantRead marks one workspace notification read
func (s *NotificationService) MarkTenantRead(companyID, id uint) error {
	result := s.db.Model(&models.TenantNotification{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

// PruneOlderThan removes read notifications older than the cutoff
func (s *NotificationService) PruneOlderThan(age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	result := s.db.Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.PlatformNotification{})
	return result.RowsAffected, result.Error
}
