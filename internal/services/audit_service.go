package services

import (
	"encoding/json"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/pkg/logger"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService() *AuditService {
	return &AuditService{
		db: database.GetDB(),
	}
}

// Log records a platform owner action. Audit failures only log, they
// never block the action itself.
func (s *AuditService) Log(actorEmail, action, targetType string, targetID *uint, detail, ip string, metadata map[string]interface{}) {
	entry := models.PlatformAuditLog{
		ActorEmail: actorEmail,
		Action:     action,
		TargetID:   targetID,
	}
	if targetType != "" {
		entry.TargetType = &targetType
	}
	if detail != "" {
		entry.Detail = &detail
	}
	if ip != "" {
		entry.IPAddress = &ip
	}
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}

	if err := s.db.Create(&entry).Error; err != nil {
		logger.GetLogger().Warnf("Failed to write audit log for %s: %v", action, err)
	}
}

// List pages audit entries with optional actor and action filters
func (s *AuditService) List(params pagination.PageParams, actorEmail, action string) ([]models.PlatformAuditLog, int64, error) {
	query := s.db.Model(&models.PlatformAuditLog{})

	if actorEmail != "" {
		query = query.Where("actor_email = ?", actorEmail)
	}
	if action != "" {
		query = query.Where("action = ?", action)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.PlatformAuditLog
	err := query.Order("id DESC").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&entries).Error
	return entries, total, err
}
