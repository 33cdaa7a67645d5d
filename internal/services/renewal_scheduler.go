package services

import (
	"fmt"
	"time"

	"github.com/Pincessis17/MerchFlow/pkg/logger"

	"github.com/robfig/cron/v3"
)

// notificationRetention is how long read platform notifications are
// kept before the nightly prune removes them.
const notificationRetention = 90 * 24 * time.Hour

// RenewalScheduler runs the daily renewal reminder and retention sweeps
type RenewalScheduler struct {
	platform      *PlatformService
	notifications *NotificationService
	cron          *cron.Cron
	running       bool
}

func NewRenewalScheduler(platform *PlatformService) *RenewalScheduler {
	return &RenewalScheduler{
		platform:      platform,
		notifications: NewNotificationService(),
		cron:          cron.New(),
	}
}

// Start schedules the sweep every morning at eight
func (s *RenewalScheduler) Start() error {
	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	_, err := s.cron.AddFunc("0 8 * * *", func() {
		sent, err := s.platform.SendRenewalReminders()
		if err != nil {
			logger.GetLogger().Errorf("Renewal reminder sweep failed: %v", err)
			return
		}
		if sent > 0 {
			logger.GetLogger().Infof("Renewal reminder sweep sent %d reminders", sent)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule renewal sweep: %v", err)
	}

	_, err = s.cron.AddFunc("30 3 * * *", func() {
		pruned, err := s.notifications.PruneOlderThan(notificationRetention)
		if err != nil {
			logger.GetLogger().Errorf("Notification prune failed: %v", err)
			return
		}
		if pruned > 0 {
			logger.GetLogger().Infof("Pruned %d read notifications", pruned)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule notification prune: %v", err)
	}

	s.cron.Start()
	s.running = true
	logger.GetLogger().Info("Renewal reminder scheduler started")
	return nil
}

// Stop halts the scheduler
func (s *RenewalScheduler) Stop() {
	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
	logger.GetLogger().Info("Renewal reminder scheduler stopped")
}
