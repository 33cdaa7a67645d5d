package services

import (
	"testing"
	"time"

	"github.com/Pincessis17/MerchFlow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkPlatformReadFlow(t *testing.T) {
	db := setupTestDB(t)

	service := NewNotificationService()
	require.NoError(t, service.NotifyPlatform(models.NotificationCategorySystem, "system.test",
		"First", "first message", nil, nil))
	require.NoError(t, service.NotifyPlatform(models.NotificationCategorySystem, "system.test",
		"Second", "second message", nil, nil))

	unread, err := service.UnreadPlatformCount()
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	var first models.PlatformNotification
	require.NoError(t, db.Order("id").First(&first).Error)
	require.NoError(t, service.MarkPlatformRead(first.ID))

	unread, err = service.UnreadPlatformCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	assert.Error(t, service.MarkPlatformRead(9999))
}

func TestPruneOlderThanKeepsUnreadAndRecent(t *testing.T) {
	db := setupTestDB(t)

	stale := time.Now().Add(-120 * 24 * time.Hour)
	rows := []models.PlatformNotification{
		{Category: models.NotificationCategorySystem, EventType: "system.test",
			Title: "old read", Message: "m", IsRead: true,
			BaseModel: models.BaseModel{CreatedAt: stale}},
		{Category: models.NotificationCategorySystem, EventType: "system.test",
			Title: "old unread", Message: "m", IsRead: false,
			BaseModel: models.BaseModel{CreatedAt: stale}},
		{Category: models.NotificationCategorySystem, EventType: "system.test",
			Title: "fresh read", Message: "m", IsRead: true},
	}
	require.NoError(t, db.Create(&rows).Error)

	service := NewNotificationService()
	pruned, err := service.PruneOlderThan(90 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	var remaining []models.PlatformNotification
	require.NoError(t, db.Order("id").Find(&remaining).Error)
	require.Len(t, remaining, 2)
	assert.Equal(t, "old unread", remaining[0].Title)
	assert.Equal(t, "fresh read", remaining[1].Title)
}
