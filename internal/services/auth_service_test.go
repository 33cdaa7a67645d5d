package services

import (
	"testing"

	"github.com/Pincessis17/MerchFlow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesWorkspaceWithAdmin(t *testing.T) {
	db := setupTestDB(t)

	service := NewAuthService()
	result, err := service.Register("Corner Pharmacy", "Jane Doe", "Jane@Example.com", "secret1")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "jane@example.com", result.User.Email)
	assert.Equal(t, models.UserRoleAdmin, result.User.Role)

	var company models.Company
	require.NoError(t, db.First(&company, result.User.CompanyID).Error)
	assert.Equal(t, "Corner Pharmacy", company.Name)
	assert.Equal(t, models.CompanyStatusTrial, company.Status)
	require.NotNil(t, company.TrialEndsAt)
}

func TestLoginChecksCredentials(t *testing.T) {
	setupTestDB(t)

	service := NewAuthService()
	_, err := service.Register("Corner Pharmacy", "Jane Doe", "jane@example.com", "secret1")
	require.NoError(t, err)

	result, err := service.Login("JANE@example.com", "secret1", "127.0.0.1", "go-test/1.0")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Greater(t, result.ExpiresIn, int64(0))

	_, err = service.Login("jane@example.com", "wrong", "127.0.0.1", "go-test/1.0")
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", err.Error())

	// unknown accounts get the same generic error
	_, err = service.Login("nobody@example.com", "secret1", "127.0.0.1", "go-test/1.0")
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestLoginBlockedForSuspendedWorkspace(t *testing.T) {
	db := setupTestDB(t)

	service := NewAuthService()
	result, err := service.Register("Corner Pharmacy", "Jane Doe", "jane@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Company{}).
		Where("id = ?", result.User.CompanyID).
		Update("is_suspended", true).Error)

	_, err = service.Login("jane@example.com", "secret1", "127.0.0.1", "go-test/1.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suspended")

	var attempt models.LoginAttempt
	require.NoError(t, db.Order("id DESC").First(&attempt).Error)
	assert.False(t, attempt.Success)
	require.NotNil(t, attempt.Reason)
	assert.Equal(t, "company suspended", *attempt.Reason)
}

func TestLoginAttemptsRecorded(t *testing.T) {
	db := setupTestDB(t)

	service := NewAuthService()
	_, err := service.Register("Corner Pharmacy", "Jane Doe", "jane@example.com", "secret1")
	require.NoError(t, err)

	result, err := service.Login("jane@example.com", "secret1", "10.0.0.9", "go-test/1.0")
	require.NoError(t, err)

	var attempt models.LoginAttempt
	require.NoError(t, db.Order("id DESC").First(&attempt).Error)
	assert.True(t, attempt.Success)
	require.NotNil(t, attempt.IPAddress)
	assert.Equal(t, "10.0.0.9", *attempt.IPAddress)
	require.NotNil(t, attempt.UserAgent)
	assert.Equal(t, "go-test/1.0", *attempt.UserAgent)
	require.NotNil(t, attempt.CompanyID)
	assert.Equal(t, result.User.CompanyID, *attempt.CompanyID)
	assert.Equal(t, 0, attempt.AbuseScore)
}

func TestLoginFailuresRaiseAbuseScore(t *testing.T) {
	db := setupTestDB(t)

	service := NewAuthService()
	_, err := service.Register("Corner Pharmacy", "Jane Doe", "jane@example.com", "secret1")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = service.Login("jane@example.com", "wrong", "10.0.0.9", "go-test/1.0")
		require.Error(t, err)
	}

	var attempts []models.LoginAttempt
	require.NoError(t, db.Where("success = ?", false).Order("id").Find(&attempts).Error)
	require.Len(t, attempts, 3)
	assert.Equal(t, 1, attempts[0].AbuseScore)
	assert.Equal(t, 3, attempts[2].AbuseScore)
}
