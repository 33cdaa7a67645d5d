package services

import (
	"testing"

	"github.com/Pincessis17/MerchFlow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewUserService()
	user, err := service.Create(company.ID, "Jane Doe", "Jane@Example.com", "secret1", "")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, models.UserRoleStaff, user.Role)
	assert.True(t, user.CheckPassword("secret1"))

	_, err = service.Create(company.ID, "Copy", "jane@example.com", "secret1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = service.Create(company.ID, "Short", "short@example.com", "abc", "")
	assert.Error(t, err)

	_, err = service.Create(company.ID, "Weird", "weird@example.com", "secret1", "superuser")
	assert.Error(t, err)
}

func TestUserSameEmailAllowedAcrossWorkspaces(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	other := createTestCompany(t, db, "Rival Pharmacy")

	service := NewUserService()
	_, err := service.Create(company.ID, "Jane", "jane@example.com", "secret1", "")
	require.NoError(t, err)
	_, err = service.Create(other.ID, "Jane", "jane@example.com", "secret1", "")
	require.NoError(t, err)
}

func TestUserDeleteKeepsLastAdmin(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewUserService()
	admin, err := service.Create(company.ID, "Jane", "jane@example.com", "secret1", models.UserRoleAdmin)
	require.NoError(t, err)
	staff, err := service.Create(company.ID, "Sam", "sam@example.com", "secret1", models.UserRoleStaff)
	require.NoError(t, err)

	err = service.Delete(company.ID, admin.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "last admin")

	require.NoError(t, service.Delete(company.ID, staff.ID))

	second, err := service.Create(company.ID, "Ana", "ana@example.com", "secret1", models.UserRoleAdmin)
	require.NoError(t, err)
	require.NoError(t, service.Delete(company.ID, second.ID))
}

func TestUserChangePasswordVerifiesOld(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewUserService()
	user, err := service.Create(company.ID, "Jane", "jane@example.com", "secret1", "")
	require.NoError(t, err)

	require.Error(t, service.ChangePassword(user.ID, "wrong", "newsecret"))
	require.NoError(t, service.ChangePassword(user.ID, "secret1", "newsecret"))

	reloaded, err := service.GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.CheckPassword("newsecret"))
}
