package services

import (
	"testing"

	"github.com/Pincessis17/MerchFlow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureGrantRevokeCycle(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewFeatureAccessService()

	has, err := service.HasFeature(company.ID, "sam@example.com", models.FeatureFinancial)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = service.Grant(company.ID, "Sam@Example.com", models.FeatureFinancial, "admin@example.com")
	require.NoError(t, err)

	has, err = service.HasFeature(company.ID, "sam@example.com", models.FeatureFinancial)
	require.NoError(t, err)
	assert.True(t, has)

	_, err = service.Grant(company.ID, "sam@example.com", models.FeatureFinancial, "admin@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already granted")

	require.NoError(t, service.Revoke(company.ID, "sam@example.com", models.FeatureFinancial))
	has, err = service.HasFeature(company.ID, "sam@example.com", models.FeatureFinancial)
	require.NoError(t, err)
	assert.False(t, has)

	// revoked grants are revived in place, not duplicated
	_, err = service.Grant(company.ID, "sam@example.com", models.FeatureFinancial, "admin@example.com")
	require.NoError(t, err)

	grants, err := service.ListByCompany(company.ID)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.True(t, grants[0].IsEnabled)
}

func TestFeatureGrantRejectsUnknownFeature(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewFeatureAccessService()
	_, err := service.Grant(company.ID, "sam@example.com", "teleportation", "admin@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown feature")
}

func TestFeatureGrantSurfacesLookupErrors(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	require.NoError(t, db.Migrator().DropTable(&models.FeatureAccess{}))

	// a failing lookup is returned to the caller, not treated as a
	// missing grant to be created
	service := NewFeatureAccessService()
	_, err := service.Grant(company.ID, "sam@example.com", models.FeatureFinancial, "admin@example.com")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "already granted")
}

func TestFeatureScopedToWorkspace(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")
	other := createTestCompany(t, db, "Rival Pharmacy")

	service := NewFeatureAccessService()
	_, err := service.Grant(company.ID, "sam@example.com", models.FeatureFinancial, "admin@example.com")
	require.NoError(t, err)

	has, err := service.HasFeature(other.ID, "sam@example.com", models.FeatureFinancial)
	require.NoError(t, err)
	assert.False(t, has)
}
