package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUpdateSettingsAppliesBrandingFields(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewCompanyService()
	updated, err := service.UpdateSettings(company.ID, UpdateSettingsInput{
		Name:                strPtr("Corner Pharmacy Ltd"),
		BrandColor:          strPtr("#112233"),
		InvoiceFooter:       strPtr("Thank you for your business"),
		PaymentInstructions: strPtr("Bank transfer to account 12-34"),
		InvoiceNumberPrefix: strPtr("CPL"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Corner Pharmacy Ltd", updated.Name)
	require.NotNil(t, updated.BrandColor)
	assert.Equal(t, "#112233", *updated.BrandColor)
	require.NotNil(t, updated.InvoiceFooter)
	assert.Equal(t, "Thank you for your business", *updated.InvoiceFooter)
	require.NotNil(t, updated.PaymentInstructions)
	assert.Equal(t, "Bank transfer to account 12-34", *updated.PaymentInstructions)
	assert.Equal(t, "CPL", updated.InvoiceNumberPrefix)
}

func TestUpdateSettingsLeavesOmittedFieldsAlone(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewCompanyService()
	updated, err := service.UpdateSettings(company.ID, UpdateSettingsInput{
		InvoiceFooter: strPtr("See you soon"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Corner Pharmacy", updated.Name)
	require.NotNil(t, updated.BrandColor)
	assert.Equal(t, "#5b8cff", *updated.BrandColor)
	assert.Equal(t, "INV", updated.InvoiceNumberPrefix)
}

func TestUpdateSettingsValidatesInput(t *testing.T) {
	db := setupTestDB(t)
	company := createTestCompany(t, db, "Corner Pharmacy")

	service := NewCompanyService()

	_, err := service.UpdateSettings(company.ID, UpdateSettingsInput{Name: strPtr("  ")})
	assert.Error(t, err)

	_, err = service.UpdateSettings(company.ID, UpdateSettingsInput{BrandColor: strPtr("5b8cff")})
	assert.Error(t, err)

	_, err = service.UpdateSettings(company.ID, UpdateSettingsInput{InvoiceNumberPrefix: strPtr("")})
	assert.Error(t, err)
}
