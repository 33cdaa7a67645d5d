package models

// FeatureAccess grants one optional feature to one user email inside a
// company. Revocation flips IsEnabled rather than deleting the row so the
// grant history survives.
type FeatureAccess struct {
	BaseModel
	CompanyID uint    `json:"company_id" gorm:"not null;index;uniqueIndex:uq_company_email_feature"`
	Email     string  `json:"email" gorm:"not null;size:120;index;uniqueIndex:uq_company_email_feature"`
	Feature   string  `json:"feature" gorm:"not null;size:50;index;uniqueIndex:uq_company_email_feature"`
	IsEnabled bool    `json:"is_enabled" gorm:"not null;default:true"`
	GrantedBy *string `json:"granted_by" gorm:"size:120"`

	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

// TableName table name
func (f *FeatureAccess) TableName() string {
	return "feature_access"
}

// Gated feature names
const (
	FeatureFinancial = "financial"
)

// AllowedFeatures features that can be granted
var AllowedFeatures = map[string]bool{
	FeatureFinancial: true,
}
