package models

// Supplier a vendor purchases are recorded against
type Supplier struct {
	BaseModel
	CompanyID uint    `json:"company_id" gorm:"not null;index"`
	Name      string  `json:"name" gorm:"not null;size:120"`
	Phone     *string `json:"phone" gorm:"size:60"`
	Email     *string `json:"email" gorm:"size:120"`

	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

// TableName table name
func (s *Supplier) TableName() string {
	return "suppliers"
}
