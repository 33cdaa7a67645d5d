package models

// Customer a billable party invoices are addressed to
type Customer struct {
	BaseModel
	CompanyID uint    `json:"company_id" gorm:"not null;index"`
	Name      string  `json:"name" gorm:"not null;size:120"`
	Email     *string `json:"email" gorm:"size:120"`
	Phone     *string `json:"phone" gorm:"size:60"`
	Address   *string `json:"address" gorm:"size:255"`

	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

// TableName table name
func (c *Customer) TableName() string {
	return "customers"
}
