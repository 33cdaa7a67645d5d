package models

import (
	"github.com/shopspring/decimal"
)

// Product inventory item; code is unique per company
type Product struct {
	BaseModel
	CompanyID uint    `json:"company_id" gorm:"not null;index;uniqueIndex:uq_company_product_code"`
	Code      string  `json:"code" gorm:"not null;size:80;uniqueIndex:uq_company_product_code"`
	Name      string  `json:"name" gorm:"not null;size:120"`
	Unit      *string `json:"unit" gorm:"size:40"`
	Category  *string `json:"category" gorm:"size:80"`

	BuyingPrice decimal.Decimal `json:"buying_price" gorm:"type:decimal(12,4);not null;default:0;check:buying_price >= 0"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null;default:0;check:price >= 0"`
	Quantity    int             `json:"quantity" gorm:"not null;default:0;check:quantity >= 0"`

	// stored as plain string, matching the CSV column
	ExpiryDate *string `json:"expiry_date" gorm:"size:20"`

	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

// TableName table name
func (p *Product) TableName() string {
	return "products"
}
