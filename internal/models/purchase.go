package models

import (
	"github.com/shopspring/decimal"
)

// Purchase a stock intake line; recording one increments product stock and
// re-averages its buying price.
type Purchase struct {
	BaseModel
	CompanyID  uint `json:"company_id" gorm:"not null;index"`
	SupplierID uint `json:"supplier_id" gorm:"not null"`
	ProductID  uint `json:"product_id" gorm:"not null"`

	Quantity  int             `json:"quantity" gorm:"not null;check:quantity > 0"`
	UnitCost  decimal.Decimal `json:"unit_cost" gorm:"type:decimal(12,4);not null;check:unit_cost >= 0"`
	LineTotal decimal.Decimal `json:"line_total" gorm:"type:decimal(12,2);not null"`

	Company  *Company  `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`
	Product  *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName table name
func (p *Purchase) TableName() string {
	return "purchases"
}
