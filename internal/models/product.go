// internal/models/product.go
package models

import (
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the scale of every stored amount.
const MoneyPlaces = 2

// IsWholeCents reports whether d can be stored at MoneyPlaces without rounding.
func IsWholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyPlaces))
}

type Product struct {
	BaseModel
	Name        string              `json:"name" gorm:"uniqueIndex;size:200;not null"`
	Description string              `json:"description" gorm:"type:text"`
	Price       decimal.Decimal     `json:"price" gorm:"type:decimal(10,2);not null"`
	SalePrice   decimal.NullDecimal `json:"salePrice" gorm:"type:decimal(10,2)"`
	ImagePath   string              `json:"imagePath" gorm:"size:255"`
	Stock       int                 `json:"stock" gorm:"not null;default:0"`
	Category    Category            `json:"category" gorm:"type:varchar(32);not null;index"`
}

// OnSale reports whether a sale price is currently set.
func (p *Product) OnSale() bool {
	return p.SalePrice.Valid
}

// EffectivePrice is the price a new order line is charged: the sale price
// when one is set, the regular price otherwise.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.OnSale() {
		return p.SalePrice.Decimal
	}
	return p.Price
}
