package model

import (
	"github.com/shopspring/decimal"
)

// Coupon is a named discount applied at order-placement time. It is looked
// up by code and never stored against the order afterwards.
type Coupon struct {
	ID                 int64           `json:"id" db:"id"`
	Code               string          `json:"code" db:"code"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage" db:"discount_percentage"`
	Active             bool            `json:"active" db:"active"`
	// Nil means the coupon never expires.
	ExpiryDate *Date `json:"expiryDate,omitempty" db:"expiry_date"`
}

// Usable reports whether the coupon can be applied on the given date.
func (c *Coupon) Usable(today Date) bool {
	if !c.Active {
		return false
	}
	if c.ExpiryDate != nil && c.ExpiryDate.Before(today) {
		return false
	}
	return true
}
