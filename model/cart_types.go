package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one line of the checkout cart, keyed by product id.
type CartItem struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	RegularPrice  decimal.Decimal `json:"regularPrice"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
	Image         string          `json:"image"`
	Quantity      int             `json:"quantity"`
}

// CartItemFromProduct builds a quantity-one line from a catalog product.
func CartItemFromProduct(p Product) CartItem {
	return CartItem{
		ID:            p.ID,
		Name:          p.Name,
		RegularPrice:  p.RegularPrice,
		DiscountPrice: p.DiscountPrice,
		Image:         p.FirstImage(),
		Quantity:      1,
	}
}
