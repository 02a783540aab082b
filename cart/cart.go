// Package cart keeps the shopper's checkout cart on the server, one list per session.
package cart

import (
	"encoding/json"
	"fmt"

	"feriwala/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StorageKey is the key the serialized cart is stored under.
const StorageKey = "checkoutCart"

// Cart is an ordered list of lines, unique by product id.
type Cart []model.CartItem

func (c Cart) index(id uuid.UUID) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Add merges item into the cart: an existing line gains one, a new line is appended with quantity 1.
func (c Cart) Add(item model.CartItem) Cart {
	if i := c.index(item.ID); i >= 0 {
		c[i].Quantity++
		return c
	}
	item.Quantity = 1
	return append(c, item)
}

func (c Cart) Increase(id uuid.UUID) Cart {
	if i := c.index(id); i >= 0 {
		c[i].Quantity++
	}
	return c
}

// Decrease takes one off the line but never below 1; use Remove to drop it.
func (c Cart) Decrease(id uuid.UUID) Cart {
	if i := c.index(id); i >= 0 && c[i].Quantity > 1 {
		c[i].Quantity--
	}
	return c
}

func (c Cart) Remove(id uuid.UUID) Cart {
	i := c.index(id)
	if i < 0 {
		return c
	}
	return append(c[:i], c[i+1:]...)
}

// Subtotal is Σ discountPrice × quantity.
func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c {
		sum = sum.Add(item.DiscountPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

func (c Cart) Total(fee decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Add(fee)
}

func (c Cart) Quantity() int {
	n := 0
	for _, item := range c {
		n += item.Quantity
	}
	return n
}

func (c Cart) Names() []string {
	names := make([]string, 0, len(c))
	for _, item := range c {
		names = append(names, item.Name)
	}
	return names
}

func (c Cart) Marshal() (string, error) {
	if c == nil {
		c = Cart{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal cart: %w", err)
	}
	return string(b), nil
}

// Unmarshal parses a stored cart. An empty string is an empty cart.
func Unmarshal(s string) (Cart, error) {
	if s == "" {
		return Cart{}, nil
	}
	var c Cart
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return Cart{}, fmt.Errorf("unmarshal cart: %w", err)
	}
	if c == nil {
		c = Cart{}
	}
	return c, nil
}
