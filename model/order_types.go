package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusActive    OrderStatus = "active"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses is the tab order used by the admin console.
var OrderStatuses = []OrderStatus{StatusActive, StatusShipped, StatusDelivered, StatusCancelled}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type DeliveryZone string

const (
	ZoneInsideDhaka  DeliveryZone = "insideDhaka"
	ZoneOutsideDhaka DeliveryZone = "outsideDhaka"
)

func (z DeliveryZone) Valid() bool {
	return z == ZoneInsideDhaka || z == ZoneOutsideDhaka
}

// DeliveryCharge holds the two flat courier fees.
type DeliveryCharge struct {
	InsideDhaka  decimal.Decimal `db:"inside_dhaka" json:"insideDhaka"`
	OutsideDhaka decimal.Decimal `db:"outside_dhaka" json:"outsideDhaka"`
}

func (c DeliveryCharge) Validate() error {
	if c.InsideDhaka.IsNegative() || c.OutsideDhaka.IsNegative() {
		return NewValidationError(MsgInvalidDeliveryCharge, "deliveryCharge")
	}
	return nil
}

// Fee returns the charge for a zone.
func (c DeliveryCharge) Fee(zone DeliveryZone) (decimal.Decimal, error) {
	switch zone {
	case ZoneInsideDhaka:
		return c.InsideDhaka, nil
	case ZoneOutsideDhaka:
		return c.OutsideDhaka, nil
	}
	return decimal.Zero, NewValidationError(MsgInvalidDeliveryZone, "deliveryZone")
}

// ZoneFor maps a submitted fee back to its zone. Inside Dhaka wins when both fees are equal.
func (c DeliveryCharge) ZoneFor(fee decimal.Decimal) (DeliveryZone, bool) {
	switch {
	case fee.Equal(c.InsideDhaka):
		return ZoneInsideDhaka, true
	case fee.Equal(c.OutsideDhaka):
		return ZoneOutsideDhaka, true
	}
	return "", false
}

const DefaultPaymentMethod = "Cash on Delivery"

type Order struct {
	ID             uuid.UUID       `db:"id" json:"_id"`
	OrderNumber    string          `db:"order_number" json:"orderNumber"`
	Name           string          `db:"name" json:"name"`
	Phone          string          `db:"phone" json:"phone"`
	Address        string          `db:"address" json:"address"`
	Note           string          `db:"note" json:"note"`
	Status         OrderStatus     `db:"status" json:"status"`
	PaymentMethod  string          `db:"payment_method" json:"paymentMethod"`
	DeliveryZone   DeliveryZone    `db:"delivery_zone" json:"deliveryZone"`
	SubTotal       decimal.Decimal `db:"sub_total" json:"subTotal"`
	DeliveryCharge decimal.Decimal `db:"delivery_charge" json:"deliveryCharge"`
	TotalAmount    decimal.Decimal `db:"total_amount" json:"totalAmount"`
	Products       []OrderLine     `db:"-" json:"products"`
	CreatedAt      time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updatedAt"`
}

// ProductNames lists the ordered product names in line order.
func (o Order) ProductNames() []string {
	names := make([]string, 0, len(o.Products))
	for _, line := range o.Products {
		names = append(names, line.Name)
	}
	return names
}

type OrderLine struct {
	OrderID       uuid.UUID       `db:"order_id" json:"-"`
	LineNo        int             `db:"line_no" json:"-"`
	ProductID     uuid.UUID       `db:"product_id" json:"productId"`
	Name          string          `db:"name" json:"name"`
	Category      string          `db:"category" json:"category"`
	Image         string          `db:"image" json:"image"`
	DiscountPrice decimal.Decimal `db:"discount_price" json:"discountPrice"`
	Quantity      int             `db:"quantity" json:"quantity"`
}

// LineTotal is price × quantity.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.DiscountPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Dashboard summarises the order book for the admin landing page.
type Dashboard struct {
	TotalSales     decimal.Decimal `json:"totalSales"`
	TotalDelivered int             `json:"totalDelivered"`
	TotalOrders    int             `json:"totalOrders"`
	TopProducts    []ProductSales  `json:"topProducts"`
	ActiveOrders   []Order         `json:"activeOrders"`
}

type ProductSales struct {
	Name     string `db:"name" json:"name"`
	Category string `db:"category" json:"category"`
	Quantity int    `db:"quantity" json:"quantity"`
}
