package render

import (
	"strings"
	"testing"
	"time"

	"feriwala/config"
	"feriwala/locale"
	"feriwala/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() *model.Order {
	return &model.Order{
		ID:             uuid.New(),
		OrderNumber:    "ORD000007",
		Name:           "Rahim <b>",
		Phone:          "01700000000",
		Address:        "Mirpur, Dhaka",
		Status:         model.StatusShipped,
		PaymentMethod:  model.DefaultPaymentMethod,
		DeliveryZone:   model.ZoneInsideDhaka,
		SubTotal:       decimal.NewFromInt(1200),
		DeliveryCharge: decimal.NewFromInt(60),
		TotalAmount:    decimal.NewFromInt(1260),
		CreatedAt:      time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Products: []model.OrderLine{
			{Name: "Kettle", DiscountPrice: decimal.NewFromInt(450), Quantity: 2},
			{Name: "Pan", DiscountPrice: decimal.NewFromInt(300), Quantity: 1},
		},
	}
}

var shop = config.ShopConfig{Name: "Feriwala", Phone: "01800000000", Address: "Dhaka"}

func TestInvoiceHTML(t *testing.T) {
	t.Run("should render English captions and amounts", func(t *testing.T) {
		doc, err := InvoiceHTML(sampleOrder(), shop, locale.English)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
		assert.Contains(t, doc, `lang="en"`)
		assert.Contains(t, doc, "ORD000007")
		assert.Contains(t, doc, "Grand total")
		assert.Contains(t, doc, "Tk 1,260")
		assert.Contains(t, doc, "Shipped")
		assert.Contains(t, doc, "Inside Dhaka")
		assert.Contains(t, doc, "Rahim &lt;b&gt;")
		assert.NotContains(t, doc, "Rahim <b>")
	})

	t.Run("should render Bengali captions", func(t *testing.T) {
		doc, err := InvoiceHTML(sampleOrder(), shop, locale.Bengali)
		require.NoError(t, err)
		assert.Contains(t, doc, `lang="bn"`)
		assert.Contains(t, doc, "সর্বমোট")
		assert.Contains(t, doc, "টাকা")
	})

	t.Run("should fail without an order", func(t *testing.T) {
		_, err := InvoiceHTML(nil, shop, locale.English)
		assert.Error(t, err)
	})
}
