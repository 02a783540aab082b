package database

import (
	"context"
	"testing"
	"time"

	"feriwala/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeTestOrder(t *testing.T, db *sqlx.DB, status model.OrderStatus, created time.Time, lines ...model.OrderLine) model.Order {
	t.Helper()
	ctx := context.Background()

	tx, err := db.Beginx()
	require.NoError(t, err)
	defer tx.Rollback()

	number, err := NextOrderNumberInTx(ctx, tx)
	require.NoError(t, err)

	o := model.Order{
		ID:             uuid.New(),
		OrderNumber:    number,
		Name:           "Rahim",
		Phone:          "01700000000",
		Address:        "Mirpur, Dhaka",
		Status:         status,
		PaymentMethod:  model.DefaultPaymentMethod,
		DeliveryZone:   model.ZoneInsideDhaka,
		SubTotal:       decimal.NewFromInt(100),
		DeliveryCharge: decimal.NewFromInt(70),
		TotalAmount:    decimal.NewFromInt(170),
		Products:       lines,
		CreatedAt:      created.UTC(),
		UpdatedAt:      created.UTC(),
	}
	require.NoError(t, InsertOrderInTx(ctx, tx, &o))
	require.NoError(t, tx.Commit())
	return o
}

func testLine(name string, qty int) model.OrderLine {
	return model.OrderLine{
		ProductID:     uuid.New(),
		Name:          name,
		Category:      "Clothing",
		DiscountPrice: decimal.NewFromInt(50),
		Quantity:      qty,
	}
}

func TestOrders(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("should number orders sequentially", func(t *testing.T) {
		db, teardown := setupTestDB(t)
		defer teardown()

		first := placeTestOrder(t, db, model.StatusActive, base, testLine("Saree", 1))
		second := placeTestOrder(t, db, model.StatusActive, base, testLine("Saree", 1))
		assert.Equal(t, "ORD000001", first.OrderNumber)
		assert.Equal(t, "ORD000002", second.OrderNumber)
	})

	t.Run("should store and load lines in order", func(t *testing.T) {
		db, teardown := setupTestDB(t)
		defer teardown()

		o := placeTestOrder(t, db, model.StatusActive, base, testLine("Saree", 2), testLine("Panjabi", 1))

		got, err := GetOrder(ctx, db, o.ID)
		require.NoError(t, err)
		require.Len(t, got.Products, 2)
		assert.Equal(t, "Saree", got.Products[0].Name)
		assert.Equal(t, 2, got.Products[0].Quantity)
		assert.Equal(t, "Panjabi", got.Products[1].Name)
		assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(170)))
	})

	t.Run("should list newest first and filter by status", func(t *testing.T) {
		db, teardown := setupTestDB(t)
		defer teardown()

		old := placeTestOrder(t, db, model.StatusDelivered, base, testLine("Saree", 1))
		recent := placeTestOrder(t, db, model.StatusActive, base.Add(time.Hour), testLine("Panjabi", 3))

		all, err := ListOrders(ctx, db, "")
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, recent.ID, all[0].ID)
		assert.Equal(t, old.ID, all[1].ID)
		require.Len(t, all[0].Products, 1)
		assert.Equal(t, 3, all[0].Products[0].Quantity)

		delivered, err := ListOrders(ctx, db, model.StatusDelivered)
		require.NoError(t, err)
		require.Len(t, delivered, 1)
		assert.Equal(t, old.ID, delivered[0].ID)
		require.Len(t, delivered[0].Products, 1)
	})

	t.Run("should update status", func(t *testing.T) {
		db, teardown := setupTestDB(t)
		defer teardown()

		o := placeTestOrder(t, db, model.StatusActive, base, testLine("Saree", 1))

		tx, err := db.Beginx()
		require.NoError(t, err)
		updated, err := UpdateOrderStatusInTx(ctx, tx, o.ID, model.StatusShipped)
		require.NoError(t, err)
		require.NoError(t, tx.Commit())
		assert.Equal(t, model.StatusShipped, updated.Status)

		tx, err = db.Beginx()
		require.NoError(t, err)
		defer tx.Rollback()
		_, err = UpdateOrderStatusInTx(ctx, tx, uuid.New(), model.StatusShipped)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestInitializeOrderSequence(t *testing.T) {
	ctx := context.Background()
	db, teardown := setupTestDB(t)
	defer teardown()

	placeTestOrder(t, db, model.StatusActive, time.Now(), testLine("Saree", 1))
	_, err := db.Exec(`UPDATE orders SET order_number = 'ORD000041'`)
	require.NoError(t, err)

	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, InitializeOrderSequence(ctx, tx))
	next, err := NextOrderNumberInTx(ctx, tx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, "ORD000042", next)
}
