package cart

import (
	"testing"

	"feriwala/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(name string, price int64) model.CartItem {
	return model.CartItem{
		ID:            uuid.New(),
		Name:          name,
		RegularPrice:  decimal.NewFromInt(price + 50),
		DiscountPrice: decimal.NewFromInt(price),
		Image:         "/uploads/" + name + ".jpg",
		Quantity:      7,
	}
}

func TestAdd(t *testing.T) {
	saree := item("Saree", 1200)
	panjabi := item("Panjabi", 800)

	var c Cart
	c = c.Add(saree)
	require.Len(t, c, 1)
	assert.Equal(t, 1, c[0].Quantity, "new lines start at one whatever the incoming quantity")

	c = c.Add(panjabi)
	c = c.Add(saree)
	require.Len(t, c, 2)
	assert.Equal(t, saree.ID, c[0].ID, "merging keeps line order")
	assert.Equal(t, 2, c[0].Quantity)
	assert.Equal(t, 1, c[1].Quantity)
}

func TestQuantityOps(t *testing.T) {
	saree := item("Saree", 1200)
	c := Cart{}.Add(saree)

	c = c.Increase(saree.ID).Increase(saree.ID)
	assert.Equal(t, 3, c[0].Quantity)

	c = c.Decrease(saree.ID).Decrease(saree.ID).Decrease(saree.ID)
	assert.Equal(t, 1, c[0].Quantity, "decrease stops at one")

	unknown := uuid.New()
	assert.Len(t, c.Increase(unknown), 1)
	assert.Len(t, c.Remove(unknown), 1)

	c = c.Remove(saree.ID)
	assert.Empty(t, c)
}

func TestTotals(t *testing.T) {
	saree := item("Saree", 1200)
	scarf := item("Scarf", 250)
	scarf.DiscountPrice = decimal.RequireFromString("249.50")

	c := Cart{}.Add(saree).Add(scarf).Add(scarf)

	assert.Equal(t, "1699", c.Subtotal().String())
	assert.Equal(t, "1769", c.Total(decimal.NewFromInt(70)).String())
	assert.Equal(t, 3, c.Quantity())
	assert.Equal(t, []string{"Saree", "Scarf"}, c.Names())
	assert.True(t, Cart{}.Subtotal().IsZero())
}

func TestMarshal(t *testing.T) {
	c := Cart{}.Add(item("Saree", 1200))
	raw, err := c.Marshal()
	require.NoError(t, err)

	back, err := Unmarshal(raw)
	require.NoError(t, err)
	assert.Equal(t, c[0].ID, back[0].ID)
	assert.True(t, c[0].DiscountPrice.Equal(back[0].DiscountPrice))

	empty, err := Cart(nil).Marshal()
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)

	_, err = Unmarshal("{not json")
	assert.Error(t, err)
}
