package search

import (
	"testing"

	"feriwala/model"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	assert.True(t, Match("Jamdani Saree", "saree"))
	assert.True(t, Match("Jamdani Saree", "  SAREE "))
	assert.True(t, Match("anything", ""))
	assert.False(t, Match("Panjabi", "saree"))

	// composed KO against KA + E sign + AA sign
	assert.True(t, Match("\u0995\u09cb\u099f", "\u0995\u09c7\u09be"))
}

func TestFilterProducts(t *testing.T) {
	products := []model.Product{
		{Name: "Jamdani Saree", Category: "Clothing"},
		{Name: "Cotton Panjabi", Category: "clothing"},
		{Name: "Electric Kettle", Category: "Kitchen"},
	}

	got := FilterProducts(products, "an")
	assert.Len(t, got, 2)

	assert.Len(t, FilterProducts(products, ""), 3)
	assert.Empty(t, FilterProducts(products, "phone"))

	byCat := ByCategory(products, "CLOTHING")
	assert.Len(t, byCat, 2)
	assert.Len(t, ByCategory(products, ""), 3)
}
