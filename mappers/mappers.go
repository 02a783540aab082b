package mappers

import (
	"feriwala/model"
)

// OrderLineFromProduct snapshots the catalog fields an order keeps.
// The line is priced at the product's current discount price; later catalog
// edits do not change placed orders.
func OrderLineFromProduct(p *model.Product, quantity int) model.OrderLine {
	return model.OrderLine{
		ProductID:     p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Image:         p.FirstImage(),
		DiscountPrice: p.DiscountPrice,
		Quantity:      quantity,
	}
}
