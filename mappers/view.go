package mappers

import (
	"feriwala/locale"
	"feriwala/model"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

var hundred = decimal.NewFromInt(100)

// DiscountPercent is the rounded saving against the regular price, 0 when there is none.
func DiscountPercent(regular, discount decimal.Decimal) int {
	if !regular.IsPositive() || discount.GreaterThanOrEqual(regular) || discount.IsNegative() {
		return 0
	}
	return int(regular.Sub(discount).Div(regular).Mul(hundred).Round(0).IntPart())
}

// ToProductView adds the discount badge and formatted prices the storefront shows.
func ToProductView(p *model.Product, tag language.Tag) model.ProductView {
	if p == nil {
		return model.ProductView{}
	}
	if p.Images == nil {
		p.Images = model.StringList{}
	}
	return model.ProductView{
		Product:                *p,
		DiscountPercent:        DiscountPercent(p.RegularPrice, p.DiscountPrice),
		FormattedRegularPrice:  locale.FormatAmount(tag, p.RegularPrice),
		FormattedDiscountPrice: locale.FormatAmount(tag, p.DiscountPrice),
	}
}

func ToProductViews(products []model.Product, tag language.Tag) []model.ProductView {
	views := make([]model.ProductView, len(products))
	for i := range products {
		views[i] = ToProductView(&products[i], tag)
	}
	return views
}
