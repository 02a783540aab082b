// Package render builds the printable order invoice.
package render

import (
	"fmt"
	"html"
	"strings"

	"feriwala/config"
	"feriwala/locale"
	"feriwala/model"

	"github.com/yosssi/gohtml"
	"golang.org/x/text/language"
)

const invoiceStyle = `
body { font-family: "Noto Sans Bengali", "Hind Siliguri", sans-serif; font-size: 13px; margin: 24px; }
h1 { font-size: 20px; margin: 0 0 4px; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
th, td { border: 1px solid #ccc; padding: 4px 6px; }
.right { text-align: right; }
.center { text-align: center; }
.totals td { border: none; }
.shop { color: #555; }`

// InvoiceHTML renders a complete HTML document for order with captions and amounts in tag's language.
func InvoiceHTML(order *model.Order, shop config.ShopConfig, tag language.Tag) (string, error) {
	if order == nil {
		return "", fmt.Errorf("InvoiceHTML: nil order")
	}
	label := func(code string) string { return html.EscapeString(locale.Label(tag, code)) }

	var sb strings.Builder
	lang := "en"
	if base, _ := tag.Base(); base.String() == "bn" {
		lang = "bn"
	}

	sb.WriteString(`<!DOCTYPE html>`)
	sb.WriteString(fmt.Sprintf(`<html lang="%s"><head><meta charset="utf-8">`, lang))
	sb.WriteString(fmt.Sprintf(`<title>%s %s</title>`, label("invoice"), html.EscapeString(order.OrderNumber)))
	sb.WriteString(`<style>` + invoiceStyle + `</style></head><body>`)

	sb.WriteString(`<header>`)
	sb.WriteString(fmt.Sprintf(`<h1>%s</h1>`, html.EscapeString(shop.Name)))
	sb.WriteString(`<div class="shop">`)
	for _, line := range []string{shop.Address, shop.Phone, shop.Email} {
		if line != "" {
			sb.WriteString(fmt.Sprintf(`<div>%s</div>`, html.EscapeString(line)))
		}
	}
	sb.WriteString(`</div></header>`)

	sb.WriteString(fmt.Sprintf(`<h2>%s</h2>`, label("invoice")))
	sb.WriteString(`<table class="meta"><tbody>`)
	meta := [][2]string{
		{"order_number", order.OrderNumber},
		{"date", order.CreatedAt.Format("2006-01-02 15:04")},
		{"customer", order.Name},
		{"phone", order.Phone},
		{"address", order.Address},
		{"payment_method", order.PaymentMethod},
		{"status", locale.Label(tag, string(order.Status))},
	}
	if order.Note != "" {
		meta = append(meta, [2]string{"note", order.Note})
	}
	for _, m := range meta {
		sb.WriteString(fmt.Sprintf(`<tr><th>%s</th><td>%s</td></tr>`, label(m[0]), html.EscapeString(m[1])))
	}
	sb.WriteString(`</tbody></table>`)

	sb.WriteString(`<table class="lines"><thead><tr>`)
	sb.WriteString(`<th class="center">#</th>`)
	sb.WriteString(fmt.Sprintf(`<th>%s</th>`, label("product")))
	sb.WriteString(fmt.Sprintf(`<th class="right">%s</th>`, label("quantity")))
	sb.WriteString(fmt.Sprintf(`<th class="right">%s</th>`, label("price")))
	sb.WriteString(fmt.Sprintf(`<th class="right">%s</th>`, label("line_total")))
	sb.WriteString(`</tr></thead><tbody>`)
	for i, line := range order.Products {
		sb.WriteString(`<tr>`)
		sb.WriteString(fmt.Sprintf(`<td class="center">%d</td>`, i+1))
		sb.WriteString(fmt.Sprintf(`<td>%s</td>`, html.EscapeString(line.Name)))
		sb.WriteString(fmt.Sprintf(`<td class="right">%d</td>`, line.Quantity))
		sb.WriteString(fmt.Sprintf(`<td class="right">%s</td>`, locale.FormatAmount(tag, line.DiscountPrice)))
		sb.WriteString(fmt.Sprintf(`<td class="right">%s</td>`, locale.FormatAmount(tag, line.LineTotal())))
		sb.WriteString(`</tr>`)
	}
	sb.WriteString(`</tbody></table>`)

	sb.WriteString(`<table class="totals"><tbody>`)
	totals := []struct {
		code  string
		value string
	}{
		{"sub_total", locale.FormatAmount(tag, order.SubTotal)},
		{"delivery_charge", locale.FormatAmount(tag, order.DeliveryCharge)},
		{"grand_total", locale.FormatAmount(tag, order.TotalAmount)},
	}
	for _, t := range totals {
		caption := label(t.code)
		if t.code == "delivery_charge" && order.DeliveryZone != "" {
			caption += " (" + label(string(order.DeliveryZone)) + ")"
		}
		sb.WriteString(fmt.Sprintf(`<tr><td class="right">%s</td><td class="right">%s</td></tr>`, caption, t.value))
	}
	sb.WriteString(`</tbody></table>`)

	sb.WriteString(fmt.Sprintf(`<footer><p class="center">%s</p></footer>`, label("thank_you")))
	sb.WriteString(`</body></html>`)

	return gohtml.Format(sb.String()), nil
}
