// Package search does the storefront's substring and category matching.
package search

import (
	"strings"

	"feriwala/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes s to NFC and case-folds it, so composed and decomposed
// Bengali vowel signs and mixed-case Latin compare equal.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// Match reports whether query occurs in name. An empty query matches everything.
func Match(name, query string) bool {
	q := Fold(query)
	if q == "" {
		return true
	}
	return strings.Contains(Fold(name), q)
}

// FilterProducts keeps the products whose name Matches query.
func FilterProducts(products []model.Product, query string) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if Match(p.Name, query) {
			out = append(out, p)
		}
	}
	return out
}

// ByCategory keeps products whose category equals category after folding.
func ByCategory(products []model.Product, category string) []model.Product {
	c := Fold(category)
	if c == "" {
		return products
	}
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if Fold(p.Category) == c {
			out = append(out, p)
		}
	}
	return out
}
