// Package calculator prices quotes.
//
// Every function here is pure and total: blank or malformed numeric fields count as 0,
// nothing returns an error and nothing panics on partial input.
package calculator

import (
	"github.com/mmynk/serralheria/internal/models"
)

// Normalize resolves a field to a definite number. Blank fields are 0; negative
// values pass through unchanged.
func Normalize(n models.Number) float64 {
	return n.Value()
}

// NormalizeString resolves raw operator input the same way a stored field is resolved,
// so "12.5" and 12.5 price identically.
func NormalizeString(s string) float64 {
	return models.ParseNumber(s).Value()
}

// LineTotal is the price of one item: unit price × quantity.
// Width and height are descriptive only and never enter the price.
func LineTotal(item models.QuoteItem) float64 {
	return Normalize(item.PricePerUnit) * Normalize(item.Quantity)
}

// LineTotals returns LineTotal for each item, in item order.
func LineTotals(items []models.QuoteItem) []float64 {
	totals := make([]float64, len(items))
	for i, item := range items {
		totals[i] = LineTotal(item)
	}
	return totals
}

// Subtotal sums the line totals of all items. An empty list sums to 0.
func Subtotal(items []models.QuoteItem) float64 {
	var sum float64
	for _, item := range items {
		sum += LineTotal(item)
	}
	return sum
}

// ComputeTotal returns subtotal + labor - discount.
// The result is not floored: a discount larger than subtotal + labor gives a negative total.
func ComputeTotal(items []models.QuoteItem, laborCost, discount models.Number) float64 {
	return Subtotal(items) + Normalize(laborCost) - Normalize(discount)
}
