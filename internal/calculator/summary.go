package calculator

import "github.com/mmynk/serralheria/internal/models"

// CategoryTotals splits the value of saved quotes into items and extras.
type CategoryTotals struct {
	MaterialsValue float64 `json:"materialsValue"`
	LaborValue     float64 `json:"laborValue"`
}

// Summary holds the dashboard figures for a quote history.
type Summary struct {
	QuoteCount   int            `json:"quoteCount"`
	PendingCount int            `json:"pendingCount"`
	TotalQuoted  float64        `json:"totalQuoted"` // Sum of the stored quote totals
	Categories   CategoryTotals `json:"categories"`
}

// AggregateByCategory sums item subtotals and labor costs across saved quotes.
// It reads the stored item and labor fields of each quote; it never sees a draft.
func AggregateByCategory(quotes []models.Quote) CategoryTotals {
	var totals CategoryTotals
	for _, q := range quotes {
		totals.MaterialsValue += Subtotal(q.Items)
		totals.LaborValue += Normalize(q.LaborCost)
	}
	return totals
}

// Summarize computes the dashboard figures.
// TotalQuoted adds up the Total snapshot of each quote rather than recomputing it.
func Summarize(quotes []models.Quote) Summary {
	summary := Summary{
		QuoteCount: len(quotes),
		Categories: AggregateByCategory(quotes),
	}
	for _, q := range quotes {
		summary.TotalQuoted += q.Total
		if q.Status == models.StatusPending {
			summary.PendingCount++
		}
	}
	return summary
}
