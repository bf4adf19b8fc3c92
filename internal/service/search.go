package service

import (
	"strings"

	"github.com/mmynk/serralheria/internal/models"
)

// FilterQuotes keeps the quotes whose client name contains query, ignoring case, or
// whose phone contains query as typed. Phone punctuation is not normalized.
// An empty query keeps every quote. Order is preserved.
func FilterQuotes(quotes []models.Quote, query string) []models.Quote {
	if query == "" {
		return quotes
	}
	needle := strings.ToLower(query)

	var matched []models.Quote
	for _, q := range quotes {
		if strings.Contains(strings.ToLower(q.ClientName), needle) ||
			strings.Contains(q.ClientPhone, query) {
			matched = append(matched, q)
		}
	}
	return matched
}
