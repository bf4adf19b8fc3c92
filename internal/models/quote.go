package models

// Status is the lifecycle flag of a quote. Nothing changes it automatically;
// only the operator does.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Label is the pt-BR name shown to the operator.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusApproved:
		return "Aprovado"
	case StatusCompleted:
		return "Concluído"
	case StatusCancelled:
		return "Cancelado"
	}
	return string(s)
}

// Quote is a priced proposal for a client job.
// A saved Quote is a snapshot: Total is computed once, when the quote is saved.
type Quote struct {
	// ID is the unique identifier for the quote (UUID format).
	ID string `json:"id"`

	// ClientName and ClientPhone are required to save a quote.
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`

	// ClientAddress is the optional job site address.
	ClientAddress string `json:"clientAddress,omitempty"`

	// Date is the creation date as a pt-BR date string (dd/mm/yyyy).
	// It is set once and kept when the quote is edited and saved again.
	Date string `json:"date"`

	// Items are the priced lines, in the order the operator entered them.
	Items []QuoteItem `json:"items"`

	// LaborCost is the flat additional charge (labor, freight) added to the items.
	LaborCost Number `json:"laborCost"`

	// Discount is reserved. Quotes built by the editor always carry 0.
	Discount Number `json:"discount"`

	// Total is items + labor - discount at the moment the quote was saved.
	Total float64 `json:"total"`

	Status Status `json:"status"`
}

// Clone returns a copy of q that shares no items with it.
func (q Quote) Clone() Quote {
	q.Items = CloneItems(q.Items)
	return q
}

// QuoteItem is one fabricated piece within a quote.
type QuoteItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	Name        string `json:"name"`
	Description string `json:"description"`

	// Width and Height are measurements in meters. They describe the piece only;
	// the operator prices it per unit.
	Width  Number `json:"width"`
	Height Number `json:"height"`

	// Quantity defaults to 1 when the item is added.
	Quantity Number `json:"quantity"`

	Material Material `json:"material" validate:"material"`

	// PricePerUnit is the unit price in reais.
	PricePerUnit Number `json:"pricePerUnit"`

	// Image is an optional photo as a data URL.
	Image string `json:"image,omitempty"`
}

// CloneItems copies an item list so the copy can be edited independently.
func CloneItems(items []QuoteItem) []QuoteItem {
	if items == nil {
		return nil
	}
	out := make([]QuoteItem, len(items))
	copy(out, items)
	return out
}
