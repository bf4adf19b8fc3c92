package service

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mmynk/serralheria/internal/calculator"
	"github.com/mmynk/serralheria/internal/format"
	"github.com/mmynk/serralheria/internal/models"
)

// PreviewID identifies a quote exported before it was ever saved.
const PreviewID = "NOVO"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("material", func(fl validator.FieldLevel) bool {
		return models.Material(fl.Field().String()).Valid()
	})
	v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return models.Status(fl.Field().String()).Valid()
	})
	return v
}

// Draft is a quote being edited. It holds raw, possibly incomplete input and is
// turned into an immutable models.Quote by Finalize.
// A Draft is owned by one editor and is not safe for concurrent use.
type Draft struct {
	// ID, Date and Status are set when an existing quote is being edited.
	ID     string        `json:"id,omitempty"`
	Date   string        `json:"date,omitempty"`
	Status models.Status `json:"status,omitempty" validate:"omitempty,status"`

	ClientName    string             `json:"clientName" validate:"required"`
	ClientPhone   string             `json:"clientPhone" validate:"required"`
	ClientAddress string             `json:"clientAddress,omitempty"`
	Items         []models.QuoteItem `json:"items" validate:"dive"`
	LaborCost     models.Number      `json:"laborCost"`
}

// NewDraft returns an empty draft for a new quote.
func NewDraft() *Draft {
	return &Draft{}
}

// EditDraft returns a draft pre-filled from a saved quote.
// The draft owns its own copy of the items.
func EditDraft(q models.Quote) *Draft {
	return &Draft{
		ID:            q.ID,
		Date:          q.Date,
		Status:        q.Status,
		ClientName:    q.ClientName,
		ClientPhone:   q.ClientPhone,
		ClientAddress: q.ClientAddress,
		Items:         models.CloneItems(q.Items),
		LaborCost:     q.LaborCost,
	}
}

// AddItem appends a blank item with quantity 1 and returns its ID.
func (d *Draft) AddItem() string {
	item := models.QuoteItem{
		ID:       uuid.New().String(),
		Quantity: models.NumberOf(1),
		Material: models.MaterialIron,
	}
	d.Items = append(d.Items, item)
	return item.ID
}

// RemoveItem deletes the item with the given ID. It reports whether an item was removed.
func (d *Draft) RemoveItem(id string) bool {
	for i, item := range d.Items {
		if item.ID == id {
			d.Items = append(d.Items[:i:i], d.Items[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateItem applies fn to the item with the given ID. It reports whether the item exists.
func (d *Draft) UpdateItem(id string, fn func(item *models.QuoteItem)) bool {
	for i := range d.Items {
		if d.Items[i].ID == id {
			fn(&d.Items[i])
			d.Items[i].ID = id
			return true
		}
	}
	return false
}

// Subtotal is the live item subtotal of the draft.
func (d *Draft) Subtotal() float64 {
	return calculator.Subtotal(d.Items)
}

// Total is the live total of the draft. Drafts never carry a discount.
func (d *Draft) Total() float64 {
	return calculator.ComputeTotal(d.Items, d.LaborCost, models.NumberOf(0))
}

// Finalize validates the draft and returns the quote to save.
// The returned quote shares nothing with the draft, so later edits to the draft
// leave it untouched.
//
// Items without an ID, or repeating an earlier item's ID, get a new one. A blank
// material is read as Ferro, the default of AddItem.
func (d *Draft) Finalize(now time.Time) (models.Quote, error) {
	checked := *d
	checked.ClientName = strings.TrimSpace(d.ClientName)
	checked.ClientPhone = strings.TrimSpace(d.ClientPhone)
	checked.Items = prepareItems(d.Items)
	if err := validate.Struct(checked); err != nil {
		return models.Quote{}, fromValidator(err)
	}

	q := checked.snapshot()
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if d.Date == "" {
		q.Date = format.Date(now)
	}
	return q, nil
}

// Preview returns the quote to print without saving it. Only the client name is
// required, and the draft needs at least one item.
func (d *Draft) Preview(now time.Time) (models.Quote, error) {
	name := strings.TrimSpace(d.ClientName)
	if err := validate.Var(name, "required"); err != nil {
		return models.Quote{}, &ValidationError{Violations: map[string]string{"clientName": "required"}}
	}
	if len(d.Items) == 0 {
		return models.Quote{}, ErrEmptyQuote
	}

	checked := *d
	checked.ClientName = name
	checked.Items = prepareItems(d.Items)

	q := checked.snapshot()
	if q.ID == "" {
		q.ID = PreviewID
	}
	q.Date = format.Date(now)
	return q, nil
}

// prepareItems returns a copy of items with unique IDs and a material on every item.
func prepareItems(items []models.QuoteItem) []models.QuoteItem {
	out := models.CloneItems(items)
	seen := make(map[string]bool, len(out))
	for i := range out {
		if out[i].ID == "" || seen[out[i].ID] {
			out[i].ID = uuid.New().String()
		}
		seen[out[i].ID] = true
		if out[i].Material == "" {
			out[i].Material = models.MaterialIron
		}
	}
	return out
}

func (d *Draft) snapshot() models.Quote {
	items := models.CloneItems(d.Items)
	if items == nil {
		items = []models.QuoteItem{}
	}
	labor := models.NumberOf(calculator.Normalize(d.LaborCost))
	discount := models.NumberOf(0)

	status := d.Status
	if status == "" {
		status = models.StatusPending
	}

	return models.Quote{
		ID:            d.ID,
		ClientName:    d.ClientName,
		ClientPhone:   d.ClientPhone,
		ClientAddress: d.ClientAddress,
		Date:          d.Date,
		Items:         items,
		LaborCost:     labor,
		Discount:      discount,
		Total:         calculator.ComputeTotal(items, labor, discount),
		Status:        status,
	}
}
