package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrQuoteNotFound is returned when no saved quote has the requested ID.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrInvalidStatus is returned for a status outside the known set.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrEmptyQuote is returned when a document is requested for a quote without items.
	ErrEmptyQuote = errors.New("quote has no items")
)

// ValidationError reports the draft fields that block a save or an export.
// Violations maps a field path (e.g. "clientName", "items[0].material") to the failed rule.
type ValidationError struct {
	Violations map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for field := range e.Violations {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, e.Violations[field])
	}
	return "invalid quote: " + strings.Join(parts, ", ")
}

// fromValidator converts validator errors into a ValidationError.
// Other errors are returned unchanged.
func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	violations := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		violations[field] = fe.Tag()
	}
	return &ValidationError{Violations: violations}
}
