package format

import "time"

// DateLayout is the pt-BR short date used for quote dates.
const DateLayout = "02/01/2006"

// Date formats t as dd/mm/yyyy.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}
