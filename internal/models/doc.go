// Package models defines the core domain models for the Serralheria quoting tool.
//
// # Models
//
//   - Quote: a priced proposal for a client job, saved as a snapshot
//   - QuoteItem: one priced line within a quote (a fabricated piece)
//   - BusinessProfile: the fabricator's own identity, printed on exported documents
//   - Number: a numeric form field that may be blank while it is being typed
//
// Items have no lifecycle of their own. They are created, edited and removed only
// through the quote that owns them.
//
// # Persistence
//
// Models are stored as JSON documents with camelCase field names, one document per
// storage key:
//
//	{"id": "...", "clientName": "João Silva", "items": [...], "laborCost": 50, "total": 430.5}
//
// A blank Number is written as null and read back from null, "" or any
// non-numeric string.
package models
