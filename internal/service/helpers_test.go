package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/serralheria/internal/models"
	"github.com/mmynk/serralheria/internal/storage"
	"github.com/mmynk/serralheria/internal/storage/sqlite"
)

var errDiskFull = errors.New("disk full")

// flakyStore wraps a real store and fails writes while failWrites is set.
type flakyStore struct {
	storage.Store
	failWrites bool
}

func (f *flakyStore) PutAll(ctx context.Context, values map[string][]byte) error {
	if f.failWrites {
		return errDiskFull
	}
	return f.Store.PutAll(ctx, values)
}

var fixedNow = time.Date(2024, time.May, 10, 9, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// setupService creates a loaded QuoteService over a temp SQLite database.
func setupService(t *testing.T) (*QuoteService, *flakyStore) {
	t.Helper()
	store := &flakyStore{Store: newTestStore(t)}
	svc := NewQuoteService(store, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, svc.Load(context.Background()))
	return svc, store
}

// newDraft builds a valid draft with one priced item.
func newDraft(name, phone string, price, qty float64) *Draft {
	d := NewDraft()
	d.ClientName = name
	d.ClientPhone = phone
	id := d.AddItem()
	d.UpdateItem(id, func(item *models.QuoteItem) {
		item.Name = "Portão de Correr"
		item.PricePerUnit = models.NumberOf(price)
		item.Quantity = models.NumberOf(qty)
	})
	return d
}
