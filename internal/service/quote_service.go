package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/serralheria/internal/calculator"
	"github.com/mmynk/serralheria/internal/format"
	"github.com/mmynk/serralheria/internal/models"
	"github.com/mmynk/serralheria/internal/storage"
)

// Storage keys. Each holds one JSON document.
const (
	QuotesKey   = "serralheria_quotes"
	BusinessKey = "serralheria_business"
)

// State is everything the application persists: the quote history, newest first,
// and the business profile.
type State struct {
	Quotes   []models.Quote         `json:"quotes"`
	Business models.BusinessProfile `json:"business"`
}

func (s State) clone() State {
	out := State{Business: s.Business}
	if s.Quotes != nil {
		out.Quotes = make([]models.Quote, len(s.Quotes))
		for i, q := range s.Quotes {
			out.Quotes[i] = q.Clone()
		}
	}
	return out
}

func (s State) indexOf(id string) int {
	for i, q := range s.Quotes {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// Option configures a QuoteService.
type Option func(*QuoteService)

// WithClock overrides the time source used to date new quotes.
func WithClock(now func() time.Time) Option {
	return func(s *QuoteService) { s.now = now }
}

// QuoteService owns the application state and is the only writer of the store.
// State changes go through Mutate: the change is applied to a copy, persisted,
// and only then made current.
type QuoteService struct {
	mu    sync.RWMutex
	store storage.Store
	state State
	now   func() time.Time
}

// NewQuoteService creates a QuoteService with the given storage backend.
// Call Load before serving reads.
func NewQuoteService(store storage.Store, opts ...Option) *QuoteService {
	s := &QuoteService{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory state with the stored one.
// Missing keys yield an empty history and an empty profile. A document that cannot be
// decoded is reported and the current state is kept.
func (s *QuoteService) Load(ctx context.Context) error {
	var next State
	if err := s.read(ctx, QuotesKey, &next.Quotes); err != nil {
		return err
	}
	if err := s.read(ctx, BusinessKey, &next.Business); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	slog.Info("State loaded", "quotes_count", len(next.Quotes))
	return nil
}

// Save writes the current state to the store.
func (s *QuoteService) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persist(ctx, s.state)
}

// Mutate applies fn to a copy of the state. When fn succeeds the copy is persisted and
// becomes the current state. When fn or the write fails, nothing changes.
func (s *QuoteService) Mutate(ctx context.Context, fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.state = next
	return nil
}

// SaveQuote finalizes the draft and stores the resulting snapshot.
// A new quote goes to the top of the history as pending, dated today. A draft that
// edits a saved quote replaces it in place and keeps its date and status.
func (s *QuoteService) SaveQuote(ctx context.Context, d *Draft) (models.Quote, error) {
	q, _, err := s.Upsert(ctx, d)
	return q, err
}

// Upsert is SaveQuote that also reports whether an existing quote was replaced.
func (s *QuoteService) Upsert(ctx context.Context, d *Draft) (q models.Quote, replaced bool, err error) {
	q, err = d.Finalize(s.now())
	if err != nil {
		return models.Quote{}, false, err
	}

	err = s.Mutate(ctx, func(st *State) error {
		if i := st.indexOf(q.ID); i >= 0 {
			q.Date = st.Quotes[i].Date
			q.Status = st.Quotes[i].Status
			st.Quotes[i] = q.Clone()
			replaced = true
			return nil
		}
		q.Date = format.Date(s.now())
		q.Status = models.StatusPending
		st.Quotes = append([]models.Quote{q.Clone()}, st.Quotes...)
		replaced = false
		return nil
	})
	if err != nil {
		slog.Error("SaveQuote failed", "quote_id", q.ID, "error", err)
		return models.Quote{}, false, err
	}

	slog.Info("Quote saved",
		"quote_id", q.ID,
		"items_count", len(q.Items),
		"total", q.Total,
		"replaced", replaced,
	)
	return q, replaced, nil
}

// DeleteQuote removes a saved quote.
func (s *QuoteService) DeleteQuote(ctx context.Context, id string) error {
	err := s.Mutate(ctx, func(st *State) error {
		i := st.indexOf(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
		}
		st.Quotes = append(st.Quotes[:i], st.Quotes[i+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	slog.Info("Quote deleted", "quote_id", id)
	return nil
}

// SetStatus changes the status of a saved quote. Its total is not recomputed.
func (s *QuoteService) SetStatus(ctx context.Context, id string, status models.Status) (models.Quote, error) {
	if !status.Valid() {
		return models.Quote{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var updated models.Quote
	err := s.Mutate(ctx, func(st *State) error {
		i := st.indexOf(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
		}
		st.Quotes[i].Status = status
		updated = st.Quotes[i].Clone()
		return nil
	})
	if err != nil {
		return models.Quote{}, err
	}
	slog.Info("Quote status changed", "quote_id", id, "status", status)
	return updated, nil
}

// UpdateBusiness replaces the business profile.
func (s *QuoteService) UpdateBusiness(ctx context.Context, profile models.BusinessProfile) error {
	return s.Mutate(ctx, func(st *State) error {
		st.Business = profile
		return nil
	})
}

// ClearAll erases every stored key and resets the state, profile included.
func (s *QuoteService) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	s.state = State{}
	slog.Warn("All data cleared")
	return nil
}

// Quotes returns a copy of the quote history, newest first.
func (s *QuoteService) Quotes() []models.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone().Quotes
}

// Quote returns a copy of one saved quote.
func (s *QuoteService) Quote(id string) (models.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.state.indexOf(id)
	if i < 0 {
		return models.Quote{}, fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}
	return s.state.Quotes[i].Clone(), nil
}

// Business returns the business profile.
func (s *QuoteService) Business() models.BusinessProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Business
}

// Search filters the history by client name or phone.
func (s *QuoteService) Search(query string) []models.Quote {
	return FilterQuotes(s.Quotes(), query)
}

// Summary computes the dashboard figures from the saved quotes.
func (s *QuoteService) Summary() calculator.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calculator.Summarize(s.state.Quotes)
}

func (s *QuoteService) read(ctx context.Context, key string, dst any) error {
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *QuoteService) persist(ctx context.Context, st State) error {
	quotes := st.Quotes
	if quotes == nil {
		quotes = []models.Quote{}
	}
	quotesJSON, err := json.Marshal(quotes)
	if err != nil {
		return fmt.Errorf("failed to encode quotes: %w", err)
	}
	businessJSON, err := json.Marshal(st.Business)
	if err != nil {
		return fmt.Errorf("failed to encode business profile: %w", err)
	}

	if err := s.store.PutAll(ctx, map[string][]byte{
		QuotesKey:   quotesJSON,
		BusinessKey: businessJSON,
	}); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}
