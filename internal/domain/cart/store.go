// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/tableside/internal/infrastructure/storage"
)

// Store maintains the ordered cart for the currently bound table, persisting
// the full item list under a table-scoped key on every change. One store per
// active table session; mutations are serialized by the internal mutex.
type Store struct {
	mu      sync.Mutex
	storage storage.Store
	logger  *logrus.Logger
	tableID string
	items   []Item
}

// NewStore creates a cart store backed by the given key-value cache
func NewStore(store storage.Store, logger *logrus.Logger) *Store {
	return &Store{
		storage: store,
		logger:  logger,
		items:   []Item{},
	}
}

// storageKey returns the persistence key for a table
func storageKey(tableID string) string {
	return fmt.Sprintf("cart_%s", tableID)
}

// SetTable binds the store to a table and hydrates the cart wholesale from
// the table's persisted key. Missing or malformed data degrades to an empty
// cart; hydration never fails.
func (s *Store) SetTable(ctx context.Context, tableID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tableID = tableID

	if tableID == "" {
		s.items = []Item{}
		return
	}

	restored := s.readPersisted(ctx, tableID)
	if equalItems(s.items, restored) {
		// Identical content, skip the redundant update.
		return
	}

	s.items = apply(s.items, action{kind: actionHydrate, items: restored})
}

// AddItem adds a product to the cart, incrementing quantity when the product
// is already present
func (s *Store) AddItem(ctx context.Context, product Product) {
	s.dispatch(ctx, action{kind: actionAdd, product: product})
}

// UpdateQuantity sets an item's quantity exactly; zero or negative removes
// the item
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	s.dispatch(ctx, action{kind: actionUpdateQuantity, itemID: id, quantity: quantity})
}

// RemoveItem removes an item unconditionally; no-op when absent
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.dispatch(ctx, action{kind: actionRemove, itemID: id})
}

// Clear empties the cart and erases its persisted representation
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = apply(s.items, action{kind: actionClear})

	if s.tableID == "" {
		return
	}
	if err := s.storage.Delete(ctx, storageKey(s.tableID)); err != nil {
		s.logger.WithError(err).WithField("table_id", s.tableID).
			Warn("Failed to erase persisted cart")
	}
}

// Items returns a copy of the current item list
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// TotalItems returns the sum of all quantities
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of price*quantity over all items
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// dispatch applies an action and persists the resulting list under the
// current table key
func (s *Store) dispatch(ctx context.Context, act action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := apply(s.items, act)
	if equalItems(s.items, next) {
		return
	}
	s.items = next
	s.persist(ctx)
}

// persist serializes the full item list to storage. Requires s.mu held. A
// cart with no bound table is not persisted.
func (s *Store) persist(ctx context.Context) {
	if s.tableID == "" {
		return
	}

	payload, err := json.Marshal(s.items)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to serialize cart")
		return
	}

	if err := s.storage.Set(ctx, storageKey(s.tableID), string(payload)); err != nil {
		s.logger.WithError(err).WithField("table_id", s.tableID).
			Warn("Failed to persist cart")
	}
}

// readPersisted loads and validates the stored item list for a table. Read
// failures and schema mismatches degrade silently to an empty cart.
func (s *Store) readPersisted(ctx context.Context, tableID string) []Item {
	value, err := s.storage.Get(ctx, storageKey(tableID))
	if errors.Is(err, storage.ErrNotFound) {
		return []Item{}
	} else if err != nil {
		s.logger.WithError(err).WithField("table_id", tableID).
			Warn("Failed to read persisted cart, starting empty")
		return []Item{}
	}

	var stored []Item
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		s.logger.WithField("table_id", tableID).
			Warn("Persisted cart is malformed, starting empty")
		return []Item{}
	}

	// Drop entries that violate the quantity invariant.
	items := make([]Item, 0, len(stored))
	for _, item := range stored {
		if item.ID == "" || item.Quantity < 1 {
			continue
		}
		items = append(items, item)
	}
	return items
}
