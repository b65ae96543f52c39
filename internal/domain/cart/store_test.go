package cart

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/tableside/internal/infrastructure/storage"
	"github.com/your-org/tableside/internal/infrastructure/storage/memory"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// countingStore wraps a storage.Store and counts writes
type countingStore struct {
	storage.Store
	sets int
}

func (c *countingStore) Set(ctx context.Context, key, value string) error {
	c.sets++
	return c.Store.Set(ctx, key, value)
}

func newTestStore(t *testing.T) (*Store, *countingStore) {
	t.Helper()
	backing := &countingStore{Store: memory.New()}
	store := NewStore(backing, testLogger())
	store.SetTable(context.Background(), "t1")
	return store, backing
}

func TestAddItemDistinctIDs(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	counts := map[string]int{"a": 3, "b": 1, "c": 5}
	for id, n := range counts {
		for i := 0; i < n; i++ {
			store.AddItem(ctx, Product{ID: id, Name: "Item " + id, Price: 1.0})
		}
	}

	items := store.Items()
	require.Len(t, items, len(counts))
	for _, item := range items {
		assert.Equal(t, counts[item.ID], item.Quantity)
	}
}

func TestAddItemPreservesOrderAndAppends(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.AddItem(ctx, Product{ID: "a", Name: "A", Price: 1})
	store.AddItem(ctx, Product{ID: "b", Name: "B", Price: 2})
	store.AddItem(ctx, Product{ID: "a", Name: "A", Price: 1})
	store.AddItem(ctx, Product{ID: "c", Name: "C", Price: 3})

	items := store.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, "c", items[2].ID)
}

func TestUpdateQuantitySetsExactly(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.AddItem(ctx, Product{ID: "a", Name: "A", Price: 1})
	store.AddItem(ctx, Product{ID: "a", Name: "A", Price: 1})

	store.UpdateQuantity(ctx, "a", 7)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestUpdateQuantityRemovesAtZeroAndNegative(t *testing.T) {
	ctx := context.Background()

	for _, quantity := range []int{0, -1, -10} {
		store, _ := newTestStore(t)
		store.AddItem(ctx, Product{ID: "a", Name: "A", Price: 1})

		store.UpdateQuantity(ctx, "a", quantity)

		assert.Empty(t, store.Items(), "quantity %d should remove the item", quantity)
	}
}

func TestRemoveItemNoopWhenAbsent(t *testing.T) {
	store, backing := newTestStore(t)
	ctx := context.Background()

	store.AddItem(ctx, Product{ID: "a", Name: "A", Price: 1})
	setsBefore := backing.sets

	store.RemoveItem(ctx, "missing")

	require.Len(t, store.Items(), 1)
	assert.Equal(t, setsBefore, backing.sets, "no-op removal must not re-persist")

	store.RemoveItem(ctx, "a")
	assert.Empty(t, store.Items())
}

func TestTotalPriceRandomizedSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 25; run++ {
		store, _ := newTestStore(t)
		ctx := context.Background()

		products := make([]Product, 5)
		for i := range products {
			products[i] = Product{
				ID:    fmt.Sprintf("p%d", i),
				Name:  fmt.Sprintf("Product %d", i),
				Price: float64(rng.Intn(2000)) / 100,
			}
		}

		for op := 0; op < 50; op++ {
			product := products[rng.Intn(len(products))]
			switch rng.Intn(3) {
			case 0:
				store.AddItem(ctx, product)
			case 1:
				store.UpdateQuantity(ctx, product.ID, rng.Intn(6)-1)
			case 2:
				store.RemoveItem(ctx, product.ID)
			}
		}

		expected := 0.0
		for _, item := range store.Items() {
			require.GreaterOrEqual(t, item.Quantity, 1)
			expected += item.Price * float64(item.Quantity)
		}
		assert.InDelta(t, expected, store.TotalPrice(), 1e-9)
	}
}

func TestCoffeeScenario(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.AddItem(ctx, Product{ID: "x", Name: "Coffee", Price: 3.50})
	store.UpdateQuantity(ctx, "x", 2)

	assert.Equal(t, 2, store.TotalItems())
	assert.True(t, math.Abs(store.TotalPrice()-7.00) < 1e-9)
}

func TestPersistenceRoundTrip(t *testing.T) {
	backing := memory.New()
	store := NewStore(backing, testLogger())
	ctx := context.Background()

	store.SetTable(ctx, "t1")
	store.AddItem(ctx, Product{ID: "a", Name: "A", Price: 1.50})
	store.AddItem(ctx, Product{ID: "b", Name: "B", Price: 2.25})
	store.AddItem(ctx, Product{ID: "a", Name: "A", Price: 1.50})
	wantT1 := store.Items()

	store.SetTable(ctx, "t2")
	assert.Empty(t, store.Items())
	store.AddItem(ctx, Product{ID: "z", Name: "Z", Price: 9})

	store.SetTable(ctx, "t1")
	assert.Equal(t, wantT1, store.Items())
}

func TestHydrateIdempotent(t *testing.T) {
	backing := &countingStore{Store: memory.New()}
	store := NewStore(backing, testLogger())
	ctx := context.Background()

	store.SetTable(ctx, "t1")
	store.AddItem(ctx, Product{ID: "a", Name: "A", Price: 1})
	before := store.Items()

	// Re-hydrating with identical content must not change observable state.
	store.SetTable(ctx, "t1")
	store.SetTable(ctx, "t1")

	assert.Equal(t, before, store.Items())
}

func TestMalformedPersistedDataDegradesToEmpty(t *testing.T) {
	ctx := context.Background()

	payloads := []string{
		"not json at all",
		`{"an":"object"}`,
		`[{"id":1,"name":2,"price":"x","quantity":"y"}]`,
	}

	for _, payload := range payloads {
		backing := memory.New()
		require.NoError(t, backing.Set(ctx, "cart_t1", payload))

		store := NewStore(backing, testLogger())
		store.SetTable(ctx, "t1")

		assert.Empty(t, store.Items(), "payload %q should hydrate empty", payload)
	}
}

func TestHydrateDropsInvalidQuantities(t *testing.T) {
	ctx := context.Background()
	backing := memory.New()
	require.NoError(t, backing.Set(ctx, "cart_t1",
		`[{"id":"a","name":"A","price":1,"quantity":2},{"id":"b","name":"B","price":1,"quantity":0}]`))

	store := NewStore(backing, testLogger())
	store.SetTable(ctx, "t1")

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
}

func TestClearErasesPersistedCart(t *testing.T) {
	backing := memory.New()
	store := NewStore(backing, testLogger())
	ctx := context.Background()

	store.SetTable(ctx, "t1")
	store.AddItem(ctx, Product{ID: "a", Name: "A", Price: 1})
	store.Clear(ctx)

	assert.Empty(t, store.Items())
	_, err := backing.Get(ctx, "cart_t1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUnknownTableIsNotPersisted(t *testing.T) {
	backing := &countingStore{Store: memory.New()}
	store := NewStore(backing, testLogger())
	ctx := context.Background()

	store.AddItem(ctx, Product{ID: "a", Name: "A", Price: 1})

	assert.Equal(t, 1, store.TotalItems())
	assert.Zero(t, backing.sets)
}
