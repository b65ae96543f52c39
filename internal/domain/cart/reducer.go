// internal/domain/cart/reducer.go
package cart

// Cart mutations are expressed as tagged actions processed by a pure
// transition function. Persistence observes the resulting state; the reducer
// itself has no side effects.

type actionKind int

const (
	actionAdd actionKind = iota
	actionUpdateQuantity
	actionRemove
	actionClear
	actionHydrate
)

type action struct {
	kind     actionKind
	product  Product
	itemID   string
	quantity int
	items    []Item
}

// apply returns the item list after act. The input slice is never mutated.
func apply(items []Item, act action) []Item {
	switch act.kind {
	case actionAdd:
		next := make([]Item, len(items))
		copy(next, items)

		for i := range next {
			if next[i].ID == act.product.ID {
				next[i].Quantity++
				return next
			}
		}
		// New items append at the end; existing order is preserved.
		return append(next, Item{
			ID:       act.product.ID,
			Name:     act.product.Name,
			Price:    act.product.Price,
			Quantity: 1,
		})

	case actionUpdateQuantity:
		next := make([]Item, 0, len(items))
		for _, item := range items {
			if item.ID != act.itemID {
				next = append(next, item)
				continue
			}
			// Non-positive quantity removes the item entirely.
			if act.quantity <= 0 {
				continue
			}
			item.Quantity = act.quantity
			next = append(next, item)
		}
		return next

	case actionRemove:
		next := make([]Item, 0, len(items))
		for _, item := range items {
			if item.ID != act.itemID {
				next = append(next, item)
			}
		}
		return next

	case actionClear:
		return []Item{}

	case actionHydrate:
		next := make([]Item, len(act.items))
		copy(next, act.items)
		return next
	}

	return items
}
