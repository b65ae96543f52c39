// internal/domain/cart/entity.go
package cart

// Item represents one line of the table's pending order. Quantity is always
// at least 1; items never persist at zero or negative quantity.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Product is the input to an add: quantity is omitted and defaults to 1 on
// first add.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// equalItems reports element-by-element structural equality of two item lists
func equalItems(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
