// internal/pkg/api/types.go
package api

// Kitchen order lifecycle statuses. Created server-side; staff transition
// PENDING -> PREPARING -> READY. The client only reads and requests
// transitions.
const (
	StatusPending   = "PENDING"
	StatusPreparing = "PREPARING"
	StatusReady     = "READY"
)

// Product represents a menu product
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// Category represents a menu category with its products
type Category struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// MenuResponse is the payload of GET /tables/{tableId}/menu. Fetching the
// menu also binds the table to a backend session.
type MenuResponse struct {
	SessionID  string     `json:"sessionId"`
	Categories []Category `json:"categories"`
}

// OrderItemRequest is one line of a submitted order
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// SubmitOrderRequest is the payload of POST /sessions/{sessionId}/orders.
// ClientRequestID is a client-generated idempotency token.
type SubmitOrderRequest struct {
	ClientRequestID string             `json:"clientRequestId"`
	Items           []OrderItemRequest `json:"items"`
}

// SummaryItem is one line of a past order in the session bill
type SummaryItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// SummaryOrder is one past order in the session bill
type SummaryOrder struct {
	ID         string        `json:"id"`
	Status     string        `json:"status"`
	Items      []SummaryItem `json:"items"`
	OrderTotal float64       `json:"orderTotal"`
}

// SessionSummary is the payload of GET /sessions/{sessionId}/summary
type SessionSummary struct {
	SessionID    string         `json:"sessionId"`
	TableID      string         `json:"tableId"`
	Status       string         `json:"status"`
	Orders       []SummaryOrder `json:"orders"`
	SessionTotal float64        `json:"sessionTotal"`
}

// KitchenOrderItem is one line of a kitchen order
type KitchenOrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// KitchenOrder represents an order on the kitchen dashboard
type KitchenOrder struct {
	OrderID     string             `json:"orderId"`
	TableNumber int                `json:"tableNumber"`
	CreatedAt   string             `json:"createdAt"`
	Status      string             `json:"status"`
	Items       []KitchenOrderItem `json:"items"`
}
