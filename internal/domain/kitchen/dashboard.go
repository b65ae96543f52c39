// internal/domain/kitchen/dashboard.go
package kitchen

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/tableside/internal/pkg/api"
	"github.com/your-org/tableside/internal/pkg/auth"
)

// API is the slice of the backend the dashboard needs
type API interface {
	ListOrders(ctx context.Context, status, token string) ([]api.KitchenOrder, error)
	UpdateOrderStatus(ctx context.Context, orderID, status, token string) error
}

// Snapshot is a point-in-time copy of the dashboard state for rendering
type Snapshot struct {
	Pending     []api.KitchenOrder `json:"pending"`
	Preparing   []api.KitchenOrder `json:"preparing"`
	OrderErrors map[string]string  `json:"orderErrors"`
	UpdatingID  string             `json:"updatingOrderId,omitempty"`
	LastError   string             `json:"lastError,omitempty"`
}

// Dashboard keeps the staff-facing pending and preparing order lists in sync
// with the backend via fixed-interval polling. Polling is suspended entirely
// while any single order's status mutation is outstanding so a stale server
// snapshot cannot overwrite the optimistic list edits; a deliberate coarse
// guard rather than per-order suspension.
type Dashboard struct {
	mu       sync.Mutex
	backend  API
	tokens   *auth.TokenHolder
	logger   *logrus.Logger
	interval time.Duration

	// onUnauthorized is invoked after the credential has been cleared; the
	// caller decides how to route the operator back to login.
	onUnauthorized func()

	pending     []api.KitchenOrder
	preparing   []api.KitchenOrder
	orderErrors map[string]string
	updatingID  string
	lastError   string
}

// NewDashboard creates a kitchen dashboard poller
func NewDashboard(backend API, tokens *auth.TokenHolder, interval time.Duration, onUnauthorized func(), logger *logrus.Logger) *Dashboard {
	return &Dashboard{
		backend:        backend,
		tokens:         tokens,
		logger:         logger,
		interval:       interval,
		onUnauthorized: onUnauthorized,
		pending:        []api.KitchenOrder{},
		preparing:      []api.KitchenOrder{},
		orderErrors:    make(map[string]string),
	}
}

// Run polls until ctx is cancelled. The first poll fires immediately; the
// ticker is disposed on return so no poll runs after teardown.
func (d *Dashboard) Run(ctx context.Context) {
	d.Poll(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Kitchen polling stopped")
			return
		case <-ticker.C:
			d.Poll(ctx)
		}
	}
}

// Poll runs one polling cycle: both lists are fetched concurrently and joined
// before the state write. The cycle is skipped outright while a status
// mutation is outstanding.
func (d *Dashboard) Poll(ctx context.Context) {
	d.mu.Lock()
	if d.updatingID != "" {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	token := d.tokens.Token(ctx)
	if token == "" {
		d.handleUnauthorized(ctx)
		return
	}

	var (
		wg           sync.WaitGroup
		pending      []api.KitchenOrder
		preparing    []api.KitchenOrder
		pendingErr   error
		preparingErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		pending, pendingErr = d.backend.ListOrders(ctx, api.StatusPending, token)
	}()
	go func() {
		defer wg.Done()
		preparing, preparingErr = d.backend.ListOrders(ctx, api.StatusPreparing, token)
	}()
	wg.Wait()

	if pendingErr != nil || preparingErr != nil {
		err := pendingErr
		if err == nil {
			err = preparingErr
		}

		if api.IsUnauthorized(err) {
			d.handleUnauthorized(ctx)
			return
		}

		d.logger.WithError(err).Warn("Failed to poll kitchen orders")
		d.mu.Lock()
		d.lastError = "failed to load orders"
		d.mu.Unlock()
		return
	}

	d.mu.Lock()
	d.pending = pending
	d.preparing = preparing
	d.lastError = ""
	d.mu.Unlock()
}

// UpdateOrderStatus requests a PENDING->PREPARING or PREPARING->READY
// transition for one order. Success moves the order between lists
// optimistically; a non-401 failure records a per-order error and leaves
// list membership untouched so the order stays actionable for retry.
func (d *Dashboard) UpdateOrderStatus(ctx context.Context, orderID, newStatus string) {
	token := d.tokens.Token(ctx)
	if token == "" {
		d.handleUnauthorized(ctx)
		return
	}

	d.mu.Lock()
	d.updatingID = orderID
	delete(d.orderErrors, orderID)
	d.mu.Unlock()

	err := d.backend.UpdateOrderStatus(ctx, orderID, newStatus, token)

	unauthorized := false

	d.mu.Lock()
	switch {
	case err != nil && api.IsUnauthorized(err):
		unauthorized = true

	case err != nil:
		d.orderErrors[orderID] = api.ServerMessage(err, "failed to update order")
		d.logger.WithError(err).WithField("order_id", orderID).
			Warn("Failed to update kitchen order status")

	case newStatus == api.StatusPreparing:
		for i, order := range d.pending {
			if order.OrderID == orderID {
				d.pending = append(d.pending[:i], d.pending[i+1:]...)
				order.Status = api.StatusPreparing
				d.preparing = append(d.preparing, order)
				break
			}
		}

	case newStatus == api.StatusReady:
		for i, order := range d.preparing {
			if order.OrderID == orderID {
				d.preparing = append(d.preparing[:i], d.preparing[i+1:]...)
				break
			}
		}
	}
	// Always the final step, regardless of outcome.
	d.updatingID = ""
	d.mu.Unlock()

	if unauthorized {
		d.handleUnauthorized(ctx)
	}
}

// Snapshot returns a copy of the dashboard state
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	snapshot := Snapshot{
		Pending:     make([]api.KitchenOrder, len(d.pending)),
		Preparing:   make([]api.KitchenOrder, len(d.preparing)),
		OrderErrors: make(map[string]string, len(d.orderErrors)),
		UpdatingID:  d.updatingID,
		LastError:   d.lastError,
	}
	copy(snapshot.Pending, d.pending)
	copy(snapshot.Preparing, d.preparing)
	for id, message := range d.orderErrors {
		snapshot.OrderErrors[id] = message
	}
	return snapshot
}

// handleUnauthorized clears the credential and hands control back to the
// login entry point
func (d *Dashboard) handleUnauthorized(ctx context.Context) {
	d.logger.Warn("Kitchen credential missing or rejected, clearing")
	if err := d.tokens.ClearToken(ctx); err != nil {
		d.logger.WithError(err).Warn("Failed to clear kitchen credential")
	}
	if d.onUnauthorized != nil {
		d.onUnauthorized()
	}
}
