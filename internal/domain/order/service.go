// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/tableside/internal/domain/cart"
	"github.com/your-org/tableside/internal/pkg/api"
)

// API is the slice of the backend the order service needs
type API interface {
	SubmitOrder(ctx context.Context, sessionID string, req *api.SubmitOrderRequest) error
	GetSessionSummary(ctx context.Context, sessionID string) (*api.SessionSummary, error)
}

// Service submits the cart as an order and fetches the session bill
type Service struct {
	backend API
	cart    *cart.Store
	logger  *logrus.Logger
}

// NewService creates an order service bound to a cart store
func NewService(backend API, cartStore *cart.Store, logger *logrus.Logger) *Service {
	return &Service{
		backend: backend,
		cart:    cartStore,
		logger:  logger,
	}
}

// Submit forwards the current cart to the backend as a new order and clears
// the cart on success. Each submission carries a fresh client-generated
// idempotency token.
func (s *Service) Submit(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("cannot submit order without a session")
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return fmt.Errorf("cannot submit an empty cart")
	}

	request := &api.SubmitOrderRequest{
		ClientRequestID: uuid.New().String(),
		Items:           make([]api.OrderItemRequest, len(items)),
	}
	for i, item := range items {
		request.Items[i] = api.OrderItemRequest{
			ProductID: item.ID,
			Quantity:  item.Quantity,
		}
	}

	if err := s.backend.SubmitOrder(ctx, sessionID, request); err != nil {
		return fmt.Errorf("order submission failed: %w", err)
	}

	s.cart.Clear(ctx)

	s.logger.WithFields(logrus.Fields{
		"session_id":        sessionID,
		"client_request_id": request.ClientRequestID,
		"items":             len(request.Items),
	}).Info("Order submitted")

	return nil
}

// Summary fetches the running bill for a session
func (s *Service) Summary(ctx context.Context, sessionID string) (*api.SessionSummary, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("cannot load summary without a session")
	}
	return s.backend.GetSessionSummary(ctx, sessionID)
}
