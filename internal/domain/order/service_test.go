package order

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/tableside/internal/domain/cart"
	"github.com/your-org/tableside/internal/infrastructure/storage/memory"
	"github.com/your-org/tableside/internal/pkg/api"
)

type fakeBackend struct {
	submitted *api.SubmitOrderRequest
	submitErr error
	summary   *api.SessionSummary
}

func (f *fakeBackend) SubmitOrder(ctx context.Context, sessionID string, req *api.SubmitOrderRequest) error {
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitted = req
	return nil
}

func (f *fakeBackend) GetSessionSummary(ctx context.Context, sessionID string) (*api.SessionSummary, error) {
	return f.summary, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestService(backend *fakeBackend) (*Service, *cart.Store) {
	carts := cart.NewStore(memory.New(), testLogger())
	carts.SetTable(context.Background(), "t1")
	return NewService(backend, carts, testLogger()), carts
}

func TestSubmitForwardsCartAndClears(t *testing.T) {
	backend := &fakeBackend{}
	service, carts := newTestService(backend)
	ctx := context.Background()

	carts.AddItem(ctx, cart.Product{ID: "p1", Name: "Coffee", Price: 3.5})
	carts.AddItem(ctx, cart.Product{ID: "p1", Name: "Coffee", Price: 3.5})
	carts.AddItem(ctx, cart.Product{ID: "p2", Name: "Toast", Price: 8})

	require.NoError(t, service.Submit(ctx, "sess-1"))

	require.NotNil(t, backend.submitted)
	assert.NotEmpty(t, backend.submitted.ClientRequestID)
	require.Len(t, backend.submitted.Items, 2)
	assert.Equal(t, "p1", backend.submitted.Items[0].ProductID)
	assert.Equal(t, 2, backend.submitted.Items[0].Quantity)

	assert.Empty(t, carts.Items(), "cart is cleared after a successful submit")
}

func TestSubmitGeneratesFreshRequestID(t *testing.T) {
	backend := &fakeBackend{}
	service, carts := newTestService(backend)
	ctx := context.Background()

	carts.AddItem(ctx, cart.Product{ID: "p1", Name: "Coffee", Price: 3.5})
	require.NoError(t, service.Submit(ctx, "sess-1"))
	first := backend.submitted.ClientRequestID

	carts.AddItem(ctx, cart.Product{ID: "p1", Name: "Coffee", Price: 3.5})
	require.NoError(t, service.Submit(ctx, "sess-1"))

	assert.NotEqual(t, first, backend.submitted.ClientRequestID)
}

func TestSubmitFailureKeepsCart(t *testing.T) {
	backend := &fakeBackend{submitErr: assert.AnError}
	service, carts := newTestService(backend)
	ctx := context.Background()

	carts.AddItem(ctx, cart.Product{ID: "p1", Name: "Coffee", Price: 3.5})

	require.Error(t, service.Submit(ctx, "sess-1"))
	assert.Len(t, carts.Items(), 1, "failed submit leaves the cart intact for retry")
}

func TestSubmitRequiresSessionAndItems(t *testing.T) {
	backend := &fakeBackend{}
	service, carts := newTestService(backend)
	ctx := context.Background()

	assert.Error(t, service.Submit(ctx, ""), "no session")
	assert.Error(t, service.Submit(ctx, "sess-1"), "empty cart")

	carts.AddItem(ctx, cart.Product{ID: "p1", Name: "Coffee", Price: 3.5})
	assert.Error(t, service.Submit(ctx, ""))
	assert.Nil(t, backend.submitted)
}

func TestSummary(t *testing.T) {
	backend := &fakeBackend{summary: &api.SessionSummary{
		SessionID:    "sess-1",
		SessionTotal: 21.5,
	}}
	service, _ := newTestService(backend)

	summary, err := service.Summary(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.InDelta(t, 21.5, summary.SessionTotal, 1e-9)

	_, err = service.Summary(context.Background(), "")
	assert.Error(t, err)
}
