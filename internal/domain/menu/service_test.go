package menu

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/tableside/internal/pkg/api"
)

type fakeBackend struct {
	response *api.MenuResponse
	err      error
}

func (f *fakeBackend) GetMenu(ctx context.Context, tableID string) (*api.MenuResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestLoadFlattensCategories(t *testing.T) {
	backend := &fakeBackend{response: &api.MenuResponse{
		SessionID: "sess-1",
		Categories: []api.Category{
			{ID: "c1", Name: "Drinks", Products: []api.Product{
				{ID: "p1", Name: "Coffee", Price: 3.5},
				{ID: "p2", Name: "Juice", Price: 5},
			}},
			{ID: "c2", Name: "Food", Products: []api.Product{
				{ID: "p3", Name: "Toast", Price: 8},
			}},
		},
	}}

	service := NewService(backend, testLogger())
	loaded, err := service.Load(context.Background(), "12")

	require.NoError(t, err)
	assert.Equal(t, "sess-1", loaded.SessionID)
	require.Len(t, loaded.Products, 3)
	assert.Equal(t, "Coffee", loaded.Products[0].Name)
	assert.Equal(t, "Toast", loaded.Products[2].Name)
}

func TestLoadEmptyAndNilCategories(t *testing.T) {
	backend := &fakeBackend{response: &api.MenuResponse{SessionID: "sess-1"}}

	service := NewService(backend, testLogger())
	loaded, err := service.Load(context.Background(), "12")

	require.NoError(t, err)
	assert.NotNil(t, loaded.Products)
	assert.Empty(t, loaded.Products)
}

func TestLoadPropagatesError(t *testing.T) {
	backend := &fakeBackend{err: assert.AnError}

	service := NewService(backend, testLogger())
	_, err := service.Load(context.Background(), "12")

	assert.Error(t, err)
}
