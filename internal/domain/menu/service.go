// internal/domain/menu/service.go
package menu

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/your-org/tableside/internal/pkg/api"
)

// API is the slice of the backend the menu service needs
type API interface {
	GetMenu(ctx context.Context, tableID string) (*api.MenuResponse, error)
}

// Menu is the flattened menu for one table together with the session the
// fetch bound
type Menu struct {
	SessionID string        `json:"sessionId"`
	Products  []api.Product `json:"products"`
}

// Service loads the menu for a table
type Service struct {
	backend API
	logger  *logrus.Logger
}

// NewService creates a menu service
func NewService(backend API, logger *logrus.Logger) *Service {
	return &Service{
		backend: backend,
		logger:  logger,
	}
}

// Load fetches the menu for a table and flattens its categories into a single
// product list. The backend binds a session as a side effect; the returned
// session id should be handed to the session store.
func (s *Service) Load(ctx context.Context, tableID string) (*Menu, error) {
	response, err := s.backend.GetMenu(ctx, tableID)
	if err != nil {
		return nil, err
	}

	products := []api.Product{}
	for _, category := range response.Categories {
		products = append(products, category.Products...)
	}

	s.logger.WithFields(logrus.Fields{
		"table_id": tableID,
		"products": len(products),
	}).Debug("Menu loaded")

	return &Menu{
		SessionID: response.SessionID,
		Products:  products,
	}, nil
}
