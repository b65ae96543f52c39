// internal/pkg/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/your-org/tableside/internal/config"
)

// Client is the REST client for the restaurant backend
type Client struct {
	baseURL     string
	adminHeader string
	httpClient  *http.Client
	logger      *logrus.Logger
}

// NewClient creates a new backend client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:     cfg.Backend.BaseURL,
		adminHeader: cfg.Backend.AdminHeader,
		httpClient: &http.Client{
			Timeout: cfg.Backend.RequestTimeout,
		},
		logger: logger,
	}
}

// GetMenu fetches the menu for a table and binds a backend session to it
func (c *Client) GetMenu(ctx context.Context, tableID string) (*MenuResponse, error) {
	path := fmt.Sprintf("/tables/%s/menu", url.PathEscape(tableID))

	var menu MenuResponse
	if err := c.do(ctx, http.MethodGet, path, nil, "", &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// GetSessionSummary fetches the running bill for a session
func (c *Client) GetSessionSummary(ctx context.Context, sessionID string) (*SessionSummary, error) {
	path := fmt.Sprintf("/sessions/%s/summary", url.PathEscape(sessionID))

	var summary SessionSummary
	if err := c.do(ctx, http.MethodGet, path, nil, "", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// SubmitOrder submits the cart contents as a new order for the session
func (c *Client) SubmitOrder(ctx context.Context, sessionID string, req *SubmitOrderRequest) error {
	path := fmt.Sprintf("/sessions/%s/orders", url.PathEscape(sessionID))
	return c.do(ctx, http.MethodPost, path, req, "", nil)
}

// ListOrders fetches kitchen orders filtered by status. Requires the admin
// credential.
func (c *Client) ListOrders(ctx context.Context, status, token string) ([]KitchenOrder, error) {
	path := fmt.Sprintf("/orders?status=%s", url.QueryEscape(status))

	var orders []KitchenOrder
	if err := c.do(ctx, http.MethodGet, path, nil, token, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus requests a kitchen order status transition. Requires the
// admin credential.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status, token string) error {
	path := fmt.Sprintf("/orders/%s/status", url.PathEscape(orderID))
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, path, body, token, nil)
}

// do issues a request and decodes the JSON response into out when non-nil.
// Non-2xx responses become a *StatusError carrying the server "error" field.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, token string, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(c.adminHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to backend failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}

		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			statusErr.Message = errBody.Error
		}

		c.logger.WithFields(logrus.Fields{
			"method":      method,
			"path":        path,
			"status_code": resp.StatusCode,
		}).Warn("Backend request failed")

		return statusErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}

	return nil
}
