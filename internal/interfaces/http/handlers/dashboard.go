// internal/interfaces/http/handlers/dashboard.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/tableside/internal/domain/kitchen"
	"github.com/your-org/tableside/internal/pkg/api"
)

// DashboardHandler exposes the polled kitchen state to local consumers
type DashboardHandler struct {
	dashboard *kitchen.Dashboard
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *kitchen.Dashboard) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
	}
}

// Health handles GET /health
func (h *DashboardHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GetOrders handles GET /dashboard/orders
func (h *DashboardHandler) GetOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboard.Snapshot())
}

// updateStatusRequest is the body of POST /dashboard/orders/:id/status
type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus handles POST /dashboard/orders/:id/status
func (h *DashboardHandler) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	if req.Status != api.StatusPreparing && req.Status != api.StatusReady {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "status must be PREPARING or READY",
		})
		return
	}

	h.dashboard.UpdateOrderStatus(c.Request.Context(), orderID, req.Status)

	c.JSON(http.StatusOK, h.dashboard.Snapshot())
}
