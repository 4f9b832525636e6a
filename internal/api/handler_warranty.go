package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"warehouse-twin-backend/internal/warranty"
)

// GetWarrantyAlerts handles GET /api/warehouses/:warehouse_id/warranty-alerts.
// The optional days_threshold query parameter widens or narrows the scan
// horizon (default 90 days).
func (h *Handler) GetWarrantyAlerts(c *gin.Context) {
	warehouseID, err := strconv.ParseUint(c.Param("warehouse_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse ID"})
		return
	}

	daysThreshold := warranty.DefaultDaysThreshold
	if raw := c.Query("days_threshold"); raw != "" {
		daysThreshold, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days_threshold"})
			return
		}
	}

	if _, err := h.store.Warehouse(c.Request.Context(), uint(warehouseID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Warehouse not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	alerts, err := warranty.Scan(c.Request.Context(), h.store, uint(warehouseID), daysThreshold, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}
