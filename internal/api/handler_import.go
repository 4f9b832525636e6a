package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"warehouse-twin-backend/internal/sheet"
)

// ImportPlan handles POST /api/warehouses/:warehouse_id/import. The body is
// a multipart upload with the plan workbook under the "file" field. An
// unknown warehouse aborts with 404 and an unreadable workbook with 400,
// both before any row is processed; row-level problems are reported inside
// the result instead.
func (h *Handler) ImportPlan(c *gin.Context) {
	warehouseID, err := strconv.ParseUint(c.Param("warehouse_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse ID"})
		return
	}

	if _, err := h.store.Warehouse(c.Request.Context(), uint(warehouseID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Warehouse not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Error reading Excel file: %v", err)})
		return
	}
	defer f.Close()

	rows, err := sheet.Parse(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Error reading Excel file: %v", err)})
		return
	}

	result, err := h.reconciler.Import(c.Request.Context(), uint(warehouseID), rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
