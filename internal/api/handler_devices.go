package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"warehouse-twin-backend/internal/model"
)

type installDeviceRequest struct {
	WarehouseID  uint    `json:"warehouse_id" binding:"required"`
	ProductID    uint    `json:"product_id" binding:"required"`
	SerialNumber string  `json:"serial_number"` // auto-generated when empty
	FloorNumber  *int    `json:"floor_number"`
	PositionX    float64 `json:"position_x"`
	PositionY    float64 `json:"position_y"`
	PositionZ    float64 `json:"position_z"`
	RotationY    float64 `json:"rotation_y"`
	Notes        string  `json:"notes"`
}

// InstallDevice handles POST /api/devices. The referenced warehouse and
// product must exist; a direct install always starts healthy.
func InstallDevice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req installDeviceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var warehouse model.Warehouse
		if err := db.First(&warehouse, req.WarehouseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Warehouse not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var product model.Product
		if err := db.First(&product, req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		serial := req.SerialNumber
		if serial == "" {
			serial = model.NewSerialNumber(product.ProductCode)
		}
		floorNumber := 1
		if req.FloorNumber != nil {
			floorNumber = *req.FloorNumber
		}
		if floorNumber < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "floor_number must be at least 1"})
			return
		}

		installedAt := time.Now().UTC()
		device := model.InstalledDevice{
			WarehouseID:      warehouse.ID,
			ProductID:        product.ID,
			SerialNumber:     serial,
			InstallationDate: installedAt,
			WarrantyExpiry:   model.WarrantyExpiry(installedAt, product.WarrantyYears),
			FloorNumber:      floorNumber,
			PositionX:        req.PositionX,
			PositionY:        req.PositionY,
			PositionZ:        req.PositionZ,
			RotationY:        req.RotationY,
			HealthScore:      100,
			Status:           model.StatusHealthy,
			Notes:            req.Notes,
			IsActive:         true,
		}

		if err := db.Create(&device).Error; err != nil {
			if isUniqueViolation(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "serial number already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		device.Product = product
		c.JSON(http.StatusCreated, device)
	}
}

// ListWarehouseDevices handles GET /api/warehouses/:warehouse_id/devices.
// Soft-deleted devices are excluded.
func ListWarehouseDevices(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("warehouse_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse ID"})
			return
		}

		var devices []model.InstalledDevice
		err = db.Preload("Product").
			Where("warehouse_id = ? AND is_active = ?", id, true).
			Order("id").
			Find(&devices).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve devices"})
			return
		}
		c.JSON(http.StatusOK, devices)
	}
}

// GetDevice handles GET /api/devices/:device_id.
func GetDevice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("device_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device ID"})
			return
		}

		var device model.InstalledDevice
		if err := db.Preload("Product").First(&device, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, device)
	}
}

type updateDeviceRequest struct {
	FloorNumber     *int       `json:"floor_number"`
	PositionX       *float64   `json:"position_x"`
	PositionY       *float64   `json:"position_y"`
	PositionZ       *float64   `json:"position_z"`
	RotationY       *float64   `json:"rotation_y"`
	HealthScore     *int       `json:"health_score"`
	Status          *string    `json:"status"`
	LastMaintenance *time.Time `json:"last_maintenance"`
	NextMaintenance *time.Time `json:"next_maintenance"`
	Notes           *string    `json:"notes"`
}

// UpdateDevice handles PUT /api/devices/:device_id. Only fields present in
// the body are changed.
func UpdateDevice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("device_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device ID"})
			return
		}

		var device model.InstalledDevice
		if err := db.First(&device, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var req updateDeviceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := map[string]interface{}{}
		if req.FloorNumber != nil {
			updates["floor_number"] = *req.FloorNumber
		}
		if req.PositionX != nil {
			updates["position_x"] = *req.PositionX
		}
		if req.PositionY != nil {
			updates["position_y"] = *req.PositionY
		}
		if req.PositionZ != nil {
			updates["position_z"] = *req.PositionZ
		}
		if req.RotationY != nil {
			updates["rotation_y"] = *req.RotationY
		}
		if req.HealthScore != nil {
			updates["health_score"] = *req.HealthScore
		}
		if req.Status != nil {
			updates["status"] = *req.Status
		}
		if req.LastMaintenance != nil {
			updates["last_maintenance"] = *req.LastMaintenance
		}
		if req.NextMaintenance != nil {
			updates["next_maintenance"] = *req.NextMaintenance
		}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
		}

		if len(updates) > 0 {
			if err := db.Model(&device).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		if err := db.Preload("Product").First(&device, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, device)
	}
}

// RemoveDevice handles DELETE /api/devices/:device_id as a soft delete:
// the row stays, is_active is flipped off.
func RemoveDevice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("device_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device ID"})
			return
		}

		var device model.InstalledDevice
		if err := db.First(&device, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := db.Model(&device).Update("is_active", false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Device removed successfully"})
	}
}
