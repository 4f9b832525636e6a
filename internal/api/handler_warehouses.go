package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"warehouse-twin-backend/internal/model"
)

type createWarehouseRequest struct {
	Name         string   `json:"name" binding:"required"`
	CustomerName string   `json:"customer_name"`
	Location     string   `json:"location"`
	NumFloors    *int     `json:"num_floors"`
	FloorHeight  *float64 `json:"floor_height"`
	TotalArea    *float64 `json:"total_area"`
	ModelFile    string   `json:"model_file"`
}

// CreateWarehouse handles POST /api/warehouses.
func CreateWarehouse(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createWarehouseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		warehouse := model.Warehouse{
			Name:         req.Name,
			CustomerName: req.CustomerName,
			Location:     req.Location,
			NumFloors:    1,
			FloorHeight:  6.0,
			TotalArea:    req.TotalArea,
			ModelFile:    req.ModelFile,
		}
		if req.NumFloors != nil {
			warehouse.NumFloors = *req.NumFloors
		}
		if req.FloorHeight != nil {
			warehouse.FloorHeight = *req.FloorHeight
		}
		if warehouse.NumFloors < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "num_floors must be at least 1"})
			return
		}

		if err := db.Create(&warehouse).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, warehouse)
	}
}

// ListWarehouses handles GET /api/warehouses.
func ListWarehouses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var warehouses []model.Warehouse
		if err := db.Order("id").Find(&warehouses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve warehouses"})
			return
		}
		c.JSON(http.StatusOK, warehouses)
	}
}

// GetWarehouse handles GET /api/warehouses/:warehouse_id.
func GetWarehouse(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("warehouse_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse ID"})
			return
		}

		var warehouse model.Warehouse
		if err := db.First(&warehouse, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Warehouse not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, warehouse)
	}
}

type updateWarehouseRequest struct {
	Name        *string  `json:"name"`
	NumFloors   *int     `json:"num_floors"`
	FloorHeight *float64 `json:"floor_height"`
}

// UpdateWarehouse handles PUT /api/warehouses/:warehouse_id. Only fields
// present in the body are changed.
func UpdateWarehouse(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("warehouse_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse ID"})
			return
		}

		var warehouse model.Warehouse
		if err := db.First(&warehouse, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Warehouse not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var req updateWarehouseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.NumFloors != nil {
			if *req.NumFloors < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "num_floors must be at least 1"})
				return
			}
			updates["num_floors"] = *req.NumFloors
		}
		if req.FloorHeight != nil {
			updates["floor_height"] = *req.FloorHeight
		}

		if len(updates) > 0 {
			if err := db.Model(&warehouse).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if err := db.First(&warehouse, id).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, warehouse)
	}
}

// DeleteWarehouse handles DELETE /api/warehouses/:warehouse_id. This is a
// hard delete: the warehouse and every device in it, active or not, are
// removed in one transaction.
func DeleteWarehouse(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("warehouse_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse ID"})
			return
		}

		var warehouse model.Warehouse
		if err := db.First(&warehouse, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Warehouse not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("warehouse_id = ?", warehouse.ID).Delete(&model.InstalledDevice{}).Error; err != nil {
				return err
			}
			return tx.Delete(&warehouse).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Warehouse deleted successfully"})
	}
}
