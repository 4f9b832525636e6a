package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"warehouse-twin-backend/internal/model"
)

type createProductRequest struct {
	ProductCode    string            `json:"product_code" binding:"required"`
	Name           string            `json:"name" binding:"required"`
	Type           string            `json:"type" binding:"required"`
	Manufacturer   string            `json:"manufacturer"`
	ModelNumber    string            `json:"model_number"`
	Category       string            `json:"category"`
	PowerRating    *float64          `json:"power_rating"`
	Voltage        string            `json:"voltage"`
	Dimensions     *model.Dimensions `json:"dimensions"`
	Weight         *float64          `json:"weight"`
	ModelFile      string            `json:"model_file"`
	MeshIdentifier string            `json:"mesh_identifier"`
	WarrantyYears  *int              `json:"warranty_years"`
	Price          *float64          `json:"price"`
	Description    string            `json:"description"`
}

// CreateProduct handles POST /api/products.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		manufacturer := req.Manufacturer
		if manufacturer == "" {
			manufacturer = "Schneider Electric"
		}
		warrantyYears := 3
		if req.WarrantyYears != nil {
			warrantyYears = *req.WarrantyYears
		}
		if warrantyYears < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "warranty_years must not be negative"})
			return
		}

		product := model.Product{
			ProductCode:    req.ProductCode,
			Name:           req.Name,
			Type:           req.Type,
			Manufacturer:   manufacturer,
			ModelNumber:    req.ModelNumber,
			Category:       req.Category,
			PowerRating:    req.PowerRating,
			Voltage:        req.Voltage,
			Dimensions:     req.Dimensions,
			Weight:         req.Weight,
			ModelFile:      req.ModelFile,
			MeshIdentifier: req.MeshIdentifier,
			WarrantyYears:  warrantyYears,
			Price:          req.Price,
			Description:    req.Description,
		}

		if err := db.Create(&product).Error; err != nil {
			if isUniqueViolation(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "product code already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// ListProducts handles GET /api/products with skip/limit paging.
func ListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
		if limit <= 0 {
			limit = 100
		}
		if skip < 0 {
			skip = 0
		}

		var products []model.Product
		if err := db.Order("id").Offset(skip).Limit(limit).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GetProduct handles GET /api/products/:product_id.
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product model.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GetProductByCode handles GET /api/products/code/:product_code.
func GetProductByCode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product model.Product
		err := db.Where("product_code = ?", c.Param("product_code")).First(&product).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
