package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"warehouse-twin-backend/internal/db"
)

// SeedCatalog handles POST /api/seed. Seeding is idempotent: only products
// whose code is not present yet are inserted.
func SeedCatalog(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		created, err := db.SeedCatalog(gdb)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":          "Demo data seeded successfully",
			"products_created": len(created),
			"product_codes":    created,
		})
	}
}
