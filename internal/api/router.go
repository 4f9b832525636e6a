package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"warehouse-twin-backend/config"
	"warehouse-twin-backend/internal/mw"
	"warehouse-twin-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.ServerConfig, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	db := s.DB()
	handler := NewHandler(s, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Catalog
		api.POST("/products", CreateProduct(db))
		api.GET("/products", caching, ListProducts(db))
		api.GET("/products/code/:product_code", caching, GetProductByCode(db))
		api.GET("/products/:product_id", caching, GetProduct(db))

		// Warehouses
		api.POST("/warehouses", CreateWarehouse(db))
		api.GET("/warehouses", ListWarehouses(db))
		api.GET("/warehouses/:warehouse_id", GetWarehouse(db))
		api.PUT("/warehouses/:warehouse_id", UpdateWarehouse(db))
		api.DELETE("/warehouses/:warehouse_id", DeleteWarehouse(db))
		api.GET("/warehouses/:warehouse_id/devices", ListWarehouseDevices(db))
		api.POST("/warehouses/:warehouse_id/import", handler.ImportPlan)
		api.GET("/warehouses/:warehouse_id/warranty-alerts", handler.GetWarrantyAlerts)

		// Devices
		api.POST("/devices", InstallDevice(db))
		api.GET("/devices/:device_id", GetDevice(db))
		api.PUT("/devices/:device_id", UpdateDevice(db))
		api.DELETE("/devices/:device_id", RemoveDevice(db))

		// Catalog seeding
		api.POST("/seed", SeedCatalog(db))

		// Warranty alert subscriptions
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
