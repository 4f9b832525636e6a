package warranty

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"warehouse-twin-backend/internal/model"
	"warehouse-twin-backend/internal/store"
)

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		expiry   time.Time
		expected int
	}{
		{"ten days past due", now.Add(-10 * 24 * time.Hour), -10},
		{"half a day past due floors down", now.Add(-12 * time.Hour), -1},
		{"expiring in twelve hours", now.Add(12 * time.Hour), 0},
		{"expiring in exactly thirty days", now.Add(30 * 24 * time.Hour), 30},
		{"expiring in 89.5 days", now.Add(89*24*time.Hour + 12*time.Hour), 89},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DaysRemaining(tc.expiry, now))
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, StatusExpired, Classify(-1))
	assert.Equal(t, StatusExpired, Classify(-10))
	assert.Equal(t, StatusCritical, Classify(0))
	assert.Equal(t, StatusCritical, Classify(29))
	assert.Equal(t, StatusExpiringSoon, Classify(30))
	assert.Equal(t, StatusExpiringSoon, Classify(89))
}

func newTestStore(t *testing.T) (store.Store, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.Warehouse{}, &model.InstalledDevice{}))
	return store.NewGormStore(db), db
}

func TestScan(t *testing.T) {
	s, db := newTestStore(t)
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	product := model.Product{ProductCode: "GALAXY_VL_500", Name: "Galaxy VL UPS", Type: "UPS", WarrantyYears: 3}
	require.NoError(t, db.Create(&product).Error)
	warehouse := model.Warehouse{Name: "Plant A", NumFloors: 1, FloorHeight: 6.0}
	require.NoError(t, db.Create(&warehouse).Error)

	devices := []model.InstalledDevice{
		{WarehouseID: warehouse.ID, ProductID: product.ID, SerialNumber: "EXPIRED-1",
			WarrantyExpiry: now.Add(-10 * 24 * time.Hour), HealthScore: 100, Status: model.StatusHealthy, IsActive: true},
		{WarehouseID: warehouse.ID, ProductID: product.ID, SerialNumber: "CRITICAL-1",
			WarrantyExpiry: now.Add(10 * 24 * time.Hour), HealthScore: 100, Status: model.StatusHealthy, IsActive: true},
		{WarehouseID: warehouse.ID, ProductID: product.ID, SerialNumber: "SOON-1",
			WarrantyExpiry: now.Add(45 * 24 * time.Hour), HealthScore: 100, Status: model.StatusHealthy, IsActive: true},
		{WarehouseID: warehouse.ID, ProductID: product.ID, SerialNumber: "FAR-1",
			WarrantyExpiry: now.Add(200 * 24 * time.Hour), HealthScore: 100, Status: model.StatusHealthy, IsActive: true},
		{WarehouseID: warehouse.ID, ProductID: product.ID, SerialNumber: "DELETED-1",
			WarrantyExpiry: now.Add(-5 * 24 * time.Hour), HealthScore: 100, Status: model.StatusHealthy, IsActive: false},
	}
	require.NoError(t, db.Create(&devices).Error)

	alerts, err := Scan(context.Background(), s, warehouse.ID, 90, now)
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	bySerial := make(map[string]Alert, len(alerts))
	for _, a := range alerts {
		bySerial[a.SerialNumber] = a
	}

	expired := bySerial["EXPIRED-1"]
	assert.Equal(t, StatusExpired, expired.Status)
	assert.Equal(t, -10, expired.DaysRemaining)
	assert.Equal(t, "Galaxy VL UPS", expired.ProductName)

	assert.Equal(t, StatusCritical, bySerial["CRITICAL-1"].Status)
	assert.Equal(t, 10, bySerial["CRITICAL-1"].DaysRemaining)
	assert.Equal(t, StatusExpiringSoon, bySerial["SOON-1"].Status)

	_, farSeen := bySerial["FAR-1"]
	assert.False(t, farSeen, "device outside the horizon must not alert")
	_, deletedSeen := bySerial["DELETED-1"]
	assert.False(t, deletedSeen, "soft-deleted device must not alert")

	// Identical inputs with no intervening writes give identical results.
	again, err := Scan(context.Background(), s, warehouse.ID, 90, now)
	require.NoError(t, err)
	assert.Equal(t, alerts, again)
}

func TestScanEmptyWarehouse(t *testing.T) {
	s, db := newTestStore(t)
	warehouse := model.Warehouse{Name: "Empty", NumFloors: 1, FloorHeight: 6.0}
	require.NoError(t, db.Create(&warehouse).Error)

	alerts, err := Scan(context.Background(), s, warehouse.ID, DefaultDaysThreshold, time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, alerts)
}
