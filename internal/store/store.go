package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"warehouse-twin-backend/internal/model"
)

// Store defines the database operations needed by the import reconciler,
// the warranty monitor and the push notifier. CRUD handlers work on the
// underlying *gorm.DB directly via DB().
type Store interface {
	DB() *gorm.DB
	Warehouse(ctx context.Context, id uint) (model.Warehouse, error)
	ProductCatalog(ctx context.Context) ([]model.Product, error)
	InstallDevices(ctx context.Context, devices []model.InstalledDevice) error
	ExpiringDevices(ctx context.Context, warehouseID uint, before time.Time) ([]model.InstalledDevice, error)
	SubscribedWarehouseIDs(ctx context.Context) ([]uint, error)
	SubscriptionsForWarehouse(ctx context.Context, warehouseID uint) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// Warehouse fetches one warehouse by id. Returns gorm.ErrRecordNotFound
// when the id is unknown.
func (s *gormStore) Warehouse(ctx context.Context, id uint) (model.Warehouse, error) {
	var warehouse model.Warehouse
	err := s.db.WithContext(ctx).First(&warehouse, id).Error
	return warehouse, err
}

// ProductCatalog returns every product in catalog (primary key) order.
// Substring name resolution depends on this ordering.
func (s *gormStore) ProductCatalog(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load product catalog: %w", err)
	}
	return products, nil
}

// InstallDevices persists a batch of staged devices in a single transaction.
// Either every device is committed or none is.
func (s *gormStore) InstallDevices(ctx context.Context, devices []model.InstalledDevice) error {
	if len(devices) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range devices {
			if err := tx.Create(&devices[i]).Error; err != nil {
				return fmt.Errorf("failed to install device %s: %w", devices[i].SerialNumber, err)
			}
		}
		return nil
	})
}

// ExpiringDevices returns the active devices of a warehouse whose warranty
// expires on or before the given instant, with the product preloaded.
func (s *gormStore) ExpiringDevices(ctx context.Context, warehouseID uint, before time.Time) ([]model.InstalledDevice, error) {
	var devices []model.InstalledDevice
	err := s.db.WithContext(ctx).
		Preload("Product").
		Where("warehouse_id = ? AND is_active = ? AND warranty_expiry <= ?", warehouseID, true, before).
		Order("warranty_expiry").
		Find(&devices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query expiring devices: %w", err)
	}
	return devices, nil
}

// SubscribedWarehouseIDs returns the distinct warehouses at least one push
// subscription follows.
func (s *gormStore) SubscribedWarehouseIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Table("subscription_warehouse_mapping").
		Distinct("warehouse_id").
		Pluck("warehouse_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribed warehouses: %w", err)
	}
	return ids, nil
}

// SubscriptionsForWarehouse returns every subscription following the given
// warehouse.
func (s *gormStore) SubscriptionsForWarehouse(ctx context.Context, warehouseID uint) ([]model.PushSubscription, error) {
	var subscriptions []model.PushSubscription
	err := s.db.WithContext(ctx).
		Joins("JOIN subscription_warehouse_mapping swm ON swm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("swm.warehouse_id = ?", warehouseID).
		Find(&subscriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions for warehouse %d: %w", warehouseID, err)
	}
	return subscriptions, nil
}
