package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"warehouse-twin-backend/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGormStore_Warehouse(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE "warehouses"\."id" = \$1`).
			WithArgs(1, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "num_floors", "floor_height"}).
				AddRow(1, "Plant A", 3, 6.0))

		warehouse, err := s.Warehouse(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Plant A", warehouse.Name)
		assert.Equal(t, 6.0, warehouse.FloorHeight)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE "warehouses"\."id" = \$1`).
			WithArgs(99, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := s.Warehouse(context.Background(), 99)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStore_ProductCatalog(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "products" ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_code", "name", "warranty_years"}).
			AddRow(1, "GALAXY_VL_500", "Galaxy VL UPS", 3).
			AddRow(2, "NETSHELTER_SX_AR3100", "NetShelter SX Rack", 2))

	products, err := s.ProductCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Galaxy VL UPS", products[0].Name)
	assert.Equal(t, "NetShelter SX Rack", products[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_InstallDevices(t *testing.T) {
	t.Run("commits all staged devices in one transaction", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		devices := []model.InstalledDevice{
			{WarehouseID: 1, ProductID: 1, SerialNumber: "SN-GAL-000001", FloorNumber: 1, IsActive: true},
			{WarehouseID: 1, ProductID: 2, SerialNumber: "SN-NET-000002", FloorNumber: 2, IsActive: true},
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "installed_devices"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(`INSERT INTO "installed_devices"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		mock.ExpectCommit()

		err := s.InstallDevices(context.Background(), devices)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when one insert fails", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		devices := []model.InstalledDevice{
			{WarehouseID: 1, ProductID: 1, SerialNumber: "SN-GAL-000001", IsActive: true},
			{WarehouseID: 1, ProductID: 2, SerialNumber: "SN-GAL-000001", IsActive: true},
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "installed_devices"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(`INSERT INTO "installed_devices"`).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := s.InstallDevices(context.Background(), devices)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch touches nothing", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		require.NoError(t, s.InstallDevices(context.Background(), nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStore_ExpiringDevices(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	horizon := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "installed_devices" WHERE warehouse_id = \$1 AND is_active = \$2 AND warranty_expiry <= \$3`).
		WithArgs(1, true, horizon).
		WillReturnRows(sqlmock.NewRows([]string{"id", "warehouse_id", "product_id", "serial_number", "warranty_expiry", "is_active"}).
			AddRow(7, 1, 1, "SN-GAL-000007", horizon.Add(-24*time.Hour), true))

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE "products"\."id" = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_code", "name"}).
			AddRow(1, "GALAXY_VL_500", "Galaxy VL UPS"))

	devices, err := s.ExpiringDevices(context.Background(), 1, horizon)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "SN-GAL-000007", devices[0].SerialNumber)
	assert.Equal(t, "Galaxy VL UPS", devices[0].Product.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_SubscriptionsForWarehouse(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "push_subscriptions" JOIN subscription_warehouse_mapping swm ON swm\.push_subscription_endpoint = push_subscriptions\.endpoint WHERE swm\.warehouse_id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"endpoint", "p256dh", "auth", "created_at"}).
			AddRow("https://example.com/push", "key", "auth", time.Now()))

	subscriptions, err := s.SubscriptionsForWarehouse(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, subscriptions, 1)
	assert.Equal(t, "https://example.com/push", subscriptions[0].Endpoint)
	assert.NoError(t, mock.ExpectationsWereMet())
}
