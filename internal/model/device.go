package model

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Device status labels derived from the health score.
const (
	StatusHealthy  = "Healthy"
	StatusWarning  = "Warning"
	StatusCritical = "Critical"
)

// InstalledDevice is one physical unit of a catalog product placed inside a
// warehouse. Devices are soft-deleted: IsActive is flipped off and the row
// stays in storage.
type InstalledDevice struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	WarehouseID uint `gorm:"index;not null" json:"warehouse_id"`
	ProductID   uint `gorm:"index;not null" json:"product_id"`

	// Installation details
	SerialNumber     string    `gorm:"uniqueIndex;size:128;not null" json:"serial_number"`
	InstallationDate time.Time `json:"installation_date"`
	WarrantyExpiry   time.Time `json:"warranty_expiry"`

	// Placement in 3D space
	FloorNumber int     `gorm:"not null;default:1" json:"floor_number"`
	PositionX   float64 `json:"position_x"`
	PositionY   float64 `json:"position_y"`
	PositionZ   float64 `json:"position_z"`
	RotationY   float64 `json:"rotation_y"` // Y-axis rotation in degrees

	// Health monitoring
	HealthScore     int        `gorm:"not null;default:100" json:"health_score"`
	Status          string     `gorm:"size:32;not null;default:Healthy" json:"status"`
	LastMaintenance *time.Time `json:"last_maintenance"`
	NextMaintenance *time.Time `json:"next_maintenance"`

	Notes    string `gorm:"type:text" json:"notes"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Warehouse Warehouse `json:"-"`
	Product   Product   `json:"product"`
}

// NewSerialNumber builds a serial of the form SN-<PRE>-<6 digits> where PRE
// is the first three characters of the product code. The random part is not
// collision-free; the unique index on serial_number is the real guarantee.
func NewSerialNumber(productCode string) string {
	prefix := strings.ToUpper(productCode)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("SN-%s-%06d", prefix, rand.Intn(1000000))
}

// WarrantyExpiry derives the expiry timestamp from the installation instant
// using a fixed 365-day year, no leap adjustment.
func WarrantyExpiry(installation time.Time, warrantyYears int) time.Time {
	return installation.Add(time.Duration(warrantyYears) * 365 * 24 * time.Hour)
}

// StatusForHealth maps a health score onto a status label.
func StatusForHealth(health int) string {
	switch {
	case health >= 80:
		return StatusHealthy
	case health >= 50:
		return StatusWarning
	default:
		return StatusCritical
	}
}
