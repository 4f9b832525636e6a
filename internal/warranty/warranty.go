// Package warranty scans active devices for approaching warranty expiry.
package warranty

import (
	"context"
	"math"
	"time"

	"warehouse-twin-backend/internal/store"
)

// Alert classifications.
const (
	StatusExpired      = "expired"
	StatusCritical     = "critical"
	StatusExpiringSoon = "expiring_soon"
)

// DefaultDaysThreshold is the scan horizon when the caller does not give one.
const DefaultDaysThreshold = 90

// Alert reports one device whose warranty expires within the scan horizon.
type Alert struct {
	DeviceID       uint      `json:"device_id"`
	SerialNumber   string    `json:"serial_number"`
	ProductName    string    `json:"product_name"`
	WarrantyExpiry time.Time `json:"warranty_expiry"`
	DaysRemaining  int       `json:"days_remaining"`
	Status         string    `json:"status"`
}

// DaysRemaining is the number of whole days until expiry, floored, so a
// warranty 10 days past due reports -10 and one expiring in 12 hours
// reports 0.
func DaysRemaining(expiry, now time.Time) int {
	return int(math.Floor(expiry.Sub(now).Hours() / 24))
}

// Classify maps a days-remaining figure to an alert status.
func Classify(daysRemaining int) string {
	switch {
	case daysRemaining < 0:
		return StatusExpired
	case daysRemaining < 30:
		return StatusCritical
	default:
		return StatusExpiringSoon
	}
}

// Scan returns one alert per active device of the warehouse whose warranty
// expires within daysThreshold days of now. Pure read, no side effects.
func Scan(ctx context.Context, s store.Store, warehouseID uint, daysThreshold int, now time.Time) ([]Alert, error) {
	horizon := now.Add(time.Duration(daysThreshold) * 24 * time.Hour)
	devices, err := s.ExpiringDevices(ctx, warehouseID, horizon)
	if err != nil {
		return nil, err
	}

	alerts := make([]Alert, 0, len(devices))
	for _, device := range devices {
		days := DaysRemaining(device.WarrantyExpiry, now)
		alerts = append(alerts, Alert{
			DeviceID:       device.ID,
			SerialNumber:   device.SerialNumber,
			ProductName:    device.Product.Name,
			WarrantyExpiry: device.WarrantyExpiry,
			DaysRemaining:  days,
			Status:         Classify(days),
		})
	}
	return alerts, nil
}
