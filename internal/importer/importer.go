// Package importer turns spreadsheet installation plans into installed-device
// records. Rows are processed best-effort: a bad row is reported and skipped,
// the rest of the batch continues, and everything staged is committed in one
// transaction at the end.
package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"warehouse-twin-backend/internal/model"
	"warehouse-twin-backend/internal/sheet"
	"warehouse-twin-backend/internal/store"
)

// Result summarizes one import run.
type Result struct {
	Success        bool     `json:"success"`
	InstalledCount int      `json:"installed_count"`
	Errors         []string `json:"errors"`
	Devices        []string `json:"devices"` // serial numbers, in staging order
}

// Reconciler maps plan rows to device records for one target warehouse.
type Reconciler struct {
	store store.Store
	now   func() time.Time
}

// New creates a reconciler backed by the given store.
func New(s store.Store) *Reconciler {
	return &Reconciler{store: s, now: time.Now}
}

// Import resolves every row against the catalog, stages the derived devices
// and commits them in a single write. Row-level failures are collected as
// messages in the result; only an unknown warehouse or a failed final commit
// abort the run.
func (r *Reconciler) Import(ctx context.Context, warehouseID uint, rows []sheet.Row) (*Result, error) {
	warehouse, err := r.store.Warehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	catalog, err := r.store.ProductCatalog(ctx)
	if err != nil {
		return nil, err
	}

	var staged []model.InstalledDevice
	result := &Result{Errors: []string{}, Devices: []string{}}

	for _, row := range rows {
		staged = r.reconcileRow(row, warehouse, catalog, staged, result)
	}

	if err := r.store.InstallDevices(ctx, staged); err != nil {
		return nil, err
	}

	result.Success = true
	result.InstalledCount = len(staged)
	return result, nil
}

// reconcileRow stages zero or more devices for one row. Units staged before
// a mid-row failure stay staged; the error is recorded and the row abandoned.
func (r *Reconciler) reconcileRow(row sheet.Row, warehouse model.Warehouse, catalog []model.Product, staged []model.InstalledDevice, result *Result) []model.InstalledDevice {
	rowErr := func(err error) []model.InstalledDevice {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row.Number(), err))
		return staged
	}

	name := row.String(sheet.ColComponentName)
	if name == "" {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Missing component name", row.Number()))
		return staged
	}

	product := ResolveProduct(catalog, name)
	if product == nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Product '%s' not found in catalog", row.Number(), name))
		return staged
	}

	quantity, err := row.Int(sheet.ColQuantity, 1)
	if err != nil {
		return rowErr(err)
	}
	floorNumber, err := row.Int(sheet.ColFloorNumber, 1)
	if err != nil {
		return rowErr(err)
	}
	posX, err := row.Float(sheet.ColPositionX)
	if err != nil {
		return rowErr(err)
	}
	posY, err := row.Float(sheet.ColPositionY)
	if err != nil {
		return rowErr(err)
	}
	posZ, err := row.Float(sheet.ColPositionZ)
	if err != nil {
		return rowErr(err)
	}
	health, err := row.Int(sheet.ColHealthScore, 100)
	if err != nil {
		return rowErr(err)
	}

	serialBase := row.String(sheet.ColSerial)
	notes := row.String(sheet.ColNotes)
	if notes == "" {
		notes = "Imported from Excel"
	}

	for unit := 1; unit <= quantity; unit++ {
		serial := serialBase
		if serial != "" && quantity > 1 {
			serial = fmt.Sprintf("%s-%d", serialBase, unit)
		}
		if serial == "" {
			serial = model.NewSerialNumber(product.ProductCode)
		}

		// Floor-derived height unless the row pins the device down. A row
		// without both X and Z goes to the origin for manual placement.
		floorY := float64(floorNumber-1) * warehouse.FloorHeight
		x, y, z := 0.0, floorY, 0.0
		if posX != nil && posZ != nil {
			x, z = *posX, *posZ
			if posY != nil {
				y = *posY
			}
		}

		installedAt := r.now().UTC()
		staged = append(staged, model.InstalledDevice{
			WarehouseID:      warehouse.ID,
			ProductID:        product.ID,
			SerialNumber:     serial,
			FloorNumber:      floorNumber,
			PositionX:        x,
			PositionY:        y,
			PositionZ:        z,
			InstallationDate: installedAt,
			WarrantyExpiry:   model.WarrantyExpiry(installedAt, product.WarrantyYears),
			HealthScore:      health,
			Status:           model.StatusForHealth(health),
			Notes:            notes,
			IsActive:         true,
		})
		result.Devices = append(result.Devices, serial)
	}
	return staged
}

// ResolveProduct finds the first product whose name contains the component
// name, case-insensitively, in catalog order. The first hit wins even when
// several names match; no ranking and no uniqueness check.
func ResolveProduct(catalog []model.Product, componentName string) *model.Product {
	needle := strings.ToLower(componentName)
	for i := range catalog {
		if strings.Contains(strings.ToLower(catalog[i].Name), needle) {
			return &catalog[i]
		}
	}
	return nil
}
