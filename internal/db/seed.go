package db

import (
	"fmt"

	"gorm.io/gorm"

	"warehouse-twin-backend/internal/model"
)

func f64(v float64) *float64 { return &v }

// demoCatalog is the fixed set of demo products used to bootstrap the
// catalog on a fresh deployment.
var demoCatalog = []model.Product{
	{
		ProductCode:    "GALAXY_VL_500",
		Name:           "Galaxy VL UPS",
		Type:           "Uninterruptible Power Supply",
		Category:       "Power Protection",
		ModelNumber:    "Galaxy VL 500",
		PowerRating:    f64(500.0),
		Voltage:        "400V",
		Dimensions:     &model.Dimensions{Width: 600, Height: 2000, Depth: 1000},
		Weight:         f64(850.0),
		MeshIdentifier: "Galaxy_VL",
		ModelFile:      "/models/galaxy_vl.glb",
		WarrantyYears:  3,
		Price:          f64(125000.0),
		Description:    "High-efficiency scalable 3-phase UPS for critical applications",
	},
	{
		ProductCode:    "NETSHELTER_SX_AR3100",
		Name:           "NetShelter SX Rack",
		Type:           "Server Rack Enclosure",
		Category:       "Infrastructure",
		ModelNumber:    "AR3100",
		Dimensions:     &model.Dimensions{Width: 600, Height: 2000, Depth: 1070},
		Weight:         f64(125.0),
		MeshIdentifier: "NetShelter_SX",
		ModelFile:      "/models/netshelter.glb",
		WarrantyYears:  2,
		Price:          f64(2500.0),
		Description:    "Standard enclosure for low to medium density applications",
	},
	{
		ProductCode:    "PREMSET_15KV",
		Name:           "Premset Switchgear",
		Type:           "MV Switchgear",
		Category:       "Power Distribution",
		ModelNumber:    "Premset 15kV",
		Voltage:        "15kV",
		Dimensions:     &model.Dimensions{Width: 800, Height: 2200, Depth: 1500},
		Weight:         f64(1200.0),
		MeshIdentifier: "Premset_SG",
		ModelFile:      "/models/premset.glb",
		WarrantyYears:  5,
		Price:          f64(85000.0),
		Description:    "Shielded Solid Insulation System (2SIS) switchgear",
	},
	{
		ProductCode:    "ION9000",
		Name:           "PowerLogic ION9000",
		Type:           "Power Quality Meter",
		Category:       "Monitoring",
		ModelNumber:    "ION9000",
		Dimensions:     &model.Dimensions{Width: 200, Height: 300, Depth: 150},
		Weight:         f64(5.0),
		MeshIdentifier: "PowerLogic_ION",
		ModelFile:      "/models/ion9000.glb",
		WarrantyYears:  2,
		Price:          f64(3500.0),
		Description:    "Class 0.1S accuracy power quality analyzer",
	},
	{
		ProductCode:    "EVLINK_PRO_AC",
		Name:           "EVlink Pro AC",
		Type:           "EV Charging Station",
		Category:       "E-Mobility",
		ModelNumber:    "EVlink Pro",
		PowerRating:    f64(22.0),
		Voltage:        "400V",
		Dimensions:     &model.Dimensions{Width: 400, Height: 1200, Depth: 200},
		Weight:         f64(35.0),
		MeshIdentifier: "EVlink_Pro",
		ModelFile:      "/models/evlink.glb",
		WarrantyYears:  3,
		Price:          f64(4200.0),
		Description:    "Smart charging for fleets and commercial buildings",
	},
	{
		ProductCode:    "CONEXT_CL",
		Name:           "EcoStruxure Solar",
		Type:           "Solar Inverter",
		Category:       "Renewable Energy",
		ModelNumber:    "Conext CL",
		PowerRating:    f64(100.0),
		Dimensions:     &model.Dimensions{Width: 600, Height: 800, Depth: 300},
		Weight:         f64(65.0),
		MeshIdentifier: "Roof_Solar_Array",
		ModelFile:      "/models/solar.glb",
		WarrantyYears:  10,
		Price:          f64(8500.0),
		Description:    "Rooftop photovoltaic inverter system",
	},
}

// SeedCatalog inserts the demo products that are not already present,
// keyed by product code. Safe to call any number of times.
func SeedCatalog(db *gorm.DB) ([]string, error) {
	created := []string{}
	for _, p := range demoCatalog {
		var count int64
		if err := db.Model(&model.Product{}).
			Where("product_code = ?", p.ProductCode).
			Count(&count).Error; err != nil {
			return created, fmt.Errorf("seed lookup for %s failed: %w", p.ProductCode, err)
		}
		if count > 0 {
			continue
		}
		product := p
		if err := db.Create(&product).Error; err != nil {
			return created, fmt.Errorf("seed insert for %s failed: %w", p.ProductCode, err)
		}
		created = append(created, p.ProductCode)
	}
	return created, nil
}
