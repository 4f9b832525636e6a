package model

import "time"

// Warehouse is one customer building configuration. A warehouse owns its
// installed devices; deleting a warehouse removes the devices with it.
type Warehouse struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:256;not null" json:"name"`
	CustomerName string `gorm:"size:256" json:"customer_name"`
	Location     string `gorm:"size:256" json:"location"`

	// Building specs
	NumFloors   int      `gorm:"not null;default:1" json:"num_floors"`
	FloorHeight float64  `gorm:"not null;default:6.0" json:"floor_height"` // meters
	TotalArea   *float64 `json:"total_area"`                              // sqm

	ModelFile string `gorm:"size:256" json:"model_file"` // path to the warehouse GLB file

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Devices []InstalledDevice `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE" json:"-"`
}
