package model

import "time"

// Dimensions describes a product's bounding box in millimetres.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Product is one entry of the reference catalog. Catalog entries are created
// once (seed or explicit POST) and never updated or deleted afterwards.
type Product struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ProductCode  string `gorm:"uniqueIndex;size:64;not null" json:"product_code"`
	Name         string `gorm:"size:256;not null" json:"name"`
	Type         string `gorm:"size:128;not null" json:"type"`
	Manufacturer string `gorm:"size:128;default:Schneider Electric" json:"manufacturer"`
	ModelNumber  string `gorm:"size:128" json:"model_number"`
	Category     string `gorm:"size:128" json:"category"`

	// Technical specs
	PowerRating *float64    `json:"power_rating"` // kW or kVA
	Voltage     string      `gorm:"size:32" json:"voltage"`
	Dimensions  *Dimensions `gorm:"serializer:json" json:"dimensions"`
	Weight      *float64    `json:"weight"` // kg

	// 3D asset reference
	ModelFile      string `gorm:"size:256" json:"model_file"` // path to the GLB file
	MeshIdentifier string `gorm:"size:128" json:"mesh_identifier"`

	// Business info
	WarrantyYears int      `gorm:"not null;default:3" json:"warranty_years"`
	Price         *float64 `json:"price"`
	Description   string   `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`

	// Associations
	Devices []InstalledDevice `gorm:"foreignKey:ProductID" json:"-"`
}
