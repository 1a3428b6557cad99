package models

import "time"

// Stock level classifications, derived from quantity vs reorder level at
// read time and never stored.
const (
	StockLow    = "Low"
	StockMedium = "Medium"
	StockHigh   = "High"
)

// Category groups inventory items; name is unique per hospital
type Category struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	HospitalID uint   `gorm:"not null;uniqueIndex:idx_category_hospital_name" json:"hospital_id"`
	Name       string `gorm:"size:50;not null;uniqueIndex:idx_category_hospital_name" json:"name"`

	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "categories"
}

// Unit is a measurement unit for inventory items
type Unit struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	HospitalID uint   `gorm:"not null;index" json:"hospital_id"`
	Name       string `gorm:"size:50;not null" json:"name"`

	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

// TableName specifies the table name for Unit model
func (Unit) TableName() string {
	return "units"
}

// InventoryItem represents the inventory_items table; SKU is unique per
// hospital.
type InventoryItem struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	HospitalID   uint       `gorm:"not null;uniqueIndex:idx_item_hospital_sku" json:"hospital_id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	CategoryID   *uint      `gorm:"index" json:"category_id"`
	Quantity     int        `gorm:"default:0" json:"quantity"`
	UnitID       *uint      `gorm:"index" json:"unit_id"`
	ReorderLevel int        `gorm:"default:0" json:"reorder_level"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	Location     string     `gorm:"size:100" json:"location,omitempty"`
	SKU          string     `gorm:"column:sku;size:50;not null;uniqueIndex:idx_item_hospital_sku" json:"sku"`
	Barcode      string     `gorm:"size:50" json:"barcode,omitempty"`
	Cost         float64    `gorm:"type:decimal(10,2);default:0.00" json:"cost"`
	Tax          float64    `gorm:"type:decimal(5,2);default:0.00" json:"tax"`
	SupplierID   *uint      `gorm:"index" json:"supplier_id"`
	Batch        string     `gorm:"size:50" json:"batch,omitempty"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	LastUpdated  time.Time  `gorm:"autoUpdateTime" json:"last_updated"`

	// StockLevel is derived, populated on reads only.
	StockLevel string `gorm:"-" json:"stock_level,omitempty"`

	Hospital Hospital  `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Unit     *Unit     `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// TableName specifies the table name for InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// ComputeStockLevel classifies the item's on-hand quantity against its
// reorder level.
func (i *InventoryItem) ComputeStockLevel() string {
	switch {
	case i.Quantity <= i.ReorderLevel:
		return StockLow
	case i.Quantity <= i.ReorderLevel*2:
		return StockMedium
	default:
		return StockHigh
	}
}
