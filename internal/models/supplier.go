package models

import "time"

// Supplier statuses
const (
	SupplierActive   = "Active"
	SupplierOnHold   = "OnHold"
	SupplierInactive = "Inactive"
)

// Supplier represents the suppliers table
type Supplier struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	HospitalID       uint      `gorm:"not null;uniqueIndex:idx_supplier_hospital_name_tax" json:"hospital_id"`
	Name             string    `gorm:"size:255;not null;uniqueIndex:idx_supplier_hospital_name_tax" json:"name"`
	ContactName      string    `gorm:"size:100" json:"contact_name,omitempty"`
	ContactEmail     string    `gorm:"size:255" json:"contact_email,omitempty"`
	ContactPhone     string    `gorm:"size:20" json:"contact_phone,omitempty"`
	Address          string    `gorm:"type:text" json:"address,omitempty"`
	ReliabilityScore int       `gorm:"default:0" json:"reliability_score"`
	Status           string    `gorm:"type:enum('Active','OnHold','Inactive');default:'Active'" json:"status"`
	TaxID            string    `gorm:"size:50;uniqueIndex:idx_supplier_hospital_name_tax" json:"tax_id,omitempty"`
	Website          string    `gorm:"size:255" json:"website,omitempty"`
	SupplierType     string    `gorm:"size:50" json:"supplier_type,omitempty"`
	PaymentTerms     string    `gorm:"size:50" json:"payment_terms,omitempty"`
	Currency         string    `gorm:"size:3;default:'USD'" json:"currency"`
	Approved         bool      `gorm:"default:true" json:"approved"`
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

// TableName specifies the table name for Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}

// Purchase order statuses. DRAFT -> SUBMITTED -> RECEIVED, with CANCELLED
// reachable from DRAFT or SUBMITTED. RECEIVED and CANCELLED are terminal.
const (
	POStatusDraft     = "DRAFT"
	POStatusSubmitted = "SUBMITTED"
	POStatusReceived  = "RECEIVED"
	POStatusCancelled = "CANCELLED"
)

// PurchaseOrder represents the purchase_orders table. TotalCost is a
// derived sum over items, recomputed on every item write. PONumber is
// allocated once at creation and never regenerated.
type PurchaseOrder struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	HospitalID       uint       `gorm:"not null;uniqueIndex:idx_po_hospital_number" json:"hospital_id"`
	PONumber         string     `gorm:"column:po_number;size:50;not null;uniqueIndex:idx_po_hospital_number" json:"po_number"`
	SupplierID       *uint      `gorm:"index" json:"supplier_id"`
	Status           string     `gorm:"type:enum('DRAFT','SUBMITTED','RECEIVED','CANCELLED');default:'DRAFT'" json:"status"`
	OrderDate        time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"order_date"`
	ExpectedDelivery *time.Time `json:"expected_delivery,omitempty"`
	TotalCost        float64    `gorm:"type:decimal(12,2);default:0.00" json:"total_cost"`
	Notes            string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	Hospital Hospital            `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Supplier *Supplier           `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Items    []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
}

// TableName specifies the table name for PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// IsTerminal reports whether no further mutation is permitted.
func (p *PurchaseOrder) IsTerminal() bool {
	return p.Status == POStatusReceived || p.Status == POStatusCancelled
}

// PurchaseOrderItem is a line item on a purchase order
type PurchaseOrderItem struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	PurchaseOrderID  uint    `gorm:"not null;index" json:"purchase_order_id"`
	InventoryItemID  uint    `gorm:"not null;index" json:"inventory_item_id"`
	Quantity         int     `gorm:"not null" json:"quantity"`
	UnitPrice        float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	ReceivedQuantity int     `gorm:"default:0" json:"received_quantity"`

	PurchaseOrder PurchaseOrder `gorm:"foreignKey:PurchaseOrderID" json:"purchase_order,omitempty"`
	InventoryItem InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventory_item,omitempty"`
}

// TableName specifies the table name for PurchaseOrderItem model
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}
