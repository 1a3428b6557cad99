package models

import "time"

// Hospital represents the hospitals table.
// Every domain record in the system belongs to exactly one hospital.
type Hospital struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	HospitalType  string    `gorm:"size:100" json:"hospital_type"`
	Address       string    `gorm:"type:text" json:"address,omitempty"`
	City          string    `gorm:"size:100" json:"city,omitempty"`
	State         string    `gorm:"size:100" json:"state,omitempty"`
	Zipcode       string    `gorm:"size:10" json:"zipcode,omitempty"`
	PhoneNumber   string    `gorm:"size:15" json:"phone_number,omitempty"`
	Email         string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	AdminID       *uint     `gorm:"index" json:"admin_id"`
	Plan          string    `gorm:"type:enum('basic','pro','premium');default:'basic'" json:"plan"`
	PaymentMethod string    `gorm:"type:enum('prepaid','cod','direct');default:'prepaid'" json:"payment_method"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	GSTIN         string    `gorm:"size:15" json:"gstin,omitempty"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	Admin *User `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

// TableName specifies the table name for Hospital model
func (Hospital) TableName() string {
	return "hospitals"
}

// Subscription represents a billing period purchased by a hospital
type Subscription struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	HospitalID    uint      `gorm:"not null;index" json:"hospital_id"`
	Plan          string    `gorm:"type:enum('basic','pro','premium');default:'basic'" json:"plan"`
	StartDate     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"start_date"`
	EndDate       time.Time `gorm:"not null" json:"end_date"`
	PaymentStatus string    `gorm:"type:enum('pending','paid','overdue');default:'pending'" json:"payment_status"`
	BaseAmount    float64   `gorm:"type:decimal(10,2)" json:"base_amount"`
	GSTAmount     float64   `gorm:"type:decimal(10,2)" json:"gst_amount"`
	TotalAmount   float64   `gorm:"type:decimal(10,2)" json:"total_amount"`

	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

// TableName specifies the table name for Subscription model
func (Subscription) TableName() string {
	return "subscriptions"
}
