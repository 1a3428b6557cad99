package models

import "time"

// Employee roles. The role is the sole discriminant used by the
// authorization policy for domain resources.
const (
	RoleDoctor       = "doctor"
	RoleNurse        = "nurse"
	RoleStaff        = "staff"
	RoleEngineer     = "engineer"
	RoleReceptionist = "receptionist"
	RoleOther        = "other"
)

// Employee represents the employees table.
// One-to-one with a User; belongs to at most one hospital. HospitalID is
// nullable so platform staff can exist without a tenant.
type Employee struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	HospitalID  *uint      `gorm:"index" json:"hospital_id"`
	Role        string     `gorm:"type:enum('doctor','nurse','staff','engineer','receptionist','other');default:'staff'" json:"role"`
	Department  string     `gorm:"size:100;default:'it'" json:"department"`
	PhoneNumber string     `gorm:"size:15" json:"phone_number,omitempty"`
	AccessLevel string     `gorm:"type:enum('admin','full','standard','limited','none');default:'standard'" json:"access_level"`
	Status      string     `gorm:"type:enum('active','inactive');default:'active'" json:"status"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	EmployeeID  string     `gorm:"size:50;uniqueIndex;not null" json:"employee_id"`
	CreatedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Hospital *Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

// TableName specifies the table name for Employee model
func (Employee) TableName() string {
	return "employees"
}
