package models

import "time"

// ComplianceStandard represents a regulatory standard tracked by a
// hospital; name is unique per hospital.
type ComplianceStandard struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	HospitalID    uint       `gorm:"not null;uniqueIndex:idx_standard_hospital_name" json:"hospital_id"`
	Name          string     `gorm:"size:100;not null;uniqueIndex:idx_standard_hospital_name" json:"name"`
	Status        string     `gorm:"type:enum('Compliant','Pending Review','Require Attention');default:'Pending Review'" json:"status"`
	Progress      int        `gorm:"default:0" json:"progress"`
	LastAuditDate *time.Time `json:"last_audit_date,omitempty"`
	NextAuditDate *time.Time `json:"next_audit_date,omitempty"`
	CreatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

// TableName specifies the table name for ComplianceStandard model
func (ComplianceStandard) TableName() string {
	return "compliance_standards"
}

// Audit represents a scheduled or completed compliance audit
type Audit struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	HospitalID uint      `gorm:"not null;index" json:"hospital_id"`
	StandardID uint      `gorm:"not null;index" json:"standard_id"`
	Title      string    `gorm:"size:100;not null" json:"title"`
	AuditDate  time.Time `gorm:"not null" json:"audit_date"`
	Status     string    `gorm:"type:enum('Scheduled','Pending','Completed');default:'Scheduled'" json:"status"`
	Auditor    string    `gorm:"size:100" json:"auditor"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	Hospital Hospital           `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Standard ComplianceStandard `gorm:"foreignKey:StandardID" json:"standard,omitempty"`
}

// TableName specifies the table name for Audit model
func (Audit) TableName() string {
	return "audits"
}

// ComplianceDocument is a document attached to a compliance standard
type ComplianceDocument struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	HospitalID uint      `gorm:"not null;index" json:"hospital_id"`
	StandardID uint      `gorm:"not null;index" json:"standard_id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	File       string    `gorm:"size:255" json:"file,omitempty"`
	Status     string    `gorm:"type:enum('Complete','In Progress','Require Attention');default:'In Progress'" json:"status"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	Hospital Hospital           `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Standard ComplianceStandard `gorm:"foreignKey:StandardID" json:"standard,omitempty"`
}

// TableName specifies the table name for ComplianceDocument model
func (ComplianceDocument) TableName() string {
	return "compliance_documents"
}
