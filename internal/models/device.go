package models

import "time"

// Device operational states
const (
	DeviceOperational      = "Operational"
	DeviceNeedsCalibration = "Needs_Calibration"
	DeviceUnderMaintenance = "Under_Maintenance"
)

// Device represents the devices table.
// NextCalibration mirrors the most recently created Calibration's
// next_calibration value; it is kept in sync by the device service, never
// written directly by a device update.
type Device struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	HospitalID         uint       `gorm:"not null;index" json:"hospital_id"`
	Name               string     `gorm:"size:50" json:"name,omitempty"`
	MakeModel          string     `gorm:"size:100;not null" json:"make_model"`
	Manufacture        string     `gorm:"size:100" json:"manufacture,omitempty"`
	SerialNumber       string     `gorm:"size:50;uniqueIndex;not null" json:"serial_number"`
	DateOfInstallation *time.Time `json:"date_of_installation,omitempty"`
	WarrantyUntil      *time.Time `json:"warranty_until,omitempty"`
	AssetNumber        string     `gorm:"size:50;not null" json:"asset_number"`
	AssetDetails       string     `gorm:"type:enum('Excellent','Poor')" json:"asset_details,omitempty"`
	Status             string     `gorm:"column:is_active;type:enum('Operational','Needs_Calibration','Under_Maintenance');default:'Operational'" json:"is_active"`
	Department         string     `gorm:"size:50" json:"department,omitempty"`
	Room               string     `gorm:"size:50" json:"room,omitempty"`
	NFCUUID            *string    `gorm:"column:nfc_uuid;size:64;uniqueIndex" json:"nfc_uuid,omitempty"`
	NextCalibration    *time.Time `json:"next_calibration"`
	CreatedAt          time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	Hospital        Hospital         `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	ServiceLogs     []ServiceLog     `gorm:"foreignKey:DeviceID" json:"service_logs,omitempty"`
	Specifications  []Specification  `gorm:"foreignKey:DeviceID" json:"specifications,omitempty"`
	Documentation   []Documentation  `gorm:"foreignKey:DeviceID" json:"documentation,omitempty"`
	Calibrations    []Calibration    `gorm:"foreignKey:DeviceID" json:"calibrations,omitempty"`
	IncidentReports []IncidentReport `gorm:"foreignKey:DeviceID" json:"incident_reports,omitempty"`
}

// TableName specifies the table name for Device model
func (Device) TableName() string {
	return "devices"
}

// ServiceLog represents a maintenance/service entry for a device
type ServiceLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	DeviceID       uint      `gorm:"not null;index" json:"device_id"`
	ServiceDate    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"service_date"`
	ServiceType    string    `gorm:"size:50" json:"service_type,omitempty"`
	EngineerID     uint      `gorm:"not null;index" json:"engineer_id"`
	ServiceDetails string    `gorm:"type:text" json:"service_details,omitempty"`
	Status         string    `gorm:"type:enum('scheduled','completed','overdue');default:'scheduled'" json:"status"`
	Document       string    `gorm:"size:255" json:"document,omitempty"`

	Device   Device   `gorm:"foreignKey:DeviceID" json:"device,omitempty"`
	Engineer Employee `gorm:"foreignKey:EngineerID" json:"engineer,omitempty"`
}

// TableName specifies the table name for ServiceLog model
func (ServiceLog) TableName() string {
	return "service_logs"
}

// Specification holds technical details for a device
type Specification struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	DeviceID            uint   `gorm:"not null;index" json:"device_id"`
	PowerSupply         string `gorm:"size:50" json:"power_supply,omitempty"`
	BatteryType         string `gorm:"size:50" json:"battery_type,omitempty"`
	BatteryLife         string `gorm:"size:50" json:"battery_life,omitempty"`
	Weight              string `gorm:"size:50" json:"weight,omitempty"`
	Dimensions          string `gorm:"size:50" json:"dimensions,omitempty"`
	ConnectivityOptions string `gorm:"size:50" json:"connectivity_options,omitempty"`
	Certifications      string `gorm:"size:50" json:"certifications,omitempty"`

	Device Device `gorm:"foreignKey:DeviceID" json:"device,omitempty"`
}

// TableName specifies the table name for Specification model
func (Specification) TableName() string {
	return "specifications"
}

// Documentation references manuals and other documents for a device
type Documentation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	DeviceID        uint      `gorm:"not null;index" json:"device_id"`
	Document        string    `gorm:"size:50" json:"document,omitempty"`
	Types           string    `gorm:"size:50" json:"types,omitempty"`
	LastUpdated     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"last_updated"`
	StorageLocation string    `gorm:"size:255" json:"storage_location,omitempty"`

	Device Device `gorm:"foreignKey:DeviceID" json:"device,omitempty"`
}

// TableName specifies the table name for Documentation model
func (Documentation) TableName() string {
	return "documentations"
}

// Calibration represents a calibration record for a device
type Calibration struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	DeviceID        uint       `gorm:"not null;index" json:"device_id"`
	CalibrationDate time.Time  `gorm:"not null" json:"calibration_date"`
	NextCalibration *time.Time `json:"next_calibration"`
	Result          string     `gorm:"size:50" json:"result,omitempty"`
	Notes           string     `gorm:"type:text" json:"notes,omitempty"`
	EngineerID      *uint      `gorm:"index" json:"engineer_id"`
	Status          string     `gorm:"type:enum('scheduled','completed','overdue');default:'scheduled'" json:"status"`
	Document        string     `gorm:"size:255" json:"document,omitempty"`
	CreatedAt       time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Device   Device    `gorm:"foreignKey:DeviceID" json:"device,omitempty"`
	Engineer *Employee `gorm:"foreignKey:EngineerID" json:"engineer,omitempty"`
}

// TableName specifies the table name for Calibration model
func (Calibration) TableName() string {
	return "calibrations"
}

// Incident type categories
const (
	IncidentEnvFault              = "env_fault"
	IncidentUserFault             = "user_fault"
	IncidentUserKnowledge         = "user_knowledge"
	IncidentUserCarelessness      = "user_carelessness"
	IncidentElectricalFailure     = "electrical_failure"
	IncidentComponentFailure      = "comp_failure"
	IncidentComponentMalfunction  = "comp_malfunction"
	IncidentDeviceLifetimeEnd     = "device_lifetime_end"
	IncidentIncompatibleComponent = "incompatible_component"
)

// IncidentReport records a fault or misuse event involving a device
type IncidentReport struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	DeviceID          uint      `gorm:"not null;index" json:"device_id"`
	IncidentType      string    `gorm:"size:50;not null" json:"incident_type"`
	IncidentDate      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"incident_date"`
	Description       string    `gorm:"type:text;not null" json:"description"`
	ReportedByID      *uint     `gorm:"index" json:"reported_by_id"`
	RelatedEmployeeID *uint     `gorm:"index" json:"related_employee_id"`

	Device          Device    `gorm:"foreignKey:DeviceID" json:"device,omitempty"`
	ReportedBy      *Employee `gorm:"foreignKey:ReportedByID" json:"reported_by,omitempty"`
	RelatedEmployee *Employee `gorm:"foreignKey:RelatedEmployeeID" json:"related_employee,omitempty"`
}

// TableName specifies the table name for IncidentReport model
func (IncidentReport) TableName() string {
	return "incident_reports"
}
