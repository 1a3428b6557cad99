package models

import "time"

// Patient represents the patients table. PatientID is allocated once at
// creation (P-<n>, unique per hospital) and never regenerated.
type Patient struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	HospitalID            uint       `gorm:"not null;uniqueIndex:idx_patient_hospital_pid" json:"hospital_id"`
	PatientID             string     `gorm:"column:patient_id;size:50;not null;uniqueIndex:idx_patient_hospital_pid" json:"patient_id"`
	FirstName             string     `gorm:"size:100;not null" json:"first_name"`
	LastName              string     `gorm:"size:100;not null" json:"last_name"`
	DateOfBirth           time.Time  `gorm:"not null" json:"date_of_birth"`
	Gender                string     `gorm:"type:enum('male','female','other')" json:"gender"`
	Email                 string     `gorm:"size:255" json:"email,omitempty"`
	PhoneNumber           string     `gorm:"size:15;not null" json:"phone_number"`
	Address               string     `gorm:"type:text" json:"address,omitempty"`
	City                  string     `gorm:"size:100" json:"city,omitempty"`
	State                 string     `gorm:"size:100" json:"state,omitempty"`
	PostalCode            string     `gorm:"size:20" json:"postal_code,omitempty"`
	Country               string     `gorm:"size:100;default:'India'" json:"country,omitempty"`
	BloodType             string     `gorm:"size:10" json:"blood_type,omitempty"`
	Height                *float64   `json:"height,omitempty"`
	Weight                *float64   `json:"weight,omitempty"`
	PrimaryPhysicianID    *uint      `gorm:"index" json:"primary_physician_id"`
	Allergies             string     `gorm:"type:text" json:"allergies,omitempty"`
	MedicalConditions     string     `gorm:"type:text" json:"medical_conditions,omitempty"`
	Medication            string     `gorm:"type:text" json:"medication,omitempty"`
	InsuranceProvider     string     `gorm:"size:100" json:"insurance_provider,omitempty"`
	PolicyNumber          string     `gorm:"size:50" json:"policy_number,omitempty"`
	GroupNumber           string     `gorm:"size:50" json:"group_number,omitempty"`
	PolicyHolder          string     `gorm:"size:100" json:"policy_holder,omitempty"`
	RelationshipToHolder  string     `gorm:"size:50" json:"relationship_to_holder,omitempty"`
	CoverageStartDate     *time.Time `json:"coverage_start_date,omitempty"`
	CoverageEndDate       *time.Time `json:"coverage_end_date,omitempty"`
	HasSecondaryInsurance bool       `gorm:"default:false" json:"has_secondary_insurance"`
	Status                string     `gorm:"type:enum('Active','Inactive');default:'Active'" json:"status"`
	LastVisit             *time.Time `json:"last_visit,omitempty"`
	CreatedAt             time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	Hospital         Hospital           `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	PrimaryPhysician *Employee          `gorm:"foreignKey:PrimaryPhysicianID" json:"primary_physician,omitempty"`
	EmergencyContact []EmergencyContact `gorm:"foreignKey:PatientRowID" json:"emergency_contacts,omitempty"`
}

// TableName specifies the table name for Patient model
func (Patient) TableName() string {
	return "patients"
}

// EmergencyContact is a person to reach for a patient
type EmergencyContact struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PatientRowID uint      `gorm:"column:patient_row_id;not null;index" json:"patient_row_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Relationship string    `gorm:"size:50" json:"relationship"`
	Phone        string    `gorm:"size:15;not null" json:"phone"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Patient Patient `gorm:"foreignKey:PatientRowID" json:"patient,omitempty"`
}

// TableName specifies the table name for EmergencyContact model
func (EmergencyContact) TableName() string {
	return "emergency_contacts"
}

// Vital is a point-in-time vital sign reading for a patient
type Vital struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	PatientRowID     uint      `gorm:"column:patient_row_id;not null;index" json:"patient_row_id"`
	HeartRate        *int      `json:"heart_rate,omitempty"`
	BloodPressure    string    `gorm:"size:20" json:"blood_pressure,omitempty"`
	Temperature      *float64  `json:"temperature,omitempty"`
	RespiratoryRate  *int      `json:"respiratory_rate,omitempty"`
	OxygenSaturation *int      `json:"oxygen_saturation,omitempty"`
	RecordedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"recorded_at"`
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Patient Patient `gorm:"foreignKey:PatientRowID" json:"patient,omitempty"`
}

// TableName specifies the table name for Vital model
func (Vital) TableName() string {
	return "vitals"
}

// MedicalHistory is a diagnosed condition on a patient's record
type MedicalHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PatientRowID  uint      `gorm:"column:patient_row_id;not null;index" json:"patient_row_id"`
	Condition     string    `gorm:"size:200;not null" json:"condition"`
	DiagnosedDate time.Time `gorm:"not null" json:"diagnosed_date"`
	Status        string    `gorm:"type:enum('Active','Controlled','Resolved');default:'Active'" json:"status"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Patient Patient `gorm:"foreignKey:PatientRowID" json:"patient,omitempty"`
}

// TableName specifies the table name for MedicalHistory model
func (MedicalHistory) TableName() string {
	return "medical_histories"
}

// Medication is a prescription on a patient's record
type Medication struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	PatientRowID   uint       `gorm:"column:patient_row_id;not null;index" json:"patient_row_id"`
	Name           string     `gorm:"size:100;not null" json:"name"`
	Dosage         string     `gorm:"size:50" json:"dosage"`
	Frequency      string     `gorm:"size:100" json:"frequency"`
	PrescribedByID *uint      `gorm:"index" json:"prescribed_by_id"`
	StartDate      time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"start_date"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	CreatedAt      time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Patient      Patient   `gorm:"foreignKey:PatientRowID" json:"patient,omitempty"`
	PrescribedBy *Employee `gorm:"foreignKey:PrescribedByID" json:"prescribed_by,omitempty"`
}

// TableName specifies the table name for Medication model
func (Medication) TableName() string {
	return "medications"
}

// Appointment is a scheduled visit for a patient
type Appointment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PatientRowID    uint      `gorm:"column:patient_row_id;not null;index" json:"patient_row_id"`
	DoctorID        *uint     `gorm:"index" json:"doctor_id"`
	AppointmentDate time.Time `gorm:"not null" json:"appointment_date"`
	AppointmentTime string    `gorm:"size:10" json:"appointment_time"`
	Type            string    `gorm:"size:100;default:'Consultation'" json:"type"`
	Status          string    `gorm:"type:enum('Scheduled','Completed','Canceled');default:'Scheduled'" json:"status"`
	Notes           string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Patient Patient   `gorm:"foreignKey:PatientRowID" json:"patient,omitempty"`
	Doctor  *Employee `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}
