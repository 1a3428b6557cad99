package repository

import (
	"errors"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"gorm.io/gorm"
)

var patientOrderFields = map[string]string{
	"id":         "id",
	"patient_id": "patient_id",
	"first_name": "first_name",
	"last_name":  "last_name",
	"last_visit": "last_visit",
	"created_at": "created_at",
}

// PatientFilter narrows patient list queries.
type PatientFilter struct {
	Status             string
	PrimaryPhysicianID *uint
}

// PatientRepository persists patients and their medical sub-records.
type PatientRepository interface {
	ListPatients(hospitalID uint, params utils.PageParams, filter PatientFilter) ([]models.Patient, int64, error)
	GetPatientByPID(hospitalID uint, patientID string) (*models.Patient, error)
	LastPatientID(hospitalID uint) (string, error)
	CreatePatient(patient *models.Patient) error
	UpdatePatient(patient *models.Patient) error
	DeletePatient(hospitalID uint, patientID string) error

	CreateEmergencyContact(contact *models.EmergencyContact) error
	CreateVital(vital *models.Vital) error
	ListVitals(patientRowID uint) ([]models.Vital, error)
	CreateMedicalHistory(history *models.MedicalHistory) error
	ListMedicalHistories(patientRowID uint) ([]models.MedicalHistory, error)
	CreateMedication(medication *models.Medication) error
	ListMedications(patientRowID uint) ([]models.Medication, error)
	CreateAppointment(appointment *models.Appointment) error
	UpdateAppointment(appointment *models.Appointment) error
	GetAppointment(patientRowID, id uint) (*models.Appointment, error)
	ListAppointments(patientRowID uint) ([]models.Appointment, error)
}

type patientRepo struct {
	db *gorm.DB
}

func NewPatientRepo(db *gorm.DB) PatientRepository {
	return &patientRepo{db: db}
}

// ListPatients retrieves a filtered page of a hospital's patients
func (r *patientRepo) ListPatients(hospitalID uint, params utils.PageParams, filter PatientFilter) ([]models.Patient, int64, error) {
	query := r.db.Model(&models.Patient{}).Where("hospital_id = ?", hospitalID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PrimaryPhysicianID != nil {
		query = query.Where("primary_physician_id = ?", *filter.PrimaryPhysicianID)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("patient_id LIKE ? OR first_name LIKE ? OR last_name LIKE ? OR phone_number LIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patients []models.Patient
	err := query.
		Order(params.OrderClause(patientOrderFields, "id ASC")).
		Limit(params.Limit).
		Offset(params.Offset()).
		Preload("PrimaryPhysician.User").
		Find(&patients).Error
	return patients, total, err
}

// GetPatientByPID retrieves a patient by public identifier with sub-records
func (r *patientRepo) GetPatientByPID(hospitalID uint, patientID string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.Where("hospital_id = ? AND patient_id = ?", hospitalID, patientID).
		Preload("PrimaryPhysician.User").
		Preload("EmergencyContact").
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, err
	}
	return &patient, nil
}

// LastPatientID returns the most recently created patient identifier for a
// hospital, empty when the hospital has none.
func (r *patientRepo) LastPatientID(hospitalID uint) (string, error) {
	var patient models.Patient
	err := r.db.Where("hospital_id = ?", hospitalID).
		Order("id DESC").
		Select("patient_id").
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return patient.PatientID, nil
}

// CreatePatient creates a new patient, including any emergency contacts
// supplied on the struct.
func (r *patientRepo) CreatePatient(patient *models.Patient) error {
	err := r.db.Create(patient).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("patient_id")
	}
	return err
}

// UpdatePatient saves patient changes
func (r *patientRepo) UpdatePatient(patient *models.Patient) error {
	return r.db.Omit("EmergencyContact", "PrimaryPhysician", "Hospital").
		Save(patient).Error
}

// DeletePatient removes a patient and all dependent records
func (r *patientRepo) DeletePatient(hospitalID uint, patientID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var patient models.Patient
		err := tx.Where("hospital_id = ? AND patient_id = ?", hospitalID, patientID).
			First(&patient).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("patient")
			}
			return err
		}
		for _, sub := range []interface{}{
			&models.EmergencyContact{},
			&models.Vital{},
			&models.MedicalHistory{},
			&models.Medication{},
			&models.Appointment{},
		} {
			if err := tx.Where("patient_row_id = ?", patient.ID).Delete(sub).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&patient).Error
	})
}

// CreateEmergencyContact creates an emergency contact for a patient
func (r *patientRepo) CreateEmergencyContact(contact *models.EmergencyContact) error {
	return r.db.Create(contact).Error
}

// CreateVital records a vital sign reading
func (r *patientRepo) CreateVital(vital *models.Vital) error {
	return r.db.Create(vital).Error
}

// ListVitals retrieves a patient's vitals, newest first
func (r *patientRepo) ListVitals(patientRowID uint) ([]models.Vital, error) {
	var vitals []models.Vital
	err := r.db.Where("patient_row_id = ?", patientRowID).
		Order("recorded_at DESC").
		Find(&vitals).Error
	return vitals, err
}

// CreateMedicalHistory adds a condition to a patient's record
func (r *patientRepo) CreateMedicalHistory(history *models.MedicalHistory) error {
	return r.db.Create(history).Error
}

// ListMedicalHistories retrieves a patient's conditions, newest first
func (r *patientRepo) ListMedicalHistories(patientRowID uint) ([]models.MedicalHistory, error) {
	var histories []models.MedicalHistory
	err := r.db.Where("patient_row_id = ?", patientRowID).
		Order("diagnosed_date DESC").
		Find(&histories).Error
	return histories, err
}

// CreateMedication adds a prescription to a patient's record
func (r *patientRepo) CreateMedication(medication *models.Medication) error {
	return r.db.Create(medication).Error
}

// ListMedications retrieves a patient's prescriptions, newest first
func (r *patientRepo) ListMedications(patientRowID uint) ([]models.Medication, error) {
	var medications []models.Medication
	err := r.db.Where("patient_row_id = ?", patientRowID).
		Order("start_date DESC").
		Preload("PrescribedBy.User").
		Find(&medications).Error
	return medications, err
}

// CreateAppointment schedules a visit for a patient
func (r *patientRepo) CreateAppointment(appointment *models.Appointment) error {
	return r.db.Create(appointment).Error
}

// UpdateAppointment saves appointment changes
func (r *patientRepo) UpdateAppointment(appointment *models.Appointment) error {
	return r.db.Omit("Patient", "Doctor").Save(appointment).Error
}

// GetAppointment retrieves one appointment of a patient
func (r *patientRepo) GetAppointment(patientRowID, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.Where("patient_row_id = ? AND id = ?", patientRowID, id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, err
	}
	return &appointment, nil
}

// ListAppointments retrieves a patient's appointments, soonest first
func (r *patientRepo) ListAppointments(patientRowID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Where("patient_row_id = ?", patientRowID).
		Order("appointment_date ASC").
		Preload("Doctor.User").
		Find(&appointments).Error
	return appointments, err
}
