package service

import (
	"fmt"
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/authz"
	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/internal/seqid"
	"github.com/Yogesh-MG/Meditrackpro/pkg/logger"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"go.uber.org/zap"
)

// EmergencyContactRequest is one contact on a patient write
type EmergencyContactRequest struct {
	Name         string `json:"name" binding:"required"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone" binding:"required"`
}

// CreatePatientRequest carries a new patient's demographics and insurance
type CreatePatientRequest struct {
	FirstName             string                    `json:"first_name" binding:"required"`
	LastName              string                    `json:"last_name" binding:"required"`
	DateOfBirth           time.Time                 `json:"date_of_birth" binding:"required"`
	Gender                string                    `json:"gender" binding:"omitempty,oneof=male female other"`
	Email                 string                    `json:"email"`
	PhoneNumber           string                    `json:"phone_number" binding:"required"`
	Address               string                    `json:"address"`
	City                  string                    `json:"city"`
	State                 string                    `json:"state"`
	PostalCode            string                    `json:"postal_code"`
	Country               string                    `json:"country"`
	BloodType             string                    `json:"blood_type"`
	Height                *float64                  `json:"height"`
	Weight                *float64                  `json:"weight"`
	PrimaryPhysicianID    *uint                     `json:"primary_physician_id"`
	Allergies             string                    `json:"allergies"`
	MedicalConditions     string                    `json:"medical_conditions"`
	Medication            string                    `json:"medication"`
	InsuranceProvider     string                    `json:"insurance_provider"`
	PolicyNumber          string                    `json:"policy_number"`
	GroupNumber           string                    `json:"group_number"`
	PolicyHolder          string                    `json:"policy_holder"`
	RelationshipToHolder  string                    `json:"relationship_to_holder"`
	CoverageStartDate     *time.Time                `json:"coverage_start_date"`
	CoverageEndDate       *time.Time                `json:"coverage_end_date"`
	HasSecondaryInsurance bool                      `json:"has_secondary_insurance"`
	EmergencyContacts     []EmergencyContactRequest `json:"emergency_contacts"`
}

// UpdatePatientRequest carries mutable patient fields; patient_id is
// immutable.
type UpdatePatientRequest struct {
	FirstName            *string    `json:"first_name"`
	LastName             *string    `json:"last_name"`
	Gender               *string    `json:"gender"`
	Email                *string    `json:"email"`
	PhoneNumber          *string    `json:"phone_number"`
	Address              *string    `json:"address"`
	City                 *string    `json:"city"`
	State                *string    `json:"state"`
	PostalCode           *string    `json:"postal_code"`
	Country              *string    `json:"country"`
	BloodType            *string    `json:"blood_type"`
	Height               *float64   `json:"height"`
	Weight               *float64   `json:"weight"`
	PrimaryPhysicianID   *uint      `json:"primary_physician_id"`
	Allergies            *string    `json:"allergies"`
	MedicalConditions    *string    `json:"medical_conditions"`
	Medication           *string    `json:"medication"`
	InsuranceProvider    *string    `json:"insurance_provider"`
	PolicyNumber         *string    `json:"policy_number"`
	GroupNumber          *string    `json:"group_number"`
	PolicyHolder         *string    `json:"policy_holder"`
	RelationshipToHolder *string    `json:"relationship_to_holder"`
	CoverageStartDate    *time.Time `json:"coverage_start_date"`
	CoverageEndDate      *time.Time `json:"coverage_end_date"`
	Status               *string    `json:"status"`
	LastVisit            *time.Time `json:"last_visit"`
}

// CreateVitalRequest records a vital sign reading
type CreateVitalRequest struct {
	HeartRate        *int      `json:"heart_rate"`
	BloodPressure    string    `json:"blood_pressure"`
	Temperature      *float64  `json:"temperature"`
	RespiratoryRate  *int      `json:"respiratory_rate"`
	OxygenSaturation *int      `json:"oxygen_saturation"`
	RecordedAt       time.Time `json:"recorded_at"`
}

// CreateMedicalHistoryRequest adds a condition to the record
type CreateMedicalHistoryRequest struct {
	Condition     string    `json:"condition" binding:"required"`
	DiagnosedDate time.Time `json:"diagnosed_date" binding:"required"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
}

// CreateMedicationRequest adds a prescription to the record
type CreateMedicationRequest struct {
	Name      string     `json:"name" binding:"required"`
	Dosage    string     `json:"dosage"`
	Frequency string     `json:"frequency"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// CreateAppointmentRequest schedules a visit
type CreateAppointmentRequest struct {
	DoctorID        *uint     `json:"doctor_id"`
	AppointmentDate time.Time `json:"appointment_date" binding:"required"`
	AppointmentTime string    `json:"appointment_time"`
	Type            string    `json:"type"`
	Notes           string    `json:"notes"`
}

// UpdateAppointmentRequest carries mutable appointment fields
type UpdateAppointmentRequest struct {
	AppointmentDate *time.Time `json:"appointment_date"`
	AppointmentTime *string    `json:"appointment_time"`
	Type            *string    `json:"type"`
	Status          *string    `json:"status"`
	Notes           *string    `json:"notes"`
}

// PatientService manages patients and their medical sub-records. Medical
// writes require the doctor role; demographic reads and writes are open to
// any employee of the hospital.
type PatientService interface {
	ListPatients(actor authz.Actor, hospitalID uint, params utils.PageParams, filter repository.PatientFilter) ([]models.Patient, int64, error)
	GetPatient(actor authz.Actor, hospitalID uint, patientID string) (*models.Patient, error)
	CreatePatient(actor authz.Actor, hospitalID uint, req CreatePatientRequest) (*models.Patient, error)
	UpdatePatient(actor authz.Actor, hospitalID uint, patientID string, req UpdatePatientRequest) (*models.Patient, error)
	DeletePatient(actor authz.Actor, hospitalID uint, patientID string) error

	AddVital(actor authz.Actor, hospitalID uint, patientID string, req CreateVitalRequest) (*models.Vital, error)
	ListVitals(actor authz.Actor, hospitalID uint, patientID string) ([]models.Vital, error)
	AddMedicalHistory(actor authz.Actor, hospitalID uint, patientID string, req CreateMedicalHistoryRequest) (*models.MedicalHistory, error)
	ListMedicalHistories(actor authz.Actor, hospitalID uint, patientID string) ([]models.MedicalHistory, error)
	AddMedication(actor authz.Actor, hospitalID uint, patientID string, req CreateMedicationRequest) (*models.Medication, error)
	ListMedications(actor authz.Actor, hospitalID uint, patientID string) ([]models.Medication, error)
	AddAppointment(actor authz.Actor, hospitalID uint, patientID string, req CreateAppointmentRequest) (*models.Appointment, error)
	UpdateAppointment(actor authz.Actor, hospitalID uint, patientID string, id uint, req UpdateAppointmentRequest) (*models.Appointment, error)
	ListAppointments(actor authz.Actor, hospitalID uint, patientID string) ([]models.Appointment, error)
}

type patientService struct {
	patientRepo repository.PatientRepository
	auditRepo   repository.AuditRepository
}

func NewPatientService(patientRepo repository.PatientRepository, auditRepo repository.AuditRepository) PatientService {
	return &patientService{patientRepo: patientRepo, auditRepo: auditRepo}
}

func (s *patientService) ListPatients(actor authz.Actor, hospitalID uint, params utils.PageParams, filter repository.PatientFilter) ([]models.Patient, int64, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourcePatient, hospitalID); err != nil {
		return nil, 0, err
	}
	return s.patientRepo.ListPatients(hospitalID, params, filter)
}

func (s *patientService) GetPatient(actor authz.Actor, hospitalID uint, patientID string) (*models.Patient, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourcePatient, hospitalID); err != nil {
		return nil, err
	}
	return s.patientRepo.GetPatientByPID(hospitalID, patientID)
}

// CreatePatient allocates the next patient id and registers the patient
// together with any emergency contacts.
func (s *patientService) CreatePatient(actor authz.Actor, hospitalID uint, req CreatePatientRequest) (*models.Patient, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourcePatient, hospitalID); err != nil {
		return nil, err
	}

	last, err := s.patientRepo.LastPatientID(hospitalID)
	if err != nil {
		return nil, err
	}

	patient := &models.Patient{
		HospitalID:            hospitalID,
		PatientID:             seqid.Patient.Next(last),
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		DateOfBirth:           req.DateOfBirth,
		Gender:                req.Gender,
		Email:                 req.Email,
		PhoneNumber:           req.PhoneNumber,
		Address:               req.Address,
		City:                  req.City,
		State:                 req.State,
		PostalCode:            req.PostalCode,
		Country:               req.Country,
		BloodType:             req.BloodType,
		Height:                req.Height,
		Weight:                req.Weight,
		PrimaryPhysicianID:    req.PrimaryPhysicianID,
		Allergies:             req.Allergies,
		MedicalConditions:     req.MedicalConditions,
		Medication:            req.Medication,
		InsuranceProvider:     req.InsuranceProvider,
		PolicyNumber:          req.PolicyNumber,
		GroupNumber:           req.GroupNumber,
		PolicyHolder:          req.PolicyHolder,
		RelationshipToHolder:  req.RelationshipToHolder,
		CoverageStartDate:     req.CoverageStartDate,
		CoverageEndDate:       req.CoverageEndDate,
		HasSecondaryInsurance: req.HasSecondaryInsurance,
		Status:                "Active",
	}
	for _, c := range req.EmergencyContacts {
		patient.EmergencyContact = append(patient.EmergencyContact, models.EmergencyContact{
			Name:         c.Name,
			Relationship: c.Relationship,
			Phone:        c.Phone,
		})
	}

	if err := s.patientRepo.CreatePatient(patient); err != nil {
		return nil, err
	}

	if err := s.auditRepo.CreateAuditLog(&actor.UserID, "patient_created",
		fmt.Sprintf("patient %s registered in hospital %d", patient.PatientID, hospitalID)); err != nil {
		logger.Get().Warn("audit log write failed", zap.Error(err))
	}
	return patient, nil
}

func (s *patientService) UpdatePatient(actor authz.Actor, hospitalID uint, patientID string, req UpdatePatientRequest) (*models.Patient, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourcePatient, hospitalID); err != nil {
		return nil, err
	}

	patient, err := s.patientRepo.GetPatientByPID(hospitalID, patientID)
	if err != nil {
		return nil, err
	}

	applyString(&patient.FirstName, req.FirstName)
	applyString(&patient.LastName, req.LastName)
	applyString(&patient.Gender, req.Gender)
	applyString(&patient.Email, req.Email)
	applyString(&patient.PhoneNumber, req.PhoneNumber)
	applyString(&patient.Address, req.Address)
	applyString(&patient.City, req.City)
	applyString(&patient.State, req.State)
	applyString(&patient.PostalCode, req.PostalCode)
	applyString(&patient.Country, req.Country)
	applyString(&patient.BloodType, req.BloodType)
	applyString(&patient.Allergies, req.Allergies)
	applyString(&patient.MedicalConditions, req.MedicalConditions)
	applyString(&patient.Medication, req.Medication)
	applyString(&patient.InsuranceProvider, req.InsuranceProvider)
	applyString(&patient.PolicyNumber, req.PolicyNumber)
	applyString(&patient.GroupNumber, req.GroupNumber)
	applyString(&patient.PolicyHolder, req.PolicyHolder)
	applyString(&patient.RelationshipToHolder, req.RelationshipToHolder)
	applyString(&patient.Status, req.Status)
	if req.Height != nil {
		patient.Height = req.Height
	}
	if req.Weight != nil {
		patient.Weight = req.Weight
	}
	if req.PrimaryPhysicianID != nil {
		patient.PrimaryPhysicianID = req.PrimaryPhysicianID
	}
	if req.CoverageStartDate != nil {
		patient.CoverageStartDate = req.CoverageStartDate
	}
	if req.CoverageEndDate != nil {
		patient.CoverageEndDate = req.CoverageEndDate
	}
	if req.LastVisit != nil {
		patient.LastVisit = req.LastVisit
	}

	if err := s.patientRepo.UpdatePatient(patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *patientService) DeletePatient(actor authz.Actor, hospitalID uint, patientID string) error {
	if err := authz.Can(actor, authz.ActionDelete, authz.ResourcePatient, hospitalID); err != nil {
		return err
	}

	if err := s.patientRepo.DeletePatient(hospitalID, patientID); err != nil {
		return err
	}

	if err := s.auditRepo.CreateAuditLog(&actor.UserID, "patient_deleted",
		fmt.Sprintf("patient %s deleted from hospital %d", patientID, hospitalID)); err != nil {
		logger.Get().Warn("audit log write failed", zap.Error(err))
	}
	return nil
}

// AddVital records a reading; doctor role required
func (s *patientService) AddVital(actor authz.Actor, hospitalID uint, patientID string, req CreateVitalRequest) (*models.Vital, error) {
	patient, err := s.medicalWriteTarget(actor, hospitalID, patientID)
	if err != nil {
		return nil, err
	}

	vital := &models.Vital{
		PatientRowID:     patient.ID,
		HeartRate:        req.HeartRate,
		BloodPressure:    req.BloodPressure,
		Temperature:      req.Temperature,
		RespiratoryRate:  req.RespiratoryRate,
		OxygenSaturation: req.OxygenSaturation,
		RecordedAt:       req.RecordedAt,
	}
	if vital.RecordedAt.IsZero() {
		vital.RecordedAt = time.Now()
	}

	if err := s.patientRepo.CreateVital(vital); err != nil {
		return nil, err
	}
	return vital, nil
}

func (s *patientService) ListVitals(actor authz.Actor, hospitalID uint, patientID string) ([]models.Vital, error) {
	patient, err := s.readTarget(actor, hospitalID, patientID)
	if err != nil {
		return nil, err
	}
	return s.patientRepo.ListVitals(patient.ID)
}

// AddMedicalHistory adds a condition; doctor role required
func (s *patientService) AddMedicalHistory(actor authz.Actor, hospitalID uint, patientID string, req CreateMedicalHistoryRequest) (*models.MedicalHistory, error) {
	patient, err := s.medicalWriteTarget(actor, hospitalID, patientID)
	if err != nil {
		return nil, err
	}

	history := &models.MedicalHistory{
		PatientRowID:  patient.ID,
		Condition:     req.Condition,
		DiagnosedDate: req.DiagnosedDate,
		Status:        req.Status,
		Notes:         req.Notes,
	}
	if history.Status == "" {
		history.Status = "Active"
	}

	if err := s.patientRepo.CreateMedicalHistory(history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *patientService) ListMedicalHistories(actor authz.Actor, hospitalID uint, patientID string) ([]models.MedicalHistory, error) {
	patient, err := s.readTarget(actor, hospitalID, patientID)
	if err != nil {
		return nil, err
	}
	return s.patientRepo.ListMedicalHistories(patient.ID)
}

// AddMedication prescribes; doctor role required and the prescriber is the
// calling doctor.
func (s *patientService) AddMedication(actor authz.Actor, hospitalID uint, patientID string, req CreateMedicationRequest) (*models.Medication, error) {
	patient, err := s.medicalWriteTarget(actor, hospitalID, patientID)
	if err != nil {
		return nil, err
	}

	medication := &models.Medication{
		PatientRowID: patient.ID,
		Name:         req.Name,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}
	if actor.EmployeeID != 0 {
		medication.PrescribedByID = &actor.EmployeeID
	}
	if medication.StartDate.IsZero() {
		medication.StartDate = time.Now()
	}

	if err := s.patientRepo.CreateMedication(medication); err != nil {
		return nil, err
	}
	return medication, nil
}

func (s *patientService) ListMedications(actor authz.Actor, hospitalID uint, patientID string) ([]models.Medication, error) {
	patient, err := s.readTarget(actor, hospitalID, patientID)
	if err != nil {
		return nil, err
	}
	return s.patientRepo.ListMedications(patient.ID)
}

// AddAppointment schedules a visit; doctor role required
func (s *patientService) AddAppointment(actor authz.Actor, hospitalID uint, patientID string, req CreateAppointmentRequest) (*models.Appointment, error) {
	patient, err := s.medicalWriteTarget(actor, hospitalID, patientID)
	if err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		PatientRowID:    patient.ID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Type:            req.Type,
		Status:          "Scheduled",
		Notes:           req.Notes,
	}
	if appointment.Type == "" {
		appointment.Type = "Consultation"
	}

	if err := s.patientRepo.CreateAppointment(appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *patientService) UpdateAppointment(actor authz.Actor, hospitalID uint, patientID string, id uint, req UpdateAppointmentRequest) (*models.Appointment, error) {
	patient, err := s.medicalWriteTarget(actor, hospitalID, patientID)
	if err != nil {
		return nil, err
	}

	appointment, err := s.patientRepo.GetAppointment(patient.ID, id)
	if err != nil {
		return nil, err
	}

	applyString(&appointment.AppointmentTime, req.AppointmentTime)
	applyString(&appointment.Type, req.Type)
	applyString(&appointment.Status, req.Status)
	applyString(&appointment.Notes, req.Notes)
	if req.AppointmentDate != nil {
		appointment.AppointmentDate = *req.AppointmentDate
	}

	if err := s.patientRepo.UpdateAppointment(appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *patientService) ListAppointments(actor authz.Actor, hospitalID uint, patientID string) ([]models.Appointment, error) {
	patient, err := s.readTarget(actor, hospitalID, patientID)
	if err != nil {
		return nil, err
	}
	return s.patientRepo.ListAppointments(patient.ID)
}

// medicalWriteTarget checks the doctor-role policy and resolves the patient
// within the hospital.
func (s *patientService) medicalWriteTarget(actor authz.Actor, hospitalID uint, patientID string) (*models.Patient, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourcePatientRecord, hospitalID); err != nil {
		return nil, err
	}
	return s.patientRepo.GetPatientByPID(hospitalID, patientID)
}

func (s *patientService) readTarget(actor authz.Actor, hospitalID uint, patientID string) (*models.Patient, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourcePatient, hospitalID); err != nil {
		return nil, err
	}
	return s.patientRepo.GetPatientByPID(hospitalID, patientID)
}
