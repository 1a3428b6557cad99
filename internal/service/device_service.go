package service

import (
	"fmt"
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/authz"
	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/logger"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"go.uber.org/zap"
)

// CreateDeviceRequest carries a new device's fields
type CreateDeviceRequest struct {
	Name               string     `json:"name"`
	MakeModel          string     `json:"make_model" binding:"required"`
	Manufacture        string     `json:"manufacture"`
	SerialNumber       string     `json:"serial_number" binding:"required"`
	DateOfInstallation *time.Time `json:"date_of_installation"`
	WarrantyUntil      *time.Time `json:"warranty_until"`
	AssetNumber        string     `json:"asset_number" binding:"required"`
	AssetDetails       string     `json:"asset_details"`
	Status             string     `json:"is_active"`
	Department         string     `json:"department"`
	Room               string     `json:"room"`
	NFCUUID            *string    `json:"nfc_uuid"`
}

// UpdateDeviceRequest carries mutable device fields. serial_number and
// asset_number are immutable after creation; next_calibration routes through
// the calibration upsert instead of a plain column write.
type UpdateDeviceRequest struct {
	Name            *string    `json:"name"`
	MakeModel       *string    `json:"make_model"`
	Manufacture     *string    `json:"manufacture"`
	WarrantyUntil   *time.Time `json:"warranty_until"`
	AssetDetails    *string    `json:"asset_details"`
	Status          *string    `json:"is_active"`
	Department      *string    `json:"department"`
	Room            *string    `json:"room"`
	NFCUUID         *string    `json:"nfc_uuid"`
	NextCalibration *time.Time `json:"next_calibration"`
}

// CreateCalibrationRequest carries a new calibration record
type CreateCalibrationRequest struct {
	CalibrationDate time.Time  `json:"calibration_date" binding:"required"`
	NextCalibration *time.Time `json:"next_calibration"`
	Result          string     `json:"result"`
	Notes           string     `json:"notes"`
	EngineerID      *uint      `json:"engineer_id"`
	Status          string     `json:"status"`
	Document        string     `json:"document"`
}

// UpdateCalibrationRequest carries mutable calibration fields
type UpdateCalibrationRequest struct {
	CalibrationDate *time.Time `json:"calibration_date"`
	NextCalibration *time.Time `json:"next_calibration"`
	Result          *string    `json:"result"`
	Notes           *string    `json:"notes"`
	Status          *string    `json:"status"`
	Document        *string    `json:"document"`
}

// CreateServiceLogRequest carries a new maintenance entry
type CreateServiceLogRequest struct {
	ServiceDate    time.Time `json:"service_date"`
	ServiceType    string    `json:"service_type"`
	EngineerID     uint      `json:"engineer_id" binding:"required"`
	ServiceDetails string    `json:"service_details"`
	Status         string    `json:"status"`
	Document       string    `json:"document"`
}

// UpdateServiceLogRequest carries mutable service log fields
type UpdateServiceLogRequest struct {
	ServiceDate    *time.Time `json:"service_date"`
	ServiceType    *string    `json:"service_type"`
	ServiceDetails *string    `json:"service_details"`
	Status         *string    `json:"status"`
	Document       *string    `json:"document"`
}

// CreateIncidentRequest carries an incident report
type CreateIncidentRequest struct {
	IncidentType      string    `json:"incident_type" binding:"required"`
	IncidentDate      time.Time `json:"incident_date"`
	Description       string    `json:"description" binding:"required"`
	RelatedEmployeeID *uint     `json:"related_employee_id"`
}

// DeviceService manages the equipment register and its sub-records.
type DeviceService interface {
	ListDevices(actor authz.Actor, hospitalID uint, params utils.PageParams) ([]models.Device, int64, error)
	GetDevice(actor authz.Actor, hospitalID, id uint) (*models.Device, error)
	GetDeviceByNFC(actor authz.Actor, hospitalID uint, nfcUUID string) (*models.Device, error)
	CreateDevice(actor authz.Actor, hospitalID uint, req CreateDeviceRequest) (*models.Device, error)
	UpdateDevice(actor authz.Actor, hospitalID, id uint, req UpdateDeviceRequest) (*models.Device, error)
	DeleteDevice(actor authz.Actor, hospitalID, id uint) error

	AddCalibration(actor authz.Actor, hospitalID, deviceID uint, req CreateCalibrationRequest) (*models.Calibration, error)
	UpdateCalibration(actor authz.Actor, hospitalID, deviceID, id uint, req UpdateCalibrationRequest) (*models.Calibration, error)
	AddServiceLog(actor authz.Actor, hospitalID, deviceID uint, req CreateServiceLogRequest) (*models.ServiceLog, error)
	UpdateServiceLog(actor authz.Actor, hospitalID, deviceID, id uint, req UpdateServiceLogRequest) (*models.ServiceLog, error)
	AddSpecification(actor authz.Actor, hospitalID, deviceID uint, spec models.Specification) (*models.Specification, error)
	AddDocumentation(actor authz.Actor, hospitalID, deviceID uint, doc models.Documentation) (*models.Documentation, error)
	AddIncidentReport(actor authz.Actor, hospitalID, deviceID uint, req CreateIncidentRequest) (*models.IncidentReport, error)
}

type deviceService struct {
	deviceRepo repository.DeviceRepository
	auditRepo  repository.AuditRepository
}

func NewDeviceService(deviceRepo repository.DeviceRepository, auditRepo repository.AuditRepository) DeviceService {
	return &deviceService{deviceRepo: deviceRepo, auditRepo: auditRepo}
}

func (s *deviceService) ListDevices(actor authz.Actor, hospitalID uint, params utils.PageParams) ([]models.Device, int64, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceDevice, hospitalID); err != nil {
		return nil, 0, err
	}
	return s.deviceRepo.ListDevices(hospitalID, params)
}

func (s *deviceService) GetDevice(actor authz.Actor, hospitalID, id uint) (*models.Device, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceDevice, hospitalID); err != nil {
		return nil, err
	}
	return s.deviceRepo.GetDeviceByID(hospitalID, id)
}

// GetDeviceByNFC resolves an NFC tag to a device within the hospital
func (s *deviceService) GetDeviceByNFC(actor authz.Actor, hospitalID uint, nfcUUID string) (*models.Device, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceDevice, hospitalID); err != nil {
		return nil, err
	}
	return s.deviceRepo.GetDeviceByNFC(hospitalID, nfcUUID)
}

func (s *deviceService) CreateDevice(actor authz.Actor, hospitalID uint, req CreateDeviceRequest) (*models.Device, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceDevice, hospitalID); err != nil {
		return nil, err
	}

	device := &models.Device{
		HospitalID:         hospitalID,
		Name:               req.Name,
		MakeModel:          req.MakeModel,
		Manufacture:        req.Manufacture,
		SerialNumber:       req.SerialNumber,
		DateOfInstallation: req.DateOfInstallation,
		WarrantyUntil:      req.WarrantyUntil,
		AssetNumber:        req.AssetNumber,
		AssetDetails:       req.AssetDetails,
		Status:             req.Status,
		Department:         req.Department,
		Room:               req.Room,
		NFCUUID:            req.NFCUUID,
	}
	if device.Status == "" {
		device.Status = models.DeviceOperational
	}

	if err := s.deviceRepo.CreateDevice(device); err != nil {
		return nil, err
	}

	if err := s.auditRepo.CreateAuditLog(&actor.UserID, "device_created",
		fmt.Sprintf("device %s created in hospital %d", device.SerialNumber, hospitalID)); err != nil {
		logger.Get().Warn("audit log write failed", zap.Error(err))
	}
	return device, nil
}

// UpdateDevice applies partial changes. When next_calibration is present it
// is written through the calibration history: the latest calibration is
// updated if one exists, else a minimal calibration dated now is created,
// and the device mirror column follows.
func (s *deviceService) UpdateDevice(actor authz.Actor, hospitalID, id uint, req UpdateDeviceRequest) (*models.Device, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceDevice, hospitalID); err != nil {
		return nil, err
	}

	device, err := s.deviceRepo.GetDeviceByID(hospitalID, id)
	if err != nil {
		return nil, err
	}

	applyString(&device.Name, req.Name)
	applyString(&device.MakeModel, req.MakeModel)
	applyString(&device.Manufacture, req.Manufacture)
	applyString(&device.AssetDetails, req.AssetDetails)
	applyString(&device.Status, req.Status)
	applyString(&device.Department, req.Department)
	applyString(&device.Room, req.Room)
	if req.WarrantyUntil != nil {
		device.WarrantyUntil = req.WarrantyUntil
	}
	if req.NFCUUID != nil {
		device.NFCUUID = req.NFCUUID
	}

	if err := s.deviceRepo.UpdateDevice(device); err != nil {
		return nil, err
	}

	if req.NextCalibration != nil {
		if err := s.upsertNextCalibration(device, *req.NextCalibration); err != nil {
			return nil, err
		}
		device.NextCalibration = req.NextCalibration
	}
	return device, nil
}

func (s *deviceService) DeleteDevice(actor authz.Actor, hospitalID, id uint) error {
	if err := authz.Can(actor, authz.ActionDelete, authz.ResourceDevice, hospitalID); err != nil {
		return err
	}

	if err := s.deviceRepo.DeleteDevice(hospitalID, id); err != nil {
		return err
	}

	if err := s.auditRepo.CreateAuditLog(&actor.UserID, "device_deleted",
		fmt.Sprintf("device %d deleted from hospital %d", id, hospitalID)); err != nil {
		logger.Get().Warn("audit log write failed", zap.Error(err))
	}
	return nil
}

// AddCalibration records a calibration and, when it carries a next date,
// propagates it onto the device's mirror column.
func (s *deviceService) AddCalibration(actor authz.Actor, hospitalID, deviceID uint, req CreateCalibrationRequest) (*models.Calibration, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceDevice, hospitalID); err != nil {
		return nil, err
	}

	device, err := s.deviceRepo.GetDeviceByID(hospitalID, deviceID)
	if err != nil {
		return nil, err
	}

	cal := &models.Calibration{
		DeviceID:        device.ID,
		CalibrationDate: req.CalibrationDate,
		NextCalibration: req.NextCalibration,
		Result:          req.Result,
		Notes:           req.Notes,
		EngineerID:      req.EngineerID,
		Status:          req.Status,
		Document:        req.Document,
	}
	if cal.Status == "" {
		cal.Status = "scheduled"
	}

	if err := s.deviceRepo.CreateCalibration(cal); err != nil {
		return nil, err
	}
	if cal.NextCalibration != nil {
		if err := s.deviceRepo.SetNextCalibration(device.ID, cal); err != nil {
			return nil, err
		}
	}
	return cal, nil
}

// UpdateCalibration applies partial changes to a calibration record. When the
// edited record is the device's latest, its next date is re-mirrored onto the
// device row.
func (s *deviceService) UpdateCalibration(actor authz.Actor, hospitalID, deviceID, id uint, req UpdateCalibrationRequest) (*models.Calibration, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceDevice, hospitalID); err != nil {
		return nil, err
	}

	cal, err := s.deviceRepo.GetCalibration(hospitalID, deviceID, id)
	if err != nil {
		return nil, err
	}

	if req.CalibrationDate != nil {
		cal.CalibrationDate = *req.CalibrationDate
	}
	if req.NextCalibration != nil {
		cal.NextCalibration = req.NextCalibration
	}
	applyString(&cal.Result, req.Result)
	applyString(&cal.Notes, req.Notes)
	applyString(&cal.Status, req.Status)
	applyString(&cal.Document, req.Document)

	if err := s.deviceRepo.UpdateCalibration(cal); err != nil {
		return nil, err
	}

	if req.NextCalibration != nil {
		latest, err := s.deviceRepo.LatestCalibration(deviceID)
		if err != nil {
			return nil, err
		}
		if latest != nil && latest.ID == cal.ID {
			if err := s.deviceRepo.SetNextCalibration(deviceID, cal); err != nil {
				return nil, err
			}
		}
	}
	return cal, nil
}

func (s *deviceService) AddServiceLog(actor authz.Actor, hospitalID, deviceID uint, req CreateServiceLogRequest) (*models.ServiceLog, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceDevice, hospitalID); err != nil {
		return nil, err
	}

	device, err := s.deviceRepo.GetDeviceByID(hospitalID, deviceID)
	if err != nil {
		return nil, err
	}

	log := &models.ServiceLog{
		DeviceID:       device.ID,
		ServiceDate:    req.ServiceDate,
		ServiceType:    req.ServiceType,
		EngineerID:     req.EngineerID,
		ServiceDetails: req.ServiceDetails,
		Status:         req.Status,
		Document:       req.Document,
	}
	if log.ServiceDate.IsZero() {
		log.ServiceDate = time.Now()
	}
	if log.Status == "" {
		log.Status = "scheduled"
	}

	if err := s.deviceRepo.CreateServiceLog(log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *deviceService) UpdateServiceLog(actor authz.Actor, hospitalID, deviceID, id uint, req UpdateServiceLogRequest) (*models.ServiceLog, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceDevice, hospitalID); err != nil {
		return nil, err
	}

	log, err := s.deviceRepo.GetServiceLog(hospitalID, deviceID, id)
	if err != nil {
		return nil, err
	}

	if req.ServiceDate != nil {
		log.ServiceDate = *req.ServiceDate
	}
	applyString(&log.ServiceType, req.ServiceType)
	applyString(&log.ServiceDetails, req.ServiceDetails)
	applyString(&log.Status, req.Status)
	applyString(&log.Document, req.Document)

	if err := s.deviceRepo.UpdateServiceLog(log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *deviceService) AddSpecification(actor authz.Actor, hospitalID, deviceID uint, spec models.Specification) (*models.Specification, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceDevice, hospitalID); err != nil {
		return nil, err
	}

	device, err := s.deviceRepo.GetDeviceByID(hospitalID, deviceID)
	if err != nil {
		return nil, err
	}
	spec.ID = 0
	spec.DeviceID = device.ID

	if err := s.deviceRepo.CreateSpecification(&spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *deviceService) AddDocumentation(actor authz.Actor, hospitalID, deviceID uint, doc models.Documentation) (*models.Documentation, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceDevice, hospitalID); err != nil {
		return nil, err
	}

	device, err := s.deviceRepo.GetDeviceByID(hospitalID, deviceID)
	if err != nil {
		return nil, err
	}
	doc.ID = 0
	doc.DeviceID = device.ID
	if doc.LastUpdated.IsZero() {
		doc.LastUpdated = time.Now()
	}

	if err := s.deviceRepo.CreateDocumentation(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *deviceService) AddIncidentReport(actor authz.Actor, hospitalID, deviceID uint, req CreateIncidentRequest) (*models.IncidentReport, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceDevice, hospitalID); err != nil {
		return nil, err
	}

	if !validIncidentType(req.IncidentType) {
		return nil, apperrors.NewValidation("incident_type", "unknown incident type")
	}

	device, err := s.deviceRepo.GetDeviceByID(hospitalID, deviceID)
	if err != nil {
		return nil, err
	}

	report := &models.IncidentReport{
		DeviceID:          device.ID,
		IncidentType:      req.IncidentType,
		IncidentDate:      req.IncidentDate,
		Description:       req.Description,
		RelatedEmployeeID: req.RelatedEmployeeID,
	}
	if actor.EmployeeID != 0 {
		report.ReportedByID = &actor.EmployeeID
	}
	if report.IncidentDate.IsZero() {
		report.IncidentDate = time.Now()
	}

	if err := s.deviceRepo.CreateIncidentReport(report); err != nil {
		return nil, err
	}
	return report, nil
}

// upsertNextCalibration writes a PATCHed next_calibration through the
// calibration history before mirroring it on the device row.
func (s *deviceService) upsertNextCalibration(device *models.Device, next time.Time) error {
	latest, err := s.deviceRepo.LatestCalibration(device.ID)
	if err != nil {
		return err
	}

	if latest != nil {
		latest.NextCalibration = &next
		if err := s.deviceRepo.UpdateCalibration(latest); err != nil {
			return err
		}
		return s.deviceRepo.SetNextCalibration(device.ID, latest)
	}

	cal := &models.Calibration{
		DeviceID:        device.ID,
		CalibrationDate: time.Now(),
		NextCalibration: &next,
		Status:          "scheduled",
	}
	if err := s.deviceRepo.CreateCalibration(cal); err != nil {
		return err
	}
	return s.deviceRepo.SetNextCalibration(device.ID, cal)
}

func validIncidentType(t string) bool {
	switch t {
	case models.IncidentEnvFault, models.IncidentUserFault, models.IncidentUserKnowledge,
		models.IncidentUserCarelessness, models.IncidentElectricalFailure,
		models.IncidentComponentFailure, models.IncidentComponentMalfunction,
		models.IncidentDeviceLifetimeEnd, models.IncidentIncompatibleComponent:
		return true
	}
	return false
}
