package repository

import (
	"errors"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"gorm.io/gorm"
)

// deviceOrderFields is the fixed set of orderable columns for device lists.
var deviceOrderFields = map[string]string{
	"id":               "id",
	"make_model":       "make_model",
	"serial_number":    "serial_number",
	"next_calibration": "next_calibration",
	"created_at":       "created_at",
}

// DeviceRepository persists devices and their sub-records.
type DeviceRepository interface {
	ListDevices(hospitalID uint, params utils.PageParams) ([]models.Device, int64, error)
	GetDeviceByID(hospitalID, id uint) (*models.Device, error)
	GetDeviceByNFC(hospitalID uint, nfcUUID string) (*models.Device, error)
	CreateDevice(device *models.Device) error
	UpdateDevice(device *models.Device) error
	DeleteDevice(hospitalID, id uint) error
	SetNextCalibration(deviceID uint, next *models.Calibration) error

	CreateServiceLog(log *models.ServiceLog) error
	UpdateServiceLog(log *models.ServiceLog) error
	GetServiceLog(hospitalID, deviceID, id uint) (*models.ServiceLog, error)
	CreateSpecification(spec *models.Specification) error
	CreateDocumentation(doc *models.Documentation) error
	CreateIncidentReport(report *models.IncidentReport) error

	CreateCalibration(cal *models.Calibration) error
	UpdateCalibration(cal *models.Calibration) error
	GetCalibration(hospitalID, deviceID, id uint) (*models.Calibration, error)
	LatestCalibration(deviceID uint) (*models.Calibration, error)
}

type deviceRepo struct {
	db *gorm.DB
}

func NewDeviceRepo(db *gorm.DB) DeviceRepository {
	return &deviceRepo{db: db}
}

// ListDevices retrieves a page of a hospital's devices
func (r *deviceRepo) ListDevices(hospitalID uint, params utils.PageParams) ([]models.Device, int64, error) {
	query := r.db.Model(&models.Device{}).Where("hospital_id = ?", hospitalID)
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("make_model LIKE ? OR serial_number LIKE ? OR name LIKE ? OR department LIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var devices []models.Device
	err := query.
		Order(params.OrderClause(deviceOrderFields, "id ASC")).
		Limit(params.Limit).
		Offset(params.Offset()).
		Preload("Calibrations").
		Find(&devices).Error
	return devices, total, err
}

// GetDeviceByID retrieves one device of a hospital with its sub-records
func (r *deviceRepo) GetDeviceByID(hospitalID, id uint) (*models.Device, error) {
	var device models.Device
	err := r.db.Where("hospital_id = ? AND id = ?", hospitalID, id).
		Preload("ServiceLogs").
		Preload("Specifications").
		Preload("Documentation").
		Preload("Calibrations").
		Preload("IncidentReports").
		First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("device")
		}
		return nil, err
	}
	return &device, nil
}

// GetDeviceByNFC looks a device up by its NFC tag within a hospital
func (r *deviceRepo) GetDeviceByNFC(hospitalID uint, nfcUUID string) (*models.Device, error) {
	var device models.Device
	err := r.db.Where("hospital_id = ? AND nfc_uuid = ?", hospitalID, nfcUUID).
		First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("device")
		}
		return nil, err
	}
	return &device, nil
}

// CreateDevice creates a new device
func (r *deviceRepo) CreateDevice(device *models.Device) error {
	err := r.db.Create(device).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("serial_number")
	}
	return err
}

// UpdateDevice saves device changes
func (r *deviceRepo) UpdateDevice(device *models.Device) error {
	err := r.db.Save(device).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("serial_number")
	}
	return err
}

// DeleteDevice removes a device of a hospital
func (r *deviceRepo) DeleteDevice(hospitalID, id uint) error {
	res := r.db.Where("hospital_id = ? AND id = ?", hospitalID, id).
		Delete(&models.Device{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("device")
	}
	return nil
}

// SetNextCalibration mirrors a calibration's next date onto the device row.
func (r *deviceRepo) SetNextCalibration(deviceID uint, next *models.Calibration) error {
	return r.db.Model(&models.Device{}).
		Where("id = ?", deviceID).
		Update("next_calibration", next.NextCalibration).Error
}

// CreateServiceLog creates a service log for a device
func (r *deviceRepo) CreateServiceLog(log *models.ServiceLog) error {
	return r.db.Create(log).Error
}

// UpdateServiceLog saves service log changes
func (r *deviceRepo) UpdateServiceLog(log *models.ServiceLog) error {
	return r.db.Save(log).Error
}

// GetServiceLog retrieves a service log scoped through its device's hospital
func (r *deviceRepo) GetServiceLog(hospitalID, deviceID, id uint) (*models.ServiceLog, error) {
	var log models.ServiceLog
	err := r.db.
		Joins("INNER JOIN devices ON devices.id = service_logs.device_id").
		Where("devices.hospital_id = ? AND service_logs.device_id = ? AND service_logs.id = ?", hospitalID, deviceID, id).
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("service log")
		}
		return nil, err
	}
	return &log, nil
}

// CreateSpecification creates a specification for a device
func (r *deviceRepo) CreateSpecification(spec *models.Specification) error {
	return r.db.Create(spec).Error
}

// CreateDocumentation creates a documentation entry for a device
func (r *deviceRepo) CreateDocumentation(doc *models.Documentation) error {
	return r.db.Create(doc).Error
}

// CreateIncidentReport creates an incident report for a device
func (r *deviceRepo) CreateIncidentReport(report *models.IncidentReport) error {
	return r.db.Create(report).Error
}

// CreateCalibration creates a calibration record
func (r *deviceRepo) CreateCalibration(cal *models.Calibration) error {
	return r.db.Create(cal).Error
}

// UpdateCalibration saves calibration changes
func (r *deviceRepo) UpdateCalibration(cal *models.Calibration) error {
	return r.db.Save(cal).Error
}

// GetCalibration retrieves a calibration scoped through its device's hospital
func (r *deviceRepo) GetCalibration(hospitalID, deviceID, id uint) (*models.Calibration, error) {
	var cal models.Calibration
	err := r.db.
		Joins("INNER JOIN devices ON devices.id = calibrations.device_id").
		Where("devices.hospital_id = ? AND calibrations.device_id = ? AND calibrations.id = ?", hospitalID, deviceID, id).
		First(&cal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("calibration")
		}
		return nil, err
	}
	return &cal, nil
}

// LatestCalibration returns the most recently created calibration for a
// device, or nil when none exist.
func (r *deviceRepo) LatestCalibration(deviceID uint) (*models.Calibration, error) {
	var cal models.Calibration
	err := r.db.Where("device_id = ?", deviceID).
		Order("calibration_date DESC, id DESC").
		First(&cal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cal, nil
}
