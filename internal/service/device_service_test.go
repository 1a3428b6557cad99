package service

import (
	"testing"
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeviceRepo struct {
	device       *models.Device
	calibrations []*models.Calibration
	serviceLogs  []*models.ServiceLog
	latest       *models.Calibration
	nextSetFor   uint
	nextSet      *models.Calibration
}

func (f *fakeDeviceRepo) ListDevices(hospitalID uint, params utils.PageParams) ([]models.Device, int64, error) {
	return nil, 0, nil
}

func (f *fakeDeviceRepo) GetDeviceByID(hospitalID, id uint) (*models.Device, error) {
	if f.device == nil || f.device.ID != id || f.device.HospitalID != hospitalID {
		return nil, apperrors.NotFound("device")
	}
	return f.device, nil
}

func (f *fakeDeviceRepo) GetDeviceByNFC(hospitalID uint, nfcUUID string) (*models.Device, error) {
	if f.device != nil && f.device.NFCUUID != nil && *f.device.NFCUUID == nfcUUID && f.device.HospitalID == hospitalID {
		return f.device, nil
	}
	return nil, apperrors.NotFound("device")
}

func (f *fakeDeviceRepo) CreateDevice(device *models.Device) error {
	device.ID = 1
	f.device = device
	return nil
}

func (f *fakeDeviceRepo) UpdateDevice(device *models.Device) error {
	f.device = device
	return nil
}

func (f *fakeDeviceRepo) DeleteDevice(hospitalID, id uint) error { return nil }

func (f *fakeDeviceRepo) SetNextCalibration(deviceID uint, next *models.Calibration) error {
	f.nextSetFor = deviceID
	f.nextSet = next
	return nil
}

func (f *fakeDeviceRepo) CreateServiceLog(log *models.ServiceLog) error {
	log.ID = uint(len(f.serviceLogs) + 1)
	f.serviceLogs = append(f.serviceLogs, log)
	return nil
}

func (f *fakeDeviceRepo) UpdateServiceLog(log *models.ServiceLog) error { return nil }

func (f *fakeDeviceRepo) GetServiceLog(hospitalID, deviceID, id uint) (*models.ServiceLog, error) {
	if f.device == nil || f.device.HospitalID != hospitalID || f.device.ID != deviceID {
		return nil, apperrors.NotFound("service log")
	}
	for _, log := range f.serviceLogs {
		if log.ID == id && log.DeviceID == deviceID {
			return log, nil
		}
	}
	return nil, apperrors.NotFound("service log")
}
func (f *fakeDeviceRepo) CreateSpecification(spec *models.Specification) error     { return nil }
func (f *fakeDeviceRepo) CreateDocumentation(doc *models.Documentation) error      { return nil }
func (f *fakeDeviceRepo) CreateIncidentReport(report *models.IncidentReport) error { return nil }

func (f *fakeDeviceRepo) CreateCalibration(cal *models.Calibration) error {
	cal.ID = uint(len(f.calibrations) + 1)
	f.calibrations = append(f.calibrations, cal)
	f.latest = cal
	return nil
}

func (f *fakeDeviceRepo) UpdateCalibration(cal *models.Calibration) error {
	f.latest = cal
	return nil
}

func (f *fakeDeviceRepo) GetCalibration(hospitalID, deviceID, id uint) (*models.Calibration, error) {
	if f.device == nil || f.device.HospitalID != hospitalID || f.device.ID != deviceID {
		return nil, apperrors.NotFound("calibration")
	}
	for _, cal := range f.calibrations {
		if cal.ID == id && cal.DeviceID == deviceID {
			return cal, nil
		}
	}
	return nil, apperrors.NotFound("calibration")
}

func (f *fakeDeviceRepo) LatestCalibration(deviceID uint) (*models.Calibration, error) {
	return f.latest, nil
}

func TestAddCalibration_UpdatesDeviceMirror(t *testing.T) {
	repo := &fakeDeviceRepo{device: &models.Device{ID: 1, HospitalID: 5}}
	svc := NewDeviceService(repo, &fakeAuditRepo{})

	next := time.Now().AddDate(0, 6, 0)
	cal, err := svc.AddCalibration(engineerActor(5), 5, 1, CreateCalibrationRequest{
		CalibrationDate: time.Now(),
		NextCalibration: &next,
		Result:          "pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "scheduled", cal.Status)
	assert.Equal(t, uint(1), repo.nextSetFor)
	require.NotNil(t, repo.nextSet)
	assert.Equal(t, cal.ID, repo.nextSet.ID)
}

func TestAddCalibration_NoNextDateLeavesMirrorAlone(t *testing.T) {
	repo := &fakeDeviceRepo{device: &models.Device{ID: 1, HospitalID: 5}}
	svc := NewDeviceService(repo, &fakeAuditRepo{})

	_, err := svc.AddCalibration(engineerActor(5), 5, 1, CreateCalibrationRequest{
		CalibrationDate: time.Now(),
	})
	require.NoError(t, err)
	assert.Nil(t, repo.nextSet)
}

func TestAddCalibration_RequiresEngineer(t *testing.T) {
	repo := &fakeDeviceRepo{device: &models.Device{ID: 1, HospitalID: 5}}
	svc := NewDeviceService(repo, &fakeAuditRepo{})

	_, err := svc.AddCalibration(nurseActor(5, 11), 5, 1, CreateCalibrationRequest{
		CalibrationDate: time.Now(),
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUpdateCalibration_RemirrorsLatest(t *testing.T) {
	repo := &fakeDeviceRepo{device: &models.Device{ID: 1, HospitalID: 5}}
	svc := NewDeviceService(repo, &fakeAuditRepo{})

	next := time.Now().AddDate(0, 6, 0)
	cal, err := svc.AddCalibration(engineerActor(5), 5, 1, CreateCalibrationRequest{
		CalibrationDate: time.Now(),
		NextCalibration: &next,
	})
	require.NoError(t, err)

	pushed := next.AddDate(0, 3, 0)
	result := "pass"
	updated, err := svc.UpdateCalibration(engineerActor(5), 5, 1, cal.ID, UpdateCalibrationRequest{
		NextCalibration: &pushed,
		Result:          &result,
	})
	require.NoError(t, err)

	assert.Equal(t, "pass", updated.Result)
	require.NotNil(t, repo.nextSet)
	assert.True(t, repo.nextSet.NextCalibration.Equal(pushed))
}

func TestUpdateCalibration_UnknownIDIs404(t *testing.T) {
	repo := &fakeDeviceRepo{device: &models.Device{ID: 1, HospitalID: 5}}
	svc := NewDeviceService(repo, &fakeAuditRepo{})

	_, err := svc.UpdateCalibration(engineerActor(5), 5, 1, 99, UpdateCalibrationRequest{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateServiceLog(t *testing.T) {
	repo := &fakeDeviceRepo{device: &models.Device{ID: 1, HospitalID: 5}}
	svc := NewDeviceService(repo, &fakeAuditRepo{})

	log, err := svc.AddServiceLog(engineerActor(5), 5, 1, CreateServiceLogRequest{
		ServiceType: "preventive",
		EngineerID:  13,
	})
	require.NoError(t, err)
	assert.Equal(t, "scheduled", log.Status)

	done := "completed"
	updated, err := svc.UpdateServiceLog(engineerActor(5), 5, 1, log.ID, UpdateServiceLogRequest{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)

	_, err = svc.UpdateServiceLog(nurseActor(5, 11), 5, 1, log.ID, UpdateServiceLogRequest{Status: &done})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestGetDeviceByNFC(t *testing.T) {
	tag := "04:a2:3b:11"
	repo := &fakeDeviceRepo{device: &models.Device{ID: 7, HospitalID: 5, NFCUUID: &tag}}
	svc := NewDeviceService(repo, &fakeAuditRepo{})

	device, err := svc.GetDeviceByNFC(nurseActor(5, 11), 5, tag)
	require.NoError(t, err)
	assert.Equal(t, uint(7), device.ID)

	_, err = svc.GetDeviceByNFC(nurseActor(5, 11), 5, "unknown-tag")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
