package handler

import (
	"net/http"

	"github.com/Yogesh-MG/Meditrackpro/internal/middleware"
	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/internal/service"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DeviceHandler exposes the equipment register and its sub-records.
type DeviceHandler struct {
	deviceService service.DeviceService
}

func NewDeviceHandler(deviceService service.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceService: deviceService}
}

// List handles GET /api/hospitals/:hospital_id/devices
func (h *DeviceHandler) List(c *gin.Context) {
	params := utils.ParsePageParams(c)
	devices, total, err := h.deviceService.ListDevices(middleware.Actor(c), middleware.HospitalID(c), params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"results": devices,
		"count":   total,
		"page":    params.Page,
		"limit":   params.Limit,
	})
}

// Get handles GET /api/hospitals/:hospital_id/devices/:id
func (h *DeviceHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	device, err := h.deviceService.GetDevice(middleware.Actor(c), middleware.HospitalID(c), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, device)
}

// GetByNFC handles GET /api/hospitals/:hospital_id/devices/nfc/:nfc_uuid
func (h *DeviceHandler) GetByNFC(c *gin.Context) {
	device, err := h.deviceService.GetDeviceByNFC(middleware.Actor(c), middleware.HospitalID(c), c.Param("nfc_uuid"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"device_id": device.ID})
}

// Create handles POST /api/hospitals/:hospital_id/devices
func (h *DeviceHandler) Create(c *gin.Context) {
	var req service.CreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid device payload: "+err.Error())
		return
	}

	device, err := h.deviceService.CreateDevice(middleware.Actor(c), middleware.HospitalID(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, device)
}

// Update handles PATCH /api/hospitals/:hospital_id/devices/:id
func (h *DeviceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payload")
		return
	}

	device, err := h.deviceService.UpdateDevice(middleware.Actor(c), middleware.HospitalID(c), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, device)
}

// Delete handles DELETE /api/hospitals/:hospital_id/devices/:id
func (h *DeviceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.deviceService.DeleteDevice(middleware.Actor(c), middleware.HospitalID(c), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "device deleted")
}

// AddCalibration handles POST /api/hospitals/:hospital_id/devices/:id/calibrations
func (h *DeviceHandler) AddCalibration(c *gin.Context) {
	deviceID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.CreateCalibrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid calibration payload: "+err.Error())
		return
	}

	cal, err := h.deviceService.AddCalibration(middleware.Actor(c), middleware.HospitalID(c), deviceID, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, cal)
}

// UpdateCalibration handles PATCH /api/hospitals/:hospital_id/devices/:id/calibrations/:cal_id
func (h *DeviceHandler) UpdateCalibration(c *gin.Context) {
	deviceID, ok := parseID(c, "id")
	if !ok {
		return
	}
	calID, ok := parseID(c, "cal_id")
	if !ok {
		return
	}

	var req service.UpdateCalibrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payload")
		return
	}

	cal, err := h.deviceService.UpdateCalibration(middleware.Actor(c), middleware.HospitalID(c), deviceID, calID, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, cal)
}

// AddServiceLog handles POST /api/hospitals/:hospital_id/devices/:id/service-logs
func (h *DeviceHandler) AddServiceLog(c *gin.Context) {
	deviceID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.CreateServiceLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid service log payload: "+err.Error())
		return
	}

	log, err := h.deviceService.AddServiceLog(middleware.Actor(c), middleware.HospitalID(c), deviceID, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, log)
}

// UpdateServiceLog handles PATCH /api/hospitals/:hospital_id/devices/:id/service-logs/:log_id
func (h *DeviceHandler) UpdateServiceLog(c *gin.Context) {
	deviceID, ok := parseID(c, "id")
	if !ok {
		return
	}
	logID, ok := parseID(c, "log_id")
	if !ok {
		return
	}

	var req service.UpdateServiceLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payload")
		return
	}

	log, err := h.deviceService.UpdateServiceLog(middleware.Actor(c), middleware.HospitalID(c), deviceID, logID, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, log)
}

// AddSpecification handles POST /api/hospitals/:hospital_id/devices/:id/specifications
func (h *DeviceHandler) AddSpecification(c *gin.Context) {
	deviceID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var spec models.Specification
	if err := c.ShouldBindJSON(&spec); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid specification payload")
		return
	}

	created, err := h.deviceService.AddSpecification(middleware.Actor(c), middleware.HospitalID(c), deviceID, spec)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, created)
}

// AddDocumentation handles POST /api/hospitals/:hospital_id/devices/:id/documentation
func (h *DeviceHandler) AddDocumentation(c *gin.Context) {
	deviceID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var doc models.Documentation
	if err := c.ShouldBindJSON(&doc); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid documentation payload")
		return
	}

	created, err := h.deviceService.AddDocumentation(middleware.Actor(c), middleware.HospitalID(c), deviceID, doc)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, created)
}

// AddIncidentReport handles POST /api/hospitals/:hospital_id/devices/:id/incidents
func (h *DeviceHandler) AddIncidentReport(c *gin.Context) {
	deviceID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid incident payload: "+err.Error())
		return
	}

	report, err := h.deviceService.AddIncidentReport(middleware.Actor(c), middleware.HospitalID(c), deviceID, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, report)
}
