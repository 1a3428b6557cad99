package handler

import (
	"net/http"
	"strconv"

	"github.com/Yogesh-MG/Meditrackpro/internal/middleware"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/internal/service"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PatientHandler exposes patients and their medical sub-records.
type PatientHandler struct {
	patientService service.PatientService
}

func NewPatientHandler(patientService service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// List handles GET /api/hospitals/:hospital_id/patients
func (h *PatientHandler) List(c *gin.Context) {
	params := utils.ParsePageParams(c)
	filter := repository.PatientFilter{Status: c.Query("status")}
	if id, err := strconv.ParseUint(c.Query("physician"), 10, 64); err == nil {
		physicianID := uint(id)
		filter.PrimaryPhysicianID = &physicianID
	}

	patients, total, err := h.patientService.ListPatients(middleware.Actor(c), middleware.HospitalID(c), params, filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"results": patients,
		"count":   total,
		"page":    params.Page,
		"limit":   params.Limit,
	})
}

// Get handles GET /api/hospitals/:hospital_id/patients/:patient_id
func (h *PatientHandler) Get(c *gin.Context) {
	patient, err := h.patientService.GetPatient(middleware.Actor(c), middleware.HospitalID(c), c.Param("patient_id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, patient)
}

// Create handles POST /api/hospitals/:hospital_id/patients
func (h *PatientHandler) Create(c *gin.Context) {
	var req service.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid patient payload: "+err.Error())
		return
	}

	patient, err := h.patientService.CreatePatient(middleware.Actor(c), middleware.HospitalID(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, patient)
}

// Update handles PATCH /api/hospitals/:hospital_id/patients/:patient_id
func (h *PatientHandler) Update(c *gin.Context) {
	var req service.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payload")
		return
	}

	patient, err := h.patientService.UpdatePatient(middleware.Actor(c), middleware.HospitalID(c), c.Param("patient_id"), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, patient)
}

// Delete handles DELETE /api/hospitals/:hospital_id/patients/:patient_id
func (h *PatientHandler) Delete(c *gin.Context) {
	if err := h.patientService.DeletePatient(middleware.Actor(c), middleware.HospitalID(c), c.Param("patient_id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "patient deleted")
}

// ListVitals handles GET /api/hospitals/:hospital_id/patients/:patient_id/vitals
func (h *PatientHandler) ListVitals(c *gin.Context) {
	vitals, err := h.patientService.ListVitals(middleware.Actor(c), middleware.HospitalID(c), c.Param("patient_id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, vitals)
}

// AddVital handles POST /api/hospitals/:hospital_id/patients/:patient_id/vitals
func (h *PatientHandler) AddVital(c *gin.Context) {
	var req service.CreateVitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid vital payload")
		return
	}

	vital, err := h.patientService.AddVital(middleware.Actor(c), middleware.HospitalID(c), c.Param("patient_id"), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, vital)
}

// ListMedicalHistories handles GET .../patients/:patient_id/medical-history
func (h *PatientHandler) ListMedicalHistories(c *gin.Context) {
	histories, err := h.patientService.ListMedicalHistories(middleware.Actor(c), middleware.HospitalID(c), c.Param("patient_id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, histories)
}

// AddMedicalHistory handles POST .../patients/:patient_id/medical-history
func (h *PatientHandler) AddMedicalHistory(c *gin.Context) {
	var req service.CreateMedicalHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid medical history payload: "+err.Error())
		return
	}

	history, err := h.patientService.AddMedicalHistory(middleware.Actor(c), middleware.HospitalID(c), c.Param("patient_id"), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, history)
}

// ListMedications handles GET .../patients/:patient_id/medications
func (h *PatientHandler) ListMedications(c *gin.Context) {
	medications, err := h.patientService.ListMedications(middleware.Actor(c), middleware.HospitalID(c), c.Param("patient_id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, medications)
}

// AddMedication handles POST .../patients/:patient_id/medications
func (h *PatientHandler) AddMedication(c *gin.Context) {
	var req service.CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid medication payload: "+err.Error())
		return
	}

	medication, err := h.patientService.AddMedication(middleware.Actor(c), middleware.HospitalID(c), c.Param("patient_id"), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, medication)
}

// ListAppointments handles GET .../patients/:patient_id/appointments
func (h *PatientHandler) ListAppointments(c *gin.Context) {
	appointments, err := h.patientService.ListAppointments(middleware.Actor(c), middleware.HospitalID(c), c.Param("patient_id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, appointments)
}

// AddAppointment handles POST .../patients/:patient_id/appointments
func (h *PatientHandler) AddAppointment(c *gin.Context) {
	var req service.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid appointment payload: "+err.Error())
		return
	}

	appointment, err := h.patientService.AddAppointment(middleware.Actor(c), middleware.HospitalID(c), c.Param("patient_id"), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, appointment)
}

// UpdateAppointment handles PATCH .../patients/:patient_id/appointments/:id
func (h *PatientHandler) UpdateAppointment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payload")
		return
	}

	appointment, err := h.patientService.UpdateAppointment(middleware.Actor(c), middleware.HospitalID(c), c.Param("patient_id"), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, appointment)
}
