package handler

import (
	"net/http"
	"strconv"

	"github.com/Yogesh-MG/Meditrackpro/internal/middleware"
	"github.com/Yogesh-MG/Meditrackpro/internal/service"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/gin-gonic/gin"
)

// HospitalHandler exposes tenant registration, management and billing.
type HospitalHandler struct {
	hospitalService service.HospitalService
}

func NewHospitalHandler(hospitalService service.HospitalService) *HospitalHandler {
	return &HospitalHandler{hospitalService: hospitalService}
}

// Register handles POST /api/hospitals/register (public)
func (h *HospitalHandler) Register(c *gin.Context) {
	var req service.RegisterHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid registration payload: "+err.Error())
		return
	}

	hospital, err := h.hospitalService.Register(req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, hospital)
}

// List handles GET /api/hospitals (superadmin)
func (h *HospitalHandler) List(c *gin.Context) {
	hospitals, err := h.hospitalService.ListHospitals(middleware.Actor(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, hospitals)
}

// Get handles GET /api/hospitals/:hospital_id
func (h *HospitalHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "hospital_id")
	if !ok {
		return
	}

	hospital, err := h.hospitalService.GetHospital(middleware.Actor(c), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, hospital)
}

// Update handles PATCH /api/hospitals/:hospital_id
func (h *HospitalHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "hospital_id")
	if !ok {
		return
	}

	var req service.UpdateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payload")
		return
	}

	hospital, err := h.hospitalService.UpdateHospital(middleware.Actor(c), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, hospital)
}

// StartPayment handles POST /api/hospitals/payment
func (h *HospitalHandler) StartPayment(c *gin.Context) {
	var req service.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payment payload: "+err.Error())
		return
	}

	result, err := h.hospitalService.StartPayment(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, result)
}

// VerifyPayment handles POST /api/hospitals/payment/verify (gateway webhook)
func (h *HospitalHandler) VerifyPayment(c *gin.Context) {
	var req service.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid verification payload: "+err.Error())
		return
	}

	sub, err := h.hospitalService.VerifyPayment(req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, sub)
}

// parseID reads a numeric path parameter; unparsable values read as 404 so
// probing ids leaks nothing.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "not found")
		return 0, false
	}
	return uint(id), true
}
