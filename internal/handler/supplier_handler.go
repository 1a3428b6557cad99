package handler

import (
	"net/http"

	"github.com/Yogesh-MG/Meditrackpro/internal/middleware"
	"github.com/Yogesh-MG/Meditrackpro/internal/service"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SupplierHandler exposes the supplier register.
type SupplierHandler struct {
	supplierService service.SupplierService
}

func NewSupplierHandler(supplierService service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// List handles GET /api/hospitals/:hospital_id/suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	params := utils.ParsePageParams(c)
	suppliers, total, err := h.supplierService.ListSuppliers(middleware.Actor(c), middleware.HospitalID(c), params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"results": suppliers,
		"count":   total,
		"page":    params.Page,
		"limit":   params.Limit,
	})
}

// Stats handles GET /api/hospitals/:hospital_id/suppliers/stats
func (h *SupplierHandler) Stats(c *gin.Context) {
	stats, err := h.supplierService.GetStats(middleware.Actor(c), middleware.HospitalID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, stats)
}

// Get handles GET /api/hospitals/:hospital_id/suppliers/:id
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	supplier, err := h.supplierService.GetSupplier(middleware.Actor(c), middleware.HospitalID(c), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, supplier)
}

// Create handles POST /api/hospitals/:hospital_id/suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req service.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid supplier payload: "+err.Error())
		return
	}

	supplier, err := h.supplierService.CreateSupplier(middleware.Actor(c), middleware.HospitalID(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, supplier)
}

// Update handles PATCH /api/hospitals/:hospital_id/suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payload")
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(middleware.Actor(c), middleware.HospitalID(c), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, supplier)
}

// Delete handles DELETE /api/hospitals/:hospital_id/suppliers/:id
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.supplierService.DeleteSupplier(middleware.Actor(c), middleware.HospitalID(c), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "supplier deleted")
}
