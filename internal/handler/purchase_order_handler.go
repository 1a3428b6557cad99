package handler

import (
	"net/http"

	"github.com/Yogesh-MG/Meditrackpro/internal/middleware"
	"github.com/Yogesh-MG/Meditrackpro/internal/service"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PurchaseOrderHandler exposes the procurement register.
type PurchaseOrderHandler struct {
	poService service.PurchaseOrderService
}

func NewPurchaseOrderHandler(poService service.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{poService: poService}
}

// List handles GET /api/hospitals/:hospital_id/purchase-orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	params := utils.ParsePageParams(c)
	orders, total, err := h.poService.ListPurchaseOrders(middleware.Actor(c), middleware.HospitalID(c), params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"results": orders,
		"count":   total,
		"page":    params.Page,
		"limit":   params.Limit,
	})
}

// StatusChoices handles GET /api/hospitals/:hospital_id/purchase-orders/statuses
func (h *PurchaseOrderHandler) StatusChoices(c *gin.Context) {
	utils.SuccessResponse(c, service.POStatusChoices)
}

// Get handles GET /api/hospitals/:hospital_id/purchase-orders/:id
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	po, err := h.poService.GetPurchaseOrder(middleware.Actor(c), middleware.HospitalID(c), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, po)
}

// History handles GET /api/hospitals/:hospital_id/inventory/:id/purchase-history
func (h *PurchaseOrderHandler) History(c *gin.Context) {
	itemID, ok := parseID(c, "id")
	if !ok {
		return
	}

	orders, err := h.poService.PurchaseHistory(middleware.Actor(c), middleware.HospitalID(c), itemID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, orders)
}

// Create handles POST /api/hospitals/:hospital_id/purchase-orders
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req service.CreatePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid purchase order payload: "+err.Error())
		return
	}

	po, err := h.poService.CreatePurchaseOrder(middleware.Actor(c), middleware.HospitalID(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, po)
}

// Update handles PATCH /api/hospitals/:hospital_id/purchase-orders/:id
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UpdatePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payload")
		return
	}

	po, err := h.poService.UpdatePurchaseOrder(middleware.Actor(c), middleware.HospitalID(c), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, po)
}

// Delete handles DELETE /api/hospitals/:hospital_id/purchase-orders/:id
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.poService.DeletePurchaseOrder(middleware.Actor(c), middleware.HospitalID(c), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "purchase order deleted")
}
