package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/Yogesh-MG/Meditrackpro/internal/middleware"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/internal/service"
	"github.com/Yogesh-MG/Meditrackpro/pkg/logger"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InventoryHandler exposes the stock register, categories, units, bulk
// actions and CSV export.
type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

// List handles GET /api/hospitals/:hospital_id/inventory
func (h *InventoryHandler) List(c *gin.Context) {
	params := utils.ParsePageParams(c)
	filter := repository.InventoryFilter{
		StockLevel: c.Query("stock_level"),
		Location:   c.Query("location"),
	}
	if days, err := strconv.Atoi(c.Query("expiry_soon")); err == nil && days > 0 {
		filter.ExpirySoon = days
	}
	if id, err := strconv.ParseUint(c.Query("category"), 10, 64); err == nil {
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}

	items, total, err := h.inventoryService.ListItems(middleware.Actor(c), middleware.HospitalID(c), params, filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"results": items,
		"count":   total,
		"page":    params.Page,
		"limit":   params.Limit,
	})
}

// Get handles GET /api/hospitals/:hospital_id/inventory/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	item, err := h.inventoryService.GetItem(middleware.Actor(c), middleware.HospitalID(c), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, item)
}

// CheckSKU handles GET /api/hospitals/:hospital_id/inventory/check?sku=
func (h *InventoryHandler) CheckSKU(c *gin.Context) {
	exists, err := h.inventoryService.CheckSKU(middleware.Actor(c), middleware.HospitalID(c), c.Query("sku"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"exists": exists})
}

// Create handles POST /api/hospitals/:hospital_id/inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	var req service.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid item payload: "+err.Error())
		return
	}

	item, err := h.inventoryService.CreateItem(middleware.Actor(c), middleware.HospitalID(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, item)
}

// Update handles PATCH /api/hospitals/:hospital_id/inventory/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payload")
		return
	}

	item, err := h.inventoryService.UpdateItem(middleware.Actor(c), middleware.HospitalID(c), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, item)
}

// Delete handles DELETE /api/hospitals/:hospital_id/inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteItem(middleware.Actor(c), middleware.HospitalID(c), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "item deleted")
}

// BulkAction handles POST /api/hospitals/:hospital_id/inventory/bulk
func (h *InventoryHandler) BulkAction(c *gin.Context) {
	var req service.BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid bulk action payload: "+err.Error())
		return
	}

	result, err := h.inventoryService.BulkAction(middleware.Actor(c), middleware.HospitalID(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, result)
}

// Export handles GET /api/hospitals/:hospital_id/inventory/export
func (h *InventoryHandler) Export(c *gin.Context) {
	rows, err := h.inventoryService.ExportCSV(middleware.Actor(c), middleware.HospitalID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	writeCSV(c, "inventory.csv", rows)
}

// ListCategories handles GET /api/hospitals/:hospital_id/inventory/categories
func (h *InventoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.inventoryService.ListCategories(middleware.Actor(c), middleware.HospitalID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, categories)
}

// CreateCategory handles POST /api/hospitals/:hospital_id/inventory/categories
func (h *InventoryHandler) CreateCategory(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "name is required")
		return
	}

	category, err := h.inventoryService.CreateCategory(middleware.Actor(c), middleware.HospitalID(c), req.Name)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, category)
}

// ListUnits handles GET /api/hospitals/:hospital_id/inventory/units
func (h *InventoryHandler) ListUnits(c *gin.Context) {
	units, err := h.inventoryService.ListUnits(middleware.Actor(c), middleware.HospitalID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, units)
}

// CreateUnit handles POST /api/hospitals/:hospital_id/inventory/units
func (h *InventoryHandler) CreateUnit(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "name is required")
		return
	}

	unit, err := h.inventoryService.CreateUnit(middleware.Actor(c), middleware.HospitalID(c), req.Name)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, unit)
}

// writeCSV streams rows as a csv attachment
func writeCSV(c *gin.Context, filename string, rows [][]string) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.WriteAll(rows); err != nil {
		logger.Get().Error("csv export write failed", zap.Error(err))
	}
}
