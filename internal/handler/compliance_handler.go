package handler

import (
	"net/http"
	"strconv"

	"github.com/Yogesh-MG/Meditrackpro/internal/middleware"
	"github.com/Yogesh-MG/Meditrackpro/internal/service"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ComplianceHandler exposes standards, audits and documents.
type ComplianceHandler struct {
	complianceService service.ComplianceService
}

func NewComplianceHandler(complianceService service.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{complianceService: complianceService}
}

// ListStandards handles GET /api/hospitals/:hospital_id/compliance/standards
func (h *ComplianceHandler) ListStandards(c *gin.Context) {
	params := utils.ParsePageParams(c)
	standards, total, err := h.complianceService.ListStandards(middleware.Actor(c), middleware.HospitalID(c), params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"results": standards,
		"count":   total,
		"page":    params.Page,
		"limit":   params.Limit,
	})
}

// GetStandard handles GET /api/hospitals/:hospital_id/compliance/standards/:id
func (h *ComplianceHandler) GetStandard(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	standard, err := h.complianceService.GetStandard(middleware.Actor(c), middleware.HospitalID(c), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, standard)
}

// CreateStandard handles POST /api/hospitals/:hospital_id/compliance/standards
func (h *ComplianceHandler) CreateStandard(c *gin.Context) {
	var req service.CreateStandardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid standard payload: "+err.Error())
		return
	}

	standard, err := h.complianceService.CreateStandard(middleware.Actor(c), middleware.HospitalID(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, standard)
}

// UpdateStandard handles PATCH /api/hospitals/:hospital_id/compliance/standards/:id
func (h *ComplianceHandler) UpdateStandard(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateStandardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payload")
		return
	}

	standard, err := h.complianceService.UpdateStandard(middleware.Actor(c), middleware.HospitalID(c), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, standard)
}

// DeleteStandard handles DELETE /api/hospitals/:hospital_id/compliance/standards/:id
func (h *ComplianceHandler) DeleteStandard(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.complianceService.DeleteStandard(middleware.Actor(c), middleware.HospitalID(c), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "standard deleted")
}

// Export handles GET /api/hospitals/:hospital_id/compliance/export
func (h *ComplianceHandler) Export(c *gin.Context) {
	rows, err := h.complianceService.ExportCSV(middleware.Actor(c), middleware.HospitalID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	writeCSV(c, "compliance_standards.csv", rows)
}

// ListAudits handles GET /api/hospitals/:hospital_id/compliance/audits
func (h *ComplianceHandler) ListAudits(c *gin.Context) {
	audits, err := h.complianceService.ListAudits(middleware.Actor(c), middleware.HospitalID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, audits)
}

// CreateAudit handles POST /api/hospitals/:hospital_id/compliance/audits
func (h *ComplianceHandler) CreateAudit(c *gin.Context) {
	var req service.CreateAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid audit payload: "+err.Error())
		return
	}

	audit, err := h.complianceService.CreateAudit(middleware.Actor(c), middleware.HospitalID(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, audit)
}

// UpdateAudit handles PATCH /api/hospitals/:hospital_id/compliance/audits/:id
func (h *ComplianceHandler) UpdateAudit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payload")
		return
	}

	audit, err := h.complianceService.UpdateAudit(middleware.Actor(c), middleware.HospitalID(c), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, audit)
}

// DeleteAudit handles DELETE /api/hospitals/:hospital_id/compliance/audits/:id
func (h *ComplianceHandler) DeleteAudit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.complianceService.DeleteAudit(middleware.Actor(c), middleware.HospitalID(c), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "audit deleted")
}

// ListDocuments handles GET /api/hospitals/:hospital_id/compliance/documents
func (h *ComplianceHandler) ListDocuments(c *gin.Context) {
	var standardID *uint
	if id, err := strconv.ParseUint(c.Query("standard"), 10, 64); err == nil {
		sid := uint(id)
		standardID = &sid
	}

	docs, err := h.complianceService.ListDocuments(middleware.Actor(c), middleware.HospitalID(c), standardID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, docs)
}

// CreateDocument handles POST /api/hospitals/:hospital_id/compliance/documents
func (h *ComplianceHandler) CreateDocument(c *gin.Context) {
	var req service.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid document payload: "+err.Error())
		return
	}

	doc, err := h.complianceService.CreateDocument(middleware.Actor(c), middleware.HospitalID(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, doc)
}

// DeleteDocument handles DELETE /api/hospitals/:hospital_id/compliance/documents/:id
func (h *ComplianceHandler) DeleteDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.complianceService.DeleteDocument(middleware.Actor(c), middleware.HospitalID(c), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "document deleted")
}
