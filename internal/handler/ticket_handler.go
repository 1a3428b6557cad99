package handler

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/Yogesh-MG/Meditrackpro/internal/config"
	"github.com/Yogesh-MG/Meditrackpro/internal/middleware"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/internal/service"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TicketHandler exposes support tickets and their comments. Comment
// attachments are stored on local disk under the configured upload dir.
type TicketHandler struct {
	ticketService service.TicketService
	uploadCfg     config.UploadConfig
}

func NewTicketHandler(ticketService service.TicketService, uploadCfg config.UploadConfig) *TicketHandler {
	return &TicketHandler{ticketService: ticketService, uploadCfg: uploadCfg}
}

// List handles GET /api/hospitals/:hospital_id/tickets
func (h *TicketHandler) List(c *gin.Context) {
	params := utils.ParsePageParams(c)
	filter := repository.TicketFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}
	if id, err := strconv.ParseUint(c.Query("assigned_to"), 10, 64); err == nil {
		assignee := uint(id)
		filter.AssignedTo = &assignee
	}

	tickets, total, err := h.ticketService.ListTickets(middleware.Actor(c), middleware.HospitalID(c), params, filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"results": tickets,
		"count":   total,
		"page":    params.Page,
		"limit":   params.Limit,
	})
}

// Get handles GET /api/hospitals/:hospital_id/tickets/:ticket_id
func (h *TicketHandler) Get(c *gin.Context) {
	ticket, err := h.ticketService.GetTicket(middleware.Actor(c), middleware.HospitalID(c), c.Param("ticket_id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, ticket)
}

// Create handles POST /api/hospitals/:hospital_id/tickets
func (h *TicketHandler) Create(c *gin.Context) {
	var req service.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid ticket payload: "+err.Error())
		return
	}

	ticket, err := h.ticketService.CreateTicket(middleware.Actor(c), middleware.HospitalID(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, ticket)
}

// Update handles PATCH /api/hospitals/:hospital_id/tickets/:ticket_id
func (h *TicketHandler) Update(c *gin.Context) {
	var req service.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payload")
		return
	}

	ticket, err := h.ticketService.UpdateTicket(middleware.Actor(c), middleware.HospitalID(c), c.Param("ticket_id"), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, ticket)
}

// Delete handles DELETE /api/hospitals/:hospital_id/tickets/:ticket_id
func (h *TicketHandler) Delete(c *gin.Context) {
	if err := h.ticketService.DeleteTicket(middleware.Actor(c), middleware.HospitalID(c), c.Param("ticket_id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "ticket deleted")
}

// AddComment handles POST /api/hospitals/:hospital_id/tickets/:ticket_id/comments.
// Accepts multipart form with a content field and an optional file capped at
// the configured attachment size.
func (h *TicketHandler) AddComment(c *gin.Context) {
	content := c.PostForm("content")
	if content == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "content is required")
		return
	}

	req := service.AddCommentRequest{Content: content}

	file, err := c.FormFile("file")
	if err == nil && file != nil {
		if file.Size > h.uploadCfg.MaxAttachmentBytes {
			utils.ErrorResponse(c, http.StatusBadRequest, "attachment exceeds the 5MB limit")
			return
		}
		stored := filepath.Join(h.uploadCfg.Dir, "tickets",
			uuid.New().String()+filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, stored); err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "could not store attachment")
			return
		}
		req.File = stored
	}

	comment, err := h.ticketService.AddComment(middleware.Actor(c), middleware.HospitalID(c), c.Param("ticket_id"), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, comment)
}
