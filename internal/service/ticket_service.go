package service

import (
	"fmt"

	"github.com/Yogesh-MG/Meditrackpro/internal/authz"
	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/internal/seqid"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/logger"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"go.uber.org/zap"
)

// CreateTicketRequest carries a new support ticket
type CreateTicketRequest struct {
	Title       string `json:"title" binding:"required"`
	DeviceID    *uint  `json:"device_id"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Location    string `json:"location" binding:"required"`
	AssignedTo  *uint  `json:"assigned_to_id"`
	Description string `json:"description"`
}

// UpdateTicketRequest carries mutable ticket fields; ticket_id and creator
// are immutable.
type UpdateTicketRequest struct {
	Title       *string `json:"title"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	Location    *string `json:"location"`
	AssignedTo  *uint   `json:"assigned_to_id"`
	Description *string `json:"description"`
}

// AddCommentRequest carries a ticket comment; File is the stored path of an
// already-saved attachment, empty when none.
type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
	File    string `json:"-"`
}

// TicketService manages support tickets. Detail and mutation apply the
// engineer-or-creator rule.
type TicketService interface {
	ListTickets(actor authz.Actor, hospitalID uint, params utils.PageParams, filter repository.TicketFilter) ([]models.Ticket, int64, error)
	GetTicket(actor authz.Actor, hospitalID uint, ticketID string) (*models.Ticket, error)
	CreateTicket(actor authz.Actor, hospitalID uint, req CreateTicketRequest) (*models.Ticket, error)
	UpdateTicket(actor authz.Actor, hospitalID uint, ticketID string, req UpdateTicketRequest) (*models.Ticket, error)
	DeleteTicket(actor authz.Actor, hospitalID uint, ticketID string) error
	AddComment(actor authz.Actor, hospitalID uint, ticketID string, req AddCommentRequest) (*models.TicketComment, error)
}

type ticketService struct {
	ticketRepo   repository.TicketRepository
	employeeRepo repository.EmployeeRepository
	auditRepo    repository.AuditRepository
}

func NewTicketService(ticketRepo repository.TicketRepository, employeeRepo repository.EmployeeRepository, auditRepo repository.AuditRepository) TicketService {
	return &ticketService{
		ticketRepo:   ticketRepo,
		employeeRepo: employeeRepo,
		auditRepo:    auditRepo,
	}
}

func (s *ticketService) ListTickets(actor authz.Actor, hospitalID uint, params utils.PageParams, filter repository.TicketFilter) ([]models.Ticket, int64, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceTicket, hospitalID); err != nil {
		return nil, 0, err
	}
	return s.ticketRepo.ListTickets(hospitalID, params, filter)
}

// GetTicket returns a ticket to engineers and to its creator
func (s *ticketService) GetTicket(actor authz.Actor, hospitalID uint, ticketID string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetTicketByTID(hospitalID, ticketID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanTicketDetail(actor, authz.ActionRead, hospitalID, ticket.CreatedByID); err != nil {
		return nil, err
	}
	return ticket, nil
}

// CreateTicket allocates the next ticket id and opens the ticket with the
// calling employee as creator. Any employee of the hospital may open one.
func (s *ticketService) CreateTicket(actor authz.Actor, hospitalID uint, req CreateTicketRequest) (*models.Ticket, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceTicket, hospitalID); err != nil {
		return nil, err
	}
	if actor.EmployeeID == 0 && !actor.IsSuperAdmin {
		return nil, apperrors.ErrForbidden
	}

	if req.AssignedTo != nil {
		if err := s.requireEngineer(hospitalID, *req.AssignedTo); err != nil {
			return nil, err
		}
	}

	last, err := s.ticketRepo.LastTicketID(hospitalID)
	if err != nil {
		return nil, err
	}

	ticket := &models.Ticket{
		HospitalID:  hospitalID,
		TicketID:    seqid.Ticket.Next(last),
		Title:       req.Title,
		DeviceID:    req.DeviceID,
		Category:    req.Category,
		Priority:    req.Priority,
		Status:      models.TicketOpen,
		Location:    req.Location,
		AssignedTo:  req.AssignedTo,
		Description: req.Description,
	}
	if actor.EmployeeID != 0 {
		ticket.CreatedByID = &actor.EmployeeID
	}
	if ticket.Category == "" {
		ticket.Category = "hardware"
	}
	if ticket.Priority == "" {
		ticket.Priority = models.PriorityMedium
	}

	if err := s.ticketRepo.CreateTicket(ticket); err != nil {
		return nil, err
	}

	if err := s.auditRepo.CreateAuditLog(&actor.UserID, "ticket_created",
		fmt.Sprintf("ticket %s opened in hospital %d", ticket.TicketID, hospitalID)); err != nil {
		logger.Get().Warn("audit log write failed", zap.Error(err))
	}
	return ticket, nil
}

// UpdateTicket applies changes under the engineer-or-creator rule
func (s *ticketService) UpdateTicket(actor authz.Actor, hospitalID uint, ticketID string, req UpdateTicketRequest) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetTicketByTID(hospitalID, ticketID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanTicketDetail(actor, authz.ActionWrite, hospitalID, ticket.CreatedByID); err != nil {
		return nil, err
	}

	if req.AssignedTo != nil {
		if err := s.requireEngineer(hospitalID, *req.AssignedTo); err != nil {
			return nil, err
		}
		ticket.AssignedTo = req.AssignedTo
	}

	applyString(&ticket.Title, req.Title)
	applyString(&ticket.Category, req.Category)
	applyString(&ticket.Priority, req.Priority)
	applyString(&ticket.Status, req.Status)
	applyString(&ticket.Location, req.Location)
	applyString(&ticket.Description, req.Description)

	if err := s.ticketRepo.UpdateTicket(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// DeleteTicket removes a ticket under the engineer-or-creator rule
func (s *ticketService) DeleteTicket(actor authz.Actor, hospitalID uint, ticketID string) error {
	ticket, err := s.ticketRepo.GetTicketByTID(hospitalID, ticketID)
	if err != nil {
		return err
	}
	if err := authz.CanTicketDetail(actor, authz.ActionDelete, hospitalID, ticket.CreatedByID); err != nil {
		return err
	}

	if err := s.ticketRepo.DeleteTicket(hospitalID, ticketID); err != nil {
		return err
	}

	if err := s.auditRepo.CreateAuditLog(&actor.UserID, "ticket_deleted",
		fmt.Sprintf("ticket %s deleted from hospital %d", ticketID, hospitalID)); err != nil {
		logger.Get().Warn("audit log write failed", zap.Error(err))
	}
	return nil
}

// AddComment appends a comment, visible to anyone who can see the ticket
func (s *ticketService) AddComment(actor authz.Actor, hospitalID uint, ticketID string, req AddCommentRequest) (*models.TicketComment, error) {
	ticket, err := s.ticketRepo.GetTicketByTID(hospitalID, ticketID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanTicketDetail(actor, authz.ActionRead, hospitalID, ticket.CreatedByID); err != nil {
		return nil, err
	}

	comment := &models.TicketComment{
		TicketRowID: ticket.ID,
		Content:     req.Content,
		File:        req.File,
	}
	if actor.EmployeeID != 0 {
		comment.AuthorID = &actor.EmployeeID
	}

	if err := s.ticketRepo.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// requireEngineer verifies the assignee exists in the hospital and holds the
// engineer role.
func (s *ticketService) requireEngineer(hospitalID, employeeID uint) error {
	assignee, err := s.employeeRepo.GetEmployeeByID(hospitalID, employeeID)
	if err != nil {
		return err
	}
	if assignee.Role != models.RoleEngineer {
		return apperrors.NewValidation("assigned_to_id", "tickets can only be assigned to engineers")
	}
	return nil
}
