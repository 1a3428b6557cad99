package repository

import (
	"errors"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"gorm.io/gorm"
)

var ticketOrderFields = map[string]string{
	"id":         "id",
	"ticket_id":  "ticket_id",
	"priority":   "priority",
	"status":     "status",
	"created_at": "created_at",
}

// TicketFilter narrows ticket list queries.
type TicketFilter struct {
	Status     string
	Priority   string
	AssignedTo *uint
}

// TicketRepository persists support tickets and comments.
type TicketRepository interface {
	ListTickets(hospitalID uint, params utils.PageParams, filter TicketFilter) ([]models.Ticket, int64, error)
	GetTicketByTID(hospitalID uint, ticketID string) (*models.Ticket, error)
	LastTicketID(hospitalID uint) (string, error)
	CreateTicket(ticket *models.Ticket) error
	UpdateTicket(ticket *models.Ticket) error
	DeleteTicket(hospitalID uint, ticketID string) error
	CreateComment(comment *models.TicketComment) error
}

type ticketRepo struct {
	db *gorm.DB
}

func NewTicketRepo(db *gorm.DB) TicketRepository {
	return &ticketRepo{db: db}
}

// ListTickets retrieves a filtered page of a hospital's tickets
func (r *ticketRepo) ListTickets(hospitalID uint, params utils.PageParams, filter TicketFilter) ([]models.Ticket, int64, error) {
	query := r.db.Model(&models.Ticket{}).Where("hospital_id = ?", hospitalID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to_id = ?", *filter.AssignedTo)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("ticket_id LIKE ? OR title LIKE ? OR location LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tickets []models.Ticket
	err := query.
		Order(params.OrderClause(ticketOrderFields, "created_at DESC")).
		Limit(params.Limit).
		Offset(params.Offset()).
		Preload("Device").
		Preload("CreatedBy.User").
		Preload("Assignee.User").
		Find(&tickets).Error
	return tickets, total, err
}

// GetTicketByTID retrieves a ticket by its public identifier
func (r *ticketRepo) GetTicketByTID(hospitalID uint, ticketID string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.Where("hospital_id = ? AND ticket_id = ?", hospitalID, ticketID).
		Preload("Device").
		Preload("CreatedBy.User").
		Preload("Assignee.User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.Author.User").
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("ticket")
		}
		return nil, err
	}
	return &ticket, nil
}

// LastTicketID returns the most recently created ticket identifier for a
// hospital, empty when the hospital has none.
func (r *ticketRepo) LastTicketID(hospitalID uint) (string, error) {
	var ticket models.Ticket
	err := r.db.Where("hospital_id = ?", hospitalID).
		Order("id DESC").
		Select("ticket_id").
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return ticket.TicketID, nil
}

// CreateTicket creates a new ticket
func (r *ticketRepo) CreateTicket(ticket *models.Ticket) error {
	err := r.db.Create(ticket).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("ticket_id")
	}
	return err
}

// UpdateTicket saves ticket changes
func (r *ticketRepo) UpdateTicket(ticket *models.Ticket) error {
	return r.db.Omit("Comments", "Device", "CreatedBy", "Assignee", "Hospital").
		Save(ticket).Error
}

// DeleteTicket removes a ticket and its comments
func (r *ticketRepo) DeleteTicket(hospitalID uint, ticketID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ticket models.Ticket
		err := tx.Where("hospital_id = ? AND ticket_id = ?", hospitalID, ticketID).
			First(&ticket).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("ticket")
			}
			return err
		}
		if err := tx.Where("ticket_row_id = ?", ticket.ID).
			Delete(&models.TicketComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ticket).Error
	})
}

// CreateComment creates a comment on a ticket
func (r *ticketRepo) CreateComment(comment *models.TicketComment) error {
	return r.db.Create(comment).Error
}
