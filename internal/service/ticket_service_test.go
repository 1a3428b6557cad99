package service

import (
	"testing"

	"github.com/Yogesh-MG/Meditrackpro/internal/authz"
	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicketRepo struct {
	ticket    *models.Ticket
	lastTID   string
	created   *models.Ticket
	updated   *models.Ticket
	deleted   string
	comment   *models.TicketComment
}

func (f *fakeTicketRepo) ListTickets(hospitalID uint, params utils.PageParams, filter repository.TicketFilter) ([]models.Ticket, int64, error) {
	if f.ticket == nil {
		return nil, 0, nil
	}
	return []models.Ticket{*f.ticket}, 1, nil
}

func (f *fakeTicketRepo) GetTicketByTID(hospitalID uint, ticketID string) (*models.Ticket, error) {
	if f.ticket == nil || f.ticket.TicketID != ticketID || f.ticket.HospitalID != hospitalID {
		return nil, apperrors.NotFound("ticket")
	}
	copied := *f.ticket
	return &copied, nil
}

func (f *fakeTicketRepo) LastTicketID(hospitalID uint) (string, error) {
	return f.lastTID, nil
}

func (f *fakeTicketRepo) CreateTicket(ticket *models.Ticket) error {
	ticket.ID = 1
	f.created = ticket
	f.ticket = ticket
	return nil
}

func (f *fakeTicketRepo) UpdateTicket(ticket *models.Ticket) error {
	f.updated = ticket
	f.ticket = ticket
	return nil
}

func (f *fakeTicketRepo) DeleteTicket(hospitalID uint, ticketID string) error {
	f.deleted = ticketID
	f.ticket = nil
	return nil
}

func (f *fakeTicketRepo) CreateComment(comment *models.TicketComment) error {
	comment.ID = 1
	f.comment = comment
	return nil
}

type fakeEmployeeRepo struct {
	employees map[uint]*models.Employee
}

func (f *fakeEmployeeRepo) ListEmployees(hospitalID uint) ([]models.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) GetEmployeeByID(hospitalID, id uint) (*models.Employee, error) {
	emp, ok := f.employees[id]
	if !ok || emp.HospitalID == nil || *emp.HospitalID != hospitalID {
		return nil, apperrors.NotFound("employee")
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetEmployeeByUserID(userID uint) (*models.Employee, error) {
	for _, emp := range f.employees {
		if emp.UserID == userID {
			return emp, nil
		}
	}
	return nil, apperrors.NotFound("employee")
}

func (f *fakeEmployeeRepo) CreateEmployee(employee *models.Employee) error { return nil }
func (f *fakeEmployeeRepo) UpdateEmployee(employee *models.Employee) error { return nil }
func (f *fakeEmployeeRepo) DeleteEmployee(hospitalID, id uint) error       { return nil }

func nurseActor(hospitalID, employeeID uint) authz.Actor {
	return authz.Actor{UserID: employeeID, EmployeeID: employeeID, Role: models.RoleNurse, HospitalID: &hospitalID}
}

func ticketEngineers(hospitalID uint) *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[uint]*models.Employee{
		13: {ID: 13, HospitalID: &hospitalID, Role: models.RoleEngineer},
		11: {ID: 11, HospitalID: &hospitalID, Role: models.RoleNurse},
	}}
}

func TestCreateTicket_AllocatesIDAndDefaults(t *testing.T) {
	ticketRepo := &fakeTicketRepo{lastTID: "TIC1041"}
	svc := NewTicketService(ticketRepo, ticketEngineers(5), &fakeAuditRepo{})

	ticket, err := svc.CreateTicket(nurseActor(5, 11), 5, CreateTicketRequest{
		Title:    "Ventilator alarm fault",
		Location: "ICU-2",
	})
	require.NoError(t, err)

	assert.Equal(t, "TIC1042", ticket.TicketID)
	assert.Equal(t, models.TicketOpen, ticket.Status)
	assert.Equal(t, models.PriorityMedium, ticket.Priority)
	require.NotNil(t, ticket.CreatedByID)
	assert.Equal(t, uint(11), *ticket.CreatedByID)
}

func TestCreateTicket_AssigneeMustBeEngineer(t *testing.T) {
	ticketRepo := &fakeTicketRepo{}
	svc := NewTicketService(ticketRepo, ticketEngineers(5), &fakeAuditRepo{})

	nurseID := uint(11)
	_, err := svc.CreateTicket(nurseActor(5, 11), 5, CreateTicketRequest{
		Title:      "Broken infusion pump",
		Location:   "Ward 3",
		AssignedTo: &nurseID,
	})
	ve, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "assigned_to_id")

	engineerID := uint(13)
	_, err = svc.CreateTicket(nurseActor(5, 11), 5, CreateTicketRequest{
		Title:      "Broken infusion pump",
		Location:   "Ward 3",
		AssignedTo: &engineerID,
	})
	assert.NoError(t, err)
}

func TestUpdateTicket_CreatorOverride(t *testing.T) {
	creatorID := uint(11)
	ticketRepo := &fakeTicketRepo{ticket: &models.Ticket{
		ID: 1, HospitalID: 5, TicketID: "TIC1001", Title: "Old title",
		Status: models.TicketOpen, CreatedByID: &creatorID,
	}}
	svc := NewTicketService(ticketRepo, ticketEngineers(5), &fakeAuditRepo{})

	title := "New title"
	ticket, err := svc.UpdateTicket(nurseActor(5, 11), 5, "TIC1001", UpdateTicketRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New title", ticket.Title)
}

func TestUpdateTicket_OtherNurseForbidden(t *testing.T) {
	creatorID := uint(11)
	ticketRepo := &fakeTicketRepo{ticket: &models.Ticket{
		ID: 1, HospitalID: 5, TicketID: "TIC1001", CreatedByID: &creatorID,
	}}
	svc := NewTicketService(ticketRepo, ticketEngineers(5), &fakeAuditRepo{})

	title := "hijack"
	_, err := svc.UpdateTicket(nurseActor(5, 12), 5, "TIC1001", UpdateTicketRequest{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestDeleteTicket_UnknownIDIs404(t *testing.T) {
	svc := NewTicketService(&fakeTicketRepo{}, ticketEngineers(5), &fakeAuditRepo{})
	err := svc.DeleteTicket(nurseActor(5, 11), 5, "TIC9999")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAddComment_AttributedToAuthor(t *testing.T) {
	creatorID := uint(11)
	ticketRepo := &fakeTicketRepo{ticket: &models.Ticket{
		ID: 7, HospitalID: 5, TicketID: "TIC1001", CreatedByID: &creatorID,
	}}
	svc := NewTicketService(ticketRepo, ticketEngineers(5), &fakeAuditRepo{})

	comment, err := svc.AddComment(nurseActor(5, 11), 5, "TIC1001", AddCommentRequest{
		Content: "Spare part ordered",
		File:    "uploads/tickets/abc.pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(7), comment.TicketRowID)
	assert.Equal(t, "uploads/tickets/abc.pdf", comment.File)
	require.NotNil(t, comment.AuthorID)
	assert.Equal(t, uint(11), *comment.AuthorID)
}
