package service

import (
	"strconv"
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/authz"
	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"
)

// complianceCSVHeader is the fixed export header row.
var complianceCSVHeader = []string{
	"Name", "Status", "Progress", "Last Audit Date", "Next Audit Date",
}

// CreateStandardRequest carries a new compliance standard
type CreateStandardRequest struct {
	Name          string     `json:"name" binding:"required"`
	Status        string     `json:"status"`
	Progress      int        `json:"progress"`
	LastAuditDate *time.Time `json:"last_audit_date"`
	NextAuditDate *time.Time `json:"next_audit_date"`
}

// UpdateStandardRequest carries mutable standard fields
type UpdateStandardRequest struct {
	Name          *string    `json:"name"`
	Status        *string    `json:"status"`
	Progress      *int       `json:"progress"`
	LastAuditDate *time.Time `json:"last_audit_date"`
	NextAuditDate *time.Time `json:"next_audit_date"`
}

// CreateAuditRequest schedules or records a compliance audit
type CreateAuditRequest struct {
	StandardID uint      `json:"standard_id" binding:"required"`
	Title      string    `json:"title" binding:"required"`
	AuditDate  time.Time `json:"audit_date" binding:"required"`
	Status     string    `json:"status"`
	Auditor    string    `json:"auditor"`
	Notes      string    `json:"notes"`
}

// UpdateAuditRequest carries mutable audit fields
type UpdateAuditRequest struct {
	Title     *string    `json:"title"`
	AuditDate *time.Time `json:"audit_date"`
	Status    *string    `json:"status"`
	Auditor   *string    `json:"auditor"`
	Notes     *string    `json:"notes"`
}

// CreateDocumentRequest attaches a document to a standard
type CreateDocumentRequest struct {
	StandardID uint   `json:"standard_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	File       string `json:"file"`
	Status     string `json:"status"`
}

// ComplianceService manages standards, audits and documents.
type ComplianceService interface {
	ListStandards(actor authz.Actor, hospitalID uint, params utils.PageParams) ([]models.ComplianceStandard, int64, error)
	GetStandard(actor authz.Actor, hospitalID, id uint) (*models.ComplianceStandard, error)
	CreateStandard(actor authz.Actor, hospitalID uint, req CreateStandardRequest) (*models.ComplianceStandard, error)
	UpdateStandard(actor authz.Actor, hospitalID, id uint, req UpdateStandardRequest) (*models.ComplianceStandard, error)
	DeleteStandard(actor authz.Actor, hospitalID, id uint) error
	ExportCSV(actor authz.Actor, hospitalID uint) ([][]string, error)

	ListAudits(actor authz.Actor, hospitalID uint) ([]models.Audit, error)
	CreateAudit(actor authz.Actor, hospitalID uint, req CreateAuditRequest) (*models.Audit, error)
	UpdateAudit(actor authz.Actor, hospitalID, id uint, req UpdateAuditRequest) (*models.Audit, error)
	DeleteAudit(actor authz.Actor, hospitalID, id uint) error

	ListDocuments(actor authz.Actor, hospitalID uint, standardID *uint) ([]models.ComplianceDocument, error)
	CreateDocument(actor authz.Actor, hospitalID uint, req CreateDocumentRequest) (*models.ComplianceDocument, error)
	DeleteDocument(actor authz.Actor, hospitalID, id uint) error
}

type complianceService struct {
	complianceRepo repository.ComplianceRepository
}

func NewComplianceService(complianceRepo repository.ComplianceRepository) ComplianceService {
	return &complianceService{complianceRepo: complianceRepo}
}

func (s *complianceService) ListStandards(actor authz.Actor, hospitalID uint, params utils.PageParams) ([]models.ComplianceStandard, int64, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceCompliance, hospitalID); err != nil {
		return nil, 0, err
	}
	return s.complianceRepo.ListStandards(hospitalID, params)
}

func (s *complianceService) GetStandard(actor authz.Actor, hospitalID, id uint) (*models.ComplianceStandard, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceCompliance, hospitalID); err != nil {
		return nil, err
	}
	return s.complianceRepo.GetStandardByID(hospitalID, id)
}

func (s *complianceService) CreateStandard(actor authz.Actor, hospitalID uint, req CreateStandardRequest) (*models.ComplianceStandard, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceCompliance, hospitalID); err != nil {
		return nil, err
	}
	if err := validateProgress(req.Progress); err != nil {
		return nil, err
	}

	standard := &models.ComplianceStandard{
		HospitalID:    hospitalID,
		Name:          req.Name,
		Status:        req.Status,
		Progress:      req.Progress,
		LastAuditDate: req.LastAuditDate,
		NextAuditDate: req.NextAuditDate,
	}
	if standard.Status == "" {
		standard.Status = "Pending Review"
	}

	if err := s.complianceRepo.CreateStandard(standard); err != nil {
		return nil, err
	}
	return standard, nil
}

func (s *complianceService) UpdateStandard(actor authz.Actor, hospitalID, id uint, req UpdateStandardRequest) (*models.ComplianceStandard, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceCompliance, hospitalID); err != nil {
		return nil, err
	}

	standard, err := s.complianceRepo.GetStandardByID(hospitalID, id)
	if err != nil {
		return nil, err
	}

	applyString(&standard.Name, req.Name)
	applyString(&standard.Status, req.Status)
	if req.Progress != nil {
		if err := validateProgress(*req.Progress); err != nil {
			return nil, err
		}
		standard.Progress = *req.Progress
	}
	if req.LastAuditDate != nil {
		standard.LastAuditDate = req.LastAuditDate
	}
	if req.NextAuditDate != nil {
		standard.NextAuditDate = req.NextAuditDate
	}

	if err := s.complianceRepo.UpdateStandard(standard); err != nil {
		return nil, err
	}
	return standard, nil
}

func (s *complianceService) DeleteStandard(actor authz.Actor, hospitalID, id uint) error {
	if err := authz.Can(actor, authz.ActionDelete, authz.ResourceCompliance, hospitalID); err != nil {
		return err
	}
	return s.complianceRepo.DeleteStandard(hospitalID, id)
}

// ExportCSV renders every standard as rows with the fixed header
func (s *complianceService) ExportCSV(actor authz.Actor, hospitalID uint) ([][]string, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceCompliance, hospitalID); err != nil {
		return nil, err
	}

	standards, err := s.complianceRepo.AllStandards(hospitalID)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(standards)+1)
	rows = append(rows, complianceCSVHeader)
	for _, standard := range standards {
		last, next := "", ""
		if standard.LastAuditDate != nil {
			last = standard.LastAuditDate.Format("2006-01-02")
		}
		if standard.NextAuditDate != nil {
			next = standard.NextAuditDate.Format("2006-01-02")
		}
		rows = append(rows, []string{
			standard.Name,
			standard.Status,
			strconv.Itoa(standard.Progress),
			last,
			next,
		})
	}
	return rows, nil
}

func (s *complianceService) ListAudits(actor authz.Actor, hospitalID uint) ([]models.Audit, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceCompliance, hospitalID); err != nil {
		return nil, err
	}
	return s.complianceRepo.ListAudits(hospitalID)
}

func (s *complianceService) CreateAudit(actor authz.Actor, hospitalID uint, req CreateAuditRequest) (*models.Audit, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceCompliance, hospitalID); err != nil {
		return nil, err
	}

	// Standard must belong to the same hospital.
	if _, err := s.complianceRepo.GetStandardByID(hospitalID, req.StandardID); err != nil {
		return nil, err
	}

	audit := &models.Audit{
		HospitalID: hospitalID,
		StandardID: req.StandardID,
		Title:      req.Title,
		AuditDate:  req.AuditDate,
		Status:     req.Status,
		Auditor:    req.Auditor,
		Notes:      req.Notes,
	}
	if audit.Status == "" {
		audit.Status = "Scheduled"
	}

	if err := s.complianceRepo.CreateAudit(audit); err != nil {
		return nil, err
	}
	return audit, nil
}

func (s *complianceService) UpdateAudit(actor authz.Actor, hospitalID, id uint, req UpdateAuditRequest) (*models.Audit, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceCompliance, hospitalID); err != nil {
		return nil, err
	}

	audit, err := s.complianceRepo.GetAuditByID(hospitalID, id)
	if err != nil {
		return nil, err
	}

	applyString(&audit.Title, req.Title)
	applyString(&audit.Status, req.Status)
	applyString(&audit.Auditor, req.Auditor)
	applyString(&audit.Notes, req.Notes)
	if req.AuditDate != nil {
		audit.AuditDate = *req.AuditDate
	}

	if err := s.complianceRepo.UpdateAudit(audit); err != nil {
		return nil, err
	}
	return audit, nil
}

func (s *complianceService) DeleteAudit(actor authz.Actor, hospitalID, id uint) error {
	if err := authz.Can(actor, authz.ActionDelete, authz.ResourceCompliance, hospitalID); err != nil {
		return err
	}
	return s.complianceRepo.DeleteAudit(hospitalID, id)
}

func (s *complianceService) ListDocuments(actor authz.Actor, hospitalID uint, standardID *uint) ([]models.ComplianceDocument, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceCompliance, hospitalID); err != nil {
		return nil, err
	}
	return s.complianceRepo.ListDocuments(hospitalID, standardID)
}

func (s *complianceService) CreateDocument(actor authz.Actor, hospitalID uint, req CreateDocumentRequest) (*models.ComplianceDocument, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceCompliance, hospitalID); err != nil {
		return nil, err
	}

	if _, err := s.complianceRepo.GetStandardByID(hospitalID, req.StandardID); err != nil {
		return nil, err
	}

	doc := &models.ComplianceDocument{
		HospitalID: hospitalID,
		StandardID: req.StandardID,
		Name:       req.Name,
		File:       req.File,
		Status:     req.Status,
	}
	if doc.Status == "" {
		doc.Status = "In Progress"
	}

	if err := s.complianceRepo.CreateDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *complianceService) DeleteDocument(actor authz.Actor, hospitalID, id uint) error {
	if err := authz.Can(actor, authz.ActionDelete, authz.ResourceCompliance, hospitalID); err != nil {
		return err
	}
	return s.complianceRepo.DeleteDocument(hospitalID, id)
}

func validateProgress(p int) error {
	if p < 0 || p > 100 {
		return apperrors.NewValidation("progress", "progress must be between 0 and 100")
	}
	return nil
}
