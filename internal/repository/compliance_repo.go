package repository

import (
	"errors"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"gorm.io/gorm"
)

var standardOrderFields = map[string]string{
	"id":              "id",
	"name":            "name",
	"status":          "status",
	"progress":        "progress",
	"next_audit_date": "next_audit_date",
}

// ComplianceRepository persists compliance standards, audits and documents.
type ComplianceRepository interface {
	ListStandards(hospitalID uint, params utils.PageParams) ([]models.ComplianceStandard, int64, error)
	AllStandards(hospitalID uint) ([]models.ComplianceStandard, error)
	GetStandardByID(hospitalID, id uint) (*models.ComplianceStandard, error)
	CreateStandard(standard *models.ComplianceStandard) error
	UpdateStandard(standard *models.ComplianceStandard) error
	DeleteStandard(hospitalID, id uint) error

	ListAudits(hospitalID uint) ([]models.Audit, error)
	GetAuditByID(hospitalID, id uint) (*models.Audit, error)
	CreateAudit(audit *models.Audit) error
	UpdateAudit(audit *models.Audit) error
	DeleteAudit(hospitalID, id uint) error

	ListDocuments(hospitalID uint, standardID *uint) ([]models.ComplianceDocument, error)
	CreateDocument(doc *models.ComplianceDocument) error
	DeleteDocument(hospitalID, id uint) error
}

type complianceRepo struct {
	db *gorm.DB
}

func NewComplianceRepo(db *gorm.DB) ComplianceRepository {
	return &complianceRepo{db: db}
}

// ListStandards retrieves a page of a hospital's compliance standards
func (r *complianceRepo) ListStandards(hospitalID uint, params utils.PageParams) ([]models.ComplianceStandard, int64, error) {
	query := r.db.Model(&models.ComplianceStandard{}).Where("hospital_id = ?", hospitalID)
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("name LIKE ?", like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var standards []models.ComplianceStandard
	err := query.
		Order(params.OrderClause(standardOrderFields, "id ASC")).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&standards).Error
	return standards, total, err
}

// AllStandards retrieves every standard of a hospital (CSV export)
func (r *complianceRepo) AllStandards(hospitalID uint) ([]models.ComplianceStandard, error) {
	var standards []models.ComplianceStandard
	err := r.db.Where("hospital_id = ?", hospitalID).
		Order("id ASC").
		Find(&standards).Error
	return standards, err
}

// GetStandardByID retrieves one standard of a hospital
func (r *complianceRepo) GetStandardByID(hospitalID, id uint) (*models.ComplianceStandard, error) {
	var standard models.ComplianceStandard
	err := r.db.Where("hospital_id = ? AND id = ?", hospitalID, id).
		First(&standard).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("compliance standard")
		}
		return nil, err
	}
	return &standard, nil
}

// CreateStandard creates a compliance standard
func (r *complianceRepo) CreateStandard(standard *models.ComplianceStandard) error {
	err := r.db.Create(standard).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("standard name")
	}
	return err
}

// UpdateStandard saves standard changes
func (r *complianceRepo) UpdateStandard(standard *models.ComplianceStandard) error {
	return r.db.Save(standard).Error
}

// DeleteStandard removes a standard with its audits and documents
func (r *complianceRepo) DeleteStandard(hospitalID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hospital_id = ? AND standard_id = ?", hospitalID, id).
			Delete(&models.Audit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hospital_id = ? AND standard_id = ?", hospitalID, id).
			Delete(&models.ComplianceDocument{}).Error; err != nil {
			return err
		}
		res := tx.Where("hospital_id = ? AND id = ?", hospitalID, id).
			Delete(&models.ComplianceStandard{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("compliance standard")
		}
		return nil
	})
}

// ListAudits retrieves a hospital's audits, soonest first
func (r *complianceRepo) ListAudits(hospitalID uint) ([]models.Audit, error) {
	var audits []models.Audit
	err := r.db.Where("hospital_id = ?", hospitalID).
		Order("audit_date ASC").
		Preload("Standard").
		Find(&audits).Error
	return audits, err
}

// GetAuditByID retrieves one audit of a hospital
func (r *complianceRepo) GetAuditByID(hospitalID, id uint) (*models.Audit, error) {
	var audit models.Audit
	err := r.db.Where("hospital_id = ? AND id = ?", hospitalID, id).
		Preload("Standard").
		First(&audit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("audit")
		}
		return nil, err
	}
	return &audit, nil
}

// CreateAudit creates an audit
func (r *complianceRepo) CreateAudit(audit *models.Audit) error {
	return r.db.Create(audit).Error
}

// UpdateAudit saves audit changes
func (r *complianceRepo) UpdateAudit(audit *models.Audit) error {
	return r.db.Omit("Standard", "Hospital").Save(audit).Error
}

// DeleteAudit removes an audit of a hospital
func (r *complianceRepo) DeleteAudit(hospitalID, id uint) error {
	res := r.db.Where("hospital_id = ? AND id = ?", hospitalID, id).
		Delete(&models.Audit{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("audit")
	}
	return nil
}

// ListDocuments retrieves a hospital's compliance documents, optionally
// narrowed to one standard.
func (r *complianceRepo) ListDocuments(hospitalID uint, standardID *uint) ([]models.ComplianceDocument, error) {
	query := r.db.Where("hospital_id = ?", hospitalID)
	if standardID != nil {
		query = query.Where("standard_id = ?", *standardID)
	}
	var docs []models.ComplianceDocument
	err := query.Order("id DESC").Find(&docs).Error
	return docs, err
}

// CreateDocument creates a compliance document record
func (r *complianceRepo) CreateDocument(doc *models.ComplianceDocument) error {
	return r.db.Create(doc).Error
}

// DeleteDocument removes a compliance document of a hospital
func (r *complianceRepo) DeleteDocument(hospitalID, id uint) error {
	res := r.db.Where("hospital_id = ? AND id = ?", hospitalID, id).
		Delete(&models.ComplianceDocument{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("compliance document")
	}
	return nil
}
