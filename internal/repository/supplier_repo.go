package repository

import (
	"errors"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"gorm.io/gorm"
)

var supplierOrderFields = map[string]string{
	"id":         "id",
	"name":       "name",
	"status":     "status",
	"created_at": "created_at",
}

// SupplierStats are per-status counts for a hospital's suppliers.
type SupplierStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	OnHold   int64 `json:"on_hold"`
	Inactive int64 `json:"inactive"`
}

// SupplierRepository persists suppliers.
type SupplierRepository interface {
	ListSuppliers(hospitalID uint, params utils.PageParams) ([]models.Supplier, int64, error)
	GetSupplierByID(hospitalID, id uint) (*models.Supplier, error)
	CreateSupplier(supplier *models.Supplier) error
	UpdateSupplier(supplier *models.Supplier) error
	DeleteSupplier(hospitalID, id uint) error
	GetStats(hospitalID uint) (*SupplierStats, error)
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db: db}
}

// ListSuppliers retrieves a page of a hospital's suppliers
func (r *supplierRepo) ListSuppliers(hospitalID uint, params utils.PageParams) ([]models.Supplier, int64, error) {
	query := r.db.Model(&models.Supplier{}).Where("hospital_id = ?", hospitalID)
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("name LIKE ? OR contact_name LIKE ? OR contact_email LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var suppliers []models.Supplier
	err := query.
		Order(params.OrderClause(supplierOrderFields, "id ASC")).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&suppliers).Error
	return suppliers, total, err
}

// GetSupplierByID retrieves one supplier of a hospital
func (r *supplierRepo) GetSupplierByID(hospitalID, id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.db.Where("hospital_id = ? AND id = ?", hospitalID, id).
		First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("supplier")
		}
		return nil, err
	}
	return &supplier, nil
}

// CreateSupplier creates a new supplier
func (r *supplierRepo) CreateSupplier(supplier *models.Supplier) error {
	err := r.db.Create(supplier).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("supplier name")
	}
	return err
}

// UpdateSupplier saves supplier changes
func (r *supplierRepo) UpdateSupplier(supplier *models.Supplier) error {
	return r.db.Save(supplier).Error
}

// DeleteSupplier removes a supplier of a hospital
func (r *supplierRepo) DeleteSupplier(hospitalID, id uint) error {
	res := r.db.Where("hospital_id = ? AND id = ?", hospitalID, id).
		Delete(&models.Supplier{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("supplier")
	}
	return nil
}

// GetStats counts a hospital's suppliers per status
func (r *supplierRepo) GetStats(hospitalID uint) (*SupplierStats, error) {
	stats := &SupplierStats{}
	base := r.db.Model(&models.Supplier{}).Where("hospital_id = ?", hospitalID)

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.SupplierActive).Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.SupplierOnHold).Count(&stats.OnHold).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.SupplierInactive).Count(&stats.Inactive).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
