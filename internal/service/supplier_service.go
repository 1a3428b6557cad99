package service

import (
	"github.com/Yogesh-MG/Meditrackpro/internal/authz"
	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"
)

// CreateSupplierRequest carries a new supplier's fields
type CreateSupplierRequest struct {
	Name             string `json:"name" binding:"required"`
	ContactName      string `json:"contact_name"`
	ContactEmail     string `json:"contact_email"`
	ContactPhone     string `json:"contact_phone"`
	Address          string `json:"address"`
	ReliabilityScore int    `json:"reliability_score"`
	Status           string `json:"status"`
	TaxID            string `json:"tax_id"`
	Website          string `json:"website"`
	SupplierType     string `json:"supplier_type"`
	PaymentTerms     string `json:"payment_terms"`
	Currency         string `json:"currency"`
}

// UpdateSupplierRequest carries mutable supplier fields
type UpdateSupplierRequest struct {
	Name             *string `json:"name"`
	ContactName      *string `json:"contact_name"`
	ContactEmail     *string `json:"contact_email"`
	ContactPhone     *string `json:"contact_phone"`
	Address          *string `json:"address"`
	ReliabilityScore *int    `json:"reliability_score"`
	Status           *string `json:"status"`
	Website          *string `json:"website"`
	SupplierType     *string `json:"supplier_type"`
	PaymentTerms     *string `json:"payment_terms"`
	Currency         *string `json:"currency"`
}

// SupplierService manages the supplier register.
type SupplierService interface {
	ListSuppliers(actor authz.Actor, hospitalID uint, params utils.PageParams) ([]models.Supplier, int64, error)
	GetSupplier(actor authz.Actor, hospitalID, id uint) (*models.Supplier, error)
	CreateSupplier(actor authz.Actor, hospitalID uint, req CreateSupplierRequest) (*models.Supplier, error)
	UpdateSupplier(actor authz.Actor, hospitalID, id uint, req UpdateSupplierRequest) (*models.Supplier, error)
	DeleteSupplier(actor authz.Actor, hospitalID, id uint) error
	GetStats(actor authz.Actor, hospitalID uint) (*repository.SupplierStats, error)
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierService(supplierRepo repository.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func (s *supplierService) ListSuppliers(actor authz.Actor, hospitalID uint, params utils.PageParams) ([]models.Supplier, int64, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceSupplier, hospitalID); err != nil {
		return nil, 0, err
	}
	return s.supplierRepo.ListSuppliers(hospitalID, params)
}

func (s *supplierService) GetSupplier(actor authz.Actor, hospitalID, id uint) (*models.Supplier, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceSupplier, hospitalID); err != nil {
		return nil, err
	}
	return s.supplierRepo.GetSupplierByID(hospitalID, id)
}

func (s *supplierService) CreateSupplier(actor authz.Actor, hospitalID uint, req CreateSupplierRequest) (*models.Supplier, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceSupplier, hospitalID); err != nil {
		return nil, err
	}

	supplier := &models.Supplier{
		HospitalID:       hospitalID,
		Name:             req.Name,
		ContactName:      req.ContactName,
		ContactEmail:     req.ContactEmail,
		ContactPhone:     req.ContactPhone,
		Address:          req.Address,
		ReliabilityScore: req.ReliabilityScore,
		Status:           req.Status,
		TaxID:            req.TaxID,
		Website:          req.Website,
		SupplierType:     req.SupplierType,
		PaymentTerms:     req.PaymentTerms,
		Currency:         req.Currency,
		Approved:         true,
	}
	if supplier.Status == "" {
		supplier.Status = models.SupplierActive
	}
	if supplier.Currency == "" {
		supplier.Currency = "USD"
	}

	if err := s.supplierRepo.CreateSupplier(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) UpdateSupplier(actor authz.Actor, hospitalID, id uint, req UpdateSupplierRequest) (*models.Supplier, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceSupplier, hospitalID); err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.GetSupplierByID(hospitalID, id)
	if err != nil {
		return nil, err
	}

	applyString(&supplier.Name, req.Name)
	applyString(&supplier.ContactName, req.ContactName)
	applyString(&supplier.ContactEmail, req.ContactEmail)
	applyString(&supplier.ContactPhone, req.ContactPhone)
	applyString(&supplier.Address, req.Address)
	applyString(&supplier.Status, req.Status)
	applyString(&supplier.Website, req.Website)
	applyString(&supplier.SupplierType, req.SupplierType)
	applyString(&supplier.PaymentTerms, req.PaymentTerms)
	applyString(&supplier.Currency, req.Currency)
	if req.ReliabilityScore != nil {
		supplier.ReliabilityScore = *req.ReliabilityScore
	}

	if err := s.supplierRepo.UpdateSupplier(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) DeleteSupplier(actor authz.Actor, hospitalID, id uint) error {
	if err := authz.Can(actor, authz.ActionDelete, authz.ResourceSupplier, hospitalID); err != nil {
		return err
	}
	return s.supplierRepo.DeleteSupplier(hospitalID, id)
}

// GetStats returns per-status supplier counts
func (s *supplierService) GetStats(actor authz.Actor, hospitalID uint) (*repository.SupplierStats, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceSupplier, hospitalID); err != nil {
		return nil, err
	}
	return s.supplierRepo.GetStats(hospitalID)
}
