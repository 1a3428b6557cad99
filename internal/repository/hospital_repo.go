package repository

import (
	"errors"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"

	"gorm.io/gorm"
)

// HospitalRepository persists tenants and their subscriptions.
type HospitalRepository interface {
	CreateHospital(hospital *models.Hospital) error
	GetHospitalByID(id uint) (*models.Hospital, error)
	GetAllHospitals() ([]models.Hospital, error)
	UpdateHospital(hospital *models.Hospital) error
	SetActive(id uint, active bool) error
	CreateSubscription(sub *models.Subscription) error
	GetSubscriptionByID(id uint) (*models.Subscription, error)
	UpdateSubscription(sub *models.Subscription) error
}

type hospitalRepo struct {
	db *gorm.DB
}

func NewHospitalRepo(db *gorm.DB) HospitalRepository {
	return &hospitalRepo{db: db}
}

// CreateHospital creates a new hospital
func (r *hospitalRepo) CreateHospital(hospital *models.Hospital) error {
	err := r.db.Create(hospital).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("hospital email")
	}
	return err
}

// GetHospitalByID retrieves a hospital by ID
func (r *hospitalRepo) GetHospitalByID(id uint) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.First(&hospital, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("hospital")
		}
		return nil, err
	}
	return &hospital, nil
}

// GetAllHospitals retrieves all hospitals (superadmin view)
func (r *hospitalRepo) GetAllHospitals() ([]models.Hospital, error) {
	var hospitals []models.Hospital
	err := r.db.Order("name ASC").Find(&hospitals).Error
	return hospitals, err
}

// UpdateHospital updates an existing hospital
func (r *hospitalRepo) UpdateHospital(hospital *models.Hospital) error {
	return r.db.Save(hospital).Error
}

// SetActive toggles the hospital's active (paid-up) flag
func (r *hospitalRepo) SetActive(id uint, active bool) error {
	return r.db.Model(&models.Hospital{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

// CreateSubscription creates a billing period row
func (r *hospitalRepo) CreateSubscription(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

// GetSubscriptionByID retrieves a subscription by ID
func (r *hospitalRepo) GetSubscriptionByID(id uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.First(&sub, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("subscription")
		}
		return nil, err
	}
	return &sub, nil
}

// UpdateSubscription saves subscription changes
func (r *hospitalRepo) UpdateSubscription(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}
