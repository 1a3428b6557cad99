package repository

import (
	"errors"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"

	"gorm.io/gorm"
)

// EmployeeRepository persists hospital staff. Every query is scoped by
// hospital id first.
type EmployeeRepository interface {
	ListEmployees(hospitalID uint) ([]models.Employee, error)
	GetEmployeeByID(hospitalID, id uint) (*models.Employee, error)
	GetEmployeeByUserID(userID uint) (*models.Employee, error)
	CreateEmployee(employee *models.Employee) error
	UpdateEmployee(employee *models.Employee) error
	DeleteEmployee(hospitalID, id uint) error
}

type employeeRepo struct {
	db *gorm.DB
}

func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

// ListEmployees retrieves all employees of a hospital
func (r *employeeRepo) ListEmployees(hospitalID uint) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Where("hospital_id = ?", hospitalID).
		Preload("User").
		Order("id ASC").
		Find(&employees).Error
	return employees, err
}

// GetEmployeeByID retrieves one employee of a hospital
func (r *employeeRepo) GetEmployeeByID(hospitalID, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.Where("hospital_id = ? AND id = ?", hospitalID, id).
		Preload("User").
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("employee")
		}
		return nil, err
	}
	return &employee, nil
}

// GetEmployeeByUserID resolves the employee profile behind a login identity
func (r *employeeRepo) GetEmployeeByUserID(userID uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.Where("user_id = ?", userID).
		Preload("User").
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("employee profile")
		}
		return nil, err
	}
	return &employee, nil
}

// CreateEmployee creates a new employee
func (r *employeeRepo) CreateEmployee(employee *models.Employee) error {
	err := r.db.Create(employee).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("employee_id")
	}
	return err
}

// UpdateEmployee saves employee changes
func (r *employeeRepo) UpdateEmployee(employee *models.Employee) error {
	err := r.db.Save(employee).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("employee_id")
	}
	return err
}

// DeleteEmployee removes an employee of a hospital
func (r *employeeRepo) DeleteEmployee(hospitalID, id uint) error {
	res := r.db.Where("hospital_id = ? AND id = ?", hospitalID, id).
		Delete(&models.Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("employee")
	}
	return nil
}
