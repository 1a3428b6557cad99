package service

import (
	"fmt"
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/authz"
	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/pkg/logger"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"go.uber.org/zap"
)

// CreateEmployeeRequest carries both halves of a new staff member: the login
// identity and the employee profile.
type CreateEmployeeRequest struct {
	Username    string     `json:"username" binding:"required"`
	Email       string     `json:"email" binding:"required,email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Password    string     `json:"password" binding:"required,min=8"`
	Role        string     `json:"role" binding:"required,oneof=doctor nurse staff engineer receptionist other"`
	Department  string     `json:"department"`
	PhoneNumber string     `json:"phone_number"`
	AccessLevel string     `json:"access_level"`
	EmployeeID  string     `json:"employee_id" binding:"required"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

// UpdateEmployeeRequest carries mutable employee profile fields
type UpdateEmployeeRequest struct {
	Role        *string    `json:"role"`
	Department  *string    `json:"department"`
	PhoneNumber *string    `json:"phone_number"`
	AccessLevel *string    `json:"access_level"`
	Status      *string    `json:"status"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

// EmployeeService manages hospital staff.
type EmployeeService interface {
	ListEmployees(actor authz.Actor, hospitalID uint) ([]models.Employee, error)
	GetEmployee(actor authz.Actor, hospitalID, id uint) (*models.Employee, error)
	CreateEmployee(actor authz.Actor, hospitalID uint, req CreateEmployeeRequest) (*models.Employee, error)
	UpdateEmployee(actor authz.Actor, hospitalID, id uint, req UpdateEmployeeRequest) (*models.Employee, error)
	DeleteEmployee(actor authz.Actor, hospitalID, id uint) error
}

type employeeService struct {
	employeeRepo repository.EmployeeRepository
	userRepo     repository.UserRepository
	auditRepo    repository.AuditRepository
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository, userRepo repository.UserRepository, auditRepo repository.AuditRepository) EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
	}
}

// ListEmployees returns all staff of a hospital
func (s *employeeService) ListEmployees(actor authz.Actor, hospitalID uint) ([]models.Employee, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceEmployee, hospitalID); err != nil {
		return nil, err
	}
	return s.employeeRepo.ListEmployees(hospitalID)
}

// GetEmployee returns one staff member of a hospital
func (s *employeeService) GetEmployee(actor authz.Actor, hospitalID, id uint) (*models.Employee, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceEmployee, hospitalID); err != nil {
		return nil, err
	}
	return s.employeeRepo.GetEmployeeByID(hospitalID, id)
}

// CreateEmployee creates the User first, then the Employee. A failed
// employee write deletes the just-created user so the username is not
// orphaned.
func (s *employeeService) CreateEmployee(actor authz.Actor, hospitalID uint, req CreateEmployeeRequest) (*models.Employee, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceEmployee, hospitalID); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	employee := &models.Employee{
		UserID:      user.ID,
		HospitalID:  &hospitalID,
		Role:        req.Role,
		Department:  req.Department,
		PhoneNumber: req.PhoneNumber,
		AccessLevel: req.AccessLevel,
		Status:      "active",
		DateOfBirth: req.DateOfBirth,
		EmployeeID:  req.EmployeeID,
	}
	if employee.AccessLevel == "" {
		employee.AccessLevel = "standard"
	}

	if err := s.employeeRepo.CreateEmployee(employee); err != nil {
		if delErr := s.userRepo.DeleteUser(user.ID); delErr != nil {
			logger.Get().Error("compensating user delete failed",
				zap.Uint("user_id", user.ID), zap.Error(delErr))
		}
		return nil, err
	}
	employee.User = *user

	if err := s.auditRepo.CreateAuditLog(&actor.UserID, "employee_created",
		fmt.Sprintf("employee %s created in hospital %d", employee.EmployeeID, hospitalID)); err != nil {
		logger.Get().Warn("audit log write failed", zap.Error(err))
	}
	return employee, nil
}

// UpdateEmployee applies partial profile changes
func (s *employeeService) UpdateEmployee(actor authz.Actor, hospitalID, id uint, req UpdateEmployeeRequest) (*models.Employee, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceEmployee, hospitalID); err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.GetEmployeeByID(hospitalID, id)
	if err != nil {
		return nil, err
	}

	applyString(&employee.Role, req.Role)
	applyString(&employee.Department, req.Department)
	applyString(&employee.PhoneNumber, req.PhoneNumber)
	applyString(&employee.AccessLevel, req.AccessLevel)
	applyString(&employee.Status, req.Status)
	if req.DateOfBirth != nil {
		employee.DateOfBirth = req.DateOfBirth
	}

	if err := s.employeeRepo.UpdateEmployee(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// DeleteEmployee removes a staff member's profile. The login identity is
// kept for audit traceability.
func (s *employeeService) DeleteEmployee(actor authz.Actor, hospitalID, id uint) error {
	if err := authz.Can(actor, authz.ActionDelete, authz.ResourceEmployee, hospitalID); err != nil {
		return err
	}

	if err := s.employeeRepo.DeleteEmployee(hospitalID, id); err != nil {
		return err
	}

	if err := s.auditRepo.CreateAuditLog(&actor.UserID, "employee_deleted",
		fmt.Sprintf("employee %d deleted from hospital %d", id, hospitalID)); err != nil {
		logger.Get().Warn("audit log write failed", zap.Error(err))
	}
	return nil
}
