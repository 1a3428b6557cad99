package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/authz"
	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/internal/payment"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/logger"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"go.uber.org/zap"
)

const gstRate = 0.18

// Monthly base prices per plan, in rupees. Yearly is ten months' worth
// doubled less discount, taken from the billing table.
var planPrices = map[string]map[string]float64{
	"monthly": {
		"basic":   4999,
		"pro":     9999,
		"premium": 19999,
	},
	"yearly": {
		"basic":   47990,
		"pro":     95990,
		"premium": 191990,
	},
}

// RegisterHospitalRequest is the public registration payload: the tenant and
// its first admin user in one call.
type RegisterHospitalRequest struct {
	Hospital struct {
		Name          string `json:"name" binding:"required"`
		HospitalType  string `json:"hospital_type"`
		Address       string `json:"address"`
		City          string `json:"city"`
		State         string `json:"state"`
		Zipcode       string `json:"zipcode"`
		PhoneNumber   string `json:"phone_number"`
		Email         string `json:"email" binding:"required,email"`
		Plan          string `json:"plan"`
		PaymentMethod string `json:"payment_method"`
		GSTIN         string `json:"gstin"`
	} `json:"hospital" binding:"required"`
	Admin struct {
		Username  string `json:"username" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Password  string `json:"password" binding:"required,min=8"`
	} `json:"admin" binding:"required"`
}

// UpdateHospitalRequest carries mutable hospital fields
type UpdateHospitalRequest struct {
	Name         *string `json:"name"`
	HospitalType *string `json:"hospital_type"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Zipcode      *string `json:"zipcode"`
	PhoneNumber  *string `json:"phone_number"`
	GSTIN        *string `json:"gstin"`
}

// PaymentRequest starts a billing period for a hospital
type PaymentRequest struct {
	HospitalID uint   `json:"hospital_id" binding:"required"`
	Plan       string `json:"plan" binding:"required,oneof=basic pro premium"`
	Period     string `json:"period" binding:"required,oneof=monthly yearly"`
}

// PaymentResult is returned to the client to complete checkout
type PaymentResult struct {
	Subscription *models.Subscription `json:"subscription"`
	Order        *payment.Order       `json:"order,omitempty"`
}

// VerifyPaymentRequest is the gateway webhook payload
type VerifyPaymentRequest struct {
	SubscriptionID uint   `json:"subscription_id" binding:"required"`
	Status         string `json:"status" binding:"required,oneof=paid overdue"`
	OrderID        string `json:"order_id"`
}

// HospitalService manages tenants, registration and billing.
type HospitalService interface {
	Register(req RegisterHospitalRequest) (*models.Hospital, error)
	GetHospital(actor authz.Actor, id uint) (*models.Hospital, error)
	ListHospitals(actor authz.Actor) ([]models.Hospital, error)
	UpdateHospital(actor authz.Actor, id uint, req UpdateHospitalRequest) (*models.Hospital, error)
	StartPayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error)
	VerifyPayment(req VerifyPaymentRequest) (*models.Subscription, error)
}

type hospitalService struct {
	hospitalRepo repository.HospitalRepository
	userRepo     repository.UserRepository
	auditRepo    repository.AuditRepository
	gateway      payment.Client
}

func NewHospitalService(hospitalRepo repository.HospitalRepository, userRepo repository.UserRepository, auditRepo repository.AuditRepository, gateway payment.Client) HospitalService {
	return &hospitalService{
		hospitalRepo: hospitalRepo,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
		gateway:      gateway,
	}
}

// Register creates the admin user first and then the hospital. If the
// hospital write fails, the already-created user is deleted so a retry with
// the same username succeeds.
func (s *hospitalService) Register(req RegisterHospitalRequest) (*models.Hospital, error) {
	hash, err := utils.HashPassword(req.Admin.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		Username:     req.Admin.Username,
		Email:        req.Admin.Email,
		FirstName:    req.Admin.FirstName,
		LastName:     req.Admin.LastName,
		PasswordHash: hash,
	}
	if err := s.userRepo.CreateUser(admin); err != nil {
		return nil, err
	}

	hospital := &models.Hospital{
		Name:          req.Hospital.Name,
		HospitalType:  req.Hospital.HospitalType,
		Address:       req.Hospital.Address,
		City:          req.Hospital.City,
		State:         req.Hospital.State,
		Zipcode:       req.Hospital.Zipcode,
		PhoneNumber:   req.Hospital.PhoneNumber,
		Email:         req.Hospital.Email,
		Plan:          req.Hospital.Plan,
		PaymentMethod: req.Hospital.PaymentMethod,
		GSTIN:         req.Hospital.GSTIN,
		AdminID:       &admin.ID,
		IsActive:      true,
	}
	if hospital.Plan == "" {
		hospital.Plan = "basic"
	}
	if hospital.PaymentMethod == "" {
		hospital.PaymentMethod = "prepaid"
	}

	if err := s.hospitalRepo.CreateHospital(hospital); err != nil {
		if delErr := s.userRepo.DeleteUser(admin.ID); delErr != nil {
			logger.Get().Error("compensating user delete failed",
				zap.Uint("user_id", admin.ID), zap.Error(delErr))
		}
		return nil, err
	}

	if err := s.auditRepo.CreateAuditLog(&admin.ID, "hospital_registered",
		fmt.Sprintf("hospital %q registered", hospital.Name)); err != nil {
		logger.Get().Warn("audit log write failed", zap.Error(err))
	}
	return hospital, nil
}

// GetHospital returns a hospital to its own admin or a superadmin
func (s *hospitalService) GetHospital(actor authz.Actor, id uint) (*models.Hospital, error) {
	hospital, err := s.hospitalRepo.GetHospitalByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.canManage(actor, hospital); err != nil {
		return nil, err
	}
	return hospital, nil
}

// ListHospitals is the superadmin directory view
func (s *hospitalService) ListHospitals(actor authz.Actor) ([]models.Hospital, error) {
	if !actor.IsSuperAdmin {
		return nil, apperrors.ErrForbidden
	}
	return s.hospitalRepo.GetAllHospitals()
}

// UpdateHospital applies partial changes to a hospital's own fields
func (s *hospitalService) UpdateHospital(actor authz.Actor, id uint, req UpdateHospitalRequest) (*models.Hospital, error) {
	hospital, err := s.hospitalRepo.GetHospitalByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.canManage(actor, hospital); err != nil {
		return nil, err
	}

	applyString(&hospital.Name, req.Name)
	applyString(&hospital.HospitalType, req.HospitalType)
	applyString(&hospital.Address, req.Address)
	applyString(&hospital.City, req.City)
	applyString(&hospital.State, req.State)
	applyString(&hospital.Zipcode, req.Zipcode)
	applyString(&hospital.PhoneNumber, req.PhoneNumber)
	applyString(&hospital.GSTIN, req.GSTIN)

	if err := s.hospitalRepo.UpdateHospital(hospital); err != nil {
		return nil, err
	}

	if err := s.auditRepo.CreateAuditLog(&actor.UserID, "hospital_updated",
		fmt.Sprintf("hospital %d updated", hospital.ID)); err != nil {
		logger.Get().Warn("audit log write failed", zap.Error(err))
	}
	return hospital, nil
}

// StartPayment prices the plan, opens a pending subscription and, for
// prepaid hospitals, creates the upstream order. Gateway failures surface as
// 502 and are never retried here.
func (s *hospitalService) StartPayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	hospital, err := s.hospitalRepo.GetHospitalByID(req.HospitalID)
	if err != nil {
		return nil, err
	}

	base, ok := planPrices[req.Period][req.Plan]
	if !ok {
		return nil, apperrors.NewValidation("plan", "unknown plan or period")
	}
	gst := base * gstRate

	end := time.Now().AddDate(0, 1, 0)
	if req.Period == "yearly" {
		end = time.Now().AddDate(1, 0, 0)
	}

	sub := &models.Subscription{
		HospitalID:    hospital.ID,
		Plan:          req.Plan,
		StartDate:     time.Now(),
		EndDate:       end,
		PaymentStatus: "pending",
		BaseAmount:    base,
		GSTAmount:     gst,
		TotalAmount:   base + gst,
	}
	if err := s.hospitalRepo.CreateSubscription(sub); err != nil {
		return nil, err
	}

	result := &PaymentResult{Subscription: sub}
	if hospital.PaymentMethod == "prepaid" {
		order, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
			Amount:   int64(sub.TotalAmount * 100),
			Currency: "INR",
			Receipt:  fmt.Sprintf("sub_%d", sub.ID),
		})
		if err != nil {
			return nil, err
		}
		result.Order = order
	}

	if err := s.auditRepo.CreateAuditLog(nil, "payment_started",
		fmt.Sprintf("subscription %d opened for hospital %d", sub.ID, hospital.ID)); err != nil {
		logger.Get().Warn("audit log write failed", zap.Error(err))
	}
	return result, nil
}

// VerifyPayment applies the gateway's webhook verdict. A paid subscription
// reactivates the hospital; overdue deactivates it.
func (s *hospitalService) VerifyPayment(req VerifyPaymentRequest) (*models.Subscription, error) {
	sub, err := s.hospitalRepo.GetSubscriptionByID(req.SubscriptionID)
	if err != nil {
		return nil, err
	}

	sub.PaymentStatus = req.Status
	if err := s.hospitalRepo.UpdateSubscription(sub); err != nil {
		return nil, err
	}

	active := req.Status == "paid"
	if err := s.hospitalRepo.SetActive(sub.HospitalID, active); err != nil {
		return nil, err
	}

	if err := s.auditRepo.CreateAuditLog(nil, "payment_verified",
		fmt.Sprintf("subscription %d marked %s", sub.ID, req.Status)); err != nil {
		logger.Get().Warn("audit log write failed", zap.Error(err))
	}
	return sub, nil
}

// canManage allows superadmins and the hospital's own admin user.
func (s *hospitalService) canManage(actor authz.Actor, hospital *models.Hospital) error {
	if actor.IsSuperAdmin {
		return nil
	}
	if hospital.AdminID != nil && *hospital.AdminID == actor.UserID {
		return nil
	}
	return apperrors.ErrForbidden
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
