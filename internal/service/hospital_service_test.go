package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Yogesh-MG/Meditrackpro/internal/authz"
	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/internal/payment"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users      map[uint]*models.User
	tokens     map[string]*models.RefreshToken
	nextID     uint
	failCreate bool
	deleted    []uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  map[uint]*models.User{},
		tokens: map[string]*models.RefreshToken{},
		nextID: 1,
	}
}

func (f *fakeUserRepo) FindUserByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (f *fakeUserRepo) FindUserByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user")
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	if f.failCreate {
		return errors.New("create user failed")
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) DeleteUser(id uint) error {
	f.deleted = append(f.deleted, id)
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) CreateRefreshToken(token *models.RefreshToken) error {
	f.tokens[token.TokenHash] = token
	return nil
}

func (f *fakeUserRepo) FindRefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	token, ok := f.tokens[hash]
	if !ok || token.Revoked {
		return nil, apperrors.NotFound("refresh token")
	}
	if user, ok := f.users[token.UserID]; ok {
		token.User = *user
	}
	return token, nil
}

func (f *fakeUserRepo) RevokeRefreshTokenByHash(hash string) error {
	if token, ok := f.tokens[hash]; ok {
		token.Revoked = true
	}
	return nil
}

type fakeHospitalRepo struct {
	hospitals    map[uint]*models.Hospital
	subs         map[uint]*models.Subscription
	nextID       uint
	failHospital bool
	activeSet    map[uint]bool
}

func newFakeHospitalRepo() *fakeHospitalRepo {
	return &fakeHospitalRepo{
		hospitals: map[uint]*models.Hospital{},
		subs:      map[uint]*models.Subscription{},
		nextID:    1,
		activeSet: map[uint]bool{},
	}
}

func (f *fakeHospitalRepo) CreateHospital(hospital *models.Hospital) error {
	if f.failHospital {
		return errors.New("create hospital failed")
	}
	hospital.ID = f.nextID
	f.nextID++
	f.hospitals[hospital.ID] = hospital
	return nil
}

func (f *fakeHospitalRepo) GetHospitalByID(id uint) (*models.Hospital, error) {
	if h, ok := f.hospitals[id]; ok {
		return h, nil
	}
	return nil, apperrors.NotFound("hospital")
}

func (f *fakeHospitalRepo) GetAllHospitals() ([]models.Hospital, error) {
	var all []models.Hospital
	for _, h := range f.hospitals {
		all = append(all, *h)
	}
	return all, nil
}

func (f *fakeHospitalRepo) UpdateHospital(hospital *models.Hospital) error {
	f.hospitals[hospital.ID] = hospital
	return nil
}

func (f *fakeHospitalRepo) SetActive(id uint, active bool) error {
	f.activeSet[id] = active
	return nil
}

func (f *fakeHospitalRepo) CreateSubscription(sub *models.Subscription) error {
	sub.ID = uint(len(f.subs) + 1)
	f.subs[sub.ID] = sub
	return nil
}

func (f *fakeHospitalRepo) GetSubscriptionByID(id uint) (*models.Subscription, error) {
	if s, ok := f.subs[id]; ok {
		return s, nil
	}
	return nil, apperrors.NotFound("subscription")
}

func (f *fakeHospitalRepo) UpdateSubscription(sub *models.Subscription) error {
	f.subs[sub.ID] = sub
	return nil
}

type fakeGateway struct {
	lastReq payment.OrderRequest
	fail    bool
	calls   int
}

func (f *fakeGateway) CreateOrder(ctx context.Context, req payment.OrderRequest) (*payment.Order, error) {
	f.calls++
	f.lastReq = req
	if f.fail {
		return nil, apperrors.ErrUpstream
	}
	return &payment.Order{ID: "order_1", Amount: req.Amount, Currency: req.Currency, Receipt: req.Receipt, Status: "created"}, nil
}

func registerRequest() RegisterHospitalRequest {
	var req RegisterHospitalRequest
	req.Hospital.Name = "City General"
	req.Hospital.Email = "admin@citygeneral.example"
	req.Admin.Username = "cityadmin"
	req.Admin.Email = "admin@citygeneral.example"
	req.Admin.Password = "s3cret-password"
	return req
}

func TestRegister_CreatesAdminAndHospital(t *testing.T) {
	userRepo := newFakeUserRepo()
	hospitalRepo := newFakeHospitalRepo()
	svc := NewHospitalService(hospitalRepo, userRepo, &fakeAuditRepo{}, &fakeGateway{})

	hospital, err := svc.Register(registerRequest())
	require.NoError(t, err)

	assert.True(t, hospital.IsActive)
	assert.Equal(t, "basic", hospital.Plan)
	assert.Equal(t, "prepaid", hospital.PaymentMethod)
	require.NotNil(t, hospital.AdminID)

	admin, err := userRepo.FindUserByID(*hospital.AdminID)
	require.NoError(t, err)
	assert.Equal(t, "cityadmin", admin.Username)
	assert.NotEqual(t, "s3cret-password", admin.PasswordHash)
}

func TestRegister_HospitalFailureDeletesAdmin(t *testing.T) {
	userRepo := newFakeUserRepo()
	hospitalRepo := newFakeHospitalRepo()
	hospitalRepo.failHospital = true
	svc := NewHospitalService(hospitalRepo, userRepo, &fakeAuditRepo{}, &fakeGateway{})

	_, err := svc.Register(registerRequest())
	require.Error(t, err)
	assert.Len(t, userRepo.deleted, 1)
	assert.Empty(t, userRepo.users)
}

func TestStartPayment_PricesPlanWithGST(t *testing.T) {
	hospitalRepo := newFakeHospitalRepo()
	hospitalRepo.hospitals[1] = &models.Hospital{ID: 1, PaymentMethod: "prepaid"}
	gateway := &fakeGateway{}
	svc := NewHospitalService(hospitalRepo, newFakeUserRepo(), &fakeAuditRepo{}, gateway)

	result, err := svc.StartPayment(context.Background(), PaymentRequest{
		HospitalID: 1, Plan: "pro", Period: "monthly",
	})
	require.NoError(t, err)

	sub := result.Subscription
	assert.Equal(t, "pending", sub.PaymentStatus)
	assert.InDelta(t, 9999.0, sub.BaseAmount, 0.001)
	assert.InDelta(t, 9999.0*0.18, sub.GSTAmount, 0.001)
	assert.InDelta(t, 9999.0*1.18, sub.TotalAmount, 0.001)

	require.NotNil(t, result.Order)
	assert.Equal(t, int64(sub.TotalAmount*100), gateway.lastReq.Amount)
	assert.Equal(t, "INR", gateway.lastReq.Currency)
}

func TestStartPayment_CODSkipsGateway(t *testing.T) {
	hospitalRepo := newFakeHospitalRepo()
	hospitalRepo.hospitals[1] = &models.Hospital{ID: 1, PaymentMethod: "cod"}
	gateway := &fakeGateway{}
	svc := NewHospitalService(hospitalRepo, newFakeUserRepo(), &fakeAuditRepo{}, gateway)

	result, err := svc.StartPayment(context.Background(), PaymentRequest{
		HospitalID: 1, Plan: "basic", Period: "yearly",
	})
	require.NoError(t, err)

	assert.Nil(t, result.Order)
	assert.Zero(t, gateway.calls)
	assert.InDelta(t, 47990.0, result.Subscription.BaseAmount, 0.001)
}

func TestStartPayment_GatewayFailureSurfaces(t *testing.T) {
	hospitalRepo := newFakeHospitalRepo()
	hospitalRepo.hospitals[1] = &models.Hospital{ID: 1, PaymentMethod: "prepaid"}
	gateway := &fakeGateway{fail: true}
	svc := NewHospitalService(hospitalRepo, newFakeUserRepo(), &fakeAuditRepo{}, gateway)

	_, err := svc.StartPayment(context.Background(), PaymentRequest{
		HospitalID: 1, Plan: "basic", Period: "monthly",
	})
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Equal(t, 1, gateway.calls)
}

func TestVerifyPayment_TogglesHospitalActivation(t *testing.T) {
	hospitalRepo := newFakeHospitalRepo()
	hospitalRepo.hospitals[1] = &models.Hospital{ID: 1}
	hospitalRepo.subs[7] = &models.Subscription{ID: 7, HospitalID: 1, PaymentStatus: "pending"}
	svc := NewHospitalService(hospitalRepo, newFakeUserRepo(), &fakeAuditRepo{}, &fakeGateway{})

	sub, err := svc.VerifyPayment(VerifyPaymentRequest{SubscriptionID: 7, Status: "paid"})
	require.NoError(t, err)
	assert.Equal(t, "paid", sub.PaymentStatus)
	assert.True(t, hospitalRepo.activeSet[1])

	sub, err = svc.VerifyPayment(VerifyPaymentRequest{SubscriptionID: 7, Status: "overdue"})
	require.NoError(t, err)
	assert.Equal(t, "overdue", sub.PaymentStatus)
	assert.False(t, hospitalRepo.activeSet[1])
}

func TestListHospitals_SuperadminOnly(t *testing.T) {
	hospitalRepo := newFakeHospitalRepo()
	svc := NewHospitalService(hospitalRepo, newFakeUserRepo(), &fakeAuditRepo{}, &fakeGateway{})

	_, err := svc.ListHospitals(authz.Actor{UserID: 2})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.ListHospitals(authz.Actor{UserID: 1, IsSuperAdmin: true})
	assert.NoError(t, err)
}

func TestUpdateHospital_AdminOnly(t *testing.T) {
	adminID := uint(3)
	hospitalRepo := newFakeHospitalRepo()
	hospitalRepo.hospitals[1] = &models.Hospital{ID: 1, Name: "Old Name", AdminID: &adminID}
	svc := NewHospitalService(hospitalRepo, newFakeUserRepo(), &fakeAuditRepo{}, &fakeGateway{})

	name := "New Name"

	_, err := svc.UpdateHospital(authz.Actor{UserID: 99}, 1, UpdateHospitalRequest{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	hospital, err := svc.UpdateHospital(authz.Actor{UserID: 3}, 1, UpdateHospitalRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New Name", hospital.Name)
}
