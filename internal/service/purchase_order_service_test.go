package service

import (
	"testing"

	"github.com/Yogesh-MG/Meditrackpro/internal/authz"
	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuditRepo records audit log writes without a database.
type fakeAuditRepo struct {
	actions []string
}

func (f *fakeAuditRepo) CreateAuditLog(userID *uint, action string, details string) error {
	f.actions = append(f.actions, action)
	return nil
}

// fakePORepo serves a single in-memory purchase order.
type fakePORepo struct {
	po        *models.PurchaseOrder
	lastPO    string
	created   *models.PurchaseOrder
	saved     bool
	received  bool
	deletedID uint
}

func (f *fakePORepo) ListPurchaseOrders(hospitalID uint, params utils.PageParams) ([]models.PurchaseOrder, int64, error) {
	if f.po == nil {
		return nil, 0, nil
	}
	return []models.PurchaseOrder{*f.po}, 1, nil
}

func (f *fakePORepo) ListByInventoryItem(hospitalID, inventoryItemID uint) ([]models.PurchaseOrder, error) {
	return nil, nil
}

func (f *fakePORepo) GetPurchaseOrderByID(hospitalID, id uint) (*models.PurchaseOrder, error) {
	if f.po == nil || f.po.ID != id || f.po.HospitalID != hospitalID {
		return nil, apperrors.NotFound("purchase order")
	}
	copied := *f.po
	return &copied, nil
}

func (f *fakePORepo) LastPONumber(hospitalID uint) (string, error) {
	return f.lastPO, nil
}

func (f *fakePORepo) CreatePurchaseOrder(po *models.PurchaseOrder) error {
	po.ID = 1
	f.created = po
	f.po = po
	return nil
}

func (f *fakePORepo) SavePurchaseOrder(po *models.PurchaseOrder, items []models.PurchaseOrderItem) error {
	f.saved = true
	f.po = po
	if items != nil {
		f.po.Items = items
	}
	return nil
}

func (f *fakePORepo) ReceivePurchaseOrder(po *models.PurchaseOrder) error {
	f.received = true
	f.po.Status = models.POStatusReceived
	return nil
}

func (f *fakePORepo) DeletePurchaseOrder(hospitalID, id uint) error {
	f.deletedID = id
	f.po = nil
	return nil
}

func engineerActor(hospitalID uint) authz.Actor {
	return authz.Actor{UserID: 1, EmployeeID: 10, Role: models.RoleEngineer, HospitalID: &hospitalID}
}

func TestCreatePurchaseOrder_AllocatesNextNumber(t *testing.T) {
	poRepo := &fakePORepo{lastPO: "PO-1041"}
	audit := &fakeAuditRepo{}
	svc := NewPurchaseOrderService(poRepo, audit)

	po, err := svc.CreatePurchaseOrder(engineerActor(5), 5, CreatePORequest{
		Items: []POItemRequest{{InventoryItemID: 3, Quantity: 10, UnitPrice: 2.5}},
	})
	require.NoError(t, err)

	assert.Equal(t, "PO-1042", po.PONumber)
	assert.Equal(t, models.POStatusDraft, po.Status)
	assert.Contains(t, audit.actions, "purchase_order_created")
}

func TestCreatePurchaseOrder_FirstOrderStartsSequence(t *testing.T) {
	poRepo := &fakePORepo{lastPO: ""}
	svc := NewPurchaseOrderService(poRepo, &fakeAuditRepo{})

	po, err := svc.CreatePurchaseOrder(engineerActor(5), 5, CreatePORequest{
		Items: []POItemRequest{{InventoryItemID: 3, Quantity: 1, UnitPrice: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "PO-1001", po.PONumber)
}

func TestCreatePurchaseOrder_RejectsOverReceivedItems(t *testing.T) {
	svc := NewPurchaseOrderService(&fakePORepo{}, &fakeAuditRepo{})

	_, err := svc.CreatePurchaseOrder(engineerActor(5), 5, CreatePORequest{
		Items: []POItemRequest{{InventoryItemID: 3, Quantity: 2, UnitPrice: 1, ReceivedQuantity: 5}},
	})
	_, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
}

func TestCreatePurchaseOrder_RequiresEngineer(t *testing.T) {
	hospitalID := uint(5)
	nurse := authz.Actor{UserID: 2, EmployeeID: 11, Role: models.RoleNurse, HospitalID: &hospitalID}
	svc := NewPurchaseOrderService(&fakePORepo{}, &fakeAuditRepo{})

	_, err := svc.CreatePurchaseOrder(nurse, 5, CreatePORequest{
		Items: []POItemRequest{{InventoryItemID: 3, Quantity: 1, UnitPrice: 1}},
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUpdatePurchaseOrder_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{"draft to submitted", models.POStatusDraft, models.POStatusSubmitted, false},
		{"draft to cancelled", models.POStatusDraft, models.POStatusCancelled, false},
		{"draft cannot skip to received", models.POStatusDraft, models.POStatusReceived, true},
		{"submitted to cancelled", models.POStatusSubmitted, models.POStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poRepo := &fakePORepo{po: &models.PurchaseOrder{
				ID: 1, HospitalID: 5, PONumber: "PO-1001", Status: tt.from,
			}}
			svc := NewPurchaseOrderService(poRepo, &fakeAuditRepo{})

			status := tt.to
			po, err := svc.UpdatePurchaseOrder(engineerActor(5), 5, 1, UpdatePORequest{Status: &status})
			if tt.wantErr {
				_, ok := apperrors.AsValidation(err)
				assert.True(t, ok, "expected a validation error, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, po.Status)
		})
	}
}

func TestUpdatePurchaseOrder_TerminalOrdersAreImmutable(t *testing.T) {
	for _, status := range []string{models.POStatusReceived, models.POStatusCancelled} {
		poRepo := &fakePORepo{po: &models.PurchaseOrder{
			ID: 1, HospitalID: 5, PONumber: "PO-1001", Status: status,
		}}
		svc := NewPurchaseOrderService(poRepo, &fakeAuditRepo{})

		notes := "late edit"
		_, err := svc.UpdatePurchaseOrder(engineerActor(5), 5, 1, UpdatePORequest{Notes: &notes})
		_, ok := apperrors.AsValidation(err)
		assert.True(t, ok, "a %s order should reject mutation", status)
	}
}

func TestUpdatePurchaseOrder_ReceiveRequiresFullReceipt(t *testing.T) {
	poRepo := &fakePORepo{po: &models.PurchaseOrder{
		ID: 1, HospitalID: 5, PONumber: "PO-1001", Status: models.POStatusSubmitted,
		Items: []models.PurchaseOrderItem{
			{ID: 1, PurchaseOrderID: 1, InventoryItemID: 3, Quantity: 10, ReceivedQuantity: 4},
		},
	}}
	svc := NewPurchaseOrderService(poRepo, &fakeAuditRepo{})

	status := models.POStatusReceived
	_, err := svc.UpdatePurchaseOrder(engineerActor(5), 5, 1, UpdatePORequest{Status: &status})
	_, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
	assert.False(t, poRepo.received)
	assert.False(t, poRepo.saved, "a rejected receive must not write")
}

func TestUpdatePurchaseOrder_RejectedReceivePersistsNothing(t *testing.T) {
	poRepo := &fakePORepo{po: &models.PurchaseOrder{
		ID: 1, HospitalID: 5, PONumber: "PO-1001", Status: models.POStatusSubmitted,
		Items: []models.PurchaseOrderItem{
			{ID: 1, PurchaseOrderID: 1, InventoryItemID: 3, Quantity: 10, ReceivedQuantity: 10},
		},
	}}
	svc := NewPurchaseOrderService(poRepo, &fakeAuditRepo{})

	// The request rewrites the items to an under-received set while asking
	// for RECEIVED; the gate must fire on the incoming items, before any
	// field or item change is persisted.
	status := models.POStatusReceived
	_, err := svc.UpdatePurchaseOrder(engineerActor(5), 5, 1, UpdatePORequest{
		Status: &status,
		Items:  []POItemRequest{{ID: 1, InventoryItemID: 3, Quantity: 10, UnitPrice: 2, ReceivedQuantity: 4}},
	})
	_, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
	assert.False(t, poRepo.saved)
	assert.False(t, poRepo.received)
	assert.Equal(t, models.POStatusSubmitted, poRepo.po.Status)
	assert.Equal(t, 10, poRepo.po.Items[0].ReceivedQuantity)
}

func TestUpdatePurchaseOrder_ReceiveAppliesStock(t *testing.T) {
	poRepo := &fakePORepo{po: &models.PurchaseOrder{
		ID: 1, HospitalID: 5, PONumber: "PO-1001", Status: models.POStatusSubmitted,
		Items: []models.PurchaseOrderItem{
			{ID: 1, PurchaseOrderID: 1, InventoryItemID: 3, Quantity: 10, ReceivedQuantity: 10},
		},
	}}
	audit := &fakeAuditRepo{}
	svc := NewPurchaseOrderService(poRepo, audit)

	status := models.POStatusReceived
	po, err := svc.UpdatePurchaseOrder(engineerActor(5), 5, 1, UpdatePORequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, models.POStatusReceived, po.Status)
	assert.True(t, poRepo.received)
	assert.Contains(t, audit.actions, "purchase_order_received")
}

func TestDeletePurchaseOrder_TerminalRejected(t *testing.T) {
	poRepo := &fakePORepo{po: &models.PurchaseOrder{
		ID: 1, HospitalID: 5, Status: models.POStatusReceived,
	}}
	svc := NewPurchaseOrderService(poRepo, &fakeAuditRepo{})

	err := svc.DeletePurchaseOrder(engineerActor(5), 5, 1)
	_, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
	assert.Zero(t, poRepo.deletedID)
}

func TestDeletePurchaseOrder_Draft(t *testing.T) {
	poRepo := &fakePORepo{po: &models.PurchaseOrder{
		ID: 1, HospitalID: 5, Status: models.POStatusDraft,
	}}
	svc := NewPurchaseOrderService(poRepo, &fakeAuditRepo{})

	require.NoError(t, svc.DeletePurchaseOrder(engineerActor(5), 5, 1))
	assert.Equal(t, uint(1), poRepo.deletedID)
}
