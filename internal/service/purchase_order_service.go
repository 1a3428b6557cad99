package service

import (
	"fmt"
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/authz"
	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/internal/seqid"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/logger"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"go.uber.org/zap"
)

// poTransitions is the purchase order state machine. A status maps to the
// set of statuses reachable from it; RECEIVED and CANCELLED map to nothing.
var poTransitions = map[string][]string{
	models.POStatusDraft:     {models.POStatusSubmitted, models.POStatusCancelled},
	models.POStatusSubmitted: {models.POStatusReceived, models.POStatusCancelled},
	models.POStatusReceived:  {},
	models.POStatusCancelled: {},
}

// POStatusChoices lists the valid statuses for clients building forms.
var POStatusChoices = []string{
	models.POStatusDraft,
	models.POStatusSubmitted,
	models.POStatusReceived,
	models.POStatusCancelled,
}

// POItemRequest is one line item on a purchase order write
type POItemRequest struct {
	ID               uint    `json:"id"`
	InventoryItemID  uint    `json:"inventory_item_id" binding:"required"`
	Quantity         int     `json:"quantity" binding:"required,min=1"`
	UnitPrice        float64 `json:"unit_price" binding:"required,min=0"`
	ReceivedQuantity int     `json:"received_quantity"`
}

// CreatePORequest carries a new purchase order
type CreatePORequest struct {
	SupplierID       *uint           `json:"supplier_id"`
	ExpectedDelivery *time.Time      `json:"expected_delivery"`
	Notes            string          `json:"notes"`
	Items            []POItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdatePORequest carries mutable purchase order fields. A nil Items slice
// leaves line items untouched; a non-nil slice replaces them.
type UpdatePORequest struct {
	SupplierID       *uint           `json:"supplier_id"`
	Status           *string         `json:"status"`
	ExpectedDelivery *time.Time      `json:"expected_delivery"`
	Notes            *string         `json:"notes"`
	Items            []POItemRequest `json:"items"`
}

// PurchaseOrderService manages the procurement register and its state
// machine.
type PurchaseOrderService interface {
	ListPurchaseOrders(actor authz.Actor, hospitalID uint, params utils.PageParams) ([]models.PurchaseOrder, int64, error)
	GetPurchaseOrder(actor authz.Actor, hospitalID, id uint) (*models.PurchaseOrder, error)
	PurchaseHistory(actor authz.Actor, hospitalID, inventoryItemID uint) ([]models.PurchaseOrder, error)
	CreatePurchaseOrder(actor authz.Actor, hospitalID uint, req CreatePORequest) (*models.PurchaseOrder, error)
	UpdatePurchaseOrder(actor authz.Actor, hospitalID, id uint, req UpdatePORequest) (*models.PurchaseOrder, error)
	DeletePurchaseOrder(actor authz.Actor, hospitalID, id uint) error
}

type purchaseOrderService struct {
	poRepo    repository.PurchaseOrderRepository
	auditRepo repository.AuditRepository
}

func NewPurchaseOrderService(poRepo repository.PurchaseOrderRepository, auditRepo repository.AuditRepository) PurchaseOrderService {
	return &purchaseOrderService{poRepo: poRepo, auditRepo: auditRepo}
}

func (s *purchaseOrderService) ListPurchaseOrders(actor authz.Actor, hospitalID uint, params utils.PageParams) ([]models.PurchaseOrder, int64, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourcePurchaseOrder, hospitalID); err != nil {
		return nil, 0, err
	}
	return s.poRepo.ListPurchaseOrders(hospitalID, params)
}

func (s *purchaseOrderService) GetPurchaseOrder(actor authz.Actor, hospitalID, id uint) (*models.PurchaseOrder, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourcePurchaseOrder, hospitalID); err != nil {
		return nil, err
	}
	return s.poRepo.GetPurchaseOrderByID(hospitalID, id)
}

// PurchaseHistory lists the orders that included a given inventory item
func (s *purchaseOrderService) PurchaseHistory(actor authz.Actor, hospitalID, inventoryItemID uint) ([]models.PurchaseOrder, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourcePurchaseOrder, hospitalID); err != nil {
		return nil, err
	}
	return s.poRepo.ListByInventoryItem(hospitalID, inventoryItemID)
}

// CreatePurchaseOrder allocates the next PO number and opens a DRAFT order.
// The unique (hospital, po_number) index turns a concurrent allocation race
// into a conflict for the loser.
func (s *purchaseOrderService) CreatePurchaseOrder(actor authz.Actor, hospitalID uint, req CreatePORequest) (*models.PurchaseOrder, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourcePurchaseOrder, hospitalID); err != nil {
		return nil, err
	}
	if err := validatePOItems(req.Items); err != nil {
		return nil, err
	}

	last, err := s.poRepo.LastPONumber(hospitalID)
	if err != nil {
		return nil, err
	}

	po := &models.PurchaseOrder{
		HospitalID:       hospitalID,
		PONumber:         seqid.PurchaseOrder.Next(last),
		SupplierID:       req.SupplierID,
		Status:           models.POStatusDraft,
		OrderDate:        time.Now(),
		ExpectedDelivery: req.ExpectedDelivery,
		Notes:            req.Notes,
		Items:            toPOItems(req.Items, 0),
	}

	if err := s.poRepo.CreatePurchaseOrder(po); err != nil {
		return nil, err
	}

	if err := s.auditRepo.CreateAuditLog(&actor.UserID, "purchase_order_created",
		fmt.Sprintf("purchase order %s opened for hospital %d", po.PONumber, hospitalID)); err != nil {
		logger.Get().Warn("audit log write failed", zap.Error(err))
	}
	return po, nil
}

// UpdatePurchaseOrder applies field, item and status changes. Terminal
// orders reject all mutation. A transition to RECEIVED requires every line
// fully received and applies stock in one transaction.
func (s *purchaseOrderService) UpdatePurchaseOrder(actor authz.Actor, hospitalID, id uint, req UpdatePORequest) (*models.PurchaseOrder, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourcePurchaseOrder, hospitalID); err != nil {
		return nil, err
	}

	po, err := s.poRepo.GetPurchaseOrderByID(hospitalID, id)
	if err != nil {
		return nil, err
	}
	if po.IsTerminal() {
		return nil, apperrors.NewValidation("status",
			fmt.Sprintf("a %s purchase order cannot be modified", po.Status))
	}

	if req.Items != nil {
		if err := validatePOItems(req.Items); err != nil {
			return nil, err
		}
	}

	receiving := false
	if req.Status != nil && *req.Status != po.Status {
		if !transitionAllowed(po.Status, *req.Status) {
			return nil, apperrors.NewValidation("status",
				fmt.Sprintf("cannot move a %s purchase order to %s", po.Status, *req.Status))
		}
		receiving = *req.Status == models.POStatusReceived
	}

	// The receive gate runs against the item set this write would leave
	// behind, before anything is persisted. A rejected transition must not
	// mutate the order.
	if receiving {
		if err := requireFullReceipt(req.Items, po.Items); err != nil {
			return nil, err
		}
	}

	if req.SupplierID != nil {
		po.SupplierID = req.SupplierID
	}
	if req.ExpectedDelivery != nil {
		po.ExpectedDelivery = req.ExpectedDelivery
	}
	applyString(&po.Notes, req.Notes)
	if req.Status != nil && !receiving {
		po.Status = *req.Status
	}

	var items []models.PurchaseOrderItem
	if req.Items != nil {
		items = toPOItems(req.Items, po.ID)
	}
	if err := s.poRepo.SavePurchaseOrder(po, items); err != nil {
		return nil, err
	}

	// Reload so receiving applies the items as just written.
	po, err = s.poRepo.GetPurchaseOrderByID(hospitalID, id)
	if err != nil {
		return nil, err
	}

	if receiving {
		if err := s.poRepo.ReceivePurchaseOrder(po); err != nil {
			return nil, err
		}
		po.Status = models.POStatusReceived

		if err := s.auditRepo.CreateAuditLog(&actor.UserID, "purchase_order_received",
			fmt.Sprintf("purchase order %s received, stock applied", po.PONumber)); err != nil {
			logger.Get().Warn("audit log write failed", zap.Error(err))
		}
	}
	return po, nil
}

// DeletePurchaseOrder removes a non-terminal order
func (s *purchaseOrderService) DeletePurchaseOrder(actor authz.Actor, hospitalID, id uint) error {
	if err := authz.Can(actor, authz.ActionDelete, authz.ResourcePurchaseOrder, hospitalID); err != nil {
		return err
	}

	po, err := s.poRepo.GetPurchaseOrderByID(hospitalID, id)
	if err != nil {
		return err
	}
	if po.IsTerminal() {
		return apperrors.NewValidation("status",
			fmt.Sprintf("a %s purchase order cannot be deleted", po.Status))
	}
	return s.poRepo.DeletePurchaseOrder(hospitalID, id)
}

func transitionAllowed(from, to string) bool {
	for _, next := range poTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// requireFullReceipt checks every line item is fully received. It reads the
// request's items when the write replaces them, the stored items otherwise.
func requireFullReceipt(reqItems []POItemRequest, current []models.PurchaseOrderItem) error {
	if reqItems != nil {
		for _, item := range reqItems {
			if item.ReceivedQuantity != item.Quantity {
				return apperrors.NewValidation("items",
					"all items must be fully received before the order can be marked RECEIVED")
			}
		}
		return nil
	}
	for _, item := range current {
		if item.ReceivedQuantity != item.Quantity {
			return apperrors.NewValidation("items",
				"all items must be fully received before the order can be marked RECEIVED")
		}
	}
	return nil
}

func validatePOItems(items []POItemRequest) error {
	for i, item := range items {
		if item.ReceivedQuantity < 0 {
			return apperrors.NewValidation(
				fmt.Sprintf("items[%d].received_quantity", i),
				"received quantity cannot be negative")
		}
		if item.ReceivedQuantity > item.Quantity {
			return apperrors.NewValidation(
				fmt.Sprintf("items[%d].received_quantity", i),
				"received quantity cannot exceed ordered quantity")
		}
	}
	return nil
}

func toPOItems(reqs []POItemRequest, poID uint) []models.PurchaseOrderItem {
	items := make([]models.PurchaseOrderItem, len(reqs))
	for i, r := range reqs {
		items[i] = models.PurchaseOrderItem{
			ID:               r.ID,
			PurchaseOrderID:  poID,
			InventoryItemID:  r.InventoryItemID,
			Quantity:         r.Quantity,
			UnitPrice:        r.UnitPrice,
			ReceivedQuantity: r.ReceivedQuantity,
		}
	}
	return items
}
