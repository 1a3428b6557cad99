package repository

import (
	"errors"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"gorm.io/gorm"
)

var purchaseOrderFields = map[string]string{
	"id":         "id",
	"po_number":  "po_number",
	"status":     "status",
	"order_date": "order_date",
	"total_cost": "total_cost",
}

// PurchaseOrderRepository persists purchase orders and their line items.
// Derived total_cost is recomputed inside the same transaction as any item
// write; receiving increments inventory atomically with the status change.
type PurchaseOrderRepository interface {
	ListPurchaseOrders(hospitalID uint, params utils.PageParams) ([]models.PurchaseOrder, int64, error)
	ListByInventoryItem(hospitalID, inventoryItemID uint) ([]models.PurchaseOrder, error)
	GetPurchaseOrderByID(hospitalID, id uint) (*models.PurchaseOrder, error)
	LastPONumber(hospitalID uint) (string, error)
	CreatePurchaseOrder(po *models.PurchaseOrder) error
	SavePurchaseOrder(po *models.PurchaseOrder, items []models.PurchaseOrderItem) error
	ReceivePurchaseOrder(po *models.PurchaseOrder) error
	DeletePurchaseOrder(hospitalID, id uint) error
}

type purchaseOrderRepo struct {
	db *gorm.DB
}

func NewPurchaseOrderRepo(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

// ListPurchaseOrders retrieves a page of a hospital's purchase orders
func (r *purchaseOrderRepo) ListPurchaseOrders(hospitalID uint, params utils.PageParams) ([]models.PurchaseOrder, int64, error) {
	query := r.db.Model(&models.PurchaseOrder{}).Where("hospital_id = ?", hospitalID)
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("po_number LIKE ? OR notes LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.PurchaseOrder
	err := query.
		Order(params.OrderClause(purchaseOrderFields, "id DESC")).
		Limit(params.Limit).
		Offset(params.Offset()).
		Preload("Supplier").
		Preload("Items").
		Find(&orders).Error
	return orders, total, err
}

// ListByInventoryItem retrieves the purchase history of an inventory item
func (r *purchaseOrderRepo) ListByInventoryItem(hospitalID, inventoryItemID uint) ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	err := r.db.
		Joins("INNER JOIN purchase_order_items ON purchase_order_items.purchase_order_id = purchase_orders.id").
		Where("purchase_orders.hospital_id = ? AND purchase_order_items.inventory_item_id = ?", hospitalID, inventoryItemID).
		Distinct("purchase_orders.*").
		Preload("Supplier").
		Preload("Items").
		Find(&orders).Error
	return orders, err
}

// GetPurchaseOrderByID retrieves one purchase order of a hospital
func (r *purchaseOrderRepo) GetPurchaseOrderByID(hospitalID, id uint) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	err := r.db.Where("hospital_id = ? AND id = ?", hospitalID, id).
		Preload("Supplier").
		Preload("Items").
		Preload("Items.InventoryItem").
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("purchase order")
		}
		return nil, err
	}
	return &po, nil
}

// LastPONumber returns the most recently created PO number for a hospital,
// empty when the hospital has none.
func (r *purchaseOrderRepo) LastPONumber(hospitalID uint) (string, error) {
	var po models.PurchaseOrder
	err := r.db.Where("hospital_id = ?", hospitalID).
		Order("id DESC").
		Select("po_number").
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return po.PONumber, nil
}

// CreatePurchaseOrder creates a purchase order together with its items and
// computed total in one transaction.
func (r *purchaseOrderRepo) CreatePurchaseOrder(po *models.PurchaseOrder) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(po).Error; err != nil {
			return err
		}
		return recomputeTotal(tx, po)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("po_number")
	}
	return err
}

// SavePurchaseOrder updates a purchase order's fields and replaces changed
// items, recomputing total_cost in the same transaction. Items present in
// the database but absent from items are deleted; items without an id are
// created.
func (r *purchaseOrderRepo) SavePurchaseOrder(po *models.PurchaseOrder, items []models.PurchaseOrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Supplier", "Hospital").Save(po).Error; err != nil {
			return err
		}

		if items != nil {
			var existing []models.PurchaseOrderItem
			if err := tx.Where("purchase_order_id = ?", po.ID).Find(&existing).Error; err != nil {
				return err
			}
			keep := make(map[uint]bool, len(items))
			for i := range items {
				items[i].PurchaseOrderID = po.ID
				if items[i].ID != 0 {
					keep[items[i].ID] = true
				}
				if err := tx.Save(&items[i]).Error; err != nil {
					return err
				}
			}
			for _, old := range existing {
				if !keep[old.ID] {
					if err := tx.Delete(&models.PurchaseOrderItem{}, old.ID).Error; err != nil {
						return err
					}
				}
			}
		}

		return recomputeTotal(tx, po)
	})
}

// ReceivePurchaseOrder marks a purchase order RECEIVED and applies stock:
// each line item's inventory quantity grows by its received quantity and the
// item's supplier is pointed at the PO's supplier. All writes share one
// transaction so a failure leaves the PO un-received.
func (r *purchaseOrderRepo) ReceivePurchaseOrder(po *models.PurchaseOrder) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PurchaseOrder{}).
			Where("id = ?", po.ID).
			Update("status", models.POStatusReceived).Error; err != nil {
			return err
		}

		for _, item := range po.Items {
			update := map[string]interface{}{
				"quantity": gorm.Expr("quantity + ?", item.ReceivedQuantity),
			}
			if po.SupplierID != nil {
				update["supplier_id"] = *po.SupplierID
			}
			if err := tx.Model(&models.InventoryItem{}).
				Where("id = ?", item.InventoryItemID).
				Updates(update).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeletePurchaseOrder removes a purchase order and its items
func (r *purchaseOrderRepo) DeletePurchaseOrder(hospitalID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_order_id = ?", id).
			Delete(&models.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("hospital_id = ? AND id = ?", hospitalID, id).
			Delete(&models.PurchaseOrder{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("purchase order")
		}
		return nil
	})
}

// recomputeTotal refreshes the derived total_cost column from current items.
func recomputeTotal(tx *gorm.DB, po *models.PurchaseOrder) error {
	var total float64
	if err := tx.Model(&models.PurchaseOrderItem{}).
		Where("purchase_order_id = ?", po.ID).
		Select("COALESCE(SUM(quantity * unit_price), 0)").
		Scan(&total).Error; err != nil {
		return err
	}
	po.TotalCost = total
	return tx.Model(&models.PurchaseOrder{}).
		Where("id = ?", po.ID).
		Update("total_cost", total).Error
}
