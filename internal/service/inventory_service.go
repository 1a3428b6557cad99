package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/authz"
	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/logger"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"go.uber.org/zap"
)

// inventoryCSVHeader is the fixed export header row.
var inventoryCSVHeader = []string{
	"SKU", "Name", "Category", "Quantity", "Unit", "Reorder Level",
	"Stock Level", "Expiry Date", "Location", "Cost", "Supplier",
}

// CreateItemRequest carries a new inventory item's fields
type CreateItemRequest struct {
	Name         string     `json:"name" binding:"required"`
	CategoryID   *uint      `json:"category_id"`
	Quantity     int        `json:"quantity"`
	UnitID       *uint      `json:"unit_id"`
	ReorderLevel int        `json:"reorder_level"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	Location     string     `json:"location"`
	SKU          string     `json:"sku" binding:"required"`
	Barcode      string     `json:"barcode"`
	Cost         float64    `json:"cost"`
	Tax          float64    `json:"tax"`
	SupplierID   *uint      `json:"supplier_id"`
	Batch        string     `json:"batch"`
	Description  string     `json:"description"`
}

// UpdateItemRequest carries mutable item fields; SKU is immutable
type UpdateItemRequest struct {
	Name         *string    `json:"name"`
	CategoryID   *uint      `json:"category_id"`
	Quantity     *int       `json:"quantity"`
	UnitID       *uint      `json:"unit_id"`
	ReorderLevel *int       `json:"reorder_level"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	Location     *string    `json:"location"`
	Barcode      *string    `json:"barcode"`
	Cost         *float64   `json:"cost"`
	Tax          *float64   `json:"tax"`
	SupplierID   *uint      `json:"supplier_id"`
	Batch        *string    `json:"batch"`
	Description  *string    `json:"description"`
}

// BulkActionRequest applies one action to a set of items
type BulkActionRequest struct {
	Action   string `json:"action" binding:"required,oneof=delete update_quantity"`
	ItemIDs  []uint `json:"item_ids" binding:"required,min=1"`
	Quantity *int   `json:"quantity"`
}

// BulkActionResult reports how many rows the action touched
type BulkActionResult struct {
	Affected int64 `json:"affected"`
}

// InventoryService manages the stock register, categories and units.
type InventoryService interface {
	ListItems(actor authz.Actor, hospitalID uint, params utils.PageParams, filter repository.InventoryFilter) ([]models.InventoryItem, int64, error)
	GetItem(actor authz.Actor, hospitalID, id uint) (*models.InventoryItem, error)
	CheckSKU(actor authz.Actor, hospitalID uint, sku string) (bool, error)
	CreateItem(actor authz.Actor, hospitalID uint, req CreateItemRequest) (*models.InventoryItem, error)
	UpdateItem(actor authz.Actor, hospitalID, id uint, req UpdateItemRequest) (*models.InventoryItem, error)
	DeleteItem(actor authz.Actor, hospitalID, id uint) error
	BulkAction(actor authz.Actor, hospitalID uint, req BulkActionRequest) (*BulkActionResult, error)
	ExportCSV(actor authz.Actor, hospitalID uint) ([][]string, error)

	ListCategories(actor authz.Actor, hospitalID uint) ([]models.Category, error)
	CreateCategory(actor authz.Actor, hospitalID uint, name string) (*models.Category, error)
	ListUnits(actor authz.Actor, hospitalID uint) ([]models.Unit, error)
	CreateUnit(actor authz.Actor, hospitalID uint, name string) (*models.Unit, error)
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	auditRepo     repository.AuditRepository
}

func NewInventoryService(inventoryRepo repository.InventoryRepository, auditRepo repository.AuditRepository) InventoryService {
	return &inventoryService{inventoryRepo: inventoryRepo, auditRepo: auditRepo}
}

// ListItems returns a filtered page with derived stock levels populated
func (s *inventoryService) ListItems(actor authz.Actor, hospitalID uint, params utils.PageParams, filter repository.InventoryFilter) ([]models.InventoryItem, int64, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceInventory, hospitalID); err != nil {
		return nil, 0, err
	}

	items, total, err := s.inventoryRepo.ListItems(hospitalID, params, filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].StockLevel = items[i].ComputeStockLevel()
	}
	return items, total, nil
}

func (s *inventoryService) GetItem(actor authz.Actor, hospitalID, id uint) (*models.InventoryItem, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceInventory, hospitalID); err != nil {
		return nil, err
	}

	item, err := s.inventoryRepo.GetItemByID(hospitalID, id)
	if err != nil {
		return nil, err
	}
	item.StockLevel = item.ComputeStockLevel()
	return item, nil
}

// CheckSKU probes whether a SKU is taken within the hospital
func (s *inventoryService) CheckSKU(actor authz.Actor, hospitalID uint, sku string) (bool, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceInventory, hospitalID); err != nil {
		return false, err
	}
	if sku == "" {
		return false, apperrors.NewValidation("sku", "sku is required")
	}
	return s.inventoryRepo.SKUExists(hospitalID, sku)
}

func (s *inventoryService) CreateItem(actor authz.Actor, hospitalID uint, req CreateItemRequest) (*models.InventoryItem, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceInventory, hospitalID); err != nil {
		return nil, err
	}

	item := &models.InventoryItem{
		HospitalID:   hospitalID,
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		Quantity:     req.Quantity,
		UnitID:       req.UnitID,
		ReorderLevel: req.ReorderLevel,
		ExpiryDate:   req.ExpiryDate,
		Location:     req.Location,
		SKU:          req.SKU,
		Barcode:      req.Barcode,
		Cost:         req.Cost,
		Tax:          req.Tax,
		SupplierID:   req.SupplierID,
		Batch:        req.Batch,
		Description:  req.Description,
	}

	if err := s.inventoryRepo.CreateItem(item); err != nil {
		return nil, err
	}
	item.StockLevel = item.ComputeStockLevel()

	if err := s.auditRepo.CreateAuditLog(&actor.UserID, "inventory_item_created",
		fmt.Sprintf("item %s created in hospital %d", item.SKU, hospitalID)); err != nil {
		logger.Get().Warn("audit log write failed", zap.Error(err))
	}
	return item, nil
}

func (s *inventoryService) UpdateItem(actor authz.Actor, hospitalID, id uint, req UpdateItemRequest) (*models.InventoryItem, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceInventory, hospitalID); err != nil {
		return nil, err
	}

	item, err := s.inventoryRepo.GetItemByID(hospitalID, id)
	if err != nil {
		return nil, err
	}

	applyString(&item.Name, req.Name)
	applyString(&item.Location, req.Location)
	applyString(&item.Barcode, req.Barcode)
	applyString(&item.Batch, req.Batch)
	applyString(&item.Description, req.Description)
	if req.CategoryID != nil {
		item.CategoryID = req.CategoryID
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.UnitID != nil {
		item.UnitID = req.UnitID
	}
	if req.ReorderLevel != nil {
		item.ReorderLevel = *req.ReorderLevel
	}
	if req.ExpiryDate != nil {
		item.ExpiryDate = req.ExpiryDate
	}
	if req.Cost != nil {
		item.Cost = *req.Cost
	}
	if req.Tax != nil {
		item.Tax = *req.Tax
	}
	if req.SupplierID != nil {
		item.SupplierID = req.SupplierID
	}

	if err := s.inventoryRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	item.StockLevel = item.ComputeStockLevel()
	return item, nil
}

func (s *inventoryService) DeleteItem(actor authz.Actor, hospitalID, id uint) error {
	if err := authz.Can(actor, authz.ActionDelete, authz.ResourceInventory, hospitalID); err != nil {
		return err
	}
	return s.inventoryRepo.DeleteItem(hospitalID, id)
}

// BulkAction deletes or re-quantifies a set of items in one call
func (s *inventoryService) BulkAction(actor authz.Actor, hospitalID uint, req BulkActionRequest) (*BulkActionResult, error) {
	action := authz.ActionWrite
	if req.Action == "delete" {
		action = authz.ActionDelete
	}
	if err := authz.Can(actor, action, authz.ResourceInventory, hospitalID); err != nil {
		return nil, err
	}

	switch req.Action {
	case "delete":
		affected, err := s.inventoryRepo.DeleteItems(hospitalID, req.ItemIDs)
		if err != nil {
			return nil, err
		}
		if err := s.auditRepo.CreateAuditLog(&actor.UserID, "inventory_bulk_delete",
			fmt.Sprintf("%d items deleted from hospital %d", affected, hospitalID)); err != nil {
			logger.Get().Warn("audit log write failed", zap.Error(err))
		}
		return &BulkActionResult{Affected: affected}, nil

	case "update_quantity":
		if req.Quantity == nil || *req.Quantity < 0 {
			return nil, apperrors.NewValidation("quantity", "a non-negative quantity is required")
		}
		var affected int64
		for _, id := range req.ItemIDs {
			if err := s.inventoryRepo.SetItemQuantity(hospitalID, id, *req.Quantity); err != nil {
				return nil, err
			}
			affected++
		}
		return &BulkActionResult{Affected: affected}, nil
	}

	return nil, apperrors.NewValidation("action", "unknown bulk action")
}

// ExportCSV renders the full register as rows with the fixed header
func (s *inventoryService) ExportCSV(actor authz.Actor, hospitalID uint) ([][]string, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceInventory, hospitalID); err != nil {
		return nil, err
	}

	items, err := s.inventoryRepo.AllItems(hospitalID)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(items)+1)
	rows = append(rows, inventoryCSVHeader)
	for _, item := range items {
		category, unit, supplier := "", "", ""
		if item.Category != nil {
			category = item.Category.Name
		}
		if item.Unit != nil {
			unit = item.Unit.Name
		}
		if item.Supplier != nil {
			supplier = item.Supplier.Name
		}
		expiry := ""
		if item.ExpiryDate != nil {
			expiry = item.ExpiryDate.Format("2006-01-02")
		}
		rows = append(rows, []string{
			item.SKU,
			item.Name,
			category,
			strconv.Itoa(item.Quantity),
			unit,
			strconv.Itoa(item.ReorderLevel),
			item.ComputeStockLevel(),
			expiry,
			item.Location,
			strconv.FormatFloat(item.Cost, 'f', 2, 64),
			supplier,
		})
	}
	return rows, nil
}

func (s *inventoryService) ListCategories(actor authz.Actor, hospitalID uint) ([]models.Category, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceInventory, hospitalID); err != nil {
		return nil, err
	}
	return s.inventoryRepo.ListCategories(hospitalID)
}

func (s *inventoryService) CreateCategory(actor authz.Actor, hospitalID uint, name string) (*models.Category, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceInventory, hospitalID); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperrors.NewValidation("name", "name is required")
	}

	category := &models.Category{HospitalID: hospitalID, Name: name}
	if err := s.inventoryRepo.CreateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *inventoryService) ListUnits(actor authz.Actor, hospitalID uint) ([]models.Unit, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceInventory, hospitalID); err != nil {
		return nil, err
	}
	return s.inventoryRepo.ListUnits(hospitalID)
}

func (s *inventoryService) CreateUnit(actor authz.Actor, hospitalID uint, name string) (*models.Unit, error) {
	if err := authz.Can(actor, authz.ActionWrite, authz.ResourceInventory, hospitalID); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperrors.NewValidation("name", "name is required")
	}

	unit := &models.Unit{HospitalID: hospitalID, Name: name}
	if err := s.inventoryRepo.CreateUnit(unit); err != nil {
		return nil, err
	}
	return unit, nil
}
