package repository

import (
	"errors"
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"gorm.io/gorm"
)

var inventoryOrderFields = map[string]string{
	"id":          "id",
	"name":        "name",
	"quantity":    "quantity",
	"expiry_date": "expiry_date",
	"location":    "location",
}

// InventoryFilter narrows inventory list queries.
type InventoryFilter struct {
	StockLevel string
	ExpirySoon int // days; 0 disables the filter
	CategoryID *uint
	Location   string
}

// InventoryRepository persists inventory items, categories and units.
type InventoryRepository interface {
	ListItems(hospitalID uint, params utils.PageParams, filter InventoryFilter) ([]models.InventoryItem, int64, error)
	AllItems(hospitalID uint) ([]models.InventoryItem, error)
	GetItemByID(hospitalID, id uint) (*models.InventoryItem, error)
	SKUExists(hospitalID uint, sku string) (bool, error)
	CreateItem(item *models.InventoryItem) error
	UpdateItem(item *models.InventoryItem) error
	DeleteItem(hospitalID, id uint) error
	DeleteItems(hospitalID uint, ids []uint) (int64, error)
	SetItemQuantity(hospitalID, id uint, quantity int) error

	ListCategories(hospitalID uint) ([]models.Category, error)
	CreateCategory(category *models.Category) error
	ListUnits(hospitalID uint) ([]models.Unit, error)
	CreateUnit(unit *models.Unit) error
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) scoped(hospitalID uint) *gorm.DB {
	return r.db.Model(&models.InventoryItem{}).Where("hospital_id = ?", hospitalID)
}

// ListItems retrieves a filtered page of a hospital's inventory
func (r *inventoryRepo) ListItems(hospitalID uint, params utils.PageParams, filter InventoryFilter) ([]models.InventoryItem, int64, error) {
	query := r.scoped(hospitalID)

	switch filter.StockLevel {
	case models.StockLow:
		query = query.Where("quantity <= reorder_level")
	case models.StockMedium:
		query = query.Where("quantity > reorder_level AND quantity <= reorder_level * 2")
	case models.StockHigh:
		query = query.Where("quantity > reorder_level * 2")
	}
	if filter.ExpirySoon > 0 {
		cutoff := time.Now().AddDate(0, 0, filter.ExpirySoon)
		query = query.Where("expiry_date IS NOT NULL AND expiry_date <= ?", cutoff)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("name LIKE ? OR sku LIKE ? OR location LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.InventoryItem
	err := query.
		Order(params.OrderClause(inventoryOrderFields, "id ASC")).
		Limit(params.Limit).
		Offset(params.Offset()).
		Preload("Category").
		Preload("Unit").
		Preload("Supplier").
		Find(&items).Error
	return items, total, err
}

// AllItems retrieves every inventory item of a hospital (CSV export)
func (r *inventoryRepo) AllItems(hospitalID uint) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.db.Where("hospital_id = ?", hospitalID).
		Order("id ASC").
		Preload("Category").
		Preload("Unit").
		Preload("Supplier").
		Find(&items).Error
	return items, err
}

// GetItemByID retrieves one inventory item of a hospital
func (r *inventoryRepo) GetItemByID(hospitalID, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.Where("hospital_id = ? AND id = ?", hospitalID, id).
		Preload("Category").
		Preload("Unit").
		Preload("Supplier").
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("inventory item")
		}
		return nil, err
	}
	return &item, nil
}

// SKUExists reports whether a SKU is already taken within a hospital
func (r *inventoryRepo) SKUExists(hospitalID uint, sku string) (bool, error) {
	var count int64
	err := r.scoped(hospitalID).Where("sku = ?", sku).Count(&count).Error
	return count > 0, err
}

// CreateItem creates an inventory item
func (r *inventoryRepo) CreateItem(item *models.InventoryItem) error {
	err := r.db.Create(item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("sku")
	}
	return err
}

// UpdateItem saves item changes
func (r *inventoryRepo) UpdateItem(item *models.InventoryItem) error {
	err := r.db.Save(item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("sku")
	}
	return err
}

// DeleteItem removes one inventory item of a hospital
func (r *inventoryRepo) DeleteItem(hospitalID, id uint) error {
	res := r.db.Where("hospital_id = ? AND id = ?", hospitalID, id).
		Delete(&models.InventoryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("inventory item")
	}
	return nil
}

// DeleteItems removes a set of items, scoped to the hospital
func (r *inventoryRepo) DeleteItems(hospitalID uint, ids []uint) (int64, error) {
	res := r.db.Where("hospital_id = ? AND id IN ?", hospitalID, ids).
		Delete(&models.InventoryItem{})
	return res.RowsAffected, res.Error
}

// SetItemQuantity updates a single item's on-hand quantity
func (r *inventoryRepo) SetItemQuantity(hospitalID, id uint, quantity int) error {
	res := r.db.Model(&models.InventoryItem{}).
		Where("hospital_id = ? AND id = ?", hospitalID, id).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("inventory item")
	}
	return nil
}

// ListCategories retrieves a hospital's inventory categories
func (r *inventoryRepo) ListCategories(hospitalID uint) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("hospital_id = ?", hospitalID).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

// CreateCategory creates an inventory category
func (r *inventoryRepo) CreateCategory(category *models.Category) error {
	err := r.db.Create(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("category name")
	}
	return err
}

// ListUnits retrieves a hospital's measurement units
func (r *inventoryRepo) ListUnits(hospitalID uint) ([]models.Unit, error) {
	var units []models.Unit
	err := r.db.Where("hospital_id = ?", hospitalID).
		Order("name ASC").
		Find(&units).Error
	return units, err
}

// CreateUnit creates a measurement unit
func (r *inventoryRepo) CreateUnit(unit *models.Unit) error {
	return r.db.Create(unit).Error
}
