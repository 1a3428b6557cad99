package repository

import (
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"

	"gorm.io/gorm"
)

// CategoryShare is one slice of the inventory category breakdown.
type CategoryShare struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// MonthlyCount is one point in a per-month chart series.
type MonthlyCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int64  `json:"count"`
}

// DashboardRepository runs the aggregate queries behind the stats endpoint.
type DashboardRepository interface {
	CountInventoryItems(hospitalID uint) (int64, error)
	CountLowStockItems(hospitalID uint) (int64, error)
	CountLowStockItemsBefore(hospitalID uint, cutoff time.Time) (int64, error)
	CountDevicesByStatus(hospitalID uint, status string) (int64, error)
	CountActiveSuppliers(hospitalID uint) (int64, error)
	LowStockItems(hospitalID uint, limit int) ([]models.InventoryItem, error)
	CalibrationsDue(hospitalID uint, within time.Duration) ([]models.Device, error)
	CategoryShares(hospitalID uint) ([]CategoryShare, error)
	InventoryAddedByMonth(hospitalID uint, months int) ([]MonthlyCount, error)
	MaintenanceByMonth(hospitalID uint, months int) ([]MonthlyCount, error)
	RecentTickets(hospitalID uint, limit int) ([]models.Ticket, error)
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db: db}
}

func (r *dashboardRepo) CountInventoryItems(hospitalID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.InventoryItem{}).
		Where("hospital_id = ?", hospitalID).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepo) CountLowStockItems(hospitalID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.InventoryItem{}).
		Where("hospital_id = ? AND quantity <= reorder_level", hospitalID).
		Count(&count).Error
	return count, err
}

// CountLowStockItemsBefore approximates last month's low-stock figure by
// counting low items created before the cutoff.
func (r *dashboardRepo) CountLowStockItemsBefore(hospitalID uint, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.InventoryItem{}).
		Where("hospital_id = ? AND quantity <= reorder_level AND created_at < ?", hospitalID, cutoff).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepo) CountDevicesByStatus(hospitalID uint, status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Device{}).
		Where("hospital_id = ? AND is_active = ?", hospitalID, status).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepo) CountActiveSuppliers(hospitalID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Supplier{}).
		Where("hospital_id = ? AND status = ?", hospitalID, models.SupplierActive).
		Count(&count).Error
	return count, err
}

// LowStockItems lists the items most urgently below their reorder level
func (r *dashboardRepo) LowStockItems(hospitalID uint, limit int) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.db.Where("hospital_id = ? AND quantity <= reorder_level", hospitalID).
		Order("quantity ASC").
		Limit(limit).
		Preload("Category").
		Find(&items).Error
	return items, err
}

// CalibrationsDue lists devices whose next calibration falls inside the window
func (r *dashboardRepo) CalibrationsDue(hospitalID uint, within time.Duration) ([]models.Device, error) {
	cutoff := time.Now().Add(within)
	var devices []models.Device
	err := r.db.Where("hospital_id = ? AND next_calibration IS NOT NULL AND next_calibration <= ?", hospitalID, cutoff).
		Order("next_calibration ASC").
		Find(&devices).Error
	return devices, err
}

// CategoryShares counts inventory items per category name
func (r *dashboardRepo) CategoryShares(hospitalID uint) ([]CategoryShare, error) {
	var shares []CategoryShare
	err := r.db.Model(&models.InventoryItem{}).
		Select("COALESCE(categories.name, 'Uncategorized') AS category, COUNT(inventory_items.id) AS count").
		Joins("LEFT JOIN categories ON categories.id = inventory_items.category_id").
		Where("inventory_items.hospital_id = ?", hospitalID).
		Group("categories.name").
		Order("count DESC").
		Scan(&shares).Error
	return shares, err
}

// InventoryAddedByMonth counts items created per month over the window
func (r *dashboardRepo) InventoryAddedByMonth(hospitalID uint, months int) ([]MonthlyCount, error) {
	since := monthsAgo(months)
	var series []MonthlyCount
	err := r.db.Model(&models.InventoryItem{}).
		Select("DATE_FORMAT(created_at, '%Y-%m') AS month, COUNT(id) AS count").
		Where("hospital_id = ? AND created_at >= ?", hospitalID, since).
		Group("month").
		Order("month ASC").
		Scan(&series).Error
	return series, err
}

// MaintenanceByMonth counts completed service logs per month over the window
func (r *dashboardRepo) MaintenanceByMonth(hospitalID uint, months int) ([]MonthlyCount, error) {
	since := monthsAgo(months)
	var series []MonthlyCount
	err := r.db.Model(&models.ServiceLog{}).
		Select("DATE_FORMAT(service_logs.service_date, '%Y-%m') AS month, COUNT(service_logs.id) AS count").
		Joins("INNER JOIN devices ON devices.id = service_logs.device_id").
		Where("devices.hospital_id = ? AND service_logs.service_date >= ?", hospitalID, since).
		Group("month").
		Order("month ASC").
		Scan(&series).Error
	return series, err
}

// RecentTickets lists the most recently created tickets for the activity feed
func (r *dashboardRepo) RecentTickets(hospitalID uint, limit int) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Where("hospital_id = ?", hospitalID).
		Order("created_at DESC").
		Limit(limit).
		Preload("CreatedBy.User").
		Find(&tickets).Error
	return tickets, err
}

// monthsAgo returns midnight on the first day of the month n months back.
func monthsAgo(n int) time.Time {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, -n, 0)
}
