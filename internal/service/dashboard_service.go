package service

import (
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/authz"
	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
)

const (
	calibrationAlertWindow = 30 * 24 * time.Hour
	chartMonths            = 6
	alertLimit             = 5
	activityLimit          = 10
)

// DashboardStats is the aggregated response for the stats endpoint.
type DashboardStats struct {
	Cards struct {
		InventoryCount         int64 `json:"inventory_count"`
		DevicesUnderMaintenace int64 `json:"devices_under_maintenance"`
		LowStockCount          int64 `json:"low_stock_count"`
		LowStockTrend          int64 `json:"low_stock_trend"`
		ActiveSuppliers        int64 `json:"active_suppliers"`
	} `json:"cards"`
	Alerts struct {
		LowStock       []models.InventoryItem `json:"low_stock"`
		CalibrationDue []models.Device        `json:"calibration_due"`
	} `json:"alerts"`
	UpcomingCalibrations []models.Device            `json:"upcoming_calibrations"`
	CategoryShares       []repository.CategoryShare `json:"category_shares"`
	Charts               struct {
		InventoryAdded []repository.MonthlyCount `json:"inventory_added"`
		Maintenance    []repository.MonthlyCount `json:"maintenance"`
	} `json:"charts"`
	RecentActivity []models.Ticket `json:"recent_activity"`
}

// DashboardService assembles the hospital overview.
type DashboardService interface {
	GetStats(actor authz.Actor, hospitalID uint) (*DashboardStats, error)
}

type dashboardService struct {
	dashboardRepo repository.DashboardRepository
}

func NewDashboardService(dashboardRepo repository.DashboardRepository) DashboardService {
	return &dashboardService{dashboardRepo: dashboardRepo}
}

// GetStats gathers metric cards, alerts, chart series and recent activity
// for one hospital.
func (s *dashboardService) GetStats(actor authz.Actor, hospitalID uint) (*DashboardStats, error) {
	if err := authz.Can(actor, authz.ActionRead, authz.ResourceInventory, hospitalID); err != nil {
		return nil, err
	}

	stats := &DashboardStats{}
	var err error

	if stats.Cards.InventoryCount, err = s.dashboardRepo.CountInventoryItems(hospitalID); err != nil {
		return nil, err
	}
	if stats.Cards.DevicesUnderMaintenace, err = s.dashboardRepo.CountDevicesByStatus(hospitalID, models.DeviceUnderMaintenance); err != nil {
		return nil, err
	}
	if stats.Cards.LowStockCount, err = s.dashboardRepo.CountLowStockItems(hospitalID); err != nil {
		return nil, err
	}
	monthAgo := time.Now().AddDate(0, -1, 0)
	previous, err := s.dashboardRepo.CountLowStockItemsBefore(hospitalID, monthAgo)
	if err != nil {
		return nil, err
	}
	stats.Cards.LowStockTrend = stats.Cards.LowStockCount - previous
	if stats.Cards.ActiveSuppliers, err = s.dashboardRepo.CountActiveSuppliers(hospitalID); err != nil {
		return nil, err
	}

	if stats.Alerts.LowStock, err = s.dashboardRepo.LowStockItems(hospitalID, alertLimit); err != nil {
		return nil, err
	}
	for i := range stats.Alerts.LowStock {
		stats.Alerts.LowStock[i].StockLevel = stats.Alerts.LowStock[i].ComputeStockLevel()
	}
	if stats.Alerts.CalibrationDue, err = s.dashboardRepo.CalibrationsDue(hospitalID, calibrationAlertWindow); err != nil {
		return nil, err
	}
	stats.UpcomingCalibrations = stats.Alerts.CalibrationDue

	if stats.CategoryShares, err = s.dashboardRepo.CategoryShares(hospitalID); err != nil {
		return nil, err
	}
	if stats.Charts.InventoryAdded, err = s.dashboardRepo.InventoryAddedByMonth(hospitalID, chartMonths); err != nil {
		return nil, err
	}
	if stats.Charts.Maintenance, err = s.dashboardRepo.MaintenanceByMonth(hospitalID, chartMonths); err != nil {
		return nil, err
	}
	if stats.RecentActivity, err = s.dashboardRepo.RecentTickets(hospitalID, activityLimit); err != nil {
		return nil, err
	}
	return stats, nil
}
