package service

import (
	"testing"
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardRepo struct {
	inventoryCount   int64
	lowStockCount    int64
	lowStockPrevious int64
	maintenanceCount int64
	activeSuppliers  int64
	lowStockItems    []models.InventoryItem
	calibrationsDue  []models.Device
	recentTickets    []models.Ticket
}

func (f *fakeDashboardRepo) CountInventoryItems(hospitalID uint) (int64, error) {
	return f.inventoryCount, nil
}

func (f *fakeDashboardRepo) CountLowStockItems(hospitalID uint) (int64, error) {
	return f.lowStockCount, nil
}

func (f *fakeDashboardRepo) CountLowStockItemsBefore(hospitalID uint, cutoff time.Time) (int64, error) {
	return f.lowStockPrevious, nil
}

func (f *fakeDashboardRepo) CountDevicesByStatus(hospitalID uint, status string) (int64, error) {
	return f.maintenanceCount, nil
}

func (f *fakeDashboardRepo) CountActiveSuppliers(hospitalID uint) (int64, error) {
	return f.activeSuppliers, nil
}

func (f *fakeDashboardRepo) LowStockItems(hospitalID uint, limit int) ([]models.InventoryItem, error) {
	return f.lowStockItems, nil
}

func (f *fakeDashboardRepo) CalibrationsDue(hospitalID uint, within time.Duration) ([]models.Device, error) {
	return f.calibrationsDue, nil
}

func (f *fakeDashboardRepo) CategoryShares(hospitalID uint) ([]repository.CategoryShare, error) {
	return []repository.CategoryShare{{Category: "Consumables", Count: 12}}, nil
}

func (f *fakeDashboardRepo) InventoryAddedByMonth(hospitalID uint, months int) ([]repository.MonthlyCount, error) {
	return []repository.MonthlyCount{{Month: "2026-08", Count: 4}}, nil
}

func (f *fakeDashboardRepo) MaintenanceByMonth(hospitalID uint, months int) ([]repository.MonthlyCount, error) {
	return []repository.MonthlyCount{{Month: "2026-08", Count: 2}}, nil
}

func (f *fakeDashboardRepo) RecentTickets(hospitalID uint, limit int) ([]models.Ticket, error) {
	return f.recentTickets, nil
}

func TestGetStats(t *testing.T) {
	repo := &fakeDashboardRepo{
		inventoryCount:   120,
		lowStockCount:    8,
		lowStockPrevious: 5,
		maintenanceCount: 3,
		activeSuppliers:  14,
		lowStockItems: []models.InventoryItem{
			{ID: 1, Name: "Syringes", Quantity: 2, ReorderLevel: 10},
		},
		calibrationsDue: []models.Device{{ID: 4, Name: "Ventilator"}},
		recentTickets:   []models.Ticket{{ID: 9, TicketID: "TIC1009"}},
	}
	svc := NewDashboardService(repo)

	stats, err := svc.GetStats(nurseActor(5, 11), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(120), stats.Cards.InventoryCount)
	assert.Equal(t, int64(8), stats.Cards.LowStockCount)
	assert.Equal(t, int64(3), stats.Cards.LowStockTrend)
	assert.Equal(t, int64(3), stats.Cards.DevicesUnderMaintenace)
	assert.Equal(t, int64(14), stats.Cards.ActiveSuppliers)

	// Derived stock levels are filled on the alert rows.
	require.Len(t, stats.Alerts.LowStock, 1)
	assert.Equal(t, models.StockLow, stats.Alerts.LowStock[0].StockLevel)

	assert.Equal(t, stats.Alerts.CalibrationDue, stats.UpcomingCalibrations)
	require.Len(t, stats.CategoryShares, 1)
	assert.Equal(t, "Consumables", stats.CategoryShares[0].Category)
	require.Len(t, stats.RecentActivity, 1)
}

func TestGetStats_CrossTenantDenied(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardRepo{})
	_, err := svc.GetStats(nurseActor(5, 11), 6)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
