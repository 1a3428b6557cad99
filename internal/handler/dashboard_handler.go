package handler

import (
	"github.com/Yogesh-MG/Meditrackpro/internal/middleware"
	"github.com/Yogesh-MG/Meditrackpro/internal/service"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the aggregated operations overview.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles GET /api/hospitals/:hospital_id/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(middleware.Actor(c), middleware.HospitalID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, stats)
}
