package handler

import (
	"net/http"

	"github.com/Yogesh-MG/Meditrackpro/internal/middleware"
	"github.com/Yogesh-MG/Meditrackpro/internal/service"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/gin-gonic/gin"
)

// EmployeeHandler exposes staff management endpoints.
type EmployeeHandler struct {
	employeeService service.EmployeeService
}

func NewEmployeeHandler(employeeService service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// List handles GET /api/hospitals/:hospital_id/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.employeeService.ListEmployees(middleware.Actor(c), middleware.HospitalID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, employees)
}

// Get handles GET /api/hospitals/:hospital_id/employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	employee, err := h.employeeService.GetEmployee(middleware.Actor(c), middleware.HospitalID(c), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, employee)
}

// Create handles POST /api/hospitals/:hospital_id/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req service.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid employee payload: "+err.Error())
		return
	}

	employee, err := h.employeeService.CreateEmployee(middleware.Actor(c), middleware.HospitalID(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, employee)
}

// Update handles PATCH /api/hospitals/:hospital_id/employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payload")
		return
	}

	employee, err := h.employeeService.UpdateEmployee(middleware.Actor(c), middleware.HospitalID(c), id, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, employee)
}

// Delete handles DELETE /api/hospitals/:hospital_id/employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(middleware.Actor(c), middleware.HospitalID(c), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "employee deleted")
}
