package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Yogesh-MG/Meditrackpro/internal/authz"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/metrics"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ActorMiddleware resolves the employee profile behind the authenticated
// user and builds the authz.Actor used by services. Superadmins without an
// employee row get a bare actor.
func ActorMiddleware(employeeRepo repository.EmployeeRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := authz.Actor{
			UserID:       UserID(c),
			IsSuperAdmin: IsSuperAdmin(c),
		}

		employee, err := employeeRepo.GetEmployeeByUserID(actor.UserID)
		switch {
		case err == nil:
			actor.EmployeeID = employee.ID
			actor.Role = employee.Role
			actor.HospitalID = employee.HospitalID
		case errors.Is(err, apperrors.ErrNotFound):
			if !actor.IsSuperAdmin {
				utils.ErrorResponse(c, http.StatusForbidden, "no employee profile")
				c.Abort()
				return
			}
		default:
			utils.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextActor, actor)
		c.Next()
	}
}

// HospitalAccessMiddleware parses the :hospital_id path parameter, verifies
// the hospital exists and is paid up, and rejects cross-tenant callers
// before any handler runs. Unknown hospitals and foreign hospitals both
// read as 404.
func HospitalAccessMiddleware(hospitalRepo repository.HospitalRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("hospital_id"), 10, 64)
		if err != nil {
			utils.ErrorResponse(c, http.StatusNotFound, "not found")
			c.Abort()
			return
		}
		hospitalID := uint(id)

		actor := Actor(c)
		if !actor.IsSuperAdmin {
			if actor.HospitalID == nil || *actor.HospitalID != hospitalID {
				metrics.TenantScopeMissCounter.Inc()
				utils.ErrorResponse(c, http.StatusNotFound, "not found")
				c.Abort()
				return
			}
		}

		hospital, err := hospitalRepo.GetHospitalByID(hospitalID)
		if err != nil {
			utils.HandleError(c, err)
			c.Abort()
			return
		}
		if !hospital.IsActive {
			utils.ErrorResponse(c, http.StatusForbidden, "subscription renewal required")
			c.Abort()
			return
		}

		c.Set("hospital_id_param", hospitalID)
		c.Next()
	}
}

// Actor reads the resolved actor from the context.
func Actor(c *gin.Context) authz.Actor {
	if v, ok := c.Get(ContextActor); ok {
		if a, ok := v.(authz.Actor); ok {
			return a
		}
	}
	return authz.Actor{}
}

// HospitalID reads the validated hospital id path parameter.
func HospitalID(c *gin.Context) uint {
	if v, ok := c.Get("hospital_id_param"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
