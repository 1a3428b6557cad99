package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/metrics"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	metrics.Init("middleware_test")
	utils.InitJWT("test-access", "test-refresh", 15*time.Minute, 24*time.Hour)
	os.Exit(m.Run())
}

type stubEmployeeRepo struct {
	byUserID map[uint]*models.Employee
}

func (s *stubEmployeeRepo) ListEmployees(hospitalID uint) ([]models.Employee, error) { return nil, nil }
func (s *stubEmployeeRepo) GetEmployeeByID(hospitalID, id uint) (*models.Employee, error) {
	return nil, apperrors.NotFound("employee")
}
func (s *stubEmployeeRepo) GetEmployeeByUserID(userID uint) (*models.Employee, error) {
	if emp, ok := s.byUserID[userID]; ok {
		return emp, nil
	}
	return nil, apperrors.NotFound("employee")
}
func (s *stubEmployeeRepo) CreateEmployee(employee *models.Employee) error { return nil }
func (s *stubEmployeeRepo) UpdateEmployee(employee *models.Employee) error { return nil }
func (s *stubEmployeeRepo) DeleteEmployee(hospitalID, id uint) error       { return nil }

type stubHospitalRepo struct {
	hospitals map[uint]*models.Hospital
}

func (s *stubHospitalRepo) CreateHospital(h *models.Hospital) error { return nil }
func (s *stubHospitalRepo) GetHospitalByID(id uint) (*models.Hospital, error) {
	if h, ok := s.hospitals[id]; ok {
		return h, nil
	}
	return nil, apperrors.NotFound("hospital")
}
func (s *stubHospitalRepo) GetAllHospitals() ([]models.Hospital, error)               { return nil, nil }
func (s *stubHospitalRepo) UpdateHospital(h *models.Hospital) error                   { return nil }
func (s *stubHospitalRepo) SetActive(id uint, active bool) error                      { return nil }
func (s *stubHospitalRepo) CreateSubscription(sub *models.Subscription) error         { return nil }
func (s *stubHospitalRepo) GetSubscriptionByID(id uint) (*models.Subscription, error) { return nil, nil }
func (s *stubHospitalRepo) UpdateSubscription(sub *models.Subscription) error         { return nil }

func authRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c), "is_superadmin": IsSuperAdmin(c)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := authRouter()

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := utils.GenerateAccessToken(42, false)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":42`)
	})
}

func tenantRouter(employeeRepo *stubEmployeeRepo, hospitalRepo *stubHospitalRepo) *gin.Engine {
	r := gin.New()
	scoped := r.Group("/hospitals/:hospital_id")
	scoped.Use(AuthMiddleware(), ActorMiddleware(employeeRepo), HospitalAccessMiddleware(hospitalRepo))
	scoped.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"hospital_id": HospitalID(c), "role": Actor(c).Role})
	})
	return r
}

func scopedRequest(t *testing.T, r *gin.Engine, userID uint, superadmin bool, path string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := utils.GenerateAccessToken(userID, superadmin)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHospitalScoping(t *testing.T) {
	hospitalID := uint(5)
	employeeRepo := &stubEmployeeRepo{byUserID: map[uint]*models.Employee{
		42: {ID: 10, UserID: 42, HospitalID: &hospitalID, Role: models.RoleEngineer},
	}}
	hospitalRepo := &stubHospitalRepo{hospitals: map[uint]*models.Hospital{
		5: {ID: 5, Name: "City General", IsActive: true},
		6: {ID: 6, Name: "Lakeside", IsActive: false},
	}}
	r := tenantRouter(employeeRepo, hospitalRepo)

	t.Run("own hospital allowed", func(t *testing.T) {
		w := scopedRequest(t, r, 42, false, "/hospitals/5/ping")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"hospital_id":5`)
	})

	t.Run("foreign hospital reads as 404", func(t *testing.T) {
		w := scopedRequest(t, r, 42, false, "/hospitals/6/ping")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown hospital id reads as 404", func(t *testing.T) {
		w := scopedRequest(t, r, 42, false, "/hospitals/999/ping")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric hospital id reads as 404", func(t *testing.T) {
		w := scopedRequest(t, r, 42, false, "/hospitals/abc/ping")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("user without employee profile is forbidden", func(t *testing.T) {
		w := scopedRequest(t, r, 99, false, "/hospitals/5/ping")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("superadmin crosses tenants", func(t *testing.T) {
		w := scopedRequest(t, r, 99, true, "/hospitals/5/ping")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("inactive hospital is forbidden for superadmin too", func(t *testing.T) {
		w := scopedRequest(t, r, 99, true, "/hospitals/6/ping")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
