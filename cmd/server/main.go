package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/config"
	"github.com/Yogesh-MG/Meditrackpro/internal/database"
	"github.com/Yogesh-MG/Meditrackpro/internal/handler"
	"github.com/Yogesh-MG/Meditrackpro/internal/middleware"
	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/internal/payment"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/internal/service"
	"github.com/Yogesh-MG/Meditrackpro/pkg/logger"
	"github.com/Yogesh-MG/Meditrackpro/pkg/metrics"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()

	// 2. Initialize structured logging
	if err := logger.Init(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Log.Environment,
		ServiceName: "meditrackpro",
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zlog := logger.Get()
	zlog.Info("configuration loaded")

	// 3. Initialize metrics registry
	metrics.Init("meditrackpro")

	// 4. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 5. Initialize database connection and schema
	db := database.Connect(cfg)
	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Hospital{},
		&models.Subscription{},
		&models.Employee{},
		&models.Device{},
		&models.ServiceLog{},
		&models.Specification{},
		&models.Documentation{},
		&models.Calibration{},
		&models.IncidentReport{},
		&models.Category{},
		&models.Unit{},
		&models.InventoryItem{},
		&models.Supplier{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.Ticket{},
		&models.TicketComment{},
		&models.ComplianceStandard{},
		&models.Audit{},
		&models.ComplianceDocument{},
		&models.Patient{},
		&models.EmergencyContact{},
		&models.Vital{},
		&models.MedicalHistory{},
		&models.Medication{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		zlog.Fatal("database migration failed", zap.Error(err))
	}

	// Ticket comment attachments land on local disk.
	if err := os.MkdirAll(filepath.Join(cfg.Upload.Dir, "tickets"), 0o755); err != nil {
		zlog.Fatal("could not create upload directory", zap.Error(err))
	}

	// 6. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	hospitalRepo := repository.NewHospitalRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)
	deviceRepo := repository.NewDeviceRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	poRepo := repository.NewPurchaseOrderRepo(db)
	ticketRepo := repository.NewTicketRepo(db)
	complianceRepo := repository.NewComplianceRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	dashboardRepo := repository.NewDashboardRepo(db)

	// 7. Initialize the payment gateway client
	gateway := payment.NewClient(cfg.Payment)

	// 8. Initialize services
	authService := service.NewAuthService(userRepo, employeeRepo, auditRepo)
	hospitalService := service.NewHospitalService(hospitalRepo, userRepo, auditRepo, gateway)
	employeeService := service.NewEmployeeService(employeeRepo, userRepo, auditRepo)
	deviceService := service.NewDeviceService(deviceRepo, auditRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, auditRepo)
	supplierService := service.NewSupplierService(supplierRepo)
	poService := service.NewPurchaseOrderService(poRepo, auditRepo)
	ticketService := service.NewTicketService(ticketRepo, employeeRepo, auditRepo)
	complianceService := service.NewComplianceService(complianceRepo)
	patientService := service.NewPatientService(patientRepo, auditRepo)
	dashboardService := service.NewDashboardService(dashboardRepo)

	// 9. Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	hospitalHandler := handler.NewHospitalHandler(hospitalService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	deviceHandler := handler.NewDeviceHandler(deviceService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	poHandler := handler.NewPurchaseOrderHandler(poService)
	ticketHandler := handler.NewTicketHandler(ticketService, cfg.Upload)
	complianceHandler := handler.NewComplianceHandler(complianceService)
	patientHandler := handler.NewPatientHandler(patientService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// 10. Setup Gin router
	gin.SetMode(cfg.Server.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "meditrackpro",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 11. Define routes
	api := r.Group("/api")

	// Public endpoints
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}
	api.POST("/hospitals/register", hospitalHandler.Register)
	api.POST("/hospitals/payment", hospitalHandler.StartPayment)
	api.POST("/hospitals/payment/verify", hospitalHandler.VerifyPayment)

	// Authenticated endpoints
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	authed.Use(middleware.ActorMiddleware(employeeRepo))
	{
		authed.GET("/auth/profile", authHandler.GetProfile)
		authed.GET("/hospitals", hospitalHandler.List)
	}

	// Tenant-scoped endpoints
	hospital := authed.Group("/hospitals/:hospital_id")
	hospital.Use(middleware.HospitalAccessMiddleware(hospitalRepo))
	{
		hospital.GET("", hospitalHandler.Get)
		hospital.PATCH("", hospitalHandler.Update)

		hospital.GET("/dashboard/stats", dashboardHandler.GetStats)

		employees := hospital.Group("/employees")
		{
			employees.GET("", employeeHandler.List)
			employees.POST("", employeeHandler.Create)
			employees.GET("/:id", employeeHandler.Get)
			employees.PATCH("/:id", employeeHandler.Update)
			employees.DELETE("/:id", employeeHandler.Delete)
		}

		devices := hospital.Group("/devices")
		{
			devices.GET("", deviceHandler.List)
			devices.POST("", deviceHandler.Create)
			devices.GET("/nfc/:nfc_uuid", deviceHandler.GetByNFC)
			devices.GET("/:id", deviceHandler.Get)
			devices.PATCH("/:id", deviceHandler.Update)
			devices.DELETE("/:id", deviceHandler.Delete)
			devices.POST("/:id/calibrations", deviceHandler.AddCalibration)
			devices.PATCH("/:id/calibrations/:cal_id", deviceHandler.UpdateCalibration)
			devices.POST("/:id/service-logs", deviceHandler.AddServiceLog)
			devices.PATCH("/:id/service-logs/:log_id", deviceHandler.UpdateServiceLog)
			devices.POST("/:id/specifications", deviceHandler.AddSpecification)
			devices.POST("/:id/documentation", deviceHandler.AddDocumentation)
			devices.POST("/:id/incidents", deviceHandler.AddIncidentReport)
		}

		inventory := hospital.Group("/inventory")
		{
			inventory.GET("", inventoryHandler.List)
			inventory.POST("", inventoryHandler.Create)
			inventory.GET("/check", inventoryHandler.CheckSKU)
			inventory.GET("/export", inventoryHandler.Export)
			inventory.POST("/bulk", inventoryHandler.BulkAction)
			inventory.GET("/categories", inventoryHandler.ListCategories)
			inventory.POST("/categories", inventoryHandler.CreateCategory)
			inventory.GET("/units", inventoryHandler.ListUnits)
			inventory.POST("/units", inventoryHandler.CreateUnit)
			inventory.GET("/:id", inventoryHandler.Get)
			inventory.PATCH("/:id", inventoryHandler.Update)
			inventory.DELETE("/:id", inventoryHandler.Delete)
			inventory.GET("/:id/purchase-history", poHandler.History)
		}

		suppliers := hospital.Group("/suppliers")
		{
			suppliers.GET("", supplierHandler.List)
			suppliers.POST("", supplierHandler.Create)
			suppliers.GET("/stats", supplierHandler.Stats)
			suppliers.GET("/:id", supplierHandler.Get)
			suppliers.PATCH("/:id", supplierHandler.Update)
			suppliers.DELETE("/:id", supplierHandler.Delete)
		}

		orders := hospital.Group("/purchase-orders")
		{
			orders.GET("", poHandler.List)
			orders.POST("", poHandler.Create)
			orders.GET("/statuses", poHandler.StatusChoices)
			orders.GET("/:id", poHandler.Get)
			orders.PATCH("/:id", poHandler.Update)
			orders.DELETE("/:id", poHandler.Delete)
		}

		tickets := hospital.Group("/tickets")
		{
			tickets.GET("", ticketHandler.List)
			tickets.POST("", ticketHandler.Create)
			tickets.GET("/:ticket_id", ticketHandler.Get)
			tickets.PATCH("/:ticket_id", ticketHandler.Update)
			tickets.DELETE("/:ticket_id", ticketHandler.Delete)
			tickets.POST("/:ticket_id/comments", ticketHandler.AddComment)
		}

		compliance := hospital.Group("/compliance")
		{
			compliance.GET("/standards", complianceHandler.ListStandards)
			compliance.POST("/standards", complianceHandler.CreateStandard)
			compliance.GET("/standards/:id", complianceHandler.GetStandard)
			compliance.PATCH("/standards/:id", complianceHandler.UpdateStandard)
			compliance.DELETE("/standards/:id", complianceHandler.DeleteStandard)
			compliance.GET("/export", complianceHandler.Export)
			compliance.GET("/audits", complianceHandler.ListAudits)
			compliance.POST("/audits", complianceHandler.CreateAudit)
			compliance.PATCH("/audits/:id", complianceHandler.UpdateAudit)
			compliance.DELETE("/audits/:id", complianceHandler.DeleteAudit)
			compliance.GET("/documents", complianceHandler.ListDocuments)
			compliance.POST("/documents", complianceHandler.CreateDocument)
			compliance.DELETE("/documents/:id", complianceHandler.DeleteDocument)
		}

		patients := hospital.Group("/patients")
		{
			patients.GET("", patientHandler.List)
			patients.POST("", patientHandler.Create)
			patients.GET("/:patient_id", patientHandler.Get)
			patients.PATCH("/:patient_id", patientHandler.Update)
			patients.DELETE("/:patient_id", patientHandler.Delete)
			patients.GET("/:patient_id/vitals", patientHandler.ListVitals)
			patients.POST("/:patient_id/vitals", patientHandler.AddVital)
			patients.GET("/:patient_id/medical-history", patientHandler.ListMedicalHistories)
			patients.POST("/:patient_id/medical-history", patientHandler.AddMedicalHistory)
			patients.GET("/:patient_id/medications", patientHandler.ListMedications)
			patients.POST("/:patient_id/medications", patientHandler.AddMedication)
			patients.GET("/:patient_id/appointments", patientHandler.ListAppointments)
			patients.POST("/:patient_id/appointments", patientHandler.AddAppointment)
			patients.PATCH("/:patient_id/appointments/:id", patientHandler.UpdateAppointment)
		}
	}

	// 12. Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}
	zlog.Info("server exited")
}
